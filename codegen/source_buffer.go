package codegen

import "strings"

// SourceBuffer accumulates generated kernel source with indentation
// tracking. Generated CuTeDSL kernels are Python, so indentation is
// structural, not cosmetic.
type SourceBuffer struct {
	sb     strings.Builder
	indent int
}

const indentUnit = "    "

// WriteLine appends one line at the current indent level. An empty string
// writes a blank line with no indentation.
func (c *SourceBuffer) WriteLine(line string) {
	if line != "" {
		c.sb.WriteString(strings.Repeat(indentUnit, c.indent))
		c.sb.WriteString(line)
	}
	c.sb.WriteString("\n")
}

// WriteLines appends multiple lines at the current indent level
func (c *SourceBuffer) WriteLines(lines ...string) {
	for _, line := range lines {
		c.WriteLine(line)
	}
}

// Indent increases the indent level for subsequent lines
func (c *SourceBuffer) Indent() {
	c.indent++
}

// Unindent decreases the indent level
func (c *SourceBuffer) Unindent() {
	if c.indent > 0 {
		c.indent--
	}
}

// Splice writes a multi-line block, stripping the block's common leading
// whitespace and re-indenting at the current level. Leading and trailing
// blank lines are dropped so callers can use raw string literals freely.
func (c *SourceBuffer) Splice(block string) {
	lines := strings.Split(block, "\n")

	// Trim leading/trailing blank lines
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return
	}

	// Common leading whitespace across non-blank lines
	prefix := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lead := len(line) - len(strings.TrimLeft(line, " \t"))
		if prefix < 0 || lead < prefix {
			prefix = lead
		}
	}
	if prefix < 0 {
		prefix = 0
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			c.WriteLine("")
			continue
		}
		c.WriteLine(line[prefix:])
	}
}

// String returns the accumulated source text
func (c *SourceBuffer) String() string {
	return c.sb.String()
}
