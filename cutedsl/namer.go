package cutedsl

import (
	"fmt"
	"sync/atomic"
)

// Namer hands out globally unique kernel names. The counter is monotonic
// and shared across every template using the same Namer, so two Generate
// calls never produce the same name even on different templates.
type Namer struct {
	counter atomic.Uint64
}

var defaultNamer = &Namer{}

// DefaultNamer returns the process-wide naming service templates use
// unless one is injected with WithNamer
func DefaultNamer() *Namer {
	return defaultNamer
}

// Next synthesizes a fresh kernel name for the given template name
func (n *Namer) Next(templateName string) string {
	return fmt.Sprintf("cutedsl_%s_%d", templateName, n.counter.Add(1)-1)
}
