package codegen

import (
	"fmt"

	"github.com/drisspg/cutegen/ir"
)

// ArgumentRegistry tracks the ordered (name, buffer) pairs of one kernel
// invocation. Order is call-site-significant: Names() is used verbatim as
// the positional argument list of the generated kernel.
type ArgumentRegistry struct {
	names   []string
	buffers []*ir.Buffer
	index   map[string]int
}

// NewArgumentRegistry creates an empty registry
func NewArgumentRegistry() *ArgumentRegistry {
	return &ArgumentRegistry{
		index: make(map[string]int),
	}
}

// Add appends one argument. Duplicate names are rejected: the generated
// call site pairs arguments with kernel parameters by position, so a
// repeated name would silently shift every later operand.
func (a *ArgumentRegistry) Add(name string, buffer *ir.Buffer) error {
	if name == "" {
		return fmt.Errorf("argument name cannot be empty")
	}
	if _, exists := a.index[name]; exists {
		return fmt.Errorf("duplicate argument name %q", name)
	}
	a.index[name] = len(a.names)
	a.names = append(a.names, name)
	a.buffers = append(a.buffers, buffer)
	return nil
}

// Names returns the argument names in insertion order
func (a *ArgumentRegistry) Names() []string {
	return append([]string(nil), a.names...)
}

// Buffers returns the argument buffers in insertion order
func (a *ArgumentRegistry) Buffers() []*ir.Buffer {
	return append([]*ir.Buffer(nil), a.buffers...)
}

// Len returns the number of registered arguments
func (a *ArgumentRegistry) Len() int {
	return len(a.names)
}
