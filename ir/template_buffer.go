package ir

import (
	"fmt"
	"sync"
)

// BufferState tracks the two-phase lifecycle of a deferred-codegen buffer
type BufferState int

const (
	// Planned means the buffer holds a render callback that has not run yet
	Planned BufferState = iota
	// Materialized means the callback has run and the source text is final
	Materialized
)

func (s BufferState) String() string {
	switch s {
	case Planned:
		return "Planned"
	case Materialized:
		return "Materialized"
	default:
		return fmt.Sprintf("BufferState(%d)", int(s))
	}
}

// RenderFunc produces final kernel source when the scheduler decides to
// materialize the buffer. Rendering is deliberately late-bound: graph
// rewrites may still change scheduling after candidate selection.
type RenderFunc func() (string, error)

// TemplateBuffer is the output node a winning template caller splices into
// the program graph. It carries the declared inputs and a render callback
// instead of pre-rendered text.
type TemplateBuffer struct {
	Buffer
	Inputs []*Buffer

	mu     sync.Mutex
	render RenderFunc
	state  BufferState
	source string
}

// NewTemplateBuffer creates a deferred buffer in the Planned state
func NewTemplateBuffer(name string, layout Layout, inputs []*Buffer, render RenderFunc) *TemplateBuffer {
	return &TemplateBuffer{
		Buffer: Buffer{Name: name, Layout: layout},
		Inputs: append([]*Buffer(nil), inputs...),
		render: render,
		state:  Planned,
	}
}

// State returns the current lifecycle state
func (tb *TemplateBuffer) State() BufferState {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.state
}

// Materialize invokes the render callback and pins the resulting source.
// Subsequent calls return the pinned source without re-rendering.
func (tb *TemplateBuffer) Materialize() (string, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if tb.state == Materialized {
		return tb.source, nil
	}
	if tb.render == nil {
		return "", fmt.Errorf("template buffer %s has no render callback", tb.Name)
	}

	source, err := tb.render()
	if err != nil {
		return "", fmt.Errorf("materializing buffer %s: %w", tb.Name, err)
	}
	tb.source = source
	tb.state = Materialized
	return source, nil
}
