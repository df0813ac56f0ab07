// Package cutedsl generates kernel source for the CuTeDSL (CUTLASS
// Python DSL) backend of the kernel-generation stage. A Template pairs
// placeholder source text with a compiled renderer; Generate turns it
// into a Caller the autotuner can benchmark and the scheduler can invoke
// to splice the winning kernel into the program graph.
package cutedsl

import (
	"bytes"
	"fmt"
	"text/template"

	"k8s.io/klog/v2"

	"github.com/drisspg/cutegen/autotune"
	"github.com/drisspg/cutegen/codegen"
	"github.com/drisspg/cutegen/ir"
)

// CallbackFn renders an optional template fragment (subgraph epilogue,
// mask) into the given buffer
type CallbackFn func(code *codegen.SourceBuffer) error

// Template is a named kernel template. The source is compiled once,
// memoized by its literal text, and rendered once per Generate call.
type Template struct {
	Name   string
	Source string
	Grid   string

	SubgraphFn CallbackFn
	MaskFn     CallbackFn

	category string
	cache    *Cache
	namer    *Namer
	exec     autotune.Executor

	tmpl       *template.Template
	compileErr error
}

// Option configures a Template at construction
type Option func(*Template)

// WithGrid sets the grid-size expression passed through to the harness
func WithGrid(expr string) Option {
	return func(t *Template) { t.Grid = expr }
}

// WithCategory sets the caller category reported in InfoDict
func WithCategory(category string) Option {
	return func(t *Template) { t.category = category }
}

// WithSubgraph attaches an optional fused-subgraph fragment renderer
func WithSubgraph(fn CallbackFn) Option {
	return func(t *Template) { t.SubgraphFn = fn }
}

// WithMask attaches an optional mask fragment renderer
func WithMask(fn CallbackFn) Option {
	return func(t *Template) { t.MaskFn = fn }
}

// WithCache injects a template cache, replacing the process-wide default
func WithCache(c *Cache) Option {
	return func(t *Template) { t.cache = c }
}

// WithNamer injects a naming service, replacing the process-wide default
func WithNamer(n *Namer) Option {
	return func(t *Template) { t.namer = n }
}

// WithExecutor binds the benchmark executor packaged into generated
// benchmark requests
func WithExecutor(e autotune.Executor) Option {
	return func(t *Template) { t.exec = e }
}

// New creates a template and compiles its source through the cache.
// Compile failure is held and surfaced by Generate, never swallowed.
func New(name, source string, opts ...Option) *Template {
	t := &Template{
		Name:     name,
		Source:   source,
		category: "template",
		cache:    DefaultCache(),
		namer:    DefaultNamer(),
	}
	for _, opt := range opts {
		opt(t)
	}

	tmpl, err := t.cache.Get(source)
	if err != nil {
		t.compileErr = err
	} else {
		t.tmpl = tmpl
	}
	return t
}

// Generate renders the template for the given inputs and output layout,
// packages a benchmark request, and returns a Caller. Every call yields
// a globally unique kernel name, even for identical inputs.
func (t *Template) Generate(inputNodes []*ir.Buffer, layout ir.Layout, params map[string]any) (*Caller, error) {
	kernelName := t.namer.Next(t.Name)

	if t.compileErr != nil {
		return nil, fmt.Errorf("template %s failed to compile: %w", t.Name, t.compileErr)
	}

	// Placeholder output node for substitution only; the real output node
	// is created when the winning caller is invoked.
	outputNode := ir.NewBuffer("buf_out", layout)

	code, err := t.render(kernelName, inputNodes, outputNode, params)
	if err != nil {
		return nil, fmt.Errorf("template %s: rendering kernel %s: %w", t.Name, kernelName, err)
	}

	klog.V(2).InfoS("generated CuTeDSL code", "template", t.Name,
		"kernel", kernelName, "source", code)

	bmreq := autotune.NewKernelBenchmarkRequest(
		kernelName,
		ir.MetaFromBuffers(inputNodes),
		ir.MetaFromBuffer(outputNode),
		nil,
		code,
		t.exec,
	)

	renderFn := func() (string, error) {
		return t.render(kernelName, inputNodes, outputNode, params)
	}

	return &Caller{
		Name:       kernelName,
		Category:   t.category,
		InputNodes: inputNodes,
		Layout:     layout,
		Code:       code,
		renderFn:   renderFn,
		bmreq:      bmreq,
		template:   t,
	}, nil
}

// Execute renders the compiled template against an arbitrary context.
// TemplateKernel uses this to render with its own argument bookkeeping.
func (t *Template) Execute(data map[string]any) (string, error) {
	if t.compileErr != nil {
		return "", fmt.Errorf("template %s failed to compile: %w", t.Name, t.compileErr)
	}
	if t.tmpl == nil {
		return "", fmt.Errorf("template %s was not compiled - use New", t.Name)
	}
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// render builds the substitution context and executes the template.
// Reserved keys shadow any colliding extra parameters.
func (t *Template) render(kernelName string, inputNodes []*ir.Buffer, outputNode *ir.Buffer, params map[string]any) (string, error) {
	data := make(map[string]any, len(params)+3)
	for k, v := range params {
		data[k] = v
	}
	data["kernel_name"] = kernelName
	data["input_nodes"] = ir.BufferList(inputNodes)
	data["output_node"] = outputNode
	return t.Execute(data)
}
