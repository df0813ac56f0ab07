package cutedsl

import (
	"fmt"

	"github.com/drisspg/cutegen/autotune"
	"github.com/drisspg/cutegen/ir"
)

// Caller is the unit Generate hands to the autotuner: it can be
// benchmarked, inspected for telemetry, and - if it wins - invoked to
// splice the kernel into the program graph. Callers are immutable after
// construction.
type Caller struct {
	Name       string
	Category   string
	InputNodes []*ir.Buffer
	Layout     ir.Layout
	Code       string

	renderFn ir.RenderFunc
	bmreq    autotune.BenchmarkRequest
	template *Template
}

// NewCaller constructs a caller directly. Generate is the usual path;
// this exists for host backends that build benchmark requests themselves.
func NewCaller(
	name, category string,
	inputNodes []*ir.Buffer,
	layout ir.Layout,
	code string,
	renderFn ir.RenderFunc,
	bmreq autotune.BenchmarkRequest,
	template *Template,
) *Caller {
	return &Caller{
		Name:       name,
		Category:   category,
		InputNodes: inputNodes,
		Layout:     layout,
		Code:       code,
		renderFn:   renderFn,
		bmreq:      bmreq,
		template:   template,
	}
}

func (c *Caller) String() string {
	return fmt.Sprintf("TemplateCaller(%s, %s)", c.Name, c.Category)
}

// Benchmark delegates to the held benchmark request and returns the
// measured latency in milliseconds. Harness failures propagate to the
// autotuning loop, which demotes the candidate.
func (c *Caller) Benchmark(out *ir.Buffer, args ...any) (float64, error) {
	if c.bmreq == nil {
		return 0, fmt.Errorf("caller %s has no benchmark request", c.Name)
	}
	return c.bmreq.Benchmark(out, args...)
}

// Request exposes the underlying benchmark request
func (c *Caller) Request() autotune.BenchmarkRequest {
	return c.bmreq
}

// Call builds the deferred output node for the given graph inputs. The
// node carries the render callback, not pre-rendered text: scheduling
// may still change before the host decides to materialize it.
func (c *Caller) Call(inputNodes []*ir.Buffer) *ir.TemplateBuffer {
	return ir.NewTemplateBuffer(c.Name, c.Layout, inputNodes, c.renderFn)
}

// InfoDict returns flat metadata for logging and telemetry. It never
// fails for a validly constructed caller; optional callbacks are
// reported as presence booleans.
func (c *Caller) InfoDict() map[string]any {
	templateName := c.Name
	hasSubgraph := false
	hasMask := false
	if c.template != nil {
		templateName = c.template.Name
		hasSubgraph = c.template.SubgraphFn != nil
		hasMask = c.template.MaskFn != nil
	}
	return map[string]any{
		"name":         c.Name,
		"category":     c.Category,
		"backend":      "CuTeDSL",
		"kernel_name":  templateName,
		"has_subgraph": hasSubgraph,
		"has_mask":     hasMask,
	}
}
