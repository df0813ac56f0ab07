package cutedsl

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drisspg/cutegen/codegen"
	"github.com/drisspg/cutegen/ir"
)

// stubRequest returns a fixed duration, or a fixed error
type stubRequest struct {
	name     string
	duration float64
	err      error
	calls    int
}

func (s *stubRequest) KernelName() string { return s.name }

func (s *stubRequest) Benchmark(out *ir.Buffer, args ...any) (float64, error) {
	s.calls++
	return s.duration, s.err
}

func TestCaller_BenchmarkDelegation(t *testing.T) {
	stub := &stubRequest{name: "cutedsl_mm_0", duration: 0.125}
	caller := NewCaller("cutedsl_mm_0", "gemm", nil, testLayout(), "code", nil, stub, nil)

	out := ir.NewBuffer("out", testLayout())
	ms, err := caller.Benchmark(out)
	assert.NoError(t, err)
	assert.Equal(t, 0.125, ms, "stub duration must be returned unmodified")
	assert.Equal(t, 1, stub.calls)
}

func TestCaller_BenchmarkErrorPropagates(t *testing.T) {
	stub := &stubRequest{name: "cutedsl_mm_1", err: fmt.Errorf("nvcc exploded")}
	caller := NewCaller("cutedsl_mm_1", "gemm", nil, testLayout(), "code", nil, stub, nil)

	_, err := caller.Benchmark(nil)
	assert.ErrorContains(t, err, "nvcc exploded",
		"harness failures must propagate untranslated")
}

func TestCaller_BenchmarkWithoutRequest(t *testing.T) {
	caller := NewCaller("cutedsl_mm_2", "gemm", nil, testLayout(), "code", nil, nil, nil)
	_, err := caller.Benchmark(nil)
	assert.Error(t, err)
}

func TestCaller_InfoDict(t *testing.T) {
	tmpl := New("flash", "{{.kernel_name}}",
		WithCache(NewCache()), WithNamer(&Namer{}),
		WithCategory("attention"))

	caller, err := tmpl.Generate([]*ir.Buffer{testInput()}, testLayout(), nil)
	assert.NoError(t, err)

	info := caller.InfoDict()
	for _, key := range []string{"name", "category", "kernel_name", "has_subgraph", "has_mask"} {
		assert.Contains(t, info, key)
	}
	assert.Equal(t, caller.Name, info["name"])
	assert.Equal(t, "attention", info["category"])
	assert.Equal(t, "flash", info["kernel_name"])
	assert.Equal(t, false, info["has_subgraph"])
	assert.Equal(t, false, info["has_mask"])
}

func TestCaller_InfoDictWithCallbacks(t *testing.T) {
	tmpl := New("masked", "{{.kernel_name}}",
		WithCache(NewCache()), WithNamer(&Namer{}),
		WithSubgraph(func(code *codegen.SourceBuffer) error { return nil }),
		WithMask(func(code *codegen.SourceBuffer) error { return nil }))

	caller, err := tmpl.Generate([]*ir.Buffer{testInput()}, testLayout(), nil)
	assert.NoError(t, err)

	info := caller.InfoDict()
	assert.Equal(t, true, info["has_subgraph"])
	assert.Equal(t, true, info["has_mask"])
}

func TestCaller_InfoDictNeverFails(t *testing.T) {
	// Minimal caller with no template and no request still reports
	caller := NewCaller("k", "", nil, ir.Layout{}, "", nil, nil, nil)
	info := caller.InfoDict()
	assert.Equal(t, "k", info["name"])
	assert.Equal(t, "k", info["kernel_name"])
	assert.Equal(t, false, info["has_subgraph"])
	assert.Equal(t, false, info["has_mask"])
}

func TestCaller_CallBuildsDeferredNode(t *testing.T) {
	tmpl := New("pointwise", "kernel {{.kernel_name}}",
		WithCache(NewCache()), WithNamer(&Namer{}))
	in := testInput()

	caller, err := tmpl.Generate([]*ir.Buffer{in}, testLayout(), nil)
	assert.NoError(t, err)

	graphInput := ir.NewBuffer("scheduled_in", testLayout())
	node := caller.Call([]*ir.Buffer{graphInput})

	assert.Equal(t, ir.Planned, node.State(), "node must defer codegen")
	assert.Equal(t, caller.Name, node.Name)
	assert.Equal(t, []*ir.Buffer{graphInput}, node.Inputs)

	source, err := node.Materialize()
	assert.NoError(t, err)
	assert.Equal(t, caller.Code, source,
		"late render must match the code rendered at generate time")
	assert.Equal(t, ir.Materialized, node.State())
}

func TestCaller_String(t *testing.T) {
	caller := NewCaller("cutedsl_mm_9", "gemm", nil, ir.Layout{}, "", nil, nil, nil)
	assert.Equal(t, "TemplateCaller(cutedsl_mm_9, gemm)", caller.String())
}
