package autotune

import (
	"fmt"

	"github.com/drisspg/cutegen/ir"
)

// BenchmarkRequest is one unit of timing work: compile the held kernel
// source and measure its latency. Execution and lifetime belong to the
// benchmarking harness, not the generation layer.
type BenchmarkRequest interface {
	KernelName() string
	// Benchmark returns the measured latency in milliseconds. Harness
	// failures (compile error, hardware unavailable, kernel crash)
	// propagate verbatim.
	Benchmark(out *ir.Buffer, args ...any) (float64, error)
}

// Executor compiles and times generated kernel source on real hardware
type Executor interface {
	Execute(req *KernelBenchmarkRequest, out *ir.Buffer, args ...any) (float64, error)
}

// KernelBenchmarkRequest bundles generated source with the tensor
// metadata the harness needs to allocate benchmark operands.
type KernelBenchmarkRequest struct {
	Kernel     string
	InputMeta  []ir.TensorMeta
	OutputMeta ir.TensorMeta
	ExtraArgs  []any
	Source     string

	exec Executor
}

// NewKernelBenchmarkRequest creates a request bound to an executor
func NewKernelBenchmarkRequest(
	kernel string,
	inputMeta []ir.TensorMeta,
	outputMeta ir.TensorMeta,
	extraArgs []any,
	source string,
	exec Executor,
) *KernelBenchmarkRequest {
	return &KernelBenchmarkRequest{
		Kernel:     kernel,
		InputMeta:  inputMeta,
		OutputMeta: outputMeta,
		ExtraArgs:  extraArgs,
		Source:     source,
		exec:       exec,
	}
}

// KernelName returns the globally unique name of the generated kernel
func (r *KernelBenchmarkRequest) KernelName() string {
	return r.Kernel
}

// Benchmark delegates to the bound executor
func (r *KernelBenchmarkRequest) Benchmark(out *ir.Buffer, args ...any) (float64, error) {
	if r.exec == nil {
		return 0, fmt.Errorf("benchmark request %s: no executor bound", r.Kernel)
	}
	return r.exec.Execute(r, out, args...)
}

func (r *KernelBenchmarkRequest) String() string {
	return fmt.Sprintf("KernelBenchmarkRequest(%s, inputs=%d)", r.Kernel, len(r.InputMeta))
}
