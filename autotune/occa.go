package autotune

import (
	"fmt"
	"time"

	"github.com/notargets/gocca"
	"k8s.io/klog/v2"

	"github.com/drisspg/cutegen/ir"
)

// OCCAExecutor compiles and times kernel source on an OCCA device. It
// serves template families whose rendered source is OKL or CUDA C; the
// Python CuTeDSL families are executed by the host framework's own
// harness instead.
type OCCAExecutor struct {
	Device     *gocca.OCCADevice
	Warmup     int
	Iterations int
}

// NewOCCAExecutor creates an executor with default warmup/iteration counts
func NewOCCAExecutor(device *gocca.OCCADevice) *OCCAExecutor {
	return &OCCAExecutor{
		Device:     device,
		Warmup:     3,
		Iterations: 10,
	}
}

// Execute builds the kernel from source, allocates device operands from
// the request's tensor metadata, and returns the average latency in
// milliseconds over the configured iterations.
func (e *OCCAExecutor) Execute(req *KernelBenchmarkRequest, out *ir.Buffer, args ...any) (float64, error) {
	if e.Device == nil {
		return 0, fmt.Errorf("occa executor: no device")
	}

	kernel, err := e.buildKernel(req.Source, req.Kernel)
	if err != nil {
		return 0, fmt.Errorf("failed to build kernel %s: %w", req.Kernel, err)
	}
	defer kernel.Free()

	// Allocate operands: inputs in request order, then the output
	var mems []*gocca.OCCAMemory
	defer func() {
		for _, mem := range mems {
			mem.Free()
		}
	}()

	kernelArgs := make([]any, 0, len(req.InputMeta)+1+len(req.ExtraArgs)+len(args))
	for _, meta := range req.InputMeta {
		mem := e.Device.Malloc(meta.SizeBytes(), nil, nil)
		mems = append(mems, mem)
		kernelArgs = append(kernelArgs, mem)
	}

	outMeta := req.OutputMeta
	if out != nil {
		outMeta = ir.MetaFromBuffer(out)
	}
	outMem := e.Device.Malloc(outMeta.SizeBytes(), nil, nil)
	mems = append(mems, outMem)
	kernelArgs = append(kernelArgs, outMem)

	kernelArgs = append(kernelArgs, req.ExtraArgs...)
	kernelArgs = append(kernelArgs, args...)

	for i := 0; i < e.Warmup; i++ {
		if err := kernel.RunWithArgs(kernelArgs...); err != nil {
			return 0, fmt.Errorf("kernel %s warmup failed: %w", req.Kernel, err)
		}
	}
	e.Device.Finish()

	iterations := e.Iterations
	if iterations < 1 {
		iterations = 1
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		if err := kernel.RunWithArgs(kernelArgs...); err != nil {
			return 0, fmt.Errorf("kernel %s execution failed: %w", req.Kernel, err)
		}
	}
	e.Device.Finish()
	elapsed := time.Since(start)

	avgMS := elapsed.Seconds() * 1e3 / float64(iterations)
	klog.V(2).InfoS("benchmarked kernel", "kernel", req.Kernel,
		"iterations", iterations, "avgMS", avgMS)
	return avgMS, nil
}

// buildKernel compiles source on the device, working around the OCCA
// OpenMP mode not getting a default -O3 flag.
func (e *OCCAExecutor) buildKernel(source, kernelName string) (*gocca.OCCAKernel, error) {
	if e.Device.Mode() == "OpenMP" {
		props := gocca.JsonParse(`{"compiler_flags": "-O3"}`)
		defer props.Free()
		return e.Device.BuildKernelFromString(source, kernelName, props)
	}
	return e.Device.BuildKernelFromString(source, kernelName, nil)
}
