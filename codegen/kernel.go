package codegen

import (
	"fmt"

	"github.com/drisspg/cutegen/ir"
)

// kernelHeader is the import boilerplate every generated CuTeDSL kernel
// needs. Identical for all kernel families.
const kernelHeader = `import torch
import cutlass
import cutlass.cute as cute
from cutlass.cute.runtime import from_dlpack
from typing import Optional
`

// BodyGenerator is the capability every concrete kernel family must
// supply: append the kernel-specific body into code. The generator only
// appends text, it never returns source directly.
type BodyGenerator interface {
	GenerateKernelCode(code *SourceBuffer, params map[string]any) error
}

// Kernel is the base of the hand-written kernel family. It pairs fixed
// header boilerplate with a family-specific body generator.
type Kernel struct {
	KernelName string
	InputNodes []*ir.Buffer
	OutputNode *ir.Buffer
	Args       *ArgumentRegistry
	body       BodyGenerator
}

// NewKernel creates a kernel instance. A missing body generator is a
// construction error, not a silent no-op at render time.
func NewKernel(kernelName string, inputNodes []*ir.Buffer, outputNode *ir.Buffer, body BodyGenerator) (*Kernel, error) {
	if body == nil {
		return nil, fmt.Errorf("kernel %s: body generator is required", kernelName)
	}
	return &Kernel{
		KernelName: kernelName,
		InputNodes: inputNodes,
		OutputNode: outputNode,
		Args:       NewArgumentRegistry(),
		body:       body,
	}, nil
}

// Header returns the fixed import boilerplate
func (k *Kernel) Header() string {
	return kernelHeader
}

// Render composes the complete kernel source: header, blank line, then
// the body produced by the concrete family.
func (k *Kernel) Render(params map[string]any) (string, error) {
	code := &SourceBuffer{}
	code.Splice(k.Header())
	code.WriteLine("")
	if err := k.body.GenerateKernelCode(code, params); err != nil {
		return "", fmt.Errorf("kernel %s: generating body: %w", k.KernelName, err)
	}
	return code.String(), nil
}
