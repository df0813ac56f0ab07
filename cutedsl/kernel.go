package cutedsl

import (
	"fmt"

	"github.com/drisspg/cutegen/codegen"
	"github.com/drisspg/cutegen/ir"
)

// TemplateKernel handles argument bookkeeping and rendering for one
// template-driven kernel instance. Unlike the hand-written family in
// package codegen, the body comes entirely from template substitution.
type TemplateKernel struct {
	KernelName string
	InputNodes []*ir.Buffer
	OutputNode *ir.Buffer

	SubgraphFn CallbackFn
	MaskFn     CallbackFn

	Args *codegen.ArgumentRegistry
}

// NewTemplateKernel creates a kernel instance for a synthesized name
func NewTemplateKernel(kernelName string, inputNodes []*ir.Buffer, outputNode *ir.Buffer) *TemplateKernel {
	return &TemplateKernel{
		KernelName: kernelName,
		InputNodes: inputNodes,
		OutputNode: outputNode,
		Args:       codegen.NewArgumentRegistry(),
	}
}

// AddInputArg registers an input tensor argument
func (k *TemplateKernel) AddInputArg(name string, tensor *ir.Buffer) error {
	return k.Args.Add(name, tensor)
}

// AddOutputArg registers an output tensor argument
func (k *TemplateKernel) AddOutputArg(name string, tensor *ir.Buffer) error {
	return k.Args.Add(name, tensor)
}

// CallArgs returns the ordered argument names for the kernel call site
func (k *TemplateKernel) CallArgs() []string {
	return k.Args.Names()
}

// Render renders the kernel through the given template. Optional
// subgraph and mask fragments are rendered first and exposed to the
// template as plain text under "subgraph_fn" and "mask_fn".
func (k *TemplateKernel) Render(t *Template, params map[string]any) (string, error) {
	subgraph, err := renderCallback(k.SubgraphFn)
	if err != nil {
		return "", fmt.Errorf("kernel %s: rendering subgraph: %w", k.KernelName, err)
	}
	mask, err := renderCallback(k.MaskFn)
	if err != nil {
		return "", fmt.Errorf("kernel %s: rendering mask: %w", k.KernelName, err)
	}

	data := make(map[string]any, len(params)+6)
	for key, v := range params {
		data[key] = v
	}
	data["kernel_name"] = k.KernelName
	data["input_nodes"] = ir.BufferList(k.InputNodes)
	data["output_node"] = k.OutputNode
	data["call_args"] = k.CallArgs()
	data["subgraph_fn"] = subgraph
	data["mask_fn"] = mask

	return t.Execute(data)
}

func renderCallback(fn CallbackFn) (string, error) {
	if fn == nil {
		return "", nil
	}
	code := &codegen.SourceBuffer{}
	if err := fn(code); err != nil {
		return "", err
	}
	return code.String(), nil
}
