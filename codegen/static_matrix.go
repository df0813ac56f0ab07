package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/drisspg/cutegen/ir"
	"gonum.org/v1/gonum/mat"
)

// LinesBody is the simplest kernel family member: a fixed body emitted
// line by line. Useful for hand-written kernels and tests.
type LinesBody struct {
	Lines []string
}

func (b *LinesBody) GenerateKernelCode(code *SourceBuffer, params map[string]any) error {
	code.WriteLines(b.Lines...)
	return nil
}

// StaticMatrixBody embeds constant matrices into the generated kernel
// before delegating to an inner body generator. Matrices are written in
// column-major order so generated code indexes them the same way the
// device-side numerical libraries do.
type StaticMatrixBody struct {
	Matrices map[string]mat.Matrix
	Dtype    ir.DataType
	Inner    BodyGenerator
}

func (b *StaticMatrixBody) GenerateKernelCode(code *SourceBuffer, params map[string]any) error {
	if b.Inner == nil {
		return fmt.Errorf("static matrix body: inner generator is required")
	}

	// Deterministic emission order
	names := make([]string, 0, len(b.Matrices))
	for name := range b.Matrices {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b.writeMatrix(code, name, b.Matrices[name])
	}
	if len(names) > 0 {
		code.WriteLine("")
	}

	return b.Inner.GenerateKernelCode(code, params)
}

// writeMatrix formats one matrix as a Python constant. The matrix is
// transposed during emission to convert Go's row-major mat.Matrix into
// column-major nested lists.
func (b *StaticMatrixBody) writeMatrix(code *SourceBuffer, name string, m mat.Matrix) {
	rows, cols := m.Dims()

	code.WriteLine(fmt.Sprintf("# Matrix %s stored in column-major format", name))
	code.WriteLine(fmt.Sprintf("%s = [", name))
	code.Indent()
	for j := 0; j < cols; j++ {
		values := make([]string, rows)
		for i := 0; i < rows; i++ {
			values[i] = b.formatValue(m.At(i, j))
		}
		line := "[" + strings.Join(values, ", ") + "]"
		if j < cols-1 {
			line += ","
		}
		code.WriteLine(line)
	}
	code.Unindent()
	code.WriteLine("]")
}

func (b *StaticMatrixBody) formatValue(v float64) string {
	if b.Dtype == ir.Float32 || b.Dtype == ir.Float16 || b.Dtype == ir.BFloat16 {
		return fmt.Sprintf("%.7e", v)
	}
	return fmt.Sprintf("%.15e", v)
}
