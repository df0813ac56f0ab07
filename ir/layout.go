package ir

import (
	"fmt"
	"strings"
)

// Layout describes the shape, strides and element type of one tensor operand.
// Layouts are owned by the host compiler; this module only reads them.
type Layout struct {
	Shape  []int64
	Stride []int64
	Dtype  DataType
	Offset int64
}

// ContiguousLayout builds a row-major layout for the given shape
func ContiguousLayout(dtype DataType, shape ...int64) Layout {
	stride := make([]int64, len(shape))
	acc := int64(1)
	for i := len(shape) - 1; i >= 0; i-- {
		stride[i] = acc
		acc *= shape[i]
	}
	return Layout{
		Shape:  shape,
		Stride: stride,
		Dtype:  dtype,
	}
}

// NumElements returns the logical element count of the layout
func (l Layout) NumElements() int64 {
	n := int64(1)
	for _, s := range l.Shape {
		n *= s
	}
	return n
}

// SizeBytes returns the dense storage size of the layout in bytes
func (l Layout) SizeBytes() int64 {
	return l.NumElements() * l.Dtype.Size()
}

// IsContiguous reports whether the strides describe a dense row-major tensor
func (l Layout) IsContiguous() bool {
	acc := int64(1)
	for i := len(l.Shape) - 1; i >= 0; i-- {
		if l.Stride[i] != acc {
			return false
		}
		acc *= l.Shape[i]
	}
	return true
}

func (l Layout) String() string {
	return fmt.Sprintf("Layout(shape=%s, stride=%s, dtype=%s)",
		formatDims(l.Shape), formatDims(l.Stride), l.Dtype)
}

func formatDims(dims []int64) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Buffer is a named tensor node in the host compiler's graph. The generation
// layer references buffers, it never mutates them.
type Buffer struct {
	Name   string
	Layout Layout
}

func NewBuffer(name string, layout Layout) *Buffer {
	return &Buffer{Name: name, Layout: layout}
}

func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer(%s, %s)", b.Name, b.Layout)
}

// BufferList renders a buffer sequence as readable text when it is
// substituted into a template placeholder
type BufferList []*Buffer

func (l BufferList) String() string {
	parts := make([]string, len(l))
	for i, b := range l {
		parts[i] = b.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// TensorMeta is a flat snapshot of one operand's metadata, the shape the
// autotuning harness consumes when it allocates benchmark tensors.
type TensorMeta struct {
	Name   string
	Shape  []int64
	Stride []int64
	Dtype  DataType
	Offset int64
}

// MetaFromBuffer extracts benchmark metadata from a graph buffer
func MetaFromBuffer(b *Buffer) TensorMeta {
	return TensorMeta{
		Name:   b.Name,
		Shape:  append([]int64(nil), b.Layout.Shape...),
		Stride: append([]int64(nil), b.Layout.Stride...),
		Dtype:  b.Layout.Dtype,
		Offset: b.Layout.Offset,
	}
}

// MetaFromBuffers extracts benchmark metadata from a list of graph buffers
func MetaFromBuffers(buffers []*Buffer) []TensorMeta {
	metas := make([]TensorMeta, len(buffers))
	for i, b := range buffers {
		metas[i] = MetaFromBuffer(b)
	}
	return metas
}

// SizeBytes returns the dense storage size described by the metadata
func (m TensorMeta) SizeBytes() int64 {
	n := int64(1)
	for _, s := range m.Shape {
		n *= s
	}
	return n * m.Dtype.Size()
}
