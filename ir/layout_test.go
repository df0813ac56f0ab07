package ir

import (
	"strings"
	"testing"
)

func TestContiguousLayout(t *testing.T) {
	testCases := []struct {
		name           string
		shape          []int64
		expectedStride []int64
		expectedElems  int64
	}{
		{"vector", []int64{8}, []int64{1}, 8},
		{"matrix", []int64{4, 8}, []int64{8, 1}, 32},
		{"batched", []int64{2, 3, 5}, []int64{15, 5, 1}, 30},
		{"scalarish", []int64{1}, []int64{1}, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := ContiguousLayout(Float32, tc.shape...)
			if len(l.Stride) != len(tc.expectedStride) {
				t.Fatalf("Expected %d strides, got %d", len(tc.expectedStride), len(l.Stride))
			}
			for i, s := range tc.expectedStride {
				if l.Stride[i] != s {
					t.Errorf("Stride[%d]: expected %d, got %d", i, s, l.Stride[i])
				}
			}
			if l.NumElements() != tc.expectedElems {
				t.Errorf("Expected %d elements, got %d", tc.expectedElems, l.NumElements())
			}
			if !l.IsContiguous() {
				t.Error("ContiguousLayout should report contiguous")
			}
		})
	}
}

func TestLayout_NonContiguous(t *testing.T) {
	// Column-major strides for a 4x8 matrix
	l := Layout{
		Shape:  []int64{4, 8},
		Stride: []int64{1, 4},
		Dtype:  Float64,
	}
	if l.IsContiguous() {
		t.Error("Column-major layout should not report contiguous")
	}
	if l.SizeBytes() != 32*8 {
		t.Errorf("Expected %d bytes, got %d", 32*8, l.SizeBytes())
	}
}

func TestDataType_Sizes(t *testing.T) {
	testCases := []struct {
		dtype DataType
		size  int64
	}{
		{Float16, 2},
		{BFloat16, 2},
		{Float32, 4},
		{Int32, 4},
		{Float64, 8},
		{Int64, 8},
	}
	for _, tc := range testCases {
		if tc.dtype.Size() != tc.size {
			t.Errorf("%s: expected size %d, got %d", tc.dtype, tc.size, tc.dtype.Size())
		}
	}
}

func TestMetaFromBuffers(t *testing.T) {
	a := NewBuffer("a", ContiguousLayout(Float32, 16, 32))
	b := NewBuffer("b", ContiguousLayout(Float64, 8))

	metas := MetaFromBuffers([]*Buffer{a, b})
	if len(metas) != 2 {
		t.Fatalf("Expected 2 metas, got %d", len(metas))
	}
	if metas[0].Name != "a" || metas[1].Name != "b" {
		t.Errorf("Meta names out of order: %s, %s", metas[0].Name, metas[1].Name)
	}
	if metas[0].SizeBytes() != 16*32*4 {
		t.Errorf("Expected %d bytes, got %d", 16*32*4, metas[0].SizeBytes())
	}

	// Metas hold copies, not aliases
	metas[0].Shape[0] = 999
	if a.Layout.Shape[0] != 16 {
		t.Error("MetaFromBuffer aliased the buffer's shape slice")
	}
}

func TestBufferList_String(t *testing.T) {
	list := BufferList{
		NewBuffer("x", ContiguousLayout(Float32, 4)),
		NewBuffer("y", ContiguousLayout(Float32, 4)),
	}
	s := list.String()
	if !strings.Contains(s, "Buffer(x") || !strings.Contains(s, "Buffer(y") {
		t.Errorf("BufferList string missing buffer names: %s", s)
	}
}
