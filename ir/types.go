package ir

// DataType represents the element type of a tensor operand
type DataType int

const (
	Float16 DataType = iota + 1
	BFloat16
	Float32
	Float64
	Int32
	Int64
)

// Size returns the size in bytes of one element of the data type
func (dt DataType) Size() int64 {
	switch dt {
	case Float16, BFloat16:
		return 2
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	default:
		return 8
	}
}

// String returns the host-framework dtype spelling used inside generated
// kernel source ("torch.float32" etc.)
func (dt DataType) String() string {
	switch dt {
	case Float16:
		return "torch.float16"
	case BFloat16:
		return "torch.bfloat16"
	case Float32:
		return "torch.float32"
	case Float64:
		return "torch.float64"
	case Int32:
		return "torch.int32"
	case Int64:
		return "torch.int64"
	default:
		return "torch.float32"
	}
}
