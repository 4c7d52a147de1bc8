package ir

// Tensor is a constant tensor in the graph's tensor table: a dimensioned,
// named flat buffer of float32 weights. Operators reference constants by
// name from their Inputs list, exactly as they reference another
// operator's output.
type Tensor struct {
	Name  string
	Dims  []int
	Data  []float32
	DType DataType
}

// Size returns the number of elements Dims describes.
func (t *Tensor) Size() int {
	n := 1
	for _, d := range t.Dims {
		n *= d
	}
	return n
}
