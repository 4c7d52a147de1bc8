package ir

// PermuteInts returns a new slice holding dims[axes[0]], dims[axes[1]], ...
// It never mutates dims.
func PermuteInts(dims []int, axes []int) []int {
	out := make([]int, len(axes))
	for i, axis := range axes {
		out[i] = dims[axis]
	}
	return out
}

// PermuteIntsInPlace overwrites dims with its permutation under axes. No
// pass calls it; transpose_data_format permutes output shapes with
// PermuteInts and rebuilds Pad's paddings argument itself.
func PermuteIntsInPlace(dims []int, axes []int) {
	copy(dims, PermuteInts(dims, axes))
}

// FeatureMapDims decomposes a 4-D feature-map shape into (batch, height,
// width, channels) regardless of whether it is laid out NHWC or NCHW.
func FeatureMapDims(shape []int, format DataFormat) (batch, height, width, channels int) {
	batch = shape[0]
	if format == NCHW {
		return batch, shape[2], shape[3], shape[1]
	}
	return batch, shape[1], shape[2], shape[3]
}

// FilterDims decomposes a 4-D convolution filter shape into (height, width,
// inChannels, outChannels) regardless of filter_format.
func FilterDims(shape []int, format FilterFormat) (height, width, inChannels, outChannels int, err error) {
	switch format {
	case HWIO:
		return shape[0], shape[1], shape[2], shape[3], nil
	case OIHW:
		return shape[2], shape[3], shape[1], shape[0], nil
	case HWOI:
		return shape[0], shape[1], shape[3], shape[2], nil
	default:
		return 0, 0, 0, 0, ErrUnsupportedFilterFormat
	}
}

// PermuteData reorders a flat row-major buffer of the given shape under
// axes, returning the permuted data and its new shape. It is the
// general-purpose ndarray transpose: given linear index i into data, it
// decodes i's coordinates under shape's row-major strides, permutes the
// coordinates under axes, and re-encodes them under the permuted shape's
// strides. Used by transform_gpu_winograd and transpose_filters for filter
// constants, mirroring compute/cpu_engine.go's engine-level Transpose.
func PermuteData(data []float32, shape []int, axes []int) ([]float32, []int) {
	newShape := PermuteInts(shape, axes)

	strides := rowMajorStrides(shape)
	newStrides := rowMajorStrides(newShape)

	out := make([]float32, len(data))
	coords := make([]int, len(shape))
	for i, v := range data {
		rem := i
		for d, s := range strides {
			coords[d] = rem / s
			rem %= s
		}

		newIdx := 0
		for d, axis := range axes {
			newIdx += coords[axis] * newStrides[d]
		}
		out[newIdx] = v
	}

	return out, newShape
}

func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	return strides
}
