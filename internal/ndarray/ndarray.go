// Package ndarray provides the small set of stride-aware, in-place
// float32 buffer operations the constant-folding passes need: scaling a
// flat row-major buffer along one axis, and the depthwise-convolution
// variant where the scale vector's own index order does not match memory
// order. Grounded on the stride/coordinate-decode loop used throughout
// the teacher engine's own CPU tensor ops.
package ndarray

// ScaleAlongAxis multiplies data, laid out row-major under dims, in place
// by scale along axis: the element at multi-index (i0,...,in) is
// multiplied by scale[i_axis]. len(scale) must equal dims[axis].
//
// Used by fold_conv_and_bn to apply a batch-norm scale vector to a
// convolution filter's output-channel axis, regardless of whether that
// axis is outermost (OIHW) or innermost (HWIO) in the filter's layout
// (spec §4.3.5).
func ScaleAlongAxis(data []float32, dims []int, axis int, scale []float32) {
	stride := 1
	for _, d := range dims[axis+1:] {
		stride *= d
	}
	axisLen := dims[axis]
	outer := 1
	for _, d := range dims[:axis] {
		outer *= d
	}

	for o := 0; o < outer; o++ {
		for a := 0; a < axisLen; a++ {
			base := o*axisLen*stride + a*stride
			for s := 0; s < stride; s++ {
				data[base+s] *= scale[a]
			}
		}
	}
}

// ScaleDepthwiseHWIO multiplies a depthwise filter buffer laid out
// row-major as (H, W, I, M) in place, where data[...,i,m] *= scale[i*M+m]
// (spec §4.3.6).
func ScaleDepthwiseHWIO(data []float32, h, w, in, mult int, scale []float32) {
	idx := 0
	for hw := 0; hw < h*w; hw++ {
		for i := 0; i < in; i++ {
			for m := 0; m < mult; m++ {
				data[idx] *= scale[i*mult+m]
				idx++
			}
		}
	}
}

// ScaleDepthwiseOIHW multiplies a depthwise filter buffer laid out
// row-major as (M, I, H, W) in place. The scale vector's index order
// (i*M+m) does not match the buffer's memory order (M outermost, I next),
// so this cannot be expressed as a single ScaleAlongAxis call (spec
// §4.3.6).
func ScaleDepthwiseOIHW(data []float32, mult, in, h, w int, scale []float32) {
	hw := h * w
	for m := 0; m < mult; m++ {
		for i := 0; i < in; i++ {
			base := (m*in + i) * hw
			factor := scale[i*mult+m]
			for s := 0; s < hw; s++ {
				data[base+s] *= factor
			}
		}
	}
}
