package passes

import "github.com/zerfoo/xform/ir"

// TransformGlobalConvToFC implements spec §4.3.13 (CPU/non-GPU only): a
// Conv2D whose input feature map spatially matches its filter, with
// effectively no padding, is retyped to FullyConnected and its filter
// constant's dims reshaped to [out, in*H*W]. By this point in the
// pipeline the filter is already OIHW, so the flat buffer needs no data
// permutation, only a dims rewrite.
//
// The source this is modeled on returns no value; per the documented
// decision (SPEC_FULL.md §5) this always reports changed=false and the
// coordinator never retries it.
func TransformGlobalConvToFC(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) (bool, error) {
	if opt.Device == ir.GPU {
		return false, nil
	}

	for _, op := range g.Ops {
		if op.Type != ir.OpConv2D {
			continue
		}

		producer, ok := idx.Producer[op.Inputs[0]]
		if !ok || len(producer.OutputShapes) == 0 {
			continue
		}
		filter, ok := idx.Consts[op.Inputs[1]]
		if !ok {
			continue
		}

		_, inH, inW, _ := ir.FeatureMapDims(producer.OutputShapes[0], op.DataFormat)
		filterH, filterW, inChannels, outChannels, err := ir.FilterDims(filter.Dims, g.FilterFormat())
		if err != nil {
			continue
		}
		if inH != filterH || inW != filterW || !hasZeroPadding(op) {
			continue
		}

		op.Type = ir.OpFullyConnected
		filter.Dims = []int{outChannels, inChannels * filterH * filterW}
	}

	return false, nil
}

func hasZeroPadding(op *ir.Operator) bool {
	if op.IntArg("padding", int64(ir.PaddingUnspecified)) == int64(ir.PaddingValid) {
		return true
	}
	values := op.IntsArg("padding_values")
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if v != 0 {
			return false
		}
	}
	return true
}
