package passes

import "github.com/zerfoo/xform/ir"

// TransposeFilters implements spec §4.3.11. Any filter a Winograd
// expansion already transposed to OIHW is no longer attached to a
// Conv2D/Deconv2D/DepthwiseConv2d op (its consumer is now a MatMul), so
// scanning by op type alone already skips it without extra bookkeeping.
// Single sweep, always reports changed=false.
func TransposeFilters(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) (bool, error) {
	if opt.Device == ir.GPU {
		transposeFiltersGPU(g, idx)
		g.SetFilterFormat(ir.HWOI)
		return false, nil
	}

	transposeFiltersCPU(g, idx)
	g.SetFilterFormat(ir.OIHW)
	return false, nil
}

func transposeFiltersCPU(g *ir.Graph, idx *ir.Index) {
	if g.FilterFormat() != ir.HWIO {
		return
	}
	for _, op := range g.Ops {
		if !isFilterConvOp(op.Type) {
			continue
		}
		if filter, ok := idx.Consts[op.Inputs[1]]; ok {
			filter.Data, filter.Dims = ir.PermuteData(filter.Data, filter.Dims, []int{3, 2, 0, 1})
		}
	}
}

func transposeFiltersGPU(g *ir.Graph, idx *ir.Index) {
	current := g.FilterFormat()

	for _, op := range g.Ops {
		var axes []int
		switch {
		case op.Type == ir.OpFullyConnected && len(op.Inputs) > 1:
			transposeFullyConnectedWeight(idx, op)
			continue
		case current == ir.HWIO && (op.Type == ir.OpConv2D || op.Type == ir.OpDeconv2D):
			axes = []int{0, 1, 3, 2}
		case current == ir.OIHW && (op.Type == ir.OpConv2D || op.Type == ir.OpDeconv2D):
			axes = []int{2, 3, 0, 1}
		case current == ir.OIHW && op.Type == ir.OpDepthwiseConv2d:
			axes = []int{2, 3, 1, 0}
		default:
			continue
		}

		if len(op.Inputs) < 2 {
			continue
		}
		if filter, ok := idx.Consts[op.Inputs[1]]; ok {
			filter.Data, filter.Dims = ir.PermuteData(filter.Data, filter.Dims, axes)
		}
	}
}

func transposeFullyConnectedWeight(idx *ir.Index, op *ir.Operator) {
	weight, ok := idx.Consts[op.Inputs[1]]
	if !ok {
		return
	}
	producer, ok := idx.Producer[op.Inputs[0]]
	if !ok || len(producer.OutputShapes) == 0 {
		return
	}

	_, h, w, c := ir.FeatureMapDims(producer.OutputShapes[0], producer.DataFormat)
	outFeatures := weight.Size() / (h * w * c)

	weight.Dims = []int{outFeatures, c, h, w}
	weight.Data, weight.Dims = ir.PermuteData(weight.Data, weight.Dims, []int{0, 2, 3, 1})
}

func isFilterConvOp(t ir.OpType) bool {
	return t == ir.OpConv2D || t == ir.OpDeconv2D || t == ir.OpDepthwiseConv2d
}
