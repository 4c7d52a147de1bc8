package passes

import (
	"github.com/zerfoo/xform/internal/ndarray"
	"github.com/zerfoo/xform/ir"
)

// FoldDepthwiseConvAndBN is the DepthwiseConv2d counterpart of
// FoldConvAndBN (spec §4.3.6): the scale vector is indexed per
// (in-channel, multiplier) pair rather than by a single output-channel
// axis, so the filter scaling goes through the dedicated depthwise helpers
// in internal/ndarray instead of the generic axis scale.
func FoldDepthwiseConvAndBN(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) (bool, error) {
	for _, op := range g.Ops {
		if op.Type != ir.OpDepthwiseConv2d {
			continue
		}

		bn, ok := idx.SoleConsumer(op.Outputs[0])
		if !ok || bn.Type != ir.OpFoldedBatchNorm {
			continue
		}

		filter := idx.Consts[op.Inputs[1]]
		scaleName := bn.Inputs[1]
		scale := idx.Consts[scaleName]

		switch g.FilterFormat() {
		case ir.HWIO:
			h, w, in, mult := filter.Dims[0], filter.Dims[1], filter.Dims[2], filter.Dims[3]
			ndarray.ScaleDepthwiseHWIO(filter.Data, h, w, in, mult, scale.Data)
		case ir.OIHW:
			mult, in, h, w := filter.Dims[0], filter.Dims[1], filter.Dims[2], filter.Dims[3]
			ndarray.ScaleDepthwiseOIHW(filter.Data, mult, in, h, w, scale.Data)
		default:
			return false, ir.ErrUnsupportedFilterFormat
		}

		offset := bn.Inputs[2]
		bn.Type = ir.OpBiasAdd
		bn.Inputs = []string{bn.Inputs[0], offset}

		delete(g.Consts, scaleName)
		return true, nil
	}

	return false, nil
}
