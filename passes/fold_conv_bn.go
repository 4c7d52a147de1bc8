package passes

import (
	"github.com/zerfoo/xform/internal/ndarray"
	"github.com/zerfoo/xform/ir"
)

// FoldConvAndBN implements spec §4.3.5: a Conv2D/Deconv2D whose sole
// consumer is a FoldedBatchNorm has its filter constant scaled in place
// along the output-channel axis, is left in place as the data producer,
// and the FoldedBatchNorm is demoted to a BiasAdd carrying the offset.
func FoldConvAndBN(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) (bool, error) {
	for _, op := range g.Ops {
		if op.Type != ir.OpConv2D && op.Type != ir.OpDeconv2D {
			continue
		}

		bn, ok := idx.SoleConsumer(op.Outputs[0])
		if !ok || bn.Type != ir.OpFoldedBatchNorm {
			continue
		}

		filter := idx.Consts[op.Inputs[1]]
		scaleName := bn.Inputs[1]
		scale := idx.Consts[scaleName]

		axis, err := scaleAxis(g.FilterFormat())
		if err != nil {
			return false, err
		}
		ndarray.ScaleAlongAxis(filter.Data, filter.Dims, axis, scale.Data)

		offset := bn.Inputs[2]
		bn.Type = ir.OpBiasAdd
		bn.Inputs = []string{bn.Inputs[0], offset}

		delete(g.Consts, scaleName)
		return true, nil
	}

	return false, nil
}

// scaleAxis returns the output-channel axis index for the current global
// filter_format: innermost (3) for HWIO, outermost (0) for OIHW. Any
// other format fails the fold (spec §4.3.5).
func scaleAxis(format ir.FilterFormat) (int, error) {
	switch format {
	case ir.HWIO:
		return 3, nil
	case ir.OIHW:
		return 0, nil
	default:
		return 0, ir.ErrUnsupportedFilterFormat
	}
}
