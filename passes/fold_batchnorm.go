package passes

import "github.com/zerfoo/xform/ir"

// FoldBatchNorm implements spec §4.3.4: a PROD-Eltwise scaling by a
// constant, feeding a sole SUM-Eltwise or BiasAdd offset, is recognized as
// a batch-norm pattern and collapsed into a single FoldedBatchNorm op
// carrying (x, scale, offset). The PROD op is deleted; the scale and
// offset constants are left in the tensor table for fold_conv_and_bn (or
// its depthwise sibling) to absorb.
//
// The guard here only checks the PROD's own consumer count and
// output-node status, not the SUM/BiasAdd consumer's — this asymmetry is
// intentional (see DESIGN.md).
func FoldBatchNorm(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) (bool, error) {
	for _, op := range g.Ops {
		if op.Type != ir.OpEltwise || ir.EltwiseType(op.IntArg("element_type", 0)) != ir.EltwiseProd {
			continue
		}
		if len(op.Inputs) != 2 {
			continue
		}
		if _, isConst := idx.Consts[op.Inputs[1]]; !isConst {
			continue
		}
		if idx.ConsumerCount(op.Outputs[0]) != 1 || ir.IsOutputNode(opt, op) {
			continue
		}

		consumer, _ := idx.SoleConsumer(op.Outputs[0])
		if !isBatchNormConsumer(idx, consumer) {
			continue
		}

		offset := consumer.Inputs[1]
		consumer.Type = ir.OpFoldedBatchNorm
		consumer.Inputs = []string{op.Inputs[0], op.Inputs[1], offset}

		g.RemoveOp(op)
		return true, nil
	}

	return false, nil
}

func isBatchNormConsumer(idx *ir.Index, op *ir.Operator) bool {
	if len(op.Inputs) != 2 {
		return false
	}
	t, isConst := idx.Consts[op.Inputs[1]]
	if !isConst || len(t.Dims) != 1 {
		return false
	}

	if op.Type == ir.OpBiasAdd {
		return true
	}
	return op.Type == ir.OpEltwise && ir.EltwiseType(op.IntArg("element_type", 0)) == ir.EltwiseSum
}
