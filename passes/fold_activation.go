package passes

import "github.com/zerfoo/xform/ir"

var activationFoldableProducers = map[ir.OpType]bool{
	ir.OpConv2D:                   true,
	ir.OpDeconv2D:                 true,
	ir.OpDepthwiseConv2d:          true,
	ir.OpFullyConnected:           true,
	ir.OpFoldedBatchNorm:          true,
	ir.OpWinogradInverseTransform: true,
}

// FoldActivation implements spec §4.3.10: a foldable producer whose sole
// consumer is a non-PRELU Activation absorbs the activation's type and
// clamp argument and takes over its name and output.
func FoldActivation(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) (bool, error) {
	for _, op := range g.Ops {
		if !activationFoldableProducers[op.Type] {
			continue
		}
		if _, ok := ir.FoldableProducer(idx, opt, op.Outputs[0]); !ok {
			continue
		}

		activation, ok := idx.SoleConsumer(op.Outputs[0])
		if !ok || activation.Type != ir.OpActivation {
			continue
		}
		if activation.StringArg("activation_type", "") == string(ir.ActivationPrelu) {
			continue
		}

		if a, present := activation.Arg("activation_type"); present {
			op.SetArg(a)
		}
		if a, present := activation.Arg("activation_max_limit"); present {
			op.SetArg(a)
		}

		op.Name = activation.Name
		op.Outputs[0] = activation.Outputs[0]

		g.RemoveOp(activation)
		return true, nil
	}

	return false, nil
}
