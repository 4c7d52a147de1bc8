package passes

import "github.com/zerfoo/xform/ir"

var biasAddFoldableProducers = map[ir.OpType]bool{
	ir.OpConv2D:                   true,
	ir.OpDeconv2D:                 true,
	ir.OpDepthwiseConv2d:          true,
	ir.OpFullyConnected:           true,
	ir.OpWinogradInverseTransform: true,
}

// FoldBiasAdd implements spec §4.3.9: a two-input convolution/FC/winograd
// producer whose sole consumer is a BiasAdd absorbs the bias directly,
// taking over the BiasAdd's name and output so the external name (if any)
// survives.
func FoldBiasAdd(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) (bool, error) {
	for _, op := range g.Ops {
		if !biasAddFoldableProducers[op.Type] || len(op.Inputs) != 2 {
			continue
		}
		if _, ok := ir.FoldableProducer(idx, opt, op.Outputs[0]); !ok {
			continue
		}

		biasAdd, ok := idx.SoleConsumer(op.Outputs[0])
		if !ok || biasAdd.Type != ir.OpBiasAdd {
			continue
		}

		op.Inputs = append(op.Inputs, biasAdd.Inputs[1])
		op.Name = biasAdd.Name
		op.Outputs[0] = biasAdd.Outputs[0]

		g.RemoveOp(biasAdd)
		return true, nil
	}

	return false, nil
}
