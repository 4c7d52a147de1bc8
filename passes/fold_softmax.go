package passes

import "github.com/zerfoo/xform/ir"

// FoldSoftmax implements spec §4.3.3. Three independent rewrites share a
// Softmax op, tried in order for each candidate so that at most one fires
// per scan: absorb a sole-consumer Reshape's target shape, bypass a
// sole-producer Reshape, and finally left-pad a sub-4-D output shape to
// rank 4.
func FoldSoftmax(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) (bool, error) {
	for _, op := range g.Ops {
		if op.Type != ir.OpSoftmax {
			continue
		}

		if foldSoftmaxConsumerReshape(g, idx, opt, op) {
			return true, nil
		}
		if foldSoftmaxProducerReshape(g, idx, opt, op) {
			return true, nil
		}
		if padSoftmaxOutputShape(op) {
			return true, nil
		}
	}

	return false, nil
}

func foldSoftmaxConsumerReshape(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption, op *ir.Operator) bool {
	if len(op.Outputs) == 0 {
		return false
	}
	reshape, ok := idx.SoleConsumer(op.Outputs[0])
	if !ok || reshape.Type != ir.OpReshape {
		return false
	}

	op.OutputShapes[0] = append([]int(nil), reshape.OutputShapes[0]...)

	for _, consumer := range idx.Consumers[reshape.Outputs[0]] {
		ir.ReplaceInput(consumer, reshape.Outputs[0], op.Outputs[0])
	}
	if ir.IsOutputNode(opt, reshape) {
		ir.ReplaceOutputNode(idx, reshape, op)
	}

	g.RemoveOp(reshape)
	return true
}

func foldSoftmaxProducerReshape(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption, op *ir.Operator) bool {
	if len(op.Inputs) == 0 {
		return false
	}
	reshape, ok := ir.FoldableProducer(idx, opt, op.Inputs[0])
	if !ok || reshape.Type != ir.OpReshape {
		return false
	}

	op.Inputs[0] = reshape.Inputs[0]
	g.RemoveOp(reshape)
	return true
}

func padSoftmaxOutputShape(op *ir.Operator) bool {
	shape := op.OutputShapes[0]
	if len(shape) >= 4 {
		return false
	}

	padded := []int{1, 1, 1, 1}
	padded = append(padded, shape...)
	op.OutputShapes[0] = padded[len(padded)-4:]
	return true
}
