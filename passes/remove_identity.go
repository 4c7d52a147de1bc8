package passes

import "github.com/zerfoo/xform/ir"

// RemoveIdentity implements spec §4.3.1: an Identity op is spliced out by
// rewriting every consumer's reference to its output with its input, then
// deleted. If the Identity feeds a declared output, its producer's output
// name is rewired to the Identity's so the external name survives.
func RemoveIdentity(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) (bool, error) {
	for _, op := range g.Ops {
		if op.Type != ir.OpIdentity {
			continue
		}

		in := op.Inputs[0]
		out := op.Outputs[0]

		for _, consumer := range idx.Consumers[out] {
			ir.ReplaceInput(consumer, out, in)
		}

		if ir.IsOutputNode(opt, op) {
			if producer, ok := idx.Producer[in]; ok {
				ir.ReplaceOutputNode(idx, op, producer)
			}
		}

		g.RemoveOp(op)
		return true, nil
	}

	return false, nil
}
