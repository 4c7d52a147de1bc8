package passes

import "github.com/zerfoo/xform/ir"

// SortByExecution implements spec §4.3.15: a depth-first post-order walk
// over producers, rooted at each declared output, replaces the operator
// list wholesale. Operators unreachable from any declared output are
// dropped; an operator input that resolves to neither a producer nor a
// constant is a malformed graph. Always reports changed=false.
func SortByExecution(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) (bool, error) {
	visited := make(map[*ir.Operator]bool, len(idx.Ops))
	var order []*ir.Operator

	var visit func(op *ir.Operator) error
	visit = func(op *ir.Operator) error {
		if visited[op] {
			return nil
		}
		visited[op] = true

		for _, in := range op.Inputs {
			if producer, ok := idx.Producer[in]; ok {
				if err := visit(producer); err != nil {
					return err
				}
				continue
			}
			if _, isConst := idx.Consts[in]; isConst {
				continue
			}
			return ir.ErrMalformedGraph
		}

		order = append(order, op)
		return nil
	}

	for _, name := range opt.Outputs {
		// A declared output is resolved through ir.OutputTensorName first,
		// falling back to the bare name. The boundary-adapter passes rename
		// the original producer's output to ir.OutputTensorName(name) plus a
		// "_nchw"/"_i2b" suffix, so after them the bare name resolves to the
		// adapter itself and the walk reaches the renamed producer through it.
		producer, ok := idx.Producer[ir.OutputTensorName(name)]
		if !ok {
			producer, ok = idx.Producer[name]
		}
		if !ok {
			return false, ir.ErrMissingOutput
		}
		if err := visit(producer); err != nil {
			return false, err
		}
	}

	g.Ops = order
	return false, nil
}
