package passes

import "github.com/zerfoo/xform/ir"

// TransformAddToBiasAdd implements spec §4.3.8: a raw, pre-canonical Add
// with exactly two inputs whose second input is a 1-D constant is
// retyped to BiasAdd so that fold_biasadd can match it uniformly with the
// bias adds produced directly by an importer.
func TransformAddToBiasAdd(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) (bool, error) {
	for _, op := range g.Ops {
		if op.Type != ir.OpAdd || len(op.Inputs) != 2 {
			continue
		}

		t, isConst := idx.Consts[op.Inputs[1]]
		if !isConst || len(t.Dims) != 1 {
			continue
		}

		op.Type = ir.OpBiasAdd
		return true, nil
	}

	return false, nil
}
