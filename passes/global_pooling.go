package passes

import "github.com/zerfoo/xform/ir"

// TransformGlobalPooling implements spec §4.3.2: every Pooling op carrying
// a global_pooling argument has its kernel argument set to the (H, W) of
// its input producer's output shape, read according to the op's own data
// format. Single sweep, always reports changed=false.
func TransformGlobalPooling(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) (bool, error) {
	for _, op := range g.Ops {
		if op.Type != ir.OpPooling || !op.HasArg("global_pooling") {
			continue
		}

		producer, ok := idx.Producer[op.Inputs[0]]
		if !ok || len(producer.OutputShapes) == 0 {
			continue
		}

		shape := producer.OutputShapes[0]
		_, h, w, _ := ir.FeatureMapDims(shape, op.DataFormat)
		op.SetArg(ir.IntsArgument("kernel", []int64{int64(h), int64(w)}))
	}

	return false, nil
}
