package passes

import "github.com/zerfoo/xform/ir"

const winogradImageLimit = 16384

// TransformGPUWinograd implements spec §4.3.7: every eligible 3x3
// stride-1 dilation-1 Conv2D on a GPU target is replaced by a
// (WinogradTransform, MatMul, WinogradInverseTransform) triple and its
// filter is transposed in place to OIHW. Single sweep over all eligible
// convolutions, always reports changed=false.
func TransformGPUWinograd(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) (bool, error) {
	if opt.Device != ir.GPU || !opt.WinogradEnabled {
		return false, nil
	}

	for _, op := range append([]*ir.Operator(nil), g.Ops...) {
		if op.Type != ir.OpConv2D {
			continue
		}
		if !winogradEligible(idx, g.FilterFormat(), op) {
			continue
		}
		expandWinograd(g, idx, op)
	}

	return false, nil
}

func winogradEligible(idx *ir.Index, format ir.FilterFormat, op *ir.Operator) bool {
	filter, ok := idx.Consts[op.Inputs[1]]
	if !ok {
		return false
	}

	h, w, inChannels, outChannels, err := ir.FilterDims(filter.Dims, format)
	if err != nil || h != 3 || w != 3 {
		return false
	}

	for _, s := range op.IntsArg("strides") {
		if s != 1 {
			return false
		}
	}

	dilations := op.IntsArg("dilations")
	if len(dilations) == 0 {
		dilations = []int64{1, 1}
	}
	for _, d := range dilations {
		if d != 1 {
			return false
		}
	}

	batch, outH, outW, _ := ir.FeatureMapDims(op.OutputShapes[0], op.DataFormat)

	if 16*inChannels >= winogradImageLimit {
		return false
	}
	if 16*outChannels >= winogradImageLimit {
		return false
	}
	tileWidth := batch * ((outH + 1) / 2) * ((outW + 1) / 2)
	return tileWidth < winogradImageLimit
}

func expandWinograd(g *ir.Graph, idx *ir.Index, op *ir.Operator) {
	filter := idx.Consts[op.Inputs[1]]
	_, _, inChannels, outChannels, _ := ir.FilterDims(filter.Dims, g.FilterFormat())

	batch, outH, outW, _ := ir.FeatureMapDims(op.OutputShapes[0], op.DataFormat)
	tileWidth := batch * ((outH + 1) / 2) * ((outW + 1) / 2)

	wt := &ir.Operator{
		Name:         op.Name + "_input_transform",
		Type:         ir.OpWinogradTransform,
		Inputs:       []string{op.Inputs[0]},
		Outputs:      []string{op.Name + "_input_transform"},
		OutputShapes: [][]int{{16, inChannels, tileWidth, 1}},
	}
	copyPaddingArgs(op, wt)

	matmul := &ir.Operator{
		Name:         op.Name + "_matmul",
		Type:         ir.OpMatMul,
		Inputs:       []string{op.Inputs[1], wt.Outputs[0]},
		Outputs:      []string{op.Name + "_matmul"},
		OutputShapes: [][]int{{16, outChannels, tileWidth, 1}},
		Args:         []ir.Argument{ir.IntArgument("winograd_filter_transformed", 1)},
	}

	inverse := &ir.Operator{
		Name:         op.Name + "_inverse_transform",
		Type:         ir.OpWinogradInverseTransform,
		Inputs:       []string{matmul.Outputs[0]},
		Outputs:      append([]string(nil), op.Outputs...),
		OutputShapes: append([][]int(nil), op.OutputShapes...),
		DataFormat:   op.DataFormat,
		Args: []ir.Argument{
			ir.IntArgument("batch", int64(batch)),
			ir.IntArgument("height", int64(outH)),
			ir.IntArgument("width", int64(outW)),
		},
	}
	if len(op.Inputs) > 2 {
		inverse.Inputs = append(inverse.Inputs, op.Inputs[2])
	}

	transposeWinogradFilter(g, filter)

	g.InsertOp(wt)
	g.InsertOp(matmul)
	g.InsertOp(inverse)
	g.RemoveOp(op)
}

func copyPaddingArgs(from, to *ir.Operator) {
	if a, ok := from.Arg("padding"); ok {
		to.SetArg(a)
	}
	if a, ok := from.Arg("padding_values"); ok {
		to.SetArg(a)
	}
}

// transposeWinogradFilter transposes filter in place to OIHW. The HWOI
// branch is provided for completeness per the reference converter's own
// state machine (no filter_format path reaches it before this pass runs
// today; see DESIGN.md).
func transposeWinogradFilter(g *ir.Graph, filter *ir.Tensor) {
	switch g.FilterFormat() {
	case ir.HWIO:
		filter.Data, filter.Dims = ir.PermuteData(filter.Data, filter.Dims, []int{3, 2, 0, 1})
	case ir.HWOI:
		filter.Data, filter.Dims = ir.PermuteData(filter.Data, filter.Dims, []int{2, 3, 0, 1})
	}
}
