package passes

import "github.com/zerfoo/xform/ir"

// TransposeDataFormat implements spec §4.3.12: every tagged op is
// retagged to the per-target layout (NCHW for CPU, NHWC for GPU) and its
// 4-D output shapes permuted to match; Pad/Concat/Slice arguments are
// fixed up first since they are axis-sensitive rather than shape-sensitive.
// On a CPU target, boundary Transpose ops are inserted so the externally
// visible input/output tensor names stay in the declared NHWC layout.
// Single sweep, always reports changed=false.
func TransposeDataFormat(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) (bool, error) {
	target := ir.NHWC
	if opt.Device == ir.CPU {
		target = ir.NCHW
	}

	for _, op := range g.Ops {
		if op.DataFormat == ir.DataFormatUnspecified || op.DataFormat == target {
			continue
		}
		source := op.DataFormat
		axes := axisPermutation(source, target)

		switch op.Type {
		case ir.OpPad:
			permutePaddings(op, axes)
		case ir.OpConcat, ir.OpSlice:
			if err := remapChannelAxis(op, source, target); err != nil {
				return false, err
			}
		}

		for i, shape := range op.OutputShapes {
			if len(shape) == 4 {
				op.OutputShapes[i] = ir.PermuteInts(shape, axes)
			}
		}
		op.DataFormat = target
	}

	if target == ir.NCHW {
		insertBoundaryTransposes(g, idx, opt)
	}

	return false, nil
}

func axisPermutation(source, target ir.DataFormat) []int {
	if source == ir.NHWC && target == ir.NCHW {
		return []int{0, 3, 1, 2}
	}
	if source == ir.NCHW && target == ir.NHWC {
		return []int{0, 2, 3, 1}
	}
	return []int{0, 1, 2, 3}
}

func permutePaddings(op *ir.Operator, axes []int) {
	paddings := op.IntsArg("paddings")
	if len(paddings) != 8 {
		return
	}

	pairs := make([][2]int64, 4)
	for i := range pairs {
		pairs[i] = [2]int64{paddings[2*i], paddings[2*i+1]}
	}

	out := make([]int64, 0, 8)
	for _, axis := range axes {
		out = append(out, pairs[axis][0], pairs[axis][1])
	}
	op.SetArg(ir.IntsArgument("paddings", out))
}

func remapChannelAxis(op *ir.Operator, source, target ir.DataFormat) error {
	axis := op.IntArg("axis", 0)

	switch {
	case source == ir.NHWC && target == ir.NCHW:
		if axis != 3 {
			return ir.ErrUnsupportedAxis
		}
		op.SetArg(ir.IntArgument("axis", 1))
	case source == ir.NCHW && target == ir.NHWC:
		if axis != 1 {
			return ir.ErrUnsupportedAxis
		}
		op.SetArg(ir.IntArgument("axis", 3))
	}
	return nil
}

// insertBoundaryTransposes inserts a Transpose([0,3,1,2]) in front of each
// declared model input and a Transpose([0,2,3,1]) after each declared
// model output, so the graph's externally visible tensor names stay in
// their declared NHWC layout while everything between them runs NCHW.
func insertBoundaryTransposes(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) {
	for _, in := range opt.Inputs {
		internal := ir.InputTensorName(in.Name)

		transpose := &ir.Operator{
			Name:         ir.NormalizeOpName(in.Name) + "_input_transpose",
			Type:         ir.OpTranspose,
			Inputs:       []string{in.Name},
			Outputs:      []string{internal},
			OutputShapes: [][]int{ir.PermuteInts(in.Shape, []int{0, 3, 1, 2})},
			DataFormat:   ir.NCHW,
			Args: []ir.Argument{
				ir.IntsArgument("dims", []int64{0, 3, 1, 2}),
				ir.IntArgument("T", int64(opt.DataType)),
			},
		}

		for _, consumer := range idx.Consumers[in.Name] {
			ir.ReplaceInput(consumer, in.Name, internal)
		}
		g.InsertOp(transpose)
	}

	for _, name := range opt.Outputs {
		producer, ok := idx.Producer[name]
		if !ok {
			continue
		}

		internal := ir.OutputTensorName(name) + "_nchw"
		for i, out := range producer.Outputs {
			if out == name {
				producer.Outputs[i] = internal
			}
		}

		transpose := &ir.Operator{
			Name:       ir.NormalizeOpName(name) + "_output_transpose",
			Type:       ir.OpTranspose,
			Inputs:     []string{internal},
			Outputs:    []string{name},
			DataFormat: ir.NHWC,
			Args: []ir.Argument{
				ir.IntsArgument("dims", []int64{0, 2, 3, 1}),
				ir.IntArgument("T", int64(opt.DataType)),
			},
		}
		g.InsertOp(transpose)
	}
}
