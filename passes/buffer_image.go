package passes

import "github.com/zerfoo/xform/ir"

type imageAdapter struct {
	inputIndex int
	kind       ir.ImageBufferKind
	optional   bool
}

var staticImageAdapters = map[ir.OpType][]imageAdapter{
	ir.OpConv2D:                   {{1, ir.Conv2DFilter, false}, {2, ir.ImageArgument, true}},
	ir.OpDeconv2D:                 {{1, ir.Conv2DFilter, false}, {2, ir.ImageArgument, true}},
	ir.OpDepthwiseConv2d:          {{1, ir.DWConv2DFilter, false}, {2, ir.ImageArgument, true}},
	ir.OpBiasAdd:                  {{1, ir.ImageArgument, false}},
	ir.OpFoldedBatchNorm:          {{1, ir.ImageArgument, false}, {2, ir.ImageArgument, false}, {3, ir.ImageArgument, true}},
	ir.OpWinogradInverseTransform: {{1, ir.ImageArgument, true}},
	ir.OpFullyConnected:           {{1, ir.WeightWidth, false}, {2, ir.ImageArgument, true}},
}

// TransformBufferImage implements spec §4.3.14 (GPU only): every op that
// consumes a tensor the GPU backend expects in image layout gets a
// BufferToImage adapter spliced in front of that input, and declared
// model inputs/outputs get IN_OUT_CHANNEL adapters at the boundary.
// Single sweep, always reports changed=false.
func TransformBufferImage(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) (bool, error) {
	if opt.Device != ir.GPU {
		return false, nil
	}

	for _, op := range append([]*ir.Operator(nil), g.Ops...) {
		for _, adapter := range adaptersFor(op) {
			if adapter.inputIndex >= len(op.Inputs) {
				continue
			}
			insertBufferToImage(g, op, adapter.inputIndex, adapter.kind, opt.DataType)
		}
	}

	insertBoundaryImageAdapters(g, idx, opt)

	return false, nil
}

func adaptersFor(op *ir.Operator) []imageAdapter {
	if rules, ok := staticImageAdapters[op.Type]; ok {
		return rules
	}
	if op.Type == ir.OpMatMul && op.IntArg("winograd_filter_transformed", 0) == 1 {
		return []imageAdapter{{0, ir.WinogradFilter, false}}
	}
	if op.Type == ir.OpActivation && op.StringArg("activation_type", "") == string(ir.ActivationPrelu) {
		return []imageAdapter{{1, ir.ImageArgument, false}}
	}
	return nil
}

func insertBufferToImage(g *ir.Graph, consumer *ir.Operator, inputIndex int, kind ir.ImageBufferKind, dtype ir.DataType) {
	source := consumer.Inputs[inputIndex]
	imageName := source + "_b2i"

	adapter := &ir.Operator{
		Name:    ir.NormalizeOpName(source) + "_b2i",
		Type:    ir.OpBufferToImage,
		Inputs:  []string{source},
		Outputs: []string{imageName},
		Args: []ir.Argument{
			ir.IntArgument("buffer_type", int64(kind)),
			ir.IntArgument("T", int64(dtype)),
			ir.IntArgument("mode", 0),
		},
	}

	consumer.Inputs[inputIndex] = imageName
	g.InsertOp(adapter)
}

func insertBoundaryImageAdapters(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) {
	for _, in := range opt.Inputs {
		imageName := in.Name + "_b2i"
		adapter := &ir.Operator{
			Name:    ir.NormalizeOpName(in.Name) + "_b2i",
			Type:    ir.OpBufferToImage,
			Inputs:  []string{in.Name},
			Outputs: []string{imageName},
			Args: []ir.Argument{
				ir.IntArgument("buffer_type", int64(ir.InOutChannel)),
				ir.IntArgument("T", int64(opt.DataType)),
				ir.IntArgument("mode", 0),
			},
		}
		for _, consumer := range idx.Consumers[in.Name] {
			ir.ReplaceInput(consumer, in.Name, imageName)
		}
		g.InsertOp(adapter)
	}

	for _, name := range opt.Outputs {
		producer, ok := idx.Producer[name]
		if !ok {
			continue
		}

		internal := ir.OutputTensorName(name) + "_i2b"
		for i, out := range producer.Outputs {
			if out == name {
				producer.Outputs[i] = internal
			}
		}

		adapter := &ir.Operator{
			Name:    ir.NormalizeOpName(name) + "_i2b",
			Type:    ir.OpImageToBuffer,
			Inputs:  []string{internal},
			Outputs: []string{name},
			Args: []ir.Argument{
				ir.IntArgument("buffer_type", int64(ir.InOutChannel)),
				ir.IntArgument("T", int64(opt.DataType)),
				ir.IntArgument("mode", 0),
			},
		}
		g.InsertOp(adapter)
	}
}
