package passes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zerfoo/xform/ir"
)

// newConvBNReluGraph builds the Conv2D -> Eltwise(PROD) -> Eltwise(SUM) ->
// Activation(RELU) chain used throughout this test: a canonical
// batch-norm-after-convolution pattern with a single declared input "x"
// and a single declared output "logits".
func newConvBNReluGraph() (*ir.Graph, *ir.CompileOption) {
	g := ir.NewGraph()

	filterData := make([]float32, 3*3*2*4)
	for i := range filterData {
		filterData[i] = 1
	}
	g.Consts["filter"] = &ir.Tensor{Name: "filter", Dims: []int{3, 3, 2, 4}, Data: filterData}
	g.Consts["scale"] = &ir.Tensor{Name: "scale", Dims: []int{4}, Data: []float32{1, 2, 3, 4}}
	g.Consts["offset"] = &ir.Tensor{Name: "offset", Dims: []int{4}, Data: []float32{0.1, 0.2, 0.3, 0.4}}

	conv := &ir.Operator{
		Name:         "conv",
		Type:         ir.OpConv2D,
		Inputs:       []string{"x", "filter"},
		Outputs:      []string{"conv_out"},
		OutputShapes: [][]int{{1, 3, 3, 4}},
		DataFormat:   ir.NHWC,
		Args: []ir.Argument{
			ir.IntsArgument("strides", []int64{1, 1, 1, 1}),
			ir.IntArgument("padding", int64(ir.PaddingValid)),
		},
	}
	prod := &ir.Operator{
		Name:    "prod",
		Type:    ir.OpEltwise,
		Inputs:  []string{"conv_out", "scale"},
		Outputs: []string{"prod_out"},
		Args:    []ir.Argument{ir.IntArgument("element_type", int64(ir.EltwiseProd))},
	}
	sum := &ir.Operator{
		Name:    "sum",
		Type:    ir.OpEltwise,
		Inputs:  []string{"prod_out", "offset"},
		Outputs: []string{"sum_out"},
		Args:    []ir.Argument{ir.IntArgument("element_type", int64(ir.EltwiseSum))},
	}
	relu := &ir.Operator{
		Name:    "relu",
		Type:    ir.OpActivation,
		Inputs:  []string{"sum_out"},
		Outputs: []string{"logits"},
		Args:    []ir.Argument{ir.StringArgument("activation_type", string(ir.ActivationRelu))},
	}

	g.InsertOp(conv)
	g.InsertOp(prod)
	g.InsertOp(sum)
	g.InsertOp(relu)

	opt := &ir.CompileOption{
		Device:   ir.CPU,
		Inputs:   []ir.InputSpec{{Name: "x", Shape: []int{1, 5, 5, 2}}},
		Outputs:  []string{"logits"},
		DataType: ir.Float32,
	}
	return g, opt
}

func TestRunConvBatchNormReluCPU(t *testing.T) {
	g, opt := newConvBNReluGraph()

	out, err := Run(g, opt)
	require.NoError(t, err)
	require.Same(t, g, out)

	// The batch-norm scale/offset chain collapses into the convolution;
	// the PROD/SUM/Activation ops are gone and the scale const is
	// consumed, leaving only the Input pseudo-op, the boundary input
	// Transpose, the fused Conv2D, and the boundary output Transpose.
	require.Len(t, g.Ops, 4)

	inputOp := g.Ops[0]
	assert.Equal(t, ir.OpInput, inputOp.Type)
	assert.Equal(t, []string{"x"}, inputOp.Outputs)

	inTranspose := g.Ops[1]
	assert.Equal(t, ir.OpTranspose, inTranspose.Type)
	assert.Equal(t, []string{"x"}, inTranspose.Inputs)
	assert.Equal(t, []int64{0, 3, 1, 2}, inTranspose.IntsArg("dims"))

	conv := g.Ops[2]
	assert.Equal(t, ir.OpConv2D, conv.Type)
	assert.Equal(t, "relu", conv.Name)
	require.Len(t, conv.Inputs, 3)
	assert.Equal(t, inTranspose.Outputs[0], conv.Inputs[0])
	assert.Equal(t, "filter", conv.Inputs[1])
	assert.Equal(t, "offset", conv.Inputs[2])
	assert.Equal(t, string(ir.ActivationRelu), conv.StringArg("activation_type", ""))
	assert.Equal(t, ir.NCHW, conv.DataFormat)

	outTranspose := g.Ops[3]
	assert.Equal(t, ir.OpTranspose, outTranspose.Type)
	assert.Equal(t, []string{"logits"}, outTranspose.Outputs)
	assert.Equal(t, conv.Outputs[0], outTranspose.Inputs[0])
	assert.Equal(t, []int64{0, 2, 3, 1}, outTranspose.IntsArg("dims"))

	// filter_format advanced HWIO -> OIHW, and the filter buffer was
	// scaled per output channel before the permute.
	assert.Equal(t, ir.OIHW, g.FilterFormat())
	filter := g.Consts["filter"]
	require.Equal(t, []int{4, 2, 3, 3}, filter.Dims)
	for o := 0; o < 4; o++ {
		want := float32(o + 1)
		for i := 0; i < 18; i++ {
			assert.Equal(t, want, filter.Data[o*18+i], "output channel %d element %d", o, i)
		}
	}

	// scale was folded away entirely; offset survives as the bias input.
	_, hasScale := g.Consts["scale"]
	assert.False(t, hasScale)
	_, hasOffset := g.Consts["offset"]
	assert.True(t, hasOffset)
}

func TestRunMissingOutputFails(t *testing.T) {
	g := ir.NewGraph()
	opt := &ir.CompileOption{Outputs: []string{"nonexistent"}}

	_, err := Run(g, opt)
	assert.ErrorIs(t, err, ir.ErrMissingOutput)
}
