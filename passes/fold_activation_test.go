package passes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zerfoo/xform/ir"
)

func TestFoldActivation(t *testing.T) {
	t.Run("conv absorbs RELU", func(t *testing.T) {
		g := ir.NewGraph()
		conv := &ir.Operator{Name: "conv", Type: ir.OpConv2D, Outputs: []string{"conv_out"}}
		relu := &ir.Operator{
			Name: "logits", Type: ir.OpActivation, Inputs: []string{"conv_out"}, Outputs: []string{"logits"},
			Args: []ir.Argument{ir.StringArgument("activation_type", string(ir.ActivationRelu))},
		}
		g.InsertOp(conv)
		g.InsertOp(relu)
		opt := &ir.CompileOption{}
		idx := ir.BuildIndex(g, opt)

		changed, err := FoldActivation(g, idx, opt)
		require.NoError(t, err)
		assert.True(t, changed)

		require.Len(t, g.Ops, 1)
		assert.Equal(t, "logits", conv.Outputs[0])
		assert.Equal(t, string(ir.ActivationRelu), conv.StringArg("activation_type", ""))
	})

	t.Run("PRELU is never fused", func(t *testing.T) {
		g := ir.NewGraph()
		conv := &ir.Operator{Name: "conv", Type: ir.OpConv2D, Outputs: []string{"conv_out"}}
		prelu := &ir.Operator{
			Name: "act", Type: ir.OpActivation, Inputs: []string{"conv_out"},
			Args: []ir.Argument{ir.StringArgument("activation_type", string(ir.ActivationPrelu))},
		}
		g.InsertOp(conv)
		g.InsertOp(prelu)
		opt := &ir.CompileOption{}
		idx := ir.BuildIndex(g, opt)

		changed, err := FoldActivation(g, idx, opt)
		require.NoError(t, err)
		assert.False(t, changed)
	})
}
