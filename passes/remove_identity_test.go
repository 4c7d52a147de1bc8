package passes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zerfoo/xform/ir"
)

func TestRemoveIdentity(t *testing.T) {
	t.Run("splices out an interior identity", func(t *testing.T) {
		g := ir.NewGraph()
		conv := &ir.Operator{Name: "conv", Type: ir.OpConv2D, Outputs: []string{"conv_out"}}
		identity := &ir.Operator{Name: "id", Type: ir.OpIdentity, Inputs: []string{"conv_out"}, Outputs: []string{"id_out"}}
		relu := &ir.Operator{Name: "relu", Type: ir.OpActivation, Inputs: []string{"id_out"}, Outputs: []string{"relu_out"}}
		g.InsertOp(conv)
		g.InsertOp(identity)
		g.InsertOp(relu)
		opt := &ir.CompileOption{}

		idx := ir.BuildIndex(g, opt)
		changed, err := RemoveIdentity(g, idx, opt)
		require.NoError(t, err)
		assert.True(t, changed)

		require.Len(t, g.Ops, 2)
		assert.Equal(t, []string{"conv_out"}, relu.Inputs)
	})

	t.Run("identity on declared output rewires producer's name", func(t *testing.T) {
		g := ir.NewGraph()
		conv := &ir.Operator{Name: "conv", Type: ir.OpConv2D, Outputs: []string{"conv_out"}}
		identity := &ir.Operator{Name: "id", Type: ir.OpIdentity, Inputs: []string{"conv_out"}, Outputs: []string{"logits"}}
		g.InsertOp(conv)
		g.InsertOp(identity)
		opt := &ir.CompileOption{Outputs: []string{"logits"}}

		idx := ir.BuildIndex(g, opt)
		changed, err := RemoveIdentity(g, idx, opt)
		require.NoError(t, err)
		assert.True(t, changed)

		require.Len(t, g.Ops, 1)
		assert.Equal(t, "logits", conv.Outputs[0])
	})

	t.Run("no identity reports no change", func(t *testing.T) {
		g := ir.NewGraph()
		g.InsertOp(&ir.Operator{Name: "conv", Type: ir.OpConv2D})
		opt := &ir.CompileOption{}
		idx := ir.BuildIndex(g, opt)

		changed, err := RemoveIdentity(g, idx, opt)
		require.NoError(t, err)
		assert.False(t, changed)
	})
}
