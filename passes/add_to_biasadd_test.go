package passes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zerfoo/xform/ir"
)

func TestTransformAddToBiasAdd(t *testing.T) {
	t.Run("Add with 1-D constant second input becomes BiasAdd", func(t *testing.T) {
		g := ir.NewGraph()
		g.Consts["bias"] = &ir.Tensor{Name: "bias", Dims: []int{8}}
		add := &ir.Operator{Name: "add", Type: ir.OpAdd, Inputs: []string{"x", "bias"}}
		g.InsertOp(add)
		opt := &ir.CompileOption{}
		idx := ir.BuildIndex(g, opt)

		changed, err := TransformAddToBiasAdd(g, idx, opt)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, ir.OpBiasAdd, add.Type)
	})

	t.Run("Add of two non-constant tensors is left alone", func(t *testing.T) {
		g := ir.NewGraph()
		add := &ir.Operator{Name: "add", Type: ir.OpAdd, Inputs: []string{"x", "y"}}
		g.InsertOp(add)
		opt := &ir.CompileOption{}
		idx := ir.BuildIndex(g, opt)

		changed, err := TransformAddToBiasAdd(g, idx, opt)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("Add with 2-D constant is not a bias", func(t *testing.T) {
		g := ir.NewGraph()
		g.Consts["w"] = &ir.Tensor{Name: "w", Dims: []int{2, 2}}
		add := &ir.Operator{Name: "add", Type: ir.OpAdd, Inputs: []string{"x", "w"}}
		g.InsertOp(add)
		opt := &ir.CompileOption{}
		idx := ir.BuildIndex(g, opt)

		changed, err := TransformAddToBiasAdd(g, idx, opt)
		require.NoError(t, err)
		assert.False(t, changed)
	})
}
