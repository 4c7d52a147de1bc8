package passes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zerfoo/xform/ir"
)

func TestTransformGlobalConvToFC(t *testing.T) {
	t.Run("7x7 conv on a 7x7 feature map with VALID padding becomes FullyConnected", func(t *testing.T) {
		g := ir.NewGraph()
		g.SetFilterFormat(ir.OIHW) // post transpose_filters, CPU target
		g.Consts["filter"] = &ir.Tensor{Name: "filter", Dims: []int{1000, 512, 7, 7}, Data: make([]float32, 1000*512*7*7)}
		producer := &ir.Operator{Name: "prev", Outputs: []string{"feat"}, OutputShapes: [][]int{{1, 512, 7, 7}}, DataFormat: ir.NCHW}
		conv := &ir.Operator{
			Name: "conv", Type: ir.OpConv2D, Inputs: []string{"feat", "filter"}, Outputs: []string{"conv_out"},
			DataFormat: ir.NCHW,
			Args:       []ir.Argument{ir.IntArgument("padding", int64(ir.PaddingValid))},
		}
		g.InsertOp(producer)
		g.InsertOp(conv)
		opt := &ir.CompileOption{Device: ir.CPU}
		idx := ir.BuildIndex(g, opt)

		changed, err := TransformGlobalConvToFC(g, idx, opt)
		require.NoError(t, err)
		assert.False(t, changed)

		assert.Equal(t, ir.OpFullyConnected, conv.Type)
		assert.Equal(t, []int{1000, 512 * 7 * 7}, g.Consts["filter"].Dims)
	})

	t.Run("non-global conv (H,W mismatch) is untouched", func(t *testing.T) {
		g := ir.NewGraph()
		g.SetFilterFormat(ir.OIHW)
		g.Consts["filter"] = &ir.Tensor{Name: "filter", Dims: []int{4, 2, 3, 3}}
		producer := &ir.Operator{Name: "prev", Outputs: []string{"feat"}, OutputShapes: [][]int{{1, 2, 56, 56}}, DataFormat: ir.NCHW}
		conv := &ir.Operator{Name: "conv", Type: ir.OpConv2D, Inputs: []string{"feat", "filter"}, DataFormat: ir.NCHW}
		g.InsertOp(producer)
		g.InsertOp(conv)
		opt := &ir.CompileOption{Device: ir.CPU}
		idx := ir.BuildIndex(g, opt)

		changed, err := TransformGlobalConvToFC(g, idx, opt)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, ir.OpConv2D, conv.Type)
	})

	t.Run("GPU target never retypes", func(t *testing.T) {
		g := ir.NewGraph()
		g.SetFilterFormat(ir.HWOI)
		conv := &ir.Operator{Name: "conv", Type: ir.OpConv2D}
		g.InsertOp(conv)
		opt := &ir.CompileOption{Device: ir.GPU}
		idx := ir.BuildIndex(g, opt)

		changed, err := TransformGlobalConvToFC(g, idx, opt)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, ir.OpConv2D, conv.Type)
	})
}
