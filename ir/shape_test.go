package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermuteInts(t *testing.T) {
	got := PermuteInts([]int{1, 224, 224, 3}, []int{0, 3, 1, 2})
	assert.Equal(t, []int{1, 3, 224, 224}, got)
}

func TestFeatureMapDims(t *testing.T) {
	t.Run("NHWC", func(t *testing.T) {
		b, h, w, c := FeatureMapDims([]int{1, 224, 224, 3}, NHWC)
		assert.Equal(t, [4]int{1, 224, 224, 3}, [4]int{b, h, w, c})
	})

	t.Run("NCHW", func(t *testing.T) {
		b, h, w, c := FeatureMapDims([]int{1, 3, 224, 224}, NCHW)
		assert.Equal(t, [4]int{1, 224, 224, 3}, [4]int{b, h, w, c})
	})
}

func TestFilterDims(t *testing.T) {
	cases := []struct {
		name   string
		shape  []int
		format FilterFormat
		want   [4]int
	}{
		{"HWIO", []int{3, 3, 4, 8}, HWIO, [4]int{3, 3, 4, 8}},
		{"OIHW", []int{8, 4, 3, 3}, OIHW, [4]int{3, 3, 4, 8}},
		{"HWOI", []int{3, 3, 8, 4}, HWOI, [4]int{3, 3, 4, 8}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h, w, in, out, err := FilterDims(c.shape, c.format)
			require.NoError(t, err)
			assert.Equal(t, c.want, [4]int{h, w, in, out})
		})
	}

	t.Run("unsupported format", func(t *testing.T) {
		_, _, _, _, err := FilterDims([]int{1, 1, 1, 1}, FilterFormatUnspecified)
		assert.ErrorIs(t, err, ErrUnsupportedFilterFormat)
	})
}

func TestPermuteData(t *testing.T) {
	// 2x3 row-major: [[0,1,2],[3,4,5]] -> transpose to 3x2.
	data := []float32{0, 1, 2, 3, 4, 5}
	out, shape := PermuteData(data, []int{2, 3}, []int{1, 0})
	assert.Equal(t, []int{3, 2}, shape)
	assert.Equal(t, []float32{0, 3, 1, 4, 2, 5}, out)
}
