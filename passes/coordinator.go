// Package passes implements the fixed-order graph rewrite pipeline: one
// file per pass plus the coordinator that drives each pass to a fixpoint
// in the mandated order before advancing to the next.
package passes

import (
	"fmt"
	"log"

	"github.com/zerfoo/xform/ir"
)

// Pass is a single named rewrite. Run scans the graph for its pattern,
// applies at most one rewrite, and reports whether it changed anything;
// the single-sweep passes (global pooling, Winograd, filter and data-format
// transposes, global conv to FC, buffer/image adapters, the sort) instead
// rewrite every match in one call and always report changed=false.
// idx is a fresh snapshot the coordinator rebuilt immediately before this
// call; Run must not cache it across invocations.
type Pass struct {
	Name string
	Run  func(g *ir.Graph, idx *ir.Index, opt *ir.CompileOption) (changed bool, err error)
}

// Pipeline is the canonical, load-bearing pass order (spec §4.1). GPU-only
// and CPU-only passes check opt.Device themselves and report
// changed=false when not applicable, so the coordinator drives every
// pass unconditionally.
var Pipeline = []Pass{
	{Name: "remove_identity", Run: RemoveIdentity},
	{Name: "transform_global_pooling", Run: TransformGlobalPooling},
	{Name: "fold_softmax", Run: FoldSoftmax},
	{Name: "fold_batchnorm", Run: FoldBatchNorm},
	{Name: "fold_conv_and_bn", Run: FoldConvAndBN},
	{Name: "fold_depthwise_conv_and_bn", Run: FoldDepthwiseConvAndBN},
	{Name: "transform_gpu_winograd", Run: TransformGPUWinograd},
	{Name: "transform_add_to_biasadd", Run: TransformAddToBiasAdd},
	{Name: "fold_biasadd", Run: FoldBiasAdd},
	{Name: "fold_activation", Run: FoldActivation},
	{Name: "transpose_filters", Run: TransposeFilters},
	{Name: "transpose_data_format", Run: TransposeDataFormat},
	{Name: "transform_global_conv_to_fc", Run: TransformGlobalConvToFC},
	{Name: "transform_buffer_image", Run: TransformBufferImage},
	{Name: "sort_by_execution", Run: SortByExecution},
}

// Run drives every pass in Pipeline to a fixpoint, in order, rebuilding
// the index before each invocation (spec §4.1, §5). It is a pure function
// of (g, opt): on success g itself has been mutated in place and is also
// returned; on error the graph is left partially mutated, per the
// fail-fast design in spec §7.
func Run(g *ir.Graph, opt *ir.CompileOption) (*ir.Graph, error) {
	for _, pass := range Pipeline {
		for {
			idx := ir.BuildIndex(g, opt)

			changed, err := pass.Run(g, idx, opt)
			if err != nil {
				return nil, fmt.Errorf("passes: %s: %w", pass.Name, err)
			}

			if opt.Verbose {
				log.Printf("passes: %s changed=%t", pass.Name, changed)
			}

			if !changed {
				break
			}
		}
	}
	return g, nil
}
