package ir

// Graph is the mutable computation graph the transform pipeline operates
// on: an ordered operator list, an unordered constant-tensor table, and a
// small set of top-level graph-wide arguments (of which filter_format is
// the one every pass cares about).
type Graph struct {
	Ops    []*Operator
	Consts map[string]*Tensor
	Args   []Argument
}

// NewGraph returns an empty graph with its tensor table initialized and
// filter_format defaulted to HWIO, the layout every supported front-end
// importer is assumed to emit (spec §3, invariant 5).
func NewGraph() *Graph {
	g := &Graph{Consts: make(map[string]*Tensor)}
	g.SetFilterFormat(HWIO)
	return g
}

const filterFormatArgName = "filter_format"

// FilterFormat returns the graph-wide filter_format argument.
func (g *Graph) FilterFormat() FilterFormat {
	for _, a := range g.Args {
		if a.Name == filterFormatArgName {
			return FilterFormat(a.I)
		}
	}
	return FilterFormatUnspecified
}

// SetFilterFormat sets the graph-wide filter_format argument.
func (g *Graph) SetFilterFormat(f FilterFormat) {
	for i := range g.Args {
		if g.Args[i].Name == filterFormatArgName {
			g.Args[i].I = int64(f)
			return
		}
	}
	g.Args = append(g.Args, IntArgument(filterFormatArgName, int64(f)))
}

// RemoveOp deletes op from g.Ops by identity. It is a no-op if op is not
// present.
func (g *Graph) RemoveOp(op *Operator) {
	for i, candidate := range g.Ops {
		if candidate == op {
			g.Ops = append(g.Ops[:i], g.Ops[i+1:]...)
			return
		}
	}
}

// InsertOp appends op to the end of g.Ops. Passes that synthesize new
// operators (Winograd's three-op expansion, the buffer/image adapters, the
// boundary transposes) use this rather than splicing at a specific
// position: position in Ops is irrelevant until sort_by_execution replaces
// the list wholesale with a dependency-respecting order.
func (g *Graph) InsertOp(op *Operator) {
	g.Ops = append(g.Ops, op)
}
