package ir

// Index is the set of lookup structures the coordinator rebuilds from
// scratch before every pass invocation (spec §4.2, §5): by-name operator
// and constant lookup, the producer map (output tensor name -> producing
// operator), and the consumer map (input tensor name -> ordered list of
// consuming operators). Index holds only names and borrowed *Operator/
// *Tensor pointers; it is never mutated in place and is discarded as soon
// as the pass that used it returns.
type Index struct {
	Ops       map[string]*Operator
	Consts    map[string]*Tensor
	Producer  map[string]*Operator
	Consumers map[string][]*Operator

	// InputOps holds the synthesized Input pseudo-operators, in
	// CompileOption.Inputs order. Each is also registered in Producer under
	// its input name, which is how sort_by_execution reaches it and places
	// it in the final operator list when it is reachable from a declared
	// output (spec §4.2, §4.3.15).
	InputOps []*Operator
}

// BuildIndex rebuilds the index structures from the current graph and
// compile option. For each declared model input it synthesizes an Input
// pseudo-op with one output (the input name) and an output shape equal to
// the declared shape, transposed to NCHW on a CPU target (spec §4.2).
func BuildIndex(g *Graph, opt *CompileOption) *Index {
	idx := &Index{
		Ops:       make(map[string]*Operator, len(g.Ops)),
		Consts:    make(map[string]*Tensor, len(g.Consts)),
		Producer:  make(map[string]*Operator),
		Consumers: make(map[string][]*Operator),
	}

	for _, op := range g.Ops {
		idx.Ops[op.Name] = op
		for _, in := range op.Inputs {
			idx.Consumers[in] = append(idx.Consumers[in], op)
		}
		for _, out := range op.Outputs {
			idx.Producer[out] = op
		}
	}

	for name, t := range g.Consts {
		idx.Consts[name] = t
	}

	for _, in := range opt.Inputs {
		shape := append([]int(nil), in.Shape...)
		format := NHWC
		if opt.Device == CPU {
			shape = PermuteInts(shape, []int{0, 3, 1, 2})
			format = NCHW
		}

		pseudo := &Operator{
			Name:         NormalizeOpName(in.Name),
			Type:         OpInput,
			Outputs:      []string{in.Name},
			OutputShapes: [][]int{shape},
			DataFormat:   format,
		}

		idx.Ops[pseudo.Name] = pseudo
		idx.Producer[in.Name] = pseudo
		idx.InputOps = append(idx.InputOps, pseudo)
	}

	return idx
}

// ConsumerCount returns the number of operators that read tensor as an
// input.
func (idx *Index) ConsumerCount(tensor string) int {
	return len(idx.Consumers[tensor])
}

// SoleConsumer returns tensor's single consumer operator. ok is false if
// tensor has zero or more than one consumer.
func (idx *Index) SoleConsumer(tensor string) (op *Operator, ok bool) {
	consumers := idx.Consumers[tensor]
	if len(consumers) != 1 {
		return nil, false
	}
	return consumers[0], true
}
