package ir

// IsOutputNode reports whether op produces a tensor named in
// opt.Outputs. A pass must not fold or remove an operator that feeds a
// declared output without first preserving the output's external name
// (spec §4.3.4, §4.3.9, §4.3.10).
func IsOutputNode(opt *CompileOption, op *Operator) bool {
	for _, out := range op.Outputs {
		if opt.IsDeclaredOutput(out) {
			return true
		}
	}
	return false
}

// FoldableProducer returns the operator producing tensor, provided it has
// exactly one consumer (the op requesting the fold) and does not feed a
// declared output. This is the guard shared by fold_softmax (its
// producer-Reshape bypass), fold_biasadd and fold_activation: each folds
// a producer into its sole consumer only when doing so cannot silently
// drop a still-needed external name or a tensor another op still reads
// (spec §4.3.3, §4.3.9, §4.3.10). fold_conv_and_bn and
// fold_depthwise_conv_and_bn do not use it: they only require the
// FoldedBatchNorm to be the sole consumer, and fold even when the
// convolution's output is a declared output.
func FoldableProducer(idx *Index, opt *CompileOption, tensor string) (*Operator, bool) {
	producer, ok := idx.Producer[tensor]
	if !ok {
		return nil, false
	}
	if idx.ConsumerCount(tensor) != 1 {
		return nil, false
	}
	if IsOutputNode(opt, producer) {
		return nil, false
	}
	return producer, true
}

// ReplaceInput rewrites every occurrence of oldName in op.Inputs to
// newName, in place.
func ReplaceInput(op *Operator, oldName, newName string) {
	for i, in := range op.Inputs {
		if in == oldName {
			op.Inputs[i] = newName
		}
	}
}

// ReplaceOutputNode splices survivor into removed's place when removed is
// a declared output: survivor's matching output name is renamed to
// removed's, so the external name a later stage (or sort_by_execution)
// looks up by keeps resolving correctly, and every remaining consumer of
// survivor's old name is repointed at the renamed one (spec §4.3.9, item
// 3 on the asymmetric-guard Open Question in SPEC_FULL.md §5).
func ReplaceOutputNode(idx *Index, removed, survivor *Operator) {
	if len(removed.Outputs) == 0 || len(survivor.Outputs) == 0 {
		return
	}
	oldName := survivor.Outputs[0]
	newName := removed.Outputs[0]
	if oldName == newName {
		return
	}

	survivor.Outputs[0] = newName
	for _, consumer := range idx.Consumers[oldName] {
		if consumer == removed {
			continue
		}
		ReplaceInput(consumer, oldName, newName)
	}
}
