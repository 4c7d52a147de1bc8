package ir

import "strings"

// OutputNodePrefix is prepended, with an underscore, to a declared output
// node's name to form the externally-visible tensor name sort_by_execution
// looks the producer up by (spec §4.3.15). Fixed as a module-local constant
// per the reference converter's own scheme (SPEC_FULL.md §4.2).
const OutputNodePrefix = "output_node"

// InputNodePrefix is the equivalent prefix used for the internal tensor
// name a boundary Transpose writes: the Transpose reads the declared input
// name and the input's consumers are repointed at the prefixed name (spec
// §4.3.12). The GPU BufferToImage boundary adapter does not use it; it
// names its output with a "_b2i" suffix instead.
const InputNodePrefix = "input_node"

// OutputTensorName returns the prefixed tensor name sort_by_execution
// tries first when resolving a declared output node. The boundary-adapter
// insertion passes use it as the stem of the internal name they rename the
// original producer's output to.
func OutputTensorName(name string) string {
	return OutputNodePrefix + "_" + name
}

// InputTensorName returns the internal tensor name a boundary Transpose
// placed in front of declared input `name` writes.
func InputTensorName(name string) string {
	return InputNodePrefix + "_" + name
}

// NormalizeOpName sanitizes a tensor name for use as a synthesized
// operator's name: front-end importers may carry a framework-specific
// ":<index>" suffix on tensor names (e.g. "logits:0") that is not legal
// punctuation for an operator name in this IR (SPEC_FULL.md §4, item 1).
func NormalizeOpName(name string) string {
	return strings.ReplaceAll(name, ":", "_")
}
