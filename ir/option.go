package ir

// InputSpec is a single declared model input: its external name and its
// shape in NHWC order, as supplied by the front-end importer regardless of
// the target device.
type InputSpec struct {
	Name  string
	Shape []int
}

// CompileOption is the user-supplied configuration the coordinator drives
// the pipeline with. It is constructed directly by library callers (there
// is no config-file format for it — see SPEC_FULL.md §2.4) and mirrors the
// external compile option contract in spec §6.
type CompileOption struct {
	Device Device

	// Inputs lists the declared model inputs in a fixed order, so that the
	// Input pseudo-ops and, on a CPU target, the boundary Transpose ops
	// transpose_data_format inserts are reproducible across runs.
	Inputs []InputSpec

	// Outputs is the set of declared output-node names, in a fixed order
	// for the same reason.
	Outputs []string

	DataType        DataType
	WinogradEnabled bool

	// Verbose gates the per-pass progress logging described in
	// SPEC_FULL.md §2.2/§4.5; Run is still a pure function of (Graph,
	// CompileOption) regardless of its value.
	Verbose bool
}

// IsDeclaredOutput reports whether name is one of the declared output-node
// names.
func (o *CompileOption) IsDeclaredOutput(name string) bool {
	for _, n := range o.Outputs {
		if n == name {
			return true
		}
	}
	return false
}
