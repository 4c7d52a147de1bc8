package ir

import "errors"

// The error taxonomy a failed pass raises. A pass aborts the whole
// compilation on any of these; there is no partial-mutation recovery (spec
// §7 — offline compilation accepts a fail-fast engine).
var (
	// ErrUnsupportedFilterFormat is raised when a pass encounters a
	// filter_format it has no rewrite rule for.
	ErrUnsupportedFilterFormat = errors.New("ir: unsupported filter format")

	// ErrUnsupportedAxis is raised when a Concat/Slice axis is not the
	// channel axis during a data-format transpose.
	ErrUnsupportedAxis = errors.New("ir: unsupported axis")

	// ErrMissingOutput is raised when sort_by_execution cannot locate a
	// declared output's externally-named tensor in the producer map.
	ErrMissingOutput = errors.New("ir: missing output")

	// ErrMalformedGraph is raised when an operator input references an
	// unknown tensor name: no producer, not a constant, not a declared
	// model input.
	ErrMalformedGraph = errors.New("ir: malformed graph")
)
