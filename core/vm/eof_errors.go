package vm

import "errors"

// Sentinel errors forming the rejection taxonomy of §7. Validate itself
// returns only a bool — these exist so callers that want a reason (CLI
// diagnostics, tests) can get one via ValidateDetailed without the core
// pure-function contract having to carry error plumbing through every
// phase.
var (
	// ErrNotEOF is not a failure: it signals legacy passthrough. It is
	// never returned by ValidateDetailed, which always accepts non-EOF
	// input, but is exported so callers can name the case explicitly.
	ErrNotEOF = errors.New("eof: not an EOF container, treated as legacy code")

	ErrTruncatedHeader     = errors.New("eof: header read past end of container")
	ErrBadSentinel         = errors.New("eof: unexpected byte at a mandated header position")
	ErrBadSectionCount     = errors.New("eof: invalid number of code sections")
	ErrBadTypeEntry        = errors.New("eof: type entry violates input/output/max-stack bounds")
	ErrLengthMismatch      = errors.New("eof: declared body length does not match actual remainder")
	ErrUndefinedOpcode     = errors.New("eof: opcode not in the allowed set")
	ErrImmediateOverrun    = errors.New("eof: push or jump immediate runs past the code section")
	ErrJumpOutOfBounds     = errors.New("eof: relative jump target outside its code section")
	ErrJumpIntoImmediate   = errors.New("eof: relative jump target lands inside an immediate")
	ErrBadTerminatorOpcode = errors.New("eof: code section does not end on a terminating opcode")
	ErrEmptyJumpTable      = errors.New("eof: RJUMPV table_size is zero")
)

// ValidationError pairs a taxonomy sentinel with the byte offset where the
// violation was detected, for callers that want more than a boolean.
type ValidationError struct {
	Err    error
	Offset int
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func fail(err error, offset int) *ValidationError {
	return &ValidationError{Err: err, Offset: offset}
}
