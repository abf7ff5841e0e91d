package mosespg

import "errors"

// Client-misuse errors (SPEC_FULL.md §7 kind 7): failures the engine can
// detect locally, before anything is sent to the server, so it never
// wastes a round trip reporting them.
var (
	ErrFormatCodeMismatch     = errors.New("mosespg: format code count must be 0, 1, or equal to the value count")
	ErrInvalidFormatCode      = errors.New("mosespg: format code must be 0 (text) or 1 (binary)")
	ErrStatementAlreadyClosed = errors.New("mosespg: statement is already closed")
	ErrConnClosed             = errors.New("mosespg: connection is closed")
	ErrCopyUnsupported        = errors.New("mosespg: COPY streaming is not supported")
	ErrFastPathUnsupported    = errors.New("mosespg: fastpath function calls are not supported")
)
