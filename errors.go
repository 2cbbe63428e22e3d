// Error values returned by the chunk codec.
//
// Copyright 2023 Tobias Klausmann
// Licensed under the GPLv3, see COPYING for details
//

package main

import "errors"

// All errors are terminal for the operation that raised them: malformed
// or corrupted input is never retried or repaired. Returned errors wrap
// one of these sentinels with got/expected context, so callers match
// them with errors.Is.
var (
	ErrInvalidSignature = errors.New("invalid PNG signature")
	ErrInvalidTypeCode  = errors.New("invalid chunk type code")
	ErrUnexpectedEOF    = errors.New("unexpected end of input")
	ErrCRCMismatch      = errors.New("chunk CRC mismatch")
	ErrMissingEndChunk  = errors.New("missing IEND chunk")
	ErrChunkNotFound    = errors.New("chunk not found")
	ErrProtectedChunk   = errors.New("protected chunk")
	ErrInvalidText      = errors.New("chunk data is not valid UTF-8")
)
