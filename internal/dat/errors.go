package dat

import "errors"

// Sentinel errors for entry access. Use errors.Is in callers.
var (
	// ErrSourceRead means the archive source could not supply the requested bytes.
	ErrSourceRead = errors.New("dat: source read failed")
	// ErrDecompress means the payload stream is malformed or inflates to the wrong size.
	ErrDecompress = errors.New("dat: decompression failed")
	// ErrOutOfRange means a read or cursor move would leave the entry bounds.
	ErrOutOfRange = errors.New("dat: position out of range")
	// ErrNilSource means the entry has no source to fetch from.
	ErrNilSource = errors.New("dat: source is nil")
)
