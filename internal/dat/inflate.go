package dat

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Inflate decompresses a zlib stream in one shot and returns exactly
// size bytes. A stream that ends early, carries trailing output past
// size, or fails its checksum is reported as ErrDecompress; no partial
// result is ever returned.
func Inflate(compressed []byte, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative output size %d", ErrDecompress, size)
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}
	defer zr.Close()

	out := make([]byte, size)
	n, err := io.ReadFull(zr, out)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: stream produced %d of %d bytes", ErrDecompress, n, size)
		}
		return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}

	// Drain to the end of the stream so overflow and checksum errors surface.
	var probe [1]byte
	extra, err := zr.Read(probe[:])
	if extra > 0 {
		return nil, fmt.Errorf("%w: stream produced more than %d bytes", ErrDecompress, size)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}
	if err == nil {
		// A zero-byte read without EOF; finish the stream explicitly.
		rest, err := io.Copy(io.Discard, zr)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
		}
		if rest > 0 {
			return nil, fmt.Errorf("%w: stream produced more than %d bytes", ErrDecompress, size)
		}
	}

	return out, nil
}
