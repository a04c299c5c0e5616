package dat

import (
	"encoding/binary"
	"fmt"
)

// The cursor functions read big-endian values out of buf at pos and
// return the value together with the advanced position. They hold no
// state; the authoritative position lives in the Entry.
//
// A read that would run past the end of buf fails with ErrOutOfRange
// and returns pos unchanged.

func checkSpan(buf []byte, pos, n int) error {
	if pos < 0 || n < 0 || pos > len(buf) || n > len(buf)-pos {
		return fmt.Errorf("%w: read of %d bytes at %d, buffer is %d bytes",
			ErrOutOfRange, n, pos, len(buf))
	}
	return nil
}

func readU8(buf []byte, pos int) (uint8, int, error) {
	if err := checkSpan(buf, pos, 1); err != nil {
		return 0, pos, err
	}
	return buf[pos], pos + 1, nil
}

func readU16(buf []byte, pos int) (uint16, int, error) {
	if err := checkSpan(buf, pos, 2); err != nil {
		return 0, pos, err
	}
	return binary.BigEndian.Uint16(buf[pos:]), pos + 2, nil
}

func readU32(buf []byte, pos int) (uint32, int, error) {
	if err := checkSpan(buf, pos, 4); err != nil {
		return 0, pos, err
	}
	return binary.BigEndian.Uint32(buf[pos:]), pos + 4, nil
}

// readBytes copies n bytes so the caller never aliases the entry buffer,
// which is released on Close.
func readBytes(buf []byte, pos, n int) ([]byte, int, error) {
	if err := checkSpan(buf, pos, n); err != nil {
		return nil, pos, err
	}
	out := make([]byte, n)
	copy(out, buf[pos:pos+n])
	return out, pos + n, nil
}
