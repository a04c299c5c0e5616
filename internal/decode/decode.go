// Package decode interprets entry payloads as structured game formats.
//
// Decoders borrow a Reader for the duration of the call and return
// values they own; they never hold on to the Reader.
package decode

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"

	dattypes "github.com/ossyrian/datparse/internal/types"
)

// ErrFormat means the payload does not match the decoder's layout.
var ErrFormat = errors.New("decode: malformed payload")

// Reader is the cursor interface decoders drive. *dat.Entry implements it.
type Reader interface {
	ReadU8() (uint8, error)
	ReadU16() (uint16, error)
	ReadU32() (uint32, error)
	ReadI8() (int8, error)
	ReadI16() (int16, error)
	ReadI32() (int32, error)
	ReadBytes(n int) ([]byte, error)
	Skip(n int) error
	Seek(offset int) error
	Position() int
	Size() int
}

// Decode runs the decoder registered for kind.
func Decode(kind dattypes.Kind, r Reader) (any, error) {
	switch kind {
	case dattypes.KindFrm:
		return NewFrm(r)
	case dattypes.KindPal:
		return NewPalette(r)
	case dattypes.KindAaf:
		return NewAaf(r)
	case dattypes.KindMsg:
		return NewMsg(r)
	case dattypes.KindLst:
		return NewLst(r)
	case dattypes.KindMap:
		return NewMapHeader(r)
	default:
		return nil, fmt.Errorf("no decoder for kind %s", kind)
	}
}

// readText reads the whole payload as Windows-1252 text.
func readText(r Reader) (string, error) {
	if err := r.Seek(0); err != nil {
		return "", err
	}
	raw, err := r.ReadBytes(r.Size())
	if err != nil {
		return "", err
	}
	text, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: text encoding: %w", ErrFormat, err)
	}
	return string(text), nil
}

// fieldReader accumulates the first error of a fixed sequence of reads so
// header decoders can read field after field and check once.
type fieldReader struct {
	r   Reader
	err error
}

func (f *fieldReader) u16() uint16 {
	if f.err != nil {
		return 0
	}
	var v uint16
	v, f.err = f.r.ReadU16()
	return v
}

func (f *fieldReader) u32() uint32 {
	if f.err != nil {
		return 0
	}
	var v uint32
	v, f.err = f.r.ReadU32()
	return v
}

func (f *fieldReader) i16() int16 {
	if f.err != nil {
		return 0
	}
	var v int16
	v, f.err = f.r.ReadI16()
	return v
}

func (f *fieldReader) i32() int32 {
	if f.err != nil {
		return 0
	}
	var v int32
	v, f.err = f.r.ReadI32()
	return v
}

func (f *fieldReader) bytes(n int) []byte {
	if f.err != nil {
		return nil
	}
	var v []byte
	v, f.err = f.r.ReadBytes(n)
	return v
}

func (f *fieldReader) skip(n int) {
	if f.err != nil {
		return
	}
	f.err = f.r.Skip(n)
}
