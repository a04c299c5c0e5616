package dat

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Meta is the directory record of an entry as resolved from the
// archive's name table.
type Meta struct {
	Name       string
	Offset     uint32
	Size       uint32 // uncompressed size
	PackedSize uint32 // meaningful only when Compressed is set
	Compressed bool
}

// Entry is one named payload of an archive. Its bytes are materialized
// lazily and read through a big-endian cursor.
//
// Every value read (ReadU8 .. ReadI32, ReadBytes, Read) calls Open
// first. Seek, Skip and Position never do: they only move or report the
// cursor, which is valid whether or not the entry is open.
//
// Close releases the buffer but leaves the cursor where it was; a later
// read re-materializes identical bytes at the same position.
//
// An Entry is not safe for concurrent use.
type Entry struct {
	src    Source
	meta   Meta
	logger *slog.Logger

	buf  []byte
	open bool
	pos  int
}

// NewEntry builds an entry over src from its directory record. The name
// is normalized with NormalizeName.
func NewEntry(src Source, meta Meta) *Entry {
	meta.Name = NormalizeName(meta.Name)
	return &Entry{src: src, meta: meta}
}

// SetLogger sets the logger used for materialization events.
func (e *Entry) SetLogger(logger *slog.Logger) {
	e.logger = logger
}

func (e *Entry) log() *slog.Logger {
	if e.logger == nil {
		return slog.Default()
	}
	return e.logger
}

// Name returns the normalized entry name.
func (e *Entry) Name() string { return e.meta.Name }

// Offset returns the payload offset within the archive.
func (e *Entry) Offset() uint32 { return e.meta.Offset }

// PackedSize returns the stored payload size of a compressed entry.
func (e *Entry) PackedSize() uint32 { return e.meta.PackedSize }

// Compressed reports whether the payload is a zlib stream.
func (e *Entry) Compressed() bool { return e.meta.Compressed }

// Meta returns a copy of the entry's directory record.
func (e *Entry) Meta() Meta { return e.meta }

// Size returns the uncompressed size.
func (e *Entry) Size() int { return int(e.meta.Size) }

// IsOpen reports whether the entry currently holds its bytes.
func (e *Entry) IsOpen() bool { return e.open }

// Position returns the cursor offset.
func (e *Entry) Position() int { return e.pos }

// Open materializes the entry. It is a no-op on an open entry. On
// failure the entry stays closed.
func (e *Entry) Open() error {
	if e.open {
		return nil
	}
	if e.src == nil {
		return fmt.Errorf("%w: %s", ErrNilSource, e.meta.Name)
	}

	fetch := e.Size()
	if e.meta.Compressed {
		fetch = int(e.meta.PackedSize)
	}

	raw, err := e.fetch(int64(e.meta.Offset), fetch)
	if err != nil {
		return fmt.Errorf("%w: %s at offset %d: %w", ErrSourceRead, e.meta.Name, e.meta.Offset, err)
	}

	if !e.meta.Compressed {
		if len(raw) != e.Size() {
			return fmt.Errorf("%w: %s: got %d of %d bytes", ErrSourceRead, e.meta.Name, len(raw), e.Size())
		}
		e.buf = raw
	} else {
		data, err := Inflate(raw, e.Size())
		if err != nil {
			return fmt.Errorf("%s: %w", e.meta.Name, err)
		}
		e.buf = data
	}
	e.open = true

	e.log().Debug("materialized entry",
		"name", e.meta.Name,
		"offset", e.meta.Offset,
		"size", e.meta.Size,
		"packed_size", e.meta.PackedSize,
		"compressed", e.meta.Compressed,
	)

	return nil
}

// fetch performs the seek+read pair, holding the source lock if it has one.
func (e *Entry) fetch(offset int64, n int) ([]byte, error) {
	if l, ok := e.src.(sync.Locker); ok {
		l.Lock()
		defer l.Unlock()
	}

	if err := e.src.Seek(offset); err != nil {
		return nil, err
	}
	return e.src.ReadRaw(n)
}

// Close releases the materialized bytes. Closing a closed entry is a no-op.
func (e *Entry) Close() error {
	e.buf = nil
	e.open = false
	return nil
}

// Seek sets the cursor to an absolute offset in [0, Size()].
func (e *Entry) Seek(offset int) error {
	if offset < 0 || offset > e.Size() {
		return fmt.Errorf("%w: seek to %d in %s (size %d)", ErrOutOfRange, offset, e.meta.Name, e.Size())
	}
	e.pos = offset
	return nil
}

// Skip moves the cursor forward by n bytes without reading.
func (e *Entry) Skip(n int) error {
	if n < 0 || n > e.Size()-e.pos {
		return fmt.Errorf("%w: skip %d from %d in %s (size %d)", ErrOutOfRange, n, e.pos, e.meta.Name, e.Size())
	}
	e.pos += n
	return nil
}

// ReadU8 reads one byte.
func (e *Entry) ReadU8() (uint8, error) {
	if err := e.Open(); err != nil {
		return 0, err
	}
	v, pos, err := readU8(e.buf, e.pos)
	if err != nil {
		return 0, e.rangeErr(err)
	}
	e.pos = pos
	return v, nil
}

// ReadU16 reads a big-endian uint16.
func (e *Entry) ReadU16() (uint16, error) {
	if err := e.Open(); err != nil {
		return 0, err
	}
	v, pos, err := readU16(e.buf, e.pos)
	if err != nil {
		return 0, e.rangeErr(err)
	}
	e.pos = pos
	return v, nil
}

// ReadU32 reads a big-endian uint32.
func (e *Entry) ReadU32() (uint32, error) {
	if err := e.Open(); err != nil {
		return 0, err
	}
	v, pos, err := readU32(e.buf, e.pos)
	if err != nil {
		return 0, e.rangeErr(err)
	}
	e.pos = pos
	return v, nil
}

// ReadI8 reads one byte as two's complement.
func (e *Entry) ReadI8() (int8, error) {
	v, err := e.ReadU8()
	return int8(v), err
}

// ReadI16 reads a big-endian int16.
func (e *Entry) ReadI16() (int16, error) {
	v, err := e.ReadU16()
	return int16(v), err
}

// ReadI32 reads a big-endian int32.
func (e *Entry) ReadI32() (int32, error) {
	v, err := e.ReadU32()
	return int32(v), err
}

// ReadBytes copies n bytes starting at the cursor.
func (e *Entry) ReadBytes(n int) ([]byte, error) {
	if err := e.Open(); err != nil {
		return nil, err
	}
	b, pos, err := readBytes(e.buf, e.pos, n)
	if err != nil {
		return nil, e.rangeErr(err)
	}
	e.pos = pos
	return b, nil
}

// Read implements io.Reader over the remaining bytes of the entry.
func (e *Entry) Read(p []byte) (int, error) {
	if err := e.Open(); err != nil {
		return 0, err
	}
	if e.pos >= len(e.buf) {
		return 0, io.EOF
	}
	n := copy(p, e.buf[e.pos:])
	e.pos += n
	return n, nil
}

func (e *Entry) rangeErr(err error) error {
	return fmt.Errorf("%s: %w", e.meta.Name, err)
}
