package dat

import (
	"fmt"
	"io"
	"sync"
)

// Source is the parent archive as seen by an Entry: a single logical
// read cursor that can be moved to an absolute offset and read forward.
//
// ReadRaw must return exactly n bytes or fail.
//
// A seek followed by a read is one unit of work. When a Source also
// implements sync.Locker, Entry holds the lock across that pair so two
// entries sharing the source never interleave their fetches.
type Source interface {
	Seek(offset int64) error
	ReadRaw(n int) ([]byte, error)
}

// FileSource adapts an io.ReadSeeker (usually the opened .dat file) to
// Source. It implements sync.Locker.
type FileSource struct {
	mu sync.Mutex
	rs io.ReadSeeker
}

// NewFileSource wraps rs. FileSource takes ownership: Close closes rs
// when it is an io.Closer.
func NewFileSource(rs io.ReadSeeker) *FileSource {
	return &FileSource{rs: rs}
}

// Lock acquires exclusive use of the underlying cursor.
func (s *FileSource) Lock() { s.mu.Lock() }

// Unlock releases the underlying cursor.
func (s *FileSource) Unlock() { s.mu.Unlock() }

// Seek moves the underlying cursor to an absolute offset.
func (s *FileSource) Seek(offset int64) error {
	if s == nil || s.rs == nil {
		return ErrNilSource
	}
	if _, err := s.rs.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek to %d: %w", offset, err)
	}
	return nil
}

// ReadRaw reads exactly n bytes from the current position.
func (s *FileSource) ReadRaw(n int) ([]byte, error) {
	if s == nil || s.rs == nil {
		return nil, ErrNilSource
	}
	if n < 0 {
		return nil, fmt.Errorf("invalid read length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.rs, buf); err != nil {
		return nil, fmt.Errorf("read %d bytes: %w", n, err)
	}
	return buf, nil
}

// Fetch reads n bytes at offset as one locked unit.
func (s *FileSource) Fetch(offset int64, n int) ([]byte, error) {
	s.Lock()
	defer s.Unlock()

	if err := s.Seek(offset); err != nil {
		return nil, err
	}
	return s.ReadRaw(n)
}

// Close closes the wrapped reader if it is closable.
func (s *FileSource) Close() error {
	if s == nil || s.rs == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.rs.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
