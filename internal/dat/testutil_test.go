package dat

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
)

// deflate compresses data into a zlib stream for fixtures.
func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// countingSource records fetches made against an in-memory archive.
type countingSource struct {
	*FileSource
	seeks int
	reads int
}

func newCountingSource(data []byte) *countingSource {
	return &countingSource{FileSource: NewFileSource(bytes.NewReader(data))}
}

func (s *countingSource) Seek(offset int64) error {
	s.seeks++
	return s.FileSource.Seek(offset)
}

func (s *countingSource) ReadRaw(n int) ([]byte, error) {
	s.reads++
	return s.FileSource.ReadRaw(n)
}

// failingSource fails every read.
type failingSource struct{}

func (failingSource) Seek(int64) error { return nil }

func (failingSource) ReadRaw(int) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

// archiveWith places payload at offset inside a zero-filled archive.
func archiveWith(offset int, payload []byte) []byte {
	data := make([]byte, offset+len(payload)+16)
	copy(data[offset:], payload)
	return data
}

// nilSource answers every read with a nil slice, which is a valid reply
// to a zero-length read.
type nilSource struct {
	reads int
}

func (*nilSource) Seek(int64) error { return nil }

func (s *nilSource) ReadRaw(n int) ([]byte, error) {
	s.reads++
	if n != 0 {
		return nil, errors.New("nilSource only serves empty reads")
	}
	return nil, nil
}
