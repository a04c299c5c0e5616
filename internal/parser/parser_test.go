package parser_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ossyrian/datparse/internal/config"
	"github.com/ossyrian/datparse/internal/dat"
	"github.com/ossyrian/datparse/internal/parser"
)

type fixture struct {
	name     string
	data     []byte
	compress bool
}

// buildDat lays out payloads back to back, then the directory tree, then
// the footer, the way DAT2 archives are written.
func buildDat(t *testing.T, files []fixture) []byte {
	t.Helper()

	var body bytes.Buffer
	var tree bytes.Buffer
	binary.Write(&tree, binary.LittleEndian, uint32(len(files)))

	for _, f := range files {
		stored := f.data
		typ := byte(0)
		if f.compress {
			var zb bytes.Buffer
			zw := zlib.NewWriter(&zb)
			_, err := zw.Write(f.data)
			require.NoError(t, err)
			require.NoError(t, zw.Close())
			stored = zb.Bytes()
			typ = dat.TypeCompressed
		}

		offset := uint32(body.Len())
		body.Write(stored)

		binary.Write(&tree, binary.LittleEndian, uint32(len(f.name)))
		tree.WriteString(f.name)
		tree.WriteByte(typ)
		binary.Write(&tree, binary.LittleEndian, uint32(len(f.data)))
		binary.Write(&tree, binary.LittleEndian, uint32(len(stored)))
		binary.Write(&tree, binary.LittleEndian, offset)
	}

	out := append(body.Bytes(), tree.Bytes()...)
	total := uint32(len(out) + dat.FooterSize)
	out = binary.LittleEndian.AppendUint32(out, uint32(tree.Len()))
	out = binary.LittleEndian.AppendUint32(out, total)
	return out
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleFiles() []fixture {
	return []fixture{
		{name: `ART\INTRFACE\IFACE.FRM`, data: []byte{0, 0, 0, 4, 1, 2, 3, 4}},
		{name: `text\english\game\misc.msg`, data: bytes.Repeat([]byte("{100}{}{Hi}\n"), 20), compress: true},
		{name: `COLOR.PAL`, data: make([]byte, 768)},
	}
}

func TestDatReader_ReadFooter(t *testing.T) {
	valid := buildDat(t, sampleFiles())

	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{name: "valid archive", input: valid},
		{name: "empty input", input: nil, wantErr: parser.ErrInvalidFooter},
		{name: "too short", input: []byte{1, 2, 3}, wantErr: parser.ErrInvalidFooter},
		{
			name:    "data size mismatch",
			input:   append(append([]byte{}, valid...), 0),
			wantErr: parser.ErrInvalidFooter,
		},
		{
			name: "tree larger than archive",
			input: func() []byte {
				b := append([]byte{}, valid...)
				binary.LittleEndian.PutUint32(b[len(b)-8:], uint32(len(b)))
				return b
			}(),
			wantErr: parser.ErrInvalidFooter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := parser.NewDatReader(bytes.NewReader(tt.input), quietLogger())
			require.NoError(t, err)

			f, err := r.ReadFooter()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint32(len(tt.input)), f.DataSize)
		})
	}
}

func TestDatReader_ReadDirTree(t *testing.T) {
	input := buildDat(t, sampleFiles())
	r, err := parser.NewDatReader(bytes.NewReader(input), quietLogger())
	require.NoError(t, err)

	metas, err := r.ReadDirTree()
	require.NoError(t, err)
	require.Len(t, metas, 3)

	assert.Equal(t, "art/intrface/iface.frm", metas[0].Name)
	assert.False(t, metas[0].Compressed)
	assert.Equal(t, uint32(8), metas[0].Size)
	assert.Equal(t, uint32(0), metas[0].Offset)

	assert.Equal(t, "text/english/game/misc.msg", metas[1].Name)
	assert.True(t, metas[1].Compressed)
	assert.Equal(t, uint32(8), metas[1].Offset)
	assert.Less(t, metas[1].PackedSize, metas[1].Size)

	assert.Equal(t, "color.pal", metas[2].Name)
}

func TestDatReader_CorruptTree(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(b []byte, treeOffset int)
		wantErr error
	}{
		{
			name: "file count too large",
			mutate: func(b []byte, treeOffset int) {
				binary.LittleEndian.PutUint32(b[treeOffset:], 1000)
			},
			wantErr: parser.ErrInvalidDirectory,
		},
		{
			name: "zero name size",
			mutate: func(b []byte, treeOffset int) {
				binary.LittleEndian.PutUint32(b[treeOffset+4:], 0)
			},
			wantErr: parser.ErrInvalidDirectory,
		},
		{
			name: "name runs past tree",
			mutate: func(b []byte, treeOffset int) {
				binary.LittleEndian.PutUint32(b[treeOffset+4:], 4000)
			},
			wantErr: parser.ErrInvalidDirectory,
		},
		{
			name: "payload past data end",
			mutate: func(b []byte, treeOffset int) {
				// offset field of the single record
				at := treeOffset + 4 + 4 + len("a.frm") + 1 + 4 + 4
				binary.LittleEndian.PutUint32(b[at:], 1<<20)
			},
			wantErr: parser.ErrInvalidDirectory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := buildDat(t, []fixture{{name: "a.frm", data: []byte{1, 2, 3, 4}}})
			treeSize := binary.LittleEndian.Uint32(input[len(input)-8:])
			treeOffset := len(input) - dat.FooterSize - int(treeSize)
			tt.mutate(input, treeOffset)

			r, err := parser.NewDatReader(bytes.NewReader(input), quietLogger())
			require.NoError(t, err)

			_, err = r.ReadDirTree()
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParse_ReadsEntries(t *testing.T) {
	files := sampleFiles()
	a, err := parser.Parse(bytes.NewReader(buildDat(t, files)), &config.Config{InputFile: "master.dat"})
	require.NoError(t, err)
	defer a.Close()

	require.Len(t, a.Entries(), len(files))

	for _, f := range files {
		e, err := a.Lookup(f.name)
		require.NoError(t, err, f.name)
		assert.False(t, e.IsOpen())

		got, err := e.ReadBytes(e.Size())
		require.NoError(t, err)
		assert.Equal(t, f.data, got, f.name)
	}

	_, err = a.Lookup("art/missing.frm")
	require.ErrorIs(t, err, parser.ErrEntryNotFound)
}

func TestParse_DuplicateNamesKeepFirst(t *testing.T) {
	files := []fixture{
		{name: "a.lst", data: []byte("first")},
		{name: "A.LST", data: []byte("second")},
	}
	a, err := parser.Parse(bytes.NewReader(buildDat(t, files)), &config.Config{InputFile: "dup.dat"})
	require.NoError(t, err)
	defer a.Close()

	require.Len(t, a.Entries(), 1)
	e, err := a.Lookup("a.lst")
	require.NoError(t, err)
	got, err := e.ReadBytes(e.Size())
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "critter.dat")
	require.NoError(t, os.WriteFile(path, buildDat(t, sampleFiles()), 0o644))

	a, err := parser.Open(&config.Config{InputFile: path})
	require.NoError(t, err)
	assert.Len(t, a.Entries(), 3)
	require.NoError(t, a.Close())

	_, err = parser.Open(&config.Config{InputFile: filepath.Join(t.TempDir(), "nope.dat")})
	require.ErrorIs(t, err, os.ErrNotExist)
}
