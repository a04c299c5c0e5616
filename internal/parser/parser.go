package parser

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ossyrian/datparse/internal/config"
	"github.com/ossyrian/datparse/internal/dat"
)

// maxNameSize bounds a single entry name; real archives stay far below it.
const maxNameSize = 4096

// DatReader reads the footer and directory tree of a DAT2 archive.
type DatReader struct {
	source *dat.FileSource
	size   int64 // total archive size
	logger *slog.Logger
	footer *dat.Footer
}

// NewDatReader wraps an already opened archive.
func NewDatReader(rs io.ReadSeeker, logger *slog.Logger) (*DatReader, error) {
	if logger == nil {
		logger = slog.Default()
	}

	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to determine archive size: %w", err)
	}

	return &DatReader{
		source: dat.NewFileSource(rs),
		size:   size,
		logger: logger,
	}, nil
}

// ReadFooter reads and validates the trailing 8 bytes of the archive.
// DataSize must match the real file size and the tree must fit in front
// of the footer.
func (r *DatReader) ReadFooter() (*dat.Footer, error) {
	if r.size < dat.FooterSize {
		return nil, fmt.Errorf("%w: archive is %d bytes", ErrInvalidFooter, r.size)
	}

	raw, err := r.source.Fetch(r.size-dat.FooterSize, dat.FooterSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read footer: %w", err)
	}

	f := &dat.Footer{
		TreeSize: binary.LittleEndian.Uint32(raw[0:4]),
		DataSize: binary.LittleEndian.Uint32(raw[4:8]),
	}

	if int64(f.DataSize) != r.size {
		return nil, fmt.Errorf("%w: data size %d does not match file size %d",
			ErrInvalidFooter, f.DataSize, r.size)
	}
	if int64(f.TreeSize) < 4 || int64(f.TreeSize) > r.size-dat.FooterSize {
		return nil, fmt.Errorf("%w: tree size %d", ErrInvalidFooter, f.TreeSize)
	}

	r.logger.Info("footer is valid",
		"tree_size", f.TreeSize,
		"data_size", f.DataSize,
		"tree_offset", f.TreeOffset(),
	)

	r.footer = f
	return f, nil
}

// ReadDirTree reads every directory record. ReadFooter must be called first.
func (r *DatReader) ReadDirTree() ([]dat.Meta, error) {
	if r.footer == nil {
		if _, err := r.ReadFooter(); err != nil {
			return nil, err
		}
	}

	treeOffset := r.footer.TreeOffset()
	tree, err := r.source.Fetch(treeOffset, int(r.footer.TreeSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read directory tree: %w", err)
	}

	br := bytes.NewReader(tree)

	var filesTotal uint32
	if err := binary.Read(br, binary.LittleEndian, &filesTotal); err != nil {
		return nil, fmt.Errorf("%w: failed to read file count: %w", ErrInvalidDirectory, err)
	}

	// Each record needs at least 17 bytes; reject counts the tree cannot hold.
	if int64(filesTotal)*17 > int64(br.Len()) {
		return nil, fmt.Errorf("%w: %d files do not fit in %d tree bytes",
			ErrInvalidDirectory, filesTotal, br.Len())
	}

	r.logger.Debug("reading directory entries", "entry_count", filesTotal)

	metas := make([]dat.Meta, 0, filesTotal)
	for i := 0; i < int(filesTotal); i++ {
		m, err := r.ReadDirEntry(br)
		if err != nil {
			return nil, fmt.Errorf("failed to read entry %d: %w", i, err)
		}

		stored := int64(m.Size)
		if m.Compressed {
			stored = int64(m.PackedSize)
		}
		if int64(m.Offset)+stored > treeOffset {
			return nil, fmt.Errorf("%w: %s spans [%d, %d) past data end %d",
				ErrInvalidDirectory, m.Name, m.Offset, int64(m.Offset)+stored, treeOffset)
		}

		r.logger.Debug("read directory entry",
			"index", i,
			"name", m.Name,
			"compressed", m.Compressed,
			"size", m.Size,
			"packed_size", m.PackedSize,
			"offset", m.Offset,
		)

		metas = append(metas, m)
	}

	r.logger.Info("read directory", "entry_count", len(metas))

	return metas, nil
}

// ReadDirEntry reads one directory record:
//
//	[nameSize u32][name][type u8][realSize u32][packedSize u32][offset u32]
//
// all little-endian.
func (r *DatReader) ReadDirEntry(br *bytes.Reader) (dat.Meta, error) {
	var m dat.Meta

	var nameSize uint32
	if err := binary.Read(br, binary.LittleEndian, &nameSize); err != nil {
		return m, fmt.Errorf("%w: failed to read name size: %w", ErrInvalidDirectory, err)
	}
	if nameSize == 0 || nameSize > maxNameSize {
		return m, fmt.Errorf("%w: name size %d", ErrInvalidDirectory, nameSize)
	}

	name := make([]byte, nameSize)
	if _, err := io.ReadFull(br, name); err != nil {
		return m, fmt.Errorf("%w: failed to read name: %w", ErrInvalidDirectory, err)
	}
	m.Name = dat.NormalizeName(string(name))

	var rec struct {
		Type       byte
		Size       uint32
		PackedSize uint32
		Offset     uint32
	}
	if err := binary.Read(br, binary.LittleEndian, &rec); err != nil {
		return m, fmt.Errorf("%w: failed to read record for %s: %w", ErrInvalidDirectory, m.Name, err)
	}

	m.Compressed = rec.Type == dat.TypeCompressed
	m.Size = rec.Size
	m.PackedSize = rec.PackedSize
	m.Offset = rec.Offset

	return m, nil
}

// Parse reads the directory of an opened archive and builds its entries.
// The returned Archive owns rs.
func Parse(rs io.ReadSeeker, cfg *config.Config) (*Archive, error) {
	logger := slog.With("file", cfg.InputFile)
	logger.Info("starting")

	reader, err := NewDatReader(rs, logger)
	if err != nil {
		return nil, err
	}

	footer, err := reader.ReadFooter()
	if err != nil {
		return nil, err
	}

	metas, err := reader.ReadDirTree()
	if err != nil {
		return nil, err
	}

	return newArchive(cfg.InputFile, *footer, reader.source, metas, logger), nil
}

// Open opens the archive named by cfg.InputFile.
func Open(cfg *config.Config) (*Archive, error) {
	file, err := os.Open(cfg.InputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open DAT file: %w", err)
	}

	a, err := Parse(file, cfg)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return a, nil
}
