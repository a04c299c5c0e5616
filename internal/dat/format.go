package dat

// Constants describing the DAT2 container layout.
const (
	// FooterSize is the size of the trailing TreeSize + DataSize block.
	FooterSize = 8

	// TypeCompressed marks an entry whose payload is a zlib stream.
	TypeCompressed byte = 1
)

// Footer is the trailer of a DAT2 archive. Both fields are little-endian
// on disk, unlike entry payloads.
type Footer struct {
	TreeSize uint32 // size of the directory tree, file count included
	DataSize uint32 // size of the whole archive
}

// TreeOffset returns the absolute offset of the directory tree.
func (f Footer) TreeOffset() int64 {
	return int64(f.DataSize) - FooterSize - int64(f.TreeSize)
}
