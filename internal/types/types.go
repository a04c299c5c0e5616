package dattypes

import (
	"github.com/ossyrian/datparse/internal/dat"
)

// Kind identifies how an entry's payload is interpreted, derived from
// its extension.
type Kind int

const (
	KindUnknown Kind = iota
	KindFrm          // sprite frames
	KindPal          // palette
	KindAaf          // font glyphs
	KindMsg          // message table
	KindLst          // name listing
	KindMap          // map header
)

func (k Kind) String() string {
	switch k {
	case KindFrm:
		return "frm"
	case KindPal:
		return "pal"
	case KindAaf:
		return "aaf"
	case KindMsg:
		return "msg"
	case KindLst:
		return "lst"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// KindOf classifies an entry name. FRM variants with a direction digit
// (.fr0 .. .fr5) count as FRM.
func KindOf(name string) Kind {
	switch ext := dat.Ext(dat.NormalizeName(name)); ext {
	case "frm", "fr0", "fr1", "fr2", "fr3", "fr4", "fr5":
		return KindFrm
	case "pal":
		return KindPal
	case "aaf":
		return KindAaf
	case "msg":
		return KindMsg
	case "lst":
		return KindLst
	case "map":
		return KindMap
	default:
		return KindUnknown
	}
}

// EntryRecord is the exported view of one archive entry.
type EntryRecord struct {
	Name       string `json:"name"`
	Kind       Kind   `json:"kind"`
	Offset     uint32 `json:"offset"`
	Size       uint32 `json:"size"`
	PackedSize uint32 `json:"packed_size,omitempty"`
	Compressed bool   `json:"compressed"`
}

// NewEntryRecord describes e without materializing it.
func NewEntryRecord(e *dat.Entry) EntryRecord {
	m := e.Meta()
	rec := EntryRecord{
		Name:       m.Name,
		Kind:       KindOf(m.Name),
		Offset:     m.Offset,
		Size:       m.Size,
		Compressed: m.Compressed,
	}
	if m.Compressed {
		rec.PackedSize = m.PackedSize
	}
	return rec
}

// Listing is the output of the list command.
type Listing struct {
	Archive    string        `json:"archive"`
	EntryCount int           `json:"entry_count"`
	Entries    []EntryRecord `json:"entries"`
}

// Document is the output of the show command: an entry plus its decoded
// payload, if its kind has a decoder.
type Document struct {
	Entry EntryRecord `json:"entry"`
	Value any         `json:"value,omitempty"`
}
