package decode

import "fmt"

const (
	aafMagic      = 0x41414646 // "AAFF"
	aafGlyphs     = 256
	aafGlyphStart = 0x080C
)

// Glyph is one character bitmap; each byte is a brightness level.
type Glyph struct {
	Width  uint16 `json:"width"`
	Height uint16 `json:"height"`
	Pixels []byte `json:"-"`
}

// Aaf is a decoded bitmap font.
type Aaf struct {
	MaxHeight     uint16  `json:"max_height"`
	HorizontalGap uint16  `json:"horizontal_gap"`
	SpaceWidth    uint16  `json:"space_width"`
	VerticalGap   uint16  `json:"vertical_gap"`
	Glyphs        []Glyph `json:"glyphs"`
}

// NewAaf decodes an AAF font: a header, 256 glyph descriptors, then the
// glyph bitmaps addressed relative to the end of the descriptors.
func NewAaf(r Reader) (*Aaf, error) {
	if err := r.Seek(0); err != nil {
		return nil, err
	}

	f := &fieldReader{r: r}
	magic := f.u32()
	if f.err == nil && magic != aafMagic {
		return nil, fmt.Errorf("%w: aaf magic %#08x", ErrFormat, magic)
	}

	aaf := &Aaf{
		MaxHeight:     f.u16(),
		HorizontalGap: f.u16(),
		SpaceWidth:    f.u16(),
		VerticalGap:   f.u16(),
		Glyphs:        make([]Glyph, aafGlyphs),
	}

	var offsets [aafGlyphs]uint32
	for i := range aaf.Glyphs {
		aaf.Glyphs[i].Width = f.u16()
		aaf.Glyphs[i].Height = f.u16()
		offsets[i] = f.u32()
	}
	if f.err != nil {
		return nil, fmt.Errorf("aaf header: %w", f.err)
	}

	for i := range aaf.Glyphs {
		g := &aaf.Glyphs[i]
		n := int(g.Width) * int(g.Height)
		if n == 0 {
			continue
		}

		start := int64(aafGlyphStart) + int64(offsets[i])
		if start > int64(r.Size()) {
			return nil, fmt.Errorf("%w: glyph %d at %d past end %d", ErrFormat, i, start, r.Size())
		}
		if err := r.Seek(int(start)); err != nil {
			return nil, err
		}

		pixels, err := r.ReadBytes(n)
		if err != nil {
			return nil, fmt.Errorf("glyph %d: %w", i, err)
		}
		g.Pixels = pixels
	}

	return aaf, nil
}
