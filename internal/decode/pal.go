package decode

import "fmt"

const paletteColors = 256

// Color is an 8-bit RGBA color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Palette maps FRM pixel indexes to colors.
type Palette struct {
	Colors [paletteColors]Color `json:"colors"`
}

// NewPalette decodes the 768-byte color table at the start of a PAL
// entry. Components are 6-bit and scaled by 4. A color with any
// component above 63 is unused and decodes as transparent, as does
// index 0.
func NewPalette(r Reader) (*Palette, error) {
	if r.Size() < paletteColors*3 {
		return nil, fmt.Errorf("%w: palette needs %d bytes, entry has %d", ErrFormat, paletteColors*3, r.Size())
	}
	if err := r.Seek(0); err != nil {
		return nil, err
	}

	raw, err := r.ReadBytes(paletteColors * 3)
	if err != nil {
		return nil, err
	}

	p := &Palette{}
	for i := range p.Colors {
		red, green, blue := raw[i*3], raw[i*3+1], raw[i*3+2]
		if i == 0 || red > 63 || green > 63 || blue > 63 {
			continue
		}
		p.Colors[i] = Color{R: red * 4, G: green * 4, B: blue * 4, A: 0xFF}
	}
	return p, nil
}
