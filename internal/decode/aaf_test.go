package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAaf(glyphs map[int][2]uint16) []byte {
	b := &be{}
	b.u32(aafMagic).u16(12).u16(1).u16(5).u16(2)

	var data []byte
	for i := 0; i < aafGlyphs; i++ {
		g := glyphs[i]
		b.u16(g[0]).u16(g[1]).u32(uint32(len(data)))
		for j := 0; j < int(g[0])*int(g[1]); j++ {
			data = append(data, byte(i))
		}
	}
	b.raw(data)
	return b.Bytes()
}

func TestNewAaf(t *testing.T) {
	t.Parallel()

	raw := buildAaf(map[int][2]uint16{
		'A': {3, 4},
		'b': {2, 2},
	})

	aaf, err := NewAaf(entryOver(t, "font1.aaf", raw))
	require.NoError(t, err)

	assert.Equal(t, uint16(12), aaf.MaxHeight)
	assert.Equal(t, uint16(1), aaf.HorizontalGap)
	assert.Equal(t, uint16(5), aaf.SpaceWidth)
	assert.Equal(t, uint16(2), aaf.VerticalGap)
	require.Len(t, aaf.Glyphs, 256)

	a := aaf.Glyphs['A']
	assert.Equal(t, uint16(3), a.Width)
	assert.Equal(t, uint16(4), a.Height)
	assert.Len(t, a.Pixels, 12)
	assert.Equal(t, byte('A'), a.Pixels[0])

	assert.Equal(t, []byte{'b', 'b', 'b', 'b'}, aaf.Glyphs['b'].Pixels)
	assert.Nil(t, aaf.Glyphs[' '].Pixels)
}

func TestNewAaf_BadMagic(t *testing.T) {
	t.Parallel()

	raw := buildAaf(nil)
	raw[0] = 'X'
	_, err := NewAaf(entryOver(t, "font1.aaf", raw))
	require.ErrorIs(t, err, ErrFormat)
}
