package dat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorReads(t *testing.T) {
	t.Parallel()

	buf := []byte{0x00, 0x00, 0x01, 0x00, 0xFF, 0xFE}

	v32, pos, err := readU32(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(256), v32)
	assert.Equal(t, 4, pos)

	v16, pos, err := readU16(buf, pos)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xFFFE), v16)
	assert.Equal(t, 6, pos)
	assert.Equal(t, int16(-2), int16(v16))

	v8, pos, err := readU8(buf, 4)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xFF), v8)
	assert.Equal(t, 5, pos)
}

func TestCursorOutOfRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		read func() (int, error)
	}{
		{
			name: "u8 at end",
			read: func() (int, error) { _, p, err := readU8([]byte{1}, 1); return p, err },
		},
		{
			name: "u16 straddling end",
			read: func() (int, error) { _, p, err := readU16([]byte{1, 2, 3}, 2); return p, err },
		},
		{
			name: "u32 on short buffer",
			read: func() (int, error) { _, p, err := readU32([]byte{1, 2}, 0); return p, err },
		},
		{
			name: "bytes past end",
			read: func() (int, error) { _, p, err := readBytes([]byte{1, 2}, 1, 2); return p, err },
		},
		{
			name: "negative position",
			read: func() (int, error) { _, p, err := readU8([]byte{1}, -1); return p, err },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.read()
			require.ErrorIs(t, err, ErrOutOfRange)
		})
	}
}

func TestReadBytesCopies(t *testing.T) {
	t.Parallel()

	buf := []byte{1, 2, 3, 4}
	out, pos, err := readBytes(buf, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 3}, out)
	assert.Equal(t, 3, pos)

	out[0] = 99
	assert.Equal(t, byte(2), buf[1])
}
