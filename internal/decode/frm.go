package decode

import "fmt"

const (
	frmDirections = 6
	frmDataStart  = 0x3E
)

// Frame is one sprite image: palette indexes, row-major.
type Frame struct {
	Width   uint16 `json:"width"`
	Height  uint16 `json:"height"`
	OffsetX int16  `json:"offset_x"`
	OffsetY int16  `json:"offset_y"`
	Pixels  []byte `json:"-"`
}

// Direction holds the frames drawn when facing one of the six hex directions.
type Direction struct {
	ShiftX int16   `json:"shift_x"`
	ShiftY int16   `json:"shift_y"`
	Frames []Frame `json:"frames"`
}

// Frm is a decoded sprite animation.
type Frm struct {
	Version            uint32      `json:"version"`
	FPS                uint16      `json:"fps"`
	ActionFrame        uint16      `json:"action_frame"`
	FramesPerDirection uint16      `json:"frames_per_direction"`
	Directions         []Direction `json:"directions"`
}

// NewFrm decodes an FRM sprite. A direction whose data offset equals the
// previous one shares its frames and is not listed again, so static
// images decode to a single direction.
func NewFrm(r Reader) (*Frm, error) {
	if err := r.Seek(0); err != nil {
		return nil, err
	}

	f := &fieldReader{r: r}
	frm := &Frm{
		Version:            f.u32(),
		FPS:                f.u16(),
		ActionFrame:        f.u16(),
		FramesPerDirection: f.u16(),
	}

	var shiftX, shiftY [frmDirections]int16
	var offsets [frmDirections]uint32
	for i := range shiftX {
		shiftX[i] = f.i16()
	}
	for i := range shiftY {
		shiftY[i] = f.i16()
	}
	for i := range offsets {
		offsets[i] = f.u32()
	}
	f.skip(4) // frame area size
	if f.err != nil {
		return nil, fmt.Errorf("frm header: %w", f.err)
	}

	for d := 0; d < frmDirections; d++ {
		if d > 0 && offsets[d] == offsets[d-1] {
			continue
		}

		start := int64(frmDataStart) + int64(offsets[d])
		if start > int64(r.Size()) {
			return nil, fmt.Errorf("%w: direction %d data at %d past end %d", ErrFormat, d, start, r.Size())
		}
		if err := r.Seek(int(start)); err != nil {
			return nil, err
		}

		dir := Direction{
			ShiftX: shiftX[d],
			ShiftY: shiftY[d],
			Frames: make([]Frame, 0, frm.FramesPerDirection),
		}
		for i := 0; i < int(frm.FramesPerDirection); i++ {
			frame, err := readFrame(r)
			if err != nil {
				return nil, fmt.Errorf("direction %d frame %d: %w", d, i, err)
			}
			dir.Frames = append(dir.Frames, frame)
		}
		frm.Directions = append(frm.Directions, dir)
	}

	return frm, nil
}

func readFrame(r Reader) (Frame, error) {
	f := &fieldReader{r: r}
	frame := Frame{
		Width:  f.u16(),
		Height: f.u16(),
	}
	size := f.u32()
	frame.OffsetX = f.i16()
	frame.OffsetY = f.i16()
	if f.err != nil {
		return Frame{}, f.err
	}

	if int64(size) != int64(frame.Width)*int64(frame.Height) {
		return Frame{}, fmt.Errorf("%w: %dx%d frame declares %d pixels",
			ErrFormat, frame.Width, frame.Height, size)
	}

	frame.Pixels = f.bytes(int(size))
	if f.err != nil {
		return Frame{}, f.err
	}
	return frame, nil
}
