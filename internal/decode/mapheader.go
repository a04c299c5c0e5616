package decode

import (
	"bytes"
	"fmt"
)

const (
	mapNameSize     = 16
	mapReservedSize = 44 * 4
)

// Map format versions.
const (
	MapVersionFallout1 = 19
	MapVersionFallout2 = 20
)

// MapHeader is the fixed header at the start of a MAP entry.
type MapHeader struct {
	Version            uint32 `json:"version"`
	Name               string `json:"name"`
	DefaultPosition    uint32 `json:"default_position"`
	DefaultElevation   uint32 `json:"default_elevation"`
	DefaultOrientation uint32 `json:"default_orientation"`
	LocalVarsNumber    uint32 `json:"local_vars"`
	ScriptID           int32  `json:"script_id"`
	ElevationsFlag     uint32 `json:"elevations_flag"`
	GlobalVarsNumber   uint32 `json:"global_vars"`
	MapID              uint32 `json:"map_id"`
	TimeTicks          uint32 `json:"time_ticks"`
}

// NewMapHeader decodes the map header and leaves the cursor after it.
func NewMapHeader(r Reader) (*MapHeader, error) {
	if err := r.Seek(0); err != nil {
		return nil, err
	}

	f := &fieldReader{r: r}
	h := &MapHeader{Version: f.u32()}
	if f.err == nil && h.Version != MapVersionFallout1 && h.Version != MapVersionFallout2 {
		return nil, fmt.Errorf("%w: map version %d", ErrFormat, h.Version)
	}

	name := f.bytes(mapNameSize)
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	h.Name = string(name)

	h.DefaultPosition = f.u32()
	h.DefaultElevation = f.u32()
	h.DefaultOrientation = f.u32()
	h.LocalVarsNumber = f.u32()
	h.ScriptID = f.i32()
	h.ElevationsFlag = f.u32()
	f.skip(4) // darkness
	h.GlobalVarsNumber = f.u32()
	h.MapID = f.u32()
	h.TimeTicks = f.u32()
	f.skip(mapReservedSize)

	if f.err != nil {
		return nil, fmt.Errorf("map header: %w", f.err)
	}
	return h, nil
}

// HasElevation reports whether elevation 0, 1 or 2 is present. Bits 1..3
// of the flag mark an elevation as absent.
func (h *MapHeader) HasElevation(level int) bool {
	if level < 0 || level > 2 {
		return false
	}
	return h.ElevationsFlag&(1<<(level+1)) == 0
}
