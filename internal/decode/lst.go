package decode

import (
	"strings"

	"github.com/samber/lo"

	"github.com/ossyrian/datparse/internal/dat"
)

// Lst is a decoded name listing.
type Lst struct {
	Items []string `json:"items"`
}

// NewLst decodes a listing: one name per line, `;` starts a comment,
// and only the first word of a line is the name. Names are normalized
// like archive entry names so they can be looked up directly.
func NewLst(r Reader) (*Lst, error) {
	text, err := readText(r)
	if err != nil {
		return nil, err
	}

	items := lo.FilterMap(strings.Split(text, "\n"), func(line string, _ int) (string, bool) {
		line, _, _ = strings.Cut(line, ";")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return "", false
		}
		return dat.NormalizeName(fields[0]), true
	})

	return &Lst{Items: items}, nil
}
