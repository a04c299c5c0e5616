package parser

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/ossyrian/datparse/internal/dat"
)

// Archive is a parsed DAT file: its entries in directory order plus a
// lookup table by normalized name.
type Archive struct {
	Name   string
	Footer dat.Footer

	source  *dat.FileSource
	entries []*dat.Entry
	byName  map[string]*dat.Entry
}

func newArchive(name string, footer dat.Footer, source *dat.FileSource, metas []dat.Meta, logger *slog.Logger) *Archive {
	if logger == nil {
		logger = slog.Default()
	}

	a := &Archive{
		Name:    name,
		Footer:  footer,
		source:  source,
		entries: make([]*dat.Entry, 0, len(metas)),
		byName:  make(map[string]*dat.Entry, len(metas)),
	}

	for _, m := range metas {
		e := dat.NewEntry(source, m)
		e.SetLogger(logger)

		if _, dup := a.byName[e.Name()]; dup {
			logger.Warn("duplicate entry name, keeping first", "name", e.Name())
			continue
		}
		a.byName[e.Name()] = e
		a.entries = append(a.entries, e)
	}

	return a
}

// Entries returns the entries in directory order.
func (a *Archive) Entries() []*dat.Entry {
	return a.entries
}

// Lookup finds an entry by name. The query is normalized the same way
// directory names are, so `ART\Intrface\IFACE.FRM` matches.
func (a *Archive) Lookup(name string) (*dat.Entry, error) {
	e, ok := a.byName[dat.NormalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	return e, nil
}

// Select returns the entries accepted by s, in directory order.
func (a *Archive) Select(s *Selector) []*dat.Entry {
	return lo.Filter(a.entries, func(e *dat.Entry, _ int) bool {
		return s.Match(e.Name())
	})
}

// Close releases every entry buffer and closes the archive file.
func (a *Archive) Close() error {
	var errs []error
	for _, e := range a.entries {
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.source.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
