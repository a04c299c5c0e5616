package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ossyrian/datparse/internal/dat"
	"github.com/ossyrian/datparse/internal/decode"
	"github.com/ossyrian/datparse/internal/parser"
	dattypes "github.com/ossyrian/datparse/internal/types"
)

var errNotSelected = errors.New("entry excluded by --include/--exclude")

var showCmd = &cobra.Command{
	Use:   "show NAME...",
	Short: "Decode entries by type and print them as JSON",
	Long: `Decode entries by their extension (frm, pal, aaf, msg, lst, map) and
print one JSON document per entry. Entries of other types print their
directory record only. Names rejected by --include/--exclude are an error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: show,
}

func show(cmd *cobra.Command, args []string) error {
	archive, selector, err := openArchive()
	if err != nil {
		return err
	}
	defer func() { _ = archive.Close() }()

	for _, name := range args {
		e, err := selectEntry(archive.Lookup, selector, name)
		if err != nil {
			return err
		}

		doc := dattypes.Document{Entry: dattypes.NewEntryRecord(e)}
		if kind := doc.Entry.Kind; kind != dattypes.KindUnknown {
			value, err := decode.Decode(kind, e)
			_ = e.Close()
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", e.Name(), err)
			}
			doc.Value = value
		}

		if err := writeJSON(cmd.OutOrStdout(), doc, cfg.Pretty); err != nil {
			return err
		}
	}

	return nil
}

// selectEntry resolves name and rejects entries the selector does not match.
func selectEntry(lookup func(string) (*dat.Entry, error), selector *parser.Selector, name string) (*dat.Entry, error) {
	e, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if !selector.Match(e.Name()) {
		return nil, fmt.Errorf("%w: %s", errNotSelected, e.Name())
	}
	return e, nil
}
