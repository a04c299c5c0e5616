package main

import (
	"log/slog"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ossyrian/datparse/internal/dat"
	dattypes "github.com/ossyrian/datparse/internal/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archive entries as JSON",
	Args:  cobra.NoArgs,
	RunE:  list,
}

// list prints the directory of the archive without materializing any entry
func list(cmd *cobra.Command, args []string) error {
	archive, selector, err := openArchive()
	if err != nil {
		return err
	}
	defer func() { _ = archive.Close() }()

	entries := archive.Select(selector)
	slog.Info("listing entries", "selected", len(entries), "total", len(archive.Entries()))

	return writeJSON(cmd.OutOrStdout(), dattypes.Listing{
		Archive:    cfg.InputFile,
		EntryCount: len(entries),
		Entries:    lo.Map(entries, func(e *dat.Entry, _ int) dattypes.EntryRecord { return dattypes.NewEntryRecord(e) }),
	}, cfg.Pretty)
}
