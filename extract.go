package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ossyrian/datparse/internal/dat"
)

var errUnsafePath = errors.New("entry path escapes output directory")

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Write selected entries to a directory",
	Args:  cobra.NoArgs,
	RunE:  extract,
}

func init() {
	extractCmd.Flags().StringP("output", "o", "", "directory to extract entries to")
	extractCmd.Flags().Bool("dry-run", false, "materialize entries without writing them (validation)")

	viper.BindPFlag("output", extractCmd.Flags().Lookup("output"))
	viper.BindPFlag("dry_run", extractCmd.Flags().Lookup("dry-run"))
}

// extract materializes every selected entry, one at a time, and writes it
// under the output directory. A failing entry is logged and skipped.
func extract(cmd *cobra.Command, args []string) error {
	if cfg.OutputDir == "" && !cfg.DryRun {
		return errors.New("an output directory is required unless --dry-run is set")
	}

	archive, selector, err := openArchive()
	if err != nil {
		return err
	}
	defer func() { _ = archive.Close() }()

	entries := archive.Select(selector)
	failed := 0
	for _, e := range entries {
		if err := extractEntry(e, cfg.OutputDir, cfg.DryRun); err != nil {
			slog.Error("failed to extract entry", "name", e.Name(), "error", err)
			failed++
			continue
		}
		slog.Debug("extracted entry", "name", e.Name(), "size", e.Size())
	}

	slog.Info("extraction finished",
		"entries", len(entries),
		"failed", failed,
		"dry_run", cfg.DryRun,
	)

	if failed > 0 {
		return fmt.Errorf("%d of %d entries failed", failed, len(entries))
	}
	return nil
}

// extractEntry reads the whole entry and, unless dryRun, writes it to
// outDir. The entry buffer is released afterwards.
func extractEntry(e *dat.Entry, outDir string, dryRun bool) error {
	defer func() { _ = e.Close() }()

	if err := e.Seek(0); err != nil {
		return err
	}
	data, err := e.ReadBytes(e.Size())
	if err != nil {
		return err
	}

	if dryRun {
		return nil
	}

	target, err := entryPath(outDir, e.Name())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}

// entryPath maps an entry name to a file under outDir.
func entryPath(outDir, name string) (string, error) {
	rel := filepath.FromSlash(name)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %s", errUnsafePath, name)
	}
	return filepath.Join(outDir, rel), nil
}
