package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ossyrian/datparse/internal/config"
	"github.com/ossyrian/datparse/internal/logging"
	"github.com/ossyrian/datparse/internal/parser"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:               "datparse",
	Short:             "Read, extract and decode entries of Fallout DAT archives",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "path to config file")

	// i/o
	flags.StringP("input", "i", "", "path to .dat file to read (required)")
	flags.StringSlice("include", nil, "only select entries matching these patterns (repeatable)")
	flags.StringSlice("exclude", nil, "skip entries matching these patterns (repeatable)")
	flags.Bool("pretty", false, "indent JSON output")
	rootCmd.MarkPersistentFlagRequired("input")

	// other opts
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-output-dir", "", "directory to write log files (if set, logs are written to both stderr and file)")

	viper.BindPFlag("input", flags.Lookup("input"))
	viper.BindPFlag("include", flags.Lookup("include"))
	viper.BindPFlag("exclude", flags.Lookup("exclude"))
	viper.BindPFlag("pretty", flags.Lookup("pretty"))
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("log_output_dir", flags.Lookup("log-output-dir"))

	rootCmd.AddCommand(listCmd, extractCmd, showCmd)
}

// initConfig reads in config file and environment variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "datparse"))
		}
		viper.AddConfigPath("/etc/datparse")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("DATPARSE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setup loads the config and installs logging before any subcommand runs
func setup(cmd *cobra.Command, args []string) error {
	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := logging.Setup(cfg.LogLevel, cfg.LogOutputDir); err != nil {
		return fmt.Errorf("could not set up logging: %w", err)
	}

	return nil
}

// openArchive parses the configured archive and compiles the entry selector
func openArchive() (*parser.Archive, *parser.Selector, error) {
	selector, err := parser.NewSelector(cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, nil, err
	}

	archive, err := parser.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing %s: %w", cfg.InputFile, err)
	}

	return archive, selector, nil
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
