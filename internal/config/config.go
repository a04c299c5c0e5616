package config

// Config holds app configuration
type Config struct {
	// InputFile is the .dat archive to read
	InputFile string `mapstructure:"input"`

	// OutputDir is where extract writes entries, mirroring their archive paths
	OutputDir string `mapstructure:"output"`

	// Include and Exclude are gitignore-style patterns selecting entries.
	// With no Include patterns every entry is selected.
	Include []string `mapstructure:"include"`
	Exclude []string `mapstructure:"exclude"`

	// Pretty indents JSON output
	Pretty bool `mapstructure:"pretty"`

	DryRun       bool   `mapstructure:"dry_run"`
	LogLevel     string `mapstructure:"log_level"`
	LogOutputDir string `mapstructure:"log_output_dir"`
}
