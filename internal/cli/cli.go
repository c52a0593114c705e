package cli

import (
	"github.com/spf13/cobra"

	"github.com/RevCBH/matrixleader/internal/config"
)

// VersionInfo holds build-time version details
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// Options holds the root command's flag values
type Options struct {
	TravisEntry  string
	IsMaster     bool
	MasterNumber int
	Poll         int
	ExportFile   string
	MaxWait      string
	ConfigPath   string
	EnvFile      string
	MetricsFile  string
	LogLevel     string
	Verbose      bool
}

// App represents the CLI application with all wired dependencies
type App struct {
	rootCmd     *cobra.Command
	opts        Options
	versionInfo VersionInfo
}

// New creates a new CLI application
func New() *App {
	app := &App{}
	app.setupRootCmd()
	return app
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion sets the version string for the version command
func (a *App) SetVersion(version, commit, date string) {
	a.versionInfo = VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// setupRootCmd configures the root Cobra command
func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "matrixleader",
		Short: "Elect a leader job in a CI build matrix and aggregate sibling results",
		Long: `matrixleader is run by every job of a Travis CI build matrix.

The job whose number ends in the configured ordinal becomes the leader: it
polls the build until every sibling job that must be waited on has finished,
then writes BUILD_LEADER and BUILD_AGGREGATE_STATUS to the export file.
Every other job exits immediately with success.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runLeader,
	}

	flags := a.rootCmd.Flags()
	flags.StringVar(&a.opts.TravisEntry, "travis_entry", config.DefaultTravisEntry, "CI API base URL")
	flags.BoolVar(&a.opts.IsMaster, "is_master", false, "Force this job to act as leader")
	flags.IntVar(&a.opts.MasterNumber, "master_number", config.DefaultMasterNumber, "Job ordinal that leads the matrix")
	flags.IntVar(&a.opts.Poll, "poll", config.DefaultPoll, "Polling interval in seconds")
	flags.StringVar(&a.opts.ExportFile, "export_file", config.DefaultExportFile, "File receiving the exported KEY=VALUE pairs")
	flags.StringVar(&a.opts.MaxWait, "max_wait", config.DefaultMaxWait, "Give up waiting after this duration (e.g. 90m); empty waits forever")
	flags.StringVar(&a.opts.ConfigPath, "config", config.DefaultConfigFile, "Optional YAML config file")
	flags.StringVar(&a.opts.EnvFile, "env_file", "", "Optional dotenv file supplying environment defaults")
	flags.StringVar(&a.opts.MetricsFile, "metrics_file", "", "Write Prometheus metrics to this textfile")
	flags.StringVar(&a.opts.LogLevel, "log_level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")

	a.rootCmd.PersistentFlags().BoolVarP(&a.opts.Verbose, "verbose", "v", false,
		"Render the build matrix after every poll")

	a.rootCmd.AddCommand(NewVersionCmd(a))
}
