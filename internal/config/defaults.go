package config

const (
	DefaultTravisEntry  = "https://api.travis-ci.org"
	DefaultMasterNumber = 0
	DefaultPoll         = 5  // seconds
	DefaultMaxWait      = "" // unbounded
	DefaultExportFile   = ".to_export_back"
	DefaultConfigFile   = ".matrixleader.yaml"
	DefaultLogLevel     = "info"
)

// DefaultConfig returns a Config with all default values applied.
func DefaultConfig() *Config {
	return &Config{
		TravisEntry:  DefaultTravisEntry,
		MasterNumber: DefaultMasterNumber,
		Poll:         DefaultPoll,
		MaxWait:      DefaultMaxWait,
		ExportFile:   DefaultExportFile,
		LogLevel:     DefaultLogLevel,
	}
}
