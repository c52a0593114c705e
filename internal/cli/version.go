package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/RevCBH/matrixleader/internal/config"
)

// orUnknown fills in build details that were not set through ldflags.
func (v VersionInfo) orUnknown() VersionInfo {
	if v.Version == "" {
		v.Version = "dev"
	}
	if v.Commit == "" {
		v.Commit = "unknown"
	}
	if v.Date == "" {
		v.Date = "unknown"
	}
	return v
}

// NewVersionCmd creates the version command
func NewVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build and runtime details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := app.versionInfo.orUnknown()
			w := cmd.OutOrStdout()

			fmt.Fprintf(w, "matrixleader %s (%s, built %s)\n", info.Version, info.Commit, info.Date)
			fmt.Fprintf(w, "go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(w, "default api: %s\n", config.DefaultTravisEntry)
			return nil
		},
	}
}
