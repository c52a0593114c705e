package leader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RevCBH/matrixleader/internal/travis"
)

// Keys written to the export file.
const (
	KeyBuildLeader     = "BUILD_LEADER"
	KeyAggregateStatus = "BUILD_AGGREGATE_STATUS"
)

// ExportVar is one KEY=VALUE pair handed back to the invoking shell.
type ExportVar struct {
	Key   string
	Value string
}

// ReportVars returns the variables the leader exports for status.
func ReportVars(status travis.AggregateStatus) []ExportVar {
	return []ExportVar{
		{Key: KeyBuildLeader, Value: "YES"},
		{Key: KeyAggregateStatus, Value: string(status)},
	}
}

// FormatExport joins vars as space-separated KEY=VALUE pairs, in order.
func FormatExport(vars []ExportVar) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = v.Key + "=" + v.Value
	}
	return strings.Join(parts, " ")
}

// WriteExportFile replaces path with the formatted vars. Missing parent
// directories are created.
func WriteExportFile(path string, vars []ExportVar) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(FormatExport(vars)), 0644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}
