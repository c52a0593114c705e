package logfields

import "log/slog"

// Canonical log field names shared by the coordinator packages.
const (
	KeyJobNumber    = "job_number"
	KeyBuildID      = "build_id"
	KeyMasterNumber = "master_number"
	KeyLeader       = "leader"
	KeyStatus       = "status"
	KeyPending      = "pending"
	KeyRunning      = "running"
	KeyFailed       = "failed"
	KeyJobs         = "jobs"
	KeyEntry        = "entry"
	KeyPath         = "path"
	KeyPoll         = "poll"
	KeySnapshot     = "snapshot"
	KeyFatal        = "fatal"
	KeyError        = "error"
)

func JobNumber(n string) slog.Attr { return slog.String(KeyJobNumber, n) }
func BuildID(id string) slog.Attr { return slog.String(KeyBuildID, id) }
func MasterNumber(n int) slog.Attr { return slog.Int(KeyMasterNumber, n) }
func Leader(b bool) slog.Attr { return slog.Bool(KeyLeader, b) }
func Status(s string) slog.Attr { return slog.String(KeyStatus, s) }
func Pending(n int) slog.Attr { return slog.Int(KeyPending, n) }
func Running(n int) slog.Attr { return slog.Int(KeyRunning, n) }
func Failed(n int) slog.Attr { return slog.Int(KeyFailed, n) }
func Jobs(n int) slog.Attr { return slog.Int(KeyJobs, n) }
func Entry(url string) slog.Attr { return slog.String(KeyEntry, url) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Poll(n int) slog.Attr { return slog.Int(KeyPoll, n) }
func Snapshot(summary string) slog.Attr { return slog.String(KeySnapshot, summary) }
func Fatal() slog.Attr { return slog.Bool(KeyFatal, true) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
