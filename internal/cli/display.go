package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/RevCBH/matrixleader/internal/travis"
)

// StatusSymbol marks a job's state in the matrix table
type StatusSymbol string

const (
	SymbolSucceeded    StatusSymbol = "✓"
	SymbolRunning      StatusSymbol = "●"
	SymbolFailed       StatusSymbol = "✗"
	SymbolAllowFailure StatusSymbol = "~"
	SymbolLeader       StatusSymbol = "★"
)

// DisplayConfig controls matrix output formatting
type DisplayConfig struct {
	UseColor bool // Enable ANSI color codes
}

// displayStyles are the lipgloss styles for one render target
type displayStyles struct {
	Header    lipgloss.Style
	Succeeded lipgloss.Style
	Running   lipgloss.Style
	Failed    lipgloss.Style
	Muted     lipgloss.Style
	Leader    lipgloss.Style
}

func newDisplayStyles(useColor bool) displayStyles {
	if !useColor {
		plain := lipgloss.NewStyle()
		return displayStyles{plain, plain, plain, plain, plain, plain}
	}
	return displayStyles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Succeeded: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Running:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Failed:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Leader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	}
}

// GetStatusSymbol returns the symbol for a job
func GetStatusSymbol(job travis.JobStatus) StatusSymbol {
	switch {
	case job.Leader:
		return SymbolLeader
	case job.IsFailure():
		return SymbolFailed
	case job.Finished && job.AllowFailure && (job.Result == nil || *job.Result != 0):
		return SymbolAllowFailure
	case job.Finished:
		return SymbolSucceeded
	default:
		return SymbolRunning
	}
}

// FormatJobLine formats a single job line
func FormatJobLine(job travis.JobStatus, styles displayStyles) string {
	symbol := GetStatusSymbol(job)

	style := styles.Running
	switch symbol {
	case SymbolLeader:
		style = styles.Leader
	case SymbolFailed:
		style = styles.Failed
	case SymbolSucceeded:
		style = styles.Succeeded
	case SymbolAllowFailure:
		style = styles.Muted
	}

	result := "-"
	if job.Finished && job.Result != nil {
		result = fmt.Sprint(*job.Result)
	}

	line := fmt.Sprintf("  %s %-10s result=%s", style.Render(string(symbol)), job.Number, result)
	if job.AllowFailure {
		line += styles.Muted.Render("  (allow failure)")
	}
	return line
}

// FormatSnapshot renders a whole snapshot as a header plus one line per job
func FormatSnapshot(poll int, snap travis.Snapshot, cfg DisplayConfig) string {
	styles := newDisplayStyles(cfg.UseColor)
	counts := snap.Counts()

	var b strings.Builder
	header := fmt.Sprintf("Poll #%d: %d/%d finished, %d pending, %s",
		poll, counts.Finished, counts.Total, counts.Running, snap.Status())
	b.WriteString(styles.Header.Render(header))
	b.WriteString("\n")
	for _, job := range snap {
		b.WriteString(FormatJobLine(job, styles))
		b.WriteString("\n")
	}
	return b.String()
}

// MatrixDisplay writes a rendered snapshot after every successful poll
type MatrixDisplay struct {
	w   io.Writer
	cfg DisplayConfig
}

// NewMatrixDisplay creates a display writing to w
func NewMatrixDisplay(w io.Writer, cfg DisplayConfig) *MatrixDisplay {
	return &MatrixDisplay{w: w, cfg: cfg}
}

// Observe implements travis.Observer
func (d *MatrixDisplay) Observe(ev travis.PollEvent) {
	if ev.Err != nil {
		return
	}
	fmt.Fprint(d.w, FormatSnapshot(ev.Poll, ev.Snapshot, d.cfg))
}
