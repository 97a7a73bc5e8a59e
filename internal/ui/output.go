// Package ui renders human-readable command output.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/itsmostafa/mktoc/internal/lint"
	"github.com/itsmostafa/mktoc/internal/mdfile"
	"github.com/itsmostafa/mktoc/internal/toc"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for summary box with rounded border
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)

	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)
)

// FormatWatchHeader renders the banner printed when watch mode starts.
func FormatWatchHeader(w io.Writer, paths []string, cfg toc.Config, debounce time.Duration) {
	content := fmt.Sprintf("%s %s\n%s %d-%d  %s %t\n%s %s",
		dimStyle.Render("Watching:"), titleStyle.Render(strings.Join(paths, ", ")),
		dimStyle.Render("Depth:"), cfg.MinDepth, cfg.MaxDepth,
		dimStyle.Render("Details:"), cfg.WrapInDetails,
		dimStyle.Render("Debounce:"), debounce,
	)
	fmt.Fprintln(w, headerBoxStyle.Render(content))
}

// FormatUpdate writes one line describing what happened to a file.
func FormatUpdate(w io.Writer, result *mdfile.Result) {
	path := pathStyle.Render(result.Path)
	switch {
	case !result.HasRegion:
		fmt.Fprintf(w, "%s %s %s\n", warningStyle.Render("!"), path, dimStyle.Render("no mktoc region"))
	case result.Changed:
		fmt.Fprintf(w, "%s %s updated\n", successStyle.Render("✓"), path)
	default:
		fmt.Fprintf(w, "%s %s %s\n", dimStyle.Render("="), path, dimStyle.Render("up to date"))
	}
}

// FormatError writes a failure for path.
func FormatError(w io.Writer, path string, err error) {
	fmt.Fprintf(w, "%s %s %s\n", errorStyle.Render("✗"), pathStyle.Render(path), err)
}

// Summary counts the outcomes of a multi-file run.
type Summary struct {
	Updated   int
	Unchanged int
	NoRegion  int
	Failed    int
}

// Add records result.
func (s *Summary) Add(result *mdfile.Result) {
	switch {
	case !result.HasRegion:
		s.NoRegion++
	case result.Changed:
		s.Updated++
	default:
		s.Unchanged++
	}
}

// FormatSummary renders the summary box shown after processing several files.
func FormatSummary(w io.Writer, s Summary) {
	status := successStyle.Render("OK")
	if s.Failed > 0 {
		status = errorStyle.Render("FAILED")
	}

	line := fmt.Sprintf("%s %d  %s %d  %s %d  %s %d  %s",
		dimStyle.Render("Updated:"), s.Updated,
		dimStyle.Render("Unchanged:"), s.Unchanged,
		dimStyle.Render("No region:"), s.NoRegion,
		dimStyle.Render("Failed:"), s.Failed,
		status,
	)
	fmt.Fprintln(w, boxStyle.Render(titleStyle.Render("mktoc")+"\n"+line))
}

func severityStyle(sev lint.Severity) lipgloss.Style {
	switch sev {
	case lint.SeverityError:
		return errorStyle
	case lint.SeverityWarning:
		return warningStyle
	default:
		return dimStyle
	}
}

// FormatReport renders a lint report, one issue per line.
func FormatReport(w io.Writer, r lint.Report) {
	if r.Passed && len(r.Issues) == 0 {
		fmt.Fprintf(w, "%s %s\n", successStyle.Render("✓"), pathStyle.Render(r.Path))
		return
	}

	mark := successStyle.Render("✓")
	if !r.Passed {
		mark = errorStyle.Render("✗")
	}
	fmt.Fprintf(w, "%s %s\n", mark, pathStyle.Render(r.Path))

	for _, i := range r.Issues {
		loc := ""
		if i.Line > 0 {
			loc = dimStyle.Render(fmt.Sprintf("%d: ", i.Line))
		}
		fmt.Fprintf(w, "  %s%s %s %s\n",
			loc,
			severityStyle(i.Severity).Render(string(i.Severity)),
			i.Message,
			dimStyle.Render("["+i.Code+"]"),
		)
	}
}

// FormatHeadings lists headings as an indented outline.
func FormatHeadings(w io.Writer, headings []toc.Heading) {
	for _, h := range headings {
		fmt.Fprintf(w, "%s%s %s\n",
			strings.Repeat("  ", h.Level-1),
			dimStyle.Render(strings.Repeat("#", h.Level)),
			h.Text,
		)
	}
}
