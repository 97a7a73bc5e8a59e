// Package lint reports problems with a document's table of contents
// without modifying it.
package lint

import (
	"fmt"
	"slices"
	"strings"

	"github.com/itsmostafa/mktoc/internal/toc"
)

// Severity ranks an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue codes.
const (
	CodeMissingSentinel = "missing-sentinel"
	CodeStaleTOC        = "stale-toc"
	CodeInvalidConfig   = "invalid-config"
	CodeUncovered       = "uncovered-heading"
	CodePhantom         = "phantom-heading"
	CodeDuplicateSlug   = "duplicate-slug"
)

// Issue is a single finding.
type Issue struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Code     string   `json:"code" yaml:"code"`
	Line     int      `json:"line,omitempty" yaml:"line,omitempty"`
	Message  string   `json:"message" yaml:"message"`
}

// Report holds the result of checking one document.
type Report struct {
	Path   string  `json:"path,omitempty" yaml:"path,omitempty"`
	Passed bool    `json:"passed" yaml:"passed"`
	Issues []Issue `json:"issues" yaml:"issues"`
}

func (r *Report) add(sev Severity, code string, line int, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		Severity: sev,
		Code:     code,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Count returns the number of issues with the given severity.
func (r Report) Count(sev Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == sev {
			n++
		}
	}
	return n
}

// Check inspects text. A report passes when it has no error-severity
// issues; warnings and info never fail it.
func Check(text string, fallback toc.Config, gen *toc.Generator) (Report, error) {
	report := Report{Issues: []Issue{}}

	region, hasRegion := toc.FindRegion(text)
	if !hasRegion {
		report.add(SeverityError, CodeMissingSentinel, 0,
			"no %s ... %s region found", toc.BeginComment, toc.EndComment)
	}

	if comment, raw, ok := toc.EmbeddedConfig(text); ok {
		msgs, err := validateConfig(raw)
		if err != nil {
			return Report{}, err
		}
		line := lineAt(text, strings.Index(text, comment))
		for _, m := range msgs {
			report.add(SeverityWarning, CodeInvalidConfig, line, "embedded config %s", m)
		}
	}

	cfg := gen.Resolve(text, fallback).Config

	if hasRegion && gen.MakeTOC(text, fallback) != text {
		report.add(SeverityError, CodeStaleTOC, lineAt(text, region.Start),
			"table of contents is out of date")
	}

	scanned := slices.Collect(toc.Headings(text, cfg.MinDepth, cfg.MaxDepth))
	parsed := slices.DeleteFunc(parseHeadings([]byte(text)), func(h toc.Heading) bool {
		return h.Level < cfg.MinDepth || h.Level > cfg.MaxDepth
	})

	uncovered, phantom := diffHeadings(scanned, parsed)
	for _, h := range uncovered {
		report.add(SeverityWarning, CodeUncovered, h.Line,
			"heading %q (level %d) is rendered but not listed", h.Text, h.Level)
	}
	for _, h := range phantom {
		report.add(SeverityWarning, CodePhantom, h.Line,
			"listed heading %q (level %d) is not rendered as a heading", h.Text, h.Level)
	}

	firstLine := make(map[string]int)
	for _, h := range scanned {
		slug := toc.TextToURL(h.Text)
		if first, seen := firstLine[slug]; seen {
			report.add(SeverityInfo, CodeDuplicateSlug, h.Line,
				"anchor #%s already used on line %d", slug, first)
			continue
		}
		firstLine[slug] = h.Line
	}

	slices.SortStableFunc(report.Issues, func(a, b Issue) int {
		return a.Line - b.Line
	})
	report.Passed = report.Count(SeverityError) == 0
	return report, nil
}

// lineAt converts a byte offset into a 1-based line number.
func lineAt(text string, offset int) int {
	if offset < 0 {
		return 0
	}
	return strings.Count(text[:offset], "\n") + 1
}
