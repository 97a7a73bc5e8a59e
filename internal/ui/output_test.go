package ui

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/itsmostafa/mktoc/internal/lint"
	"github.com/itsmostafa/mktoc/internal/mdfile"
	"github.com/itsmostafa/mktoc/internal/toc"
)

func TestFormatUpdate(t *testing.T) {
	tests := []struct {
		name   string
		result mdfile.Result
		want   string
	}{
		{"updated", mdfile.Result{Path: "README.md", HasRegion: true, Changed: true}, "updated"},
		{"unchanged", mdfile.Result{Path: "README.md", HasRegion: true}, "up to date"},
		{"no region", mdfile.Result{Path: "README.md"}, "no mktoc region"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatUpdate(&buf, &tt.result)
			assert.Contains(t, buf.String(), "README.md")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestSummary(t *testing.T) {
	var s Summary
	s.Add(&mdfile.Result{HasRegion: true, Changed: true})
	s.Add(&mdfile.Result{HasRegion: true})
	s.Add(&mdfile.Result{})
	s.Failed++

	assert.Equal(t, Summary{Updated: 1, Unchanged: 1, NoRegion: 1, Failed: 1}, s)

	var buf bytes.Buffer
	FormatSummary(&buf, s)
	assert.Contains(t, buf.String(), "FAILED")
	assert.Contains(t, buf.String(), "Updated:")
}

func TestFormatReport(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		var buf bytes.Buffer
		FormatReport(&buf, lint.Report{Path: "doc.md", Passed: true})
		assert.Contains(t, buf.String(), "doc.md")
		assert.NotContains(t, buf.String(), "error")
	})

	t.Run("issues", func(t *testing.T) {
		var buf bytes.Buffer
		FormatReport(&buf, lint.Report{
			Path: "doc.md",
			Issues: []lint.Issue{
				{Severity: lint.SeverityError, Code: lint.CodeStaleTOC, Line: 3, Message: "table of contents is out of date"},
			},
		})
		out := buf.String()
		assert.Contains(t, out, "3: ")
		assert.Contains(t, out, "error")
		assert.Contains(t, out, "[stale-toc]")
	})
}

func TestFormatHeadings(t *testing.T) {
	var buf bytes.Buffer
	FormatHeadings(&buf, []toc.Heading{{Level: 1, Text: "Top"}, {Level: 3, Text: "Deep"}})
	assert.Contains(t, buf.String(), "# Top\n")
	assert.Contains(t, buf.String(), "    ### Deep\n")
}

func TestFormatMisc(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, "a.md", errors.New("permission denied"))
	FormatWatchHeader(&buf, []string{"a.md"}, toc.DefaultConfig(), 200*time.Millisecond)
	assert.Contains(t, buf.String(), "permission denied")
	assert.Contains(t, buf.String(), "Watching:")
	assert.Contains(t, buf.String(), "200ms")
}
