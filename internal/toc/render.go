package toc

import (
	"iter"
	"regexp"
	"strings"
)

const detailsOpen = "<details><summary>Table of Contents</summary>"

// fourSpaceIndent matches the indentation that Markdown renderers turn into
// a code block once the list sits inside an HTML element.
var fourSpaceIndent = regexp.MustCompile(`(?m)^ {4}`)

// indent returns the list indentation for a heading level. Levels 1 and 2
// share the top level.
func indent(level int) string {
	if level <= 2 {
		return ""
	}
	return strings.Repeat("  ", level-2)
}

// Render builds the complete ToC block, begin and end sentinels included.
func Render(headings iter.Seq[Heading], cfg Config) string {
	var body strings.Builder
	for h := range headings {
		body.WriteString("\n")
		body.WriteString(indent(h.Level))
		body.WriteString("- [")
		body.WriteString(h.Text)
		body.WriteString("](#")
		body.WriteString(TextToURL(h.Text))
		body.WriteString(")")
	}

	start := cfg.StartComment
	if start == "" {
		start = BeginComment
	}

	if !cfg.WrapInDetails {
		return start + "\n" + body.String() + "\n" + EndComment
	}

	list := fourSpaceIndent.ReplaceAllString(body.String(), "")
	return strings.Join([]string{
		start,
		detailsOpen,
		list,
		"",
		"</details>",
		EndComment,
	}, "\n")
}
