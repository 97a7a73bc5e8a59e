package lint

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/itsmostafa/mktoc/internal/toc"
)

// parseHeadings returns every heading a CommonMark renderer would produce,
// in document order, including setext headings and headings the line
// scanner cannot see.
func parseHeadings(src []byte) []toc.Heading {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var headings []toc.Heading
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		line := 0
		if lines := h.Lines(); lines.Len() > 0 {
			line = bytes.Count(src[:lines.At(0).Start], []byte("\n")) + 1
		}
		headings = append(headings, toc.Heading{
			Level: h.Level,
			Text:  string(h.Text(src)),
			Line:  line,
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

type headingKey struct {
	level int
	slug  string
}

func keyOf(h toc.Heading) headingKey {
	return headingKey{level: h.Level, slug: toc.TextToURL(h.Text)}
}

// diffHeadings pairs scanned and parsed headings by level and slug. It
// returns the parsed headings missing from scanned and the scanned headings
// missing from parsed.
func diffHeadings(scanned, parsed []toc.Heading) (uncovered, phantom []toc.Heading) {
	pending := make(map[headingKey][]int)
	for i, h := range scanned {
		k := keyOf(h)
		pending[k] = append(pending[k], i)
	}

	matched := make([]bool, len(scanned))
	for _, h := range parsed {
		k := keyOf(h)
		idx := pending[k]
		if len(idx) == 0 {
			uncovered = append(uncovered, h)
			continue
		}
		matched[idx[0]] = true
		pending[k] = idx[1:]
	}

	for i, h := range scanned {
		if !matched[i] {
			phantom = append(phantom, h)
		}
	}
	return uncovered, phantom
}
