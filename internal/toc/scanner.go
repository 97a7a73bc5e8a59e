package toc

import (
	"iter"
	"regexp"
	"strings"
)

// Heading is a heading line selected for the table of contents.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"` // display text, links stripped
	Line  int    `json:"line" yaml:"line"` // 1-indexed source line
}

const fenceMarker = "```"

var headingPattern = regexp.MustCompile(`^(#{1,6})\s(.*)$`)

// matchHeading parses an ATX heading line. It reports false for lines that
// start with '#' but are not headings, such as "#tag" or "####### seven".
func matchHeading(line string) (level int, text string, ok bool) {
	m := headingPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	return len(m[1]), m[2], true
}

type fenceState int

const (
	fenceOutside fenceState = iota
	fenceOpening            // the line that opened the fence
	fenceInside
)

// scanState tracks triple-backtick fences across lines.
type scanState struct {
	fence fenceState
}

// advance moves the state past line and reports whether line may be read as
// a heading. A fence that is never closed suppresses everything after it.
func (s *scanState) advance(line string) bool {
	isFence := strings.HasPrefix(line, fenceMarker)

	switch s.fence {
	case fenceOutside:
		if isFence {
			s.fence = fenceOpening
			return false
		}
		return true
	case fenceOpening, fenceInside:
		if isFence {
			s.fence = fenceOutside
		} else {
			s.fence = fenceInside
		}
		return false
	}
	return false
}

func (s *scanState) insideFence() bool {
	return s.fence != fenceOutside
}

// Headings returns the headings of text whose level lies within
// [minDepth, maxDepth], in document order. The sequence is lazy and each
// iteration rescans text from the start.
func Headings(text string, minDepth, maxDepth int) iter.Seq[Heading] {
	return func(yield func(Heading) bool) {
		var state scanState
		lineNum := 0
		for line := range strings.Lines(text) {
			lineNum++
			line = strings.TrimRight(line, "\r\n")

			if !state.advance(line) || !strings.HasPrefix(line, "#") {
				continue
			}

			level, raw, ok := matchHeading(line)
			if !ok {
				continue
			}
			if level < minDepth || level > maxDepth {
				continue
			}

			if !yield(Heading{Level: level, Text: StripLinks(raw), Line: lineNum}) {
				return
			}
		}
	}
}
