package toc

import "regexp"

var regionPattern = regexp.MustCompile(`(?ms)^(<!-- BEGIN mktoc(.*?)-->)(.*?)(<!-- END mktoc -->)`)

// Region is the first sentinel-delimited block of a document.
type Region struct {
	Start        int    // byte offset of the begin sentinel
	End          int    // byte offset just past the end sentinel
	BeginComment string // begin sentinel as written, JSON included
	Body         string // text between the sentinels
}

// FindRegion locates the first region whose begin sentinel starts a line.
func FindRegion(text string) (Region, bool) {
	loc := regionPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return Region{}, false
	}
	return Region{
		Start:        loc[0],
		End:          loc[1],
		BeginComment: text[loc[2]:loc[3]],
		Body:         text[loc[6]:loc[7]],
	}, true
}

// Splice replaces the first region, sentinels included, with rendered.
// Text outside the region is kept byte for byte. Without a region the
// original is returned unchanged.
func Splice(original, rendered string) string {
	r, ok := FindRegion(original)
	if !ok {
		return original
	}
	return original[:r.Start] + rendered + original[r.End:]
}
