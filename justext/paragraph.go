package justext

import (
	"strings"
	"unicode/utf8"
)

// Paragraph is the unit of classification: a maximal stretch of text
// delimited by block-level tags, together with counters maintained while it
// was being assembled. Counters are final after MakeParagraphs, classes are
// mutated in place by the two classification stages.
type Paragraph struct {
	DomPath string // dot-joined lowercased element names from root, no ordinals
	XPath   string // slash-joined path with 1-based per-name sibling ordinals
	Text    string // normalized paragraph text

	WordsCount        int  // whitespace-separated tokens in Text
	CharsCountInLinks int  // runes emitted while inside an <a> ancestor
	TagsCount         int  // inline elements seen inside the paragraph
	Heading           bool // DomPath contains an h0-h9 token

	InitialClass Class // context-free label, preserved through revision
	ClassType    Class // final label
}

// Len returns text length in Unicode scalar values. All length thresholds
// and distances operate on runes, not bytes.
func (p *Paragraph) Len() int {
	return utf8.RuneCountInString(p.Text)
}

// LinksDensity returns the fraction of text runes emitted inside links.
// Empty text yields 0.
func (p *Paragraph) LinksDensity() float64 {
	length := p.Len()
	if length == 0 {
		return 0
	}
	return float64(p.CharsCountInLinks) / float64(length)
}

// StopwordsCount returns the number of tokens which, lowercased, belong to
// the stoplist.
func (p *Paragraph) StopwordsCount(stoplist Stoplist) int {
	count := 0
	for _, word := range strings.Fields(p.Text) {
		if _, ok := stoplist[strings.ToLower(word)]; ok {
			count++
		}
	}
	return count
}

// StopwordsDensity returns the fraction of tokens belonging to the stoplist.
// A paragraph without words (including punctuation-only text) yields 0.
func (p *Paragraph) StopwordsDensity(stoplist Stoplist) float64 {
	if p.WordsCount == 0 {
		return 0
	}
	return float64(p.StopwordsCount(stoplist)) / float64(p.WordsCount)
}
