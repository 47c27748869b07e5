// Package justext classifies text paragraphs of an HTML document as either
// main content or boilerplate (navigation, footers, ads, link menus). It is a
// building block for full-page text extractors, meant to be invoked when
// structural heuristics fail: the caller hands in a decoded HTML document and
// a stoplist for its language and receives the ordered paragraph sequence
// with final labels attached.
package justext

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Stoplist is a set of lowercase stopword tokens for a single language.
// Paragraph tokens are lowercased before membership checks, the stoplist
// itself is expected to be lowercase already. An empty stoplist together with
// zero StopwordsLow/StopwordsHigh gives language-independent classification.
type Stoplist map[string]struct{}

// Options holds classification thresholds.
type Options struct {
	LengthLow          int     // character threshold for "short" paragraph
	LengthHigh         int     // character threshold for "long enough to be good on its own"
	StopwordsLow       float64 // minimum stopword density for the nearGood branch
	StopwordsHigh      float64 // minimum stopword density for the good/nearGood branch
	MaxLinkDensity     float64 // above this a paragraph is bad regardless of content
	MaxHeadingDistance int     // character window for heading promotion
	NoHeadings         bool    // disable heading detection and promotion stages
}

// DefaultOptions returns thresholds suitable for most western languages.
func DefaultOptions() Options {
	return Options{
		LengthLow:          70,
		LengthHigh:         200,
		StopwordsLow:       0.30,
		StopwordsHigh:      0.32,
		MaxLinkDensity:     0.20,
		MaxHeadingDistance: 200,
	}
}

// Classify parses document, cuts it into paragraphs and labels every one of
// them. The only possible error is a parser failure, it is returned
// unchanged. The returned sequence preserves document order.
func Classify(document string, stoplist Stoplist, opts Options, log *zap.Logger) ([]*Paragraph, error) {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return nil, err
	}
	return ClassifyNode(root, stoplist, opts, log), nil
}

// ClassifyNode labels paragraphs of an already parsed document. The tree is
// preprocessed in place, callers which need the pristine tree afterwards
// should hand in a copy.
func ClassifyNode(root *html.Node, stoplist Stoplist, opts Options, log *zap.Logger) []*Paragraph {
	if log == nil {
		log = zap.NewNop()
	}

	Preprocess(root)
	paragraphs := MakeParagraphs(root)
	if opts.NoHeadings {
		for _, p := range paragraphs {
			p.Heading = false
		}
	}

	classifyContextFree(paragraphs, stoplist, &opts)
	Revise(paragraphs, opts)

	good := 0
	for _, p := range paragraphs {
		if p.ClassType == ClassGood {
			good++
		}
	}
	log.Debug("Classification completed", zap.Int("paragraphs", len(paragraphs)), zap.Int("good", good))
	return paragraphs
}

// ExtractText returns document main content: texts of good paragraphs joined
// with single line feeds, no trailing newline.
func ExtractText(document string, stoplist Stoplist, opts Options, log *zap.Logger) (string, error) {
	paragraphs, err := Classify(document, stoplist, opts, log)
	if err != nil {
		return "", err
	}
	return JoinGood(paragraphs), nil
}

// JoinGood joins texts of paragraphs with final class good.
func JoinGood(paragraphs []*Paragraph) string {
	var b strings.Builder
	for _, p := range paragraphs {
		if p.ClassType != ClassGood {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p.Text)
	}
	return b.String()
}
