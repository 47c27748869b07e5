package justext

import "strings"

const (
	copyrightSign = '©'
	// undecoded entity left behind by sloppy upstream parsers, checked for in
	// addition to the decoded sign
	copyrightEntity = "&copy"
)

// classifyContextFree assigns every paragraph its context-free class using
// only the paragraph's own features. The result is written to both
// InitialClass and ClassType.
func classifyContextFree(paragraphs []*Paragraph, stoplist Stoplist, opts *Options) {
	for _, p := range paragraphs {
		c := classifyParagraph(p, stoplist, opts)
		p.InitialClass = c
		p.ClassType = c
	}
}

// classifyParagraph is a first-match-wins decision list over link density,
// length and stopword density.
func classifyParagraph(p *Paragraph, stoplist Stoplist, opts *Options) Class {
	switch {
	case p.LinksDensity() > opts.MaxLinkDensity:
		return ClassBad
	case strings.ContainsRune(p.Text, copyrightSign) || strings.Contains(p.Text, copyrightEntity):
		return ClassBad
	case strings.Contains(p.DomPath, "select"):
		return ClassBad
	}

	if p.Len() < opts.LengthLow {
		if p.CharsCountInLinks > 0 {
			return ClassBad
		}
		return ClassShort
	}

	density := p.StopwordsDensity(stoplist)
	switch {
	case density >= opts.StopwordsHigh:
		if p.Len() > opts.LengthHigh {
			return ClassGood
		}
		return ClassNearGood
	case density >= opts.StopwordsLow:
		return ClassNearGood
	}
	return ClassBad
}
