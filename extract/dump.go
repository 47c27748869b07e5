package extract

import (
	"encoding/json"
	"fmt"

	"jtx/common"
	"jtx/justext"
	"jtx/utils/debug"
)

// paragraphRecord is the JSON shape of a classified paragraph.
type paragraphRecord struct {
	DomPath           string        `json:"dom_path"`
	XPath             string        `json:"xpath"`
	Text              string        `json:"text"`
	WordsCount        int           `json:"words_count"`
	CharsCountInLinks int           `json:"chars_count_in_links"`
	TagsCount         int           `json:"tags_count"`
	Heading           bool          `json:"heading"`
	InitialClass      justext.Class `json:"initial_class"`
	ClassType         justext.Class `json:"class_type"`
}

// render produces output bytes in the requested format. Text output is the
// newline-joined good paragraphs, JSON output is the paragraph dump (good
// paragraphs only unless all is set).
func render(paragraphs []*justext.Paragraph, format common.OutputFmt, all bool) ([]byte, error) {
	switch format {
	case common.OutputFmtText:
		return []byte(justext.JoinGood(paragraphs)), nil
	case common.OutputFmtJson:
		records := make([]paragraphRecord, 0, len(paragraphs))
		for _, p := range paragraphs {
			if !all && p.ClassType != justext.ClassGood {
				continue
			}
			records = append(records, paragraphRecord{
				DomPath:           p.DomPath,
				XPath:             p.XPath,
				Text:              p.Text,
				WordsCount:        p.WordsCount,
				CharsCountInLinks: p.CharsCountInLinks,
				TagsCount:         p.TagsCount,
				Heading:           p.Heading,
				InitialClass:      p.InitialClass,
				ClassType:         p.ClassType,
			})
		}
		return json.MarshalIndent(records, "", "  ")
	default:
		// this should never happen
		panic(fmt.Sprintf("unsupported format requested: %d", format))
	}
}

// dumpParagraphs renders classified paragraphs for the debug report.
func dumpParagraphs(paragraphs []*justext.Paragraph) string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "paragraphs: %d", len(paragraphs))
	for i, p := range paragraphs {
		tw.Fields(1, "index", i, "class", p.ClassType, "initial", p.InitialClass,
			"heading", p.Heading, "words", p.WordsCount, "links_chars", p.CharsCountInLinks, "tags", p.TagsCount)
		tw.Line(2, "dom: %s", p.DomPath)
		tw.Line(2, "xpath: %s", p.XPath)
		tw.TextBlock(2, "text", p.Text)
	}
	return tw.String()
}
