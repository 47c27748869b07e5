package justext

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Tags that open and close paragraphs. Some of these are also on the
// preprocessor kill list and will never be encountered on a preprocessed
// tree, they are kept here for completeness.
var blockTags = map[string]struct{}{
	"body":       {},
	"blockquote": {},
	"caption":    {},
	"center":     {},
	"col":        {},
	"colgroup":   {},
	"dd":         {},
	"div":        {},
	"dl":         {},
	"dt":         {},
	"fieldset":   {},
	"form":       {},
	"legend":     {},
	"optgroup":   {},
	"option":     {},
	"p":          {},
	"pre":        {},
	"table":      {},
	"td":         {},
	"textarea":   {},
	"tfoot":      {},
	"th":         {},
	"thead":      {},
	"tr":         {},
	"ul":         {},
	"li":         {},
	"h1":         {},
	"h2":         {},
	"h3":         {},
	"h4":         {},
	"h5":         {},
	"h6":         {},
}

func isBlockTag(name string) bool {
	_, ok := blockTags[name]
	return ok
}

// pathTracker maintains the open element stack during the walk. Ordinals are
// 1-based counts of same-name siblings already entered at the same depth.
type pathTracker struct {
	names []string
	ords  []int
	// per-depth sibling name counters, always one map deeper than names
	counts []map[string]int
}

func newPathTracker() *pathTracker {
	return &pathTracker{counts: []map[string]int{{}}}
}

func (t *pathTracker) push(name string) {
	depth := len(t.names)
	ord := t.counts[depth][name] + 1
	t.counts[depth][name] = ord
	t.names = append(t.names, name)
	t.ords = append(t.ords, ord)
	t.counts = append(t.counts, map[string]int{})
}

func (t *pathTracker) pop() {
	t.counts = t.counts[:len(t.counts)-1]
	t.names = t.names[:len(t.names)-1]
	t.ords = t.ords[:len(t.ords)-1]
}

func (t *pathTracker) domPath() string {
	return strings.Join(t.names, ".")
}

func (t *pathTracker) xpath() string {
	var b strings.Builder
	for i, name := range t.names {
		b.WriteByte('/')
		b.WriteString(name)
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(t.ords[i]))
		b.WriteByte(']')
	}
	return b.String()
}

// paragraphMaker cuts the character stream of the element tree into
// paragraph units. The walk is depth-first pre-order, paragraphs are emitted
// in the order their opening block element was encountered.
type paragraphMaker struct {
	path       *pathTracker
	paragraphs []*Paragraph

	cur       *Paragraph
	fragments []string
	link      int  // <a> nesting depth, non-zero means inside a link
	br        bool // single <br> pending with no intervening non-blank text
}

func newParagraphMaker() *paragraphMaker {
	m := &paragraphMaker{path: newPathTracker()}
	m.open()
	return m
}

// open starts a new empty paragraph with path snapshots taken from the
// current tracker state and clears the pending <br>.
func (m *paragraphMaker) open() {
	m.cur = &Paragraph{DomPath: m.path.domPath(), XPath: m.path.xpath()}
	m.fragments = m.fragments[:0]
	m.br = false
}

// flush emits the current paragraph if it accumulated any text fragments,
// then opens a new one. The joined text is stripped of leading and trailing
// whitespace, so a paragraph holding only the space contributed by a lone
// <br> is emitted with empty text.
func (m *paragraphMaker) flush() {
	if len(m.fragments) > 0 {
		p := m.cur
		p.Text = strings.TrimSpace(strings.Join(m.fragments, ""))
		p.WordsCount = len(strings.Fields(p.Text))
		p.Heading = isHeadingPath(p.DomPath)
		m.paragraphs = append(m.paragraphs, p)
	}
	m.open()
}

func (m *paragraphMaker) walk(n *html.Node) {
	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			m.walk(c)
		}
	case html.ElementNode:
		name := strings.ToLower(n.Data)
		m.path.push(name)
		switch {
		case isBlockTag(name):
			m.flush()
		case name == "br":
			if m.br {
				// second of a <br><br> pair: a paragraph separator, undo the
				// tag count contributed by the first one
				m.cur.TagsCount--
				m.flush()
			} else {
				m.fragments = append(m.fragments, " ")
				m.br = true
				m.cur.TagsCount++
			}
		case name == "a":
			m.link++
			m.cur.TagsCount++
		default:
			m.cur.TagsCount++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			m.walk(c)
		}
		if isBlockTag(name) {
			m.flush()
		} else if name == "a" {
			m.link--
		}
		m.path.pop()
	case html.TextNode:
		m.text(n.Data)
	}
}

func (m *paragraphMaker) text(raw string) {
	norm := normalizeWhitespace(raw)
	if strings.TrimSpace(norm) == "" {
		// blank text neither accumulates nor clears a pending <br>
		return
	}
	m.fragments = append(m.fragments, norm)
	if m.link > 0 {
		m.cur.CharsCountInLinks += utf8.RuneCountInString(norm)
	}
	m.br = false
}

// MakeParagraphs walks the (preprocessed) tree and returns the ordered
// paragraph sequence with text, counters and paths filled in. Classes are
// left at their zero value.
func MakeParagraphs(root *html.Node) []*Paragraph {
	m := newParagraphMaker()
	m.walk(root)
	m.flush()
	return m.paragraphs
}

// normalizeWhitespace collapses every whitespace run containing a line break
// to a single "\n" and every other whitespace run, NBSP and narrow NBSP
// included, to a single space. Idempotent.
func normalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inRun, hasBreak := false, false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inRun = true
			if r == '\n' || r == '\r' {
				hasBreak = true
			}
			continue
		}
		if inRun {
			if hasBreak {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
			inRun, hasBreak = false, false
		}
		b.WriteRune(r)
	}
	if inRun {
		if hasBreak {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// isHeadingPath reports whether any dot-separated token of the dom path is
// the letter h followed by exactly one decimal digit. The h0-h9 range is
// wider than HTML's h1-h6 on purpose.
func isHeadingPath(domPath string) bool {
	for _, tok := range strings.Split(domPath, ".") {
		if len(tok) == 2 && tok[0] == 'h' && tok[1] >= '0' && tok[1] <= '9' {
			return true
		}
	}
	return false
}
