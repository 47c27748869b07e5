package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"jtx/state"
)

// Content encapsulates the parsed HTML document together with metadata
// needed for output naming. Metadata is captured at parse time - the
// classifier preprocesses the tree in place and drops the head subtree.
type Content struct {
	SrcName string
	Root    *html.Node
	Title   string
}

// prepareContent reads, decodes and parses a single HTML document. Whatever
// encoding the document declares (or sniffs as) is converted to UTF-8 before
// parsing.
func prepareContent(ctx context.Context, r io.Reader, srcName string, log *zap.Logger) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	cr, err := charset.NewReader(r, "")
	if err != nil {
		return nil, fmt.Errorf("unable to detect document encoding: %w", err)
	}
	data, err := io.ReadAll(cr)
	if err != nil {
		return nil, fmt.Errorf("unable to read document: %w", err)
	}

	// Save decoded input for debugging
	if env.Rpt != nil {
		env.Rpt.StoreData(path.Join("input", filepath.Base(srcName)), data)
	}

	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to parse HTML: %w", err)
	}

	c := &Content{
		SrcName: srcName,
		Root:    root,
		Title:   documentTitle(root),
	}
	log.Debug("Document prepared", zap.String("source", srcName), zap.String("title", c.Title))
	return c, nil
}

// documentTitle returns the text of the first <title> element, whitespace
// collapsed.
func documentTitle(root *html.Node) string {
	var title *html.Node

	var find func(n *html.Node)
	find = func(n *html.Node) {
		if title != nil {
			return
		}
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "title") {
			title = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(root)

	if title == nil {
		return ""
	}
	var b strings.Builder
	for c := title.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
