package justext

import (
	"strings"

	"golang.org/x/net/html"
)

// Subtrees which never contribute text paragraphs.
var killTags = map[string]struct{}{
	"script":   {},
	"style":    {},
	"head":     {},
	"form":     {},
	"input":    {},
	"button":   {},
	"select":   {},
	"textarea": {},
	"embed":    {},
	"object":   {},
	"applet":   {},
}

// Preprocess removes, in place, every element whose subtree never produces
// text paragraphs together with all its descendants, plus HTML comment nodes
// anywhere in the tree. The order of remaining children is preserved and the
// operation is idempotent.
func Preprocess(root *html.Node) {
	var next *html.Node
	for n := root.FirstChild; n != nil; n = next {
		// RemoveChild severs sibling links, remember the next one first.
		next = n.NextSibling
		switch n.Type {
		case html.CommentNode:
			root.RemoveChild(n)
		case html.ElementNode:
			if _, kill := killTags[strings.ToLower(n.Data)]; kill {
				root.RemoveChild(n)
			} else {
				Preprocess(n)
			}
		}
	}
}
