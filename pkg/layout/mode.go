package layout

import (
	"golang.org/x/net/html/atom"

	"toybrowser/pkg/html"
)

type Mode int

const (
	ModeBlock Mode = iota
	ModeInline
)

func (m Mode) String() string {
	if m == ModeInline {
		return "inline"
	}
	return "block"
}

var blockElements = map[atom.Atom]bool{
	atom.Html: true, atom.Body: true, atom.Article: true, atom.Section: true,
	atom.Nav: true, atom.Aside: true, atom.H1: true, atom.H2: true,
	atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Hgroup: true, atom.Header: true, atom.Footer: true, atom.Address: true,
	atom.P: true, atom.Hr: true, atom.Pre: true, atom.Blockquote: true,
	atom.Ol: true, atom.Ul: true, atom.Menu: true, atom.Li: true,
	atom.Dl: true, atom.Dt: true, atom.Dd: true, atom.Figure: true,
	atom.Figcaption: true, atom.Main: true, atom.Div: true, atom.Table: true,
	atom.Form: true, atom.Fieldset: true, atom.Legend: true, atom.Details: true,
	atom.Summary: true,
}

// IsBlockElement reports whether tag names a block-level element.
func IsBlockElement(tag string) bool {
	return blockElements[atom.Lookup([]byte(tag))]
}

// LayoutMode classifies node. Text is always inline. An element is block
// when any element child is block-level, inline when it only has inline
// content, and block when it has no children at all.
func LayoutMode(node *html.Node) Mode {
	if node.Type == html.TextNode {
		return ModeInline
	}
	if len(node.Children) == 0 {
		return ModeBlock
	}
	for _, child := range node.Children {
		if child.Type == html.ElementNode && IsBlockElement(child.TagName) {
			return ModeBlock
		}
	}
	return ModeInline
}
