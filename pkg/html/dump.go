package html

import (
	"strings"

	tp "github.com/xlab/treeprint"
)

// Dump renders the subtree rooted at root as an indented tree, one node
// per line.
func Dump(root *Node) string {
	p := tp.New()
	dumpNode(p, root)
	return p.String()
}

func dumpNode(p tp.Tree, node *Node) {
	if len(node.Children) == 0 {
		p.AddNode(node.String())
		return
	}
	branch := p.AddBranch(node.String())
	for _, child := range node.Children {
		dumpNode(branch, child)
	}
}

// StyleTexts returns the text content of every <style> element in
// document order.
func StyleTexts(root *Node) []string {
	var sheets []string
	root.Walk(func(n *Node) bool {
		if !n.IsElement("style") {
			return true
		}
		var sb strings.Builder
		for _, child := range n.Children {
			if child.Type == TextNode {
				sb.WriteString(child.Text)
			}
		}
		sheets = append(sheets, sb.String())
		return false
	})
	return sheets
}

// StylesheetLinks returns the href of every <link rel=stylesheet> element
// in document order.
func StylesheetLinks(root *Node) []string {
	var links []string
	root.Walk(func(n *Node) bool {
		if !n.IsElement("link") {
			return true
		}
		rel, _ := n.GetAttribute("rel")
		href, ok := n.GetAttribute("href")
		if ok && href != "" && strings.EqualFold(rel, "stylesheet") {
			links = append(links, href)
		}
		return true
	})
	return links
}

// StripTags returns body with everything between < and > removed. It is
// the plain-text view of a page and does no tree building.
func StripTags(body string) string {
	var sb strings.Builder
	inTag := false
	for _, c := range body {
		switch {
		case c == '<':
			inTag = true
		case c == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(c)
		}
	}
	return sb.String()
}
