package html

import (
	"sort"
	"strconv"
	"strings"
)

// Node is one node of the document tree. Children are owned by their
// parent; Parent is only a lookup pointer used for ancestor walks.
type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
	Parent     *Node
}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// NewElement returns an element node whose parent is parent. The node is
// not attached to parent's children.
func NewElement(tag string, attributes map[string]string, parent *Node) *Node {
	if attributes == nil {
		attributes = make(map[string]string)
	}
	return &Node{
		Type:       ElementNode,
		TagName:    tag,
		Attributes: attributes,
		Children:   make([]*Node, 0),
		Parent:     parent,
	}
}

// NewText returns a text node whose parent is parent.
func NewText(text string, parent *Node) *Node {
	return &Node{
		Type:   TextNode,
		Text:   text,
		Parent: parent,
	}
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[strings.ToLower(name)]
	return val, ok
}

// AddChild adds a child node and sets up the parent relationship
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// IsElement reports whether n is an element with the given tag.
func (n *Node) IsElement(tag string) bool {
	return n != nil && n.Type == ElementNode && n.TagName == tag
}

// Walk visits n and its descendants in document pre-order. Returning false
// from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// String renders an element as its open tag with sorted attributes and a
// text node as a quoted string.
func (n *Node) String() string {
	if n.Type == TextNode {
		return strconv.Quote(n.Text)
	}

	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(n.TagName)

	// Sort attributes for deterministic output
	if len(n.Attributes) > 0 {
		keys := make([]string, 0, len(n.Attributes))
		for k := range n.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteByte(' ')
			sb.WriteString(k)
			sb.WriteString(`="`)
			sb.WriteString(n.Attributes[k])
			sb.WriteByte('"')
		}
	}
	sb.WriteByte('>')
	return sb.String()
}
