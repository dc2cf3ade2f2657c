package css

import (
	"sort"

	"toybrowser/pkg/html"
)

// DefaultStylesheet is applied before any author stylesheet.
const DefaultStylesheet = `
pre { background-color: gray; }
a { color: blue; }
`

// InheritedProperties lists the properties an element takes from its
// parent, with the value used at the root.
var InheritedProperties = map[string]string{
	"color":       "black",
	"font-size":   "16px",
	"font-style":  "normal",
	"font-weight": "normal",
}

// StyleMap holds the computed declarations of every element in a tree.
type StyleMap map[*html.Node]map[string]string

// Get returns the computed value of property for node, or "" when node
// has no computed style.
func (m StyleMap) Get(node *html.Node, property string) string {
	if m == nil {
		return ""
	}
	return m[node][property]
}

// SortBySpecificity orders rules by ascending specificity in place. Rules
// with equal specificity keep their stylesheet order.
func SortBySpecificity(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Selector.Specificity() < rules[j].Selector.Specificity()
	})
}

// ComputeStyles computes the final style of every element under root:
// inherited values first, then matching rules from lowest to highest
// specificity, then the inline style attribute.
func ComputeStyles(root *html.Node, rules []Rule, opts ...Option) StyleMap {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	SortBySpecificity(sorted)

	styles := make(StyleMap)
	computeNode(root, sorted, styles, opts)
	return styles
}

func computeNode(node *html.Node, rules []Rule, styles StyleMap, opts []Option) {
	if node.Type != html.ElementNode {
		return
	}

	style := make(map[string]string)
	for property, initial := range InheritedProperties {
		if parentStyle, ok := styles[node.Parent]; ok && node.Parent != nil {
			style[property] = parentStyle[property]
		} else {
			style[property] = initial
		}
	}

	for _, rule := range rules {
		if !rule.Selector.Matches(node) {
			continue
		}
		for property, value := range rule.Declarations {
			style[property] = value
		}
	}

	if inline, ok := node.GetAttribute("style"); ok {
		for property, value := range ParseDeclarations(inline, opts...) {
			style[property] = value
		}
	}
	styles[node] = style

	for _, child := range node.Children {
		computeNode(child, rules, styles, opts)
	}
}
