package css

import (
	"fmt"

	"toybrowser/pkg/html"
)

// Selector is either a TagSelector or a DescendantSelector.
type Selector interface {
	// Matches reports whether node satisfies the selector.
	Matches(node *html.Node) bool
	// Specificity is the number of simple selectors composed.
	Specificity() int
	String() string

	sealed()
}

// TagSelector matches elements by tag name. Tag is lower-case.
type TagSelector struct {
	Tag string
}

func (s TagSelector) Matches(node *html.Node) bool {
	return node != nil && node.Type == html.ElementNode && node.TagName == s.Tag
}

func (s TagSelector) Specificity() int { return 1 }

func (s TagSelector) String() string { return s.Tag }

func (TagSelector) sealed() {}

// DescendantSelector matches nodes that match Descendant and have a strict
// ancestor matching Ancestor.
type DescendantSelector struct {
	Ancestor   Selector
	Descendant Selector
}

func (s DescendantSelector) Matches(node *html.Node) bool {
	if !s.Descendant.Matches(node) {
		return false
	}
	for ancestor := node.Parent; ancestor != nil; ancestor = ancestor.Parent {
		if s.Ancestor.Matches(ancestor) {
			return true
		}
	}
	return false
}

func (s DescendantSelector) Specificity() int {
	return s.Ancestor.Specificity() + s.Descendant.Specificity()
}

func (s DescendantSelector) String() string {
	return fmt.Sprintf("%s %s", s.Ancestor, s.Descendant)
}

func (DescendantSelector) sealed() {}

// FindMatchingRules returns all rules that match the given node, in
// stylesheet order.
func FindMatchingRules(node *html.Node, rules []Rule) []Rule {
	matches := make([]Rule, 0)
	for _, rule := range rules {
		if rule.Selector.Matches(node) {
			matches = append(matches, rule)
		}
	}
	return matches
}
