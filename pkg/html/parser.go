package html

import (
	"strings"
)

// Parser builds a document tree from HTML text. It never rejects input:
// missing structural tags are synthesized and unclosed elements are
// closed when the input ends.
type Parser struct {
	body       string
	unfinished []*Node // open elements, innermost last
}

func NewParser(body string) *Parser {
	return &Parser{body: body}
}

// Parse returns the root of the tree, always an <html> element.
func (p *Parser) Parse() *Node {
	var buf strings.Builder
	inTag := false
	for _, c := range p.body {
		switch {
		case c == '<':
			inTag = true
			if buf.Len() > 0 {
				p.addText(buf.String())
			}
			buf.Reset()
		case c == '>' && inTag:
			inTag = false
			p.addTag(buf.String())
			buf.Reset()
		default:
			buf.WriteRune(c)
		}
	}
	// An unterminated tag at the end of the input is dropped.
	if !inTag && buf.Len() > 0 {
		p.addText(buf.String())
	}
	return p.finish()
}

// currentParent returns the current parent node (top of stack)
func (p *Parser) currentParent() *Node {
	if len(p.unfinished) == 0 {
		return nil
	}
	return p.unfinished[len(p.unfinished)-1]
}

// push adds a node to the stack
func (p *Parser) push(node *Node) {
	p.unfinished = append(p.unfinished, node)
}

// pop removes the top node from the stack
func (p *Parser) pop() *Node {
	node := p.unfinished[len(p.unfinished)-1]
	p.unfinished = p.unfinished[:len(p.unfinished)-1]
	return node
}

func (p *Parser) addText(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	p.implicitTags("")
	parent := p.currentParent()
	parent.AddChild(NewText(text, parent))
}

func (p *Parser) addTag(raw string) {
	tag, attributes := parseTagContents(raw)
	// <!doctype>, <!-- comments --> and empty <> have no effect.
	if tag == "" || strings.HasPrefix(tag, "!") {
		return
	}
	p.implicitTags(tag)

	switch {
	case strings.HasPrefix(tag, "/"):
		if len(p.unfinished) == 1 {
			return
		}
		node := p.pop()
		p.currentParent().AddChild(node)
	case IsSelfClosing(tag):
		parent := p.currentParent()
		parent.AddChild(NewElement(tag, attributes, parent))
	default:
		p.push(NewElement(tag, attributes, p.currentParent()))
	}
}

// implicitTags synthesizes html, head/body and </head> until the open
// element names form a prefix in which tag may appear. tag is empty when
// called for a text run.
func (p *Parser) implicitTags(tag string) {
	for {
		open := p.openTagNames()
		switch {
		case len(open) == 0 && tag != "html":
			p.addTag("html")
		case sameTags(open, "html") && tag != "head" && tag != "body" && tag != "/html":
			if IsHeadTag(tag) {
				p.addTag("head")
			} else {
				p.addTag("body")
			}
		case sameTags(open, "html", "head") && tag != "/head" && !IsHeadTag(tag):
			p.addTag("/head")
		default:
			return
		}
	}
}

func (p *Parser) openTagNames() []string {
	names := make([]string, len(p.unfinished))
	for i, node := range p.unfinished {
		names[i] = node.TagName
	}
	return names
}

func sameTags(open []string, want ...string) bool {
	if len(open) != len(want) {
		return false
	}
	for i := range open {
		if open[i] != want[i] {
			return false
		}
	}
	return true
}

func (p *Parser) finish() *Node {
	if len(p.unfinished) == 0 {
		p.addTag("html")
	}
	for len(p.unfinished) > 1 {
		node := p.pop()
		p.currentParent().AddChild(node)
	}
	return p.pop()
}

// parseTagContents splits the text between < and > into a lower-cased tag
// name and its attributes.
func parseTagContents(text string) (string, map[string]string) {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return "", nil
	}
	tag := strings.ToLower(parts[0])
	attributes := make(map[string]string)
	for _, pair := range parts[1:] {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			attributes[strings.ToLower(pair)] = ""
			continue
		}
		if len(value) > 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
			value = value[1 : len(value)-1]
		}
		attributes[strings.ToLower(key)] = value
	}
	return tag, attributes
}

func Parse(body string) *Node {
	return NewParser(body).Parse()
}
