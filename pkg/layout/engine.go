package layout

import (
	"strings"

	"toybrowser/pkg/css"
	"toybrowser/pkg/html"
	"toybrowser/pkg/text"
)

const defaultColor = "black"

// Engine turns a document tree into positioned boxes. An Engine holds no
// per-document state, so one engine can lay out any number of documents.
type Engine struct {
	measurer text.Measurer
	opts     Options
}

func NewEngine(measurer text.Measurer, opts Options) *Engine {
	return &Engine{measurer: measurer, opts: opts}
}

func (e *Engine) Options() Options {
	return e.opts
}

// Layout builds a fresh box tree for root. styles may be nil, in which case
// every word is black.
func (e *Engine) Layout(root *html.Node, styles css.StyleMap) *Document {
	doc := &Document{
		X:     e.opts.HStep,
		Y:     e.opts.VStep,
		Width: e.opts.Width - 2*e.opts.HStep,
	}
	pass := &layoutPass{engine: e, styles: styles}

	doc.Root = &Box{Kind: BlockBox, Node: root}
	pass.layoutBlock(doc.Root, doc.X, doc.Y, doc.Width)
	doc.Height = doc.Root.Height + 2*e.opts.VStep
	return doc
}

// layoutPass carries the inputs of a single Layout call.
type layoutPass struct {
	engine *Engine
	styles css.StyleMap
}

func (p *layoutPass) layoutBlock(box *Box, x, y, width float64) {
	box.X = x
	box.Y = y
	box.Width = width

	if box.Kind == InlineBox {
		p.layoutInline(box)
		return
	}

	var prev *Box
	for _, child := range box.Node.Children {
		kind := BlockBox
		if LayoutMode(child) == ModeInline {
			kind = InlineBox
		}
		next := &Box{Kind: kind, Node: child, Parent: box, Previous: prev}
		box.Children = append(box.Children, next)
		prev = next
	}

	box.Height = 0
	for _, child := range box.Children {
		childY := box.Y
		if child.Previous != nil {
			childY = child.Previous.Y + child.Previous.Height
		}
		p.layoutBlock(child, box.X, childY, box.Width)
		box.Height += child.Height
	}
}

// inlineStyle is the font state in effect while walking inline content.
// It is passed by value so that closing an element restores the state of
// its parent.
type inlineStyle struct {
	weight text.Weight
	slant  text.Slant
	size   int
}

func (p *layoutPass) layoutInline(box *Box) {
	lb := &lineBuilder{
		box:      box,
		measurer: p.engine.measurer,
		cursorY:  box.Y,
	}
	p.walk(lb, box.Node, inlineStyle{size: p.engine.opts.FontSize})
	lb.flush()

	box.Words = lb.words
	box.Height = lb.cursorY - box.Y
}

func (p *layoutPass) walk(lb *lineBuilder, node *html.Node, style inlineStyle) {
	if node.Type == html.TextNode {
		p.text(lb, node, style)
		return
	}

	switch node.TagName {
	case "i":
		style.slant = text.Italic
	case "b":
		style.weight = text.Bold
	case "small":
		style.size -= 2
	case "big":
		style.size += 4
	case "br":
		lb.flush()
	}

	for _, child := range node.Children {
		p.walk(lb, child, style)
	}

	if node.TagName == "p" {
		lb.flush()
		lb.cursorY += p.engine.opts.VStep
	}
}

func (p *layoutPass) text(lb *lineBuilder, node *html.Node, style inlineStyle) {
	m := p.engine.measurer
	font := m.Resolve(style.size, style.weight, style.slant)
	color := p.color(node)
	space := m.Measure(font, " ")
	limit := lb.box.Width - p.engine.opts.HStep

	for _, word := range strings.Fields(node.Text) {
		w := m.Measure(font, word)
		if lb.cursorX+w > limit {
			lb.flush()
		}
		lb.line = append(lb.line, lineItem{x: lb.cursorX, text: word, font: font, color: color})
		lb.cursorX += w + space
	}
}

func (p *layoutPass) color(node *html.Node) string {
	if c := p.styles.Get(node.Parent, "color"); c != "" {
		return c
	}
	return defaultColor
}

type lineItem struct {
	x     float64 // relative to the box's left edge
	text  string
	font  text.Font
	color string
}

// lineBuilder accumulates words for the current line of an inline box.
type lineBuilder struct {
	box      *Box
	measurer text.Measurer
	cursorX  float64
	cursorY  float64
	line     []lineItem
	words    []Word
}

// flush places the pending line on a shared baseline and starts a new
// line. Flushing an empty line does nothing.
func (lb *lineBuilder) flush() {
	if len(lb.line) == 0 {
		return
	}

	var maxAscent, maxDescent float64
	for _, item := range lb.line {
		m := lb.measurer.Metrics(item.font)
		maxAscent = max(maxAscent, m.Ascent)
		maxDescent = max(maxDescent, m.Descent)
	}

	baseline := lb.cursorY + 1.25*maxAscent
	for _, item := range lb.line {
		lb.words = append(lb.words, Word{
			X:     lb.box.X + item.x,
			Y:     baseline - lb.measurer.Metrics(item.font).Ascent,
			Text:  item.text,
			Font:  item.font,
			Color: item.color,
		})
	}

	lb.cursorY = baseline + 1.25*maxDescent
	lb.cursorX = 0
	lb.line = nil
}
