package paint

import (
	"toybrowser/pkg/css"
	"toybrowser/pkg/layout"
	"toybrowser/pkg/text"
)

const preBackground = "gray"

// Painter converts a laid-out document into a display list.
type Painter struct {
	measurer text.Measurer
	styles   css.StyleMap
}

// NewPainter returns a painter that reads line heights from measurer and
// background colors from styles. styles may be nil.
func NewPainter(measurer text.Measurer, styles css.StyleMap) *Painter {
	return &Painter{measurer: measurer, styles: styles}
}

// Paint walks doc in pre-order and returns its commands in drawing order.
func (p *Painter) Paint(doc *layout.Document) []Command {
	var cmds []Command
	if doc == nil || doc.Root == nil {
		return cmds
	}
	return p.paintBox(doc.Root, cmds)
}

func (p *Painter) paintBox(box *layout.Box, cmds []Command) []Command {
	switch box.Kind {
	case layout.BlockBox:
		for _, child := range box.Children {
			cmds = p.paintBox(child, cmds)
		}
	case layout.InlineBox:
		if box.Node.IsElement("pre") {
			cmds = append(cmds, DrawRect{
				Top:    box.Y,
				Left:   box.X,
				Right:  box.X + box.Width,
				Bottom: box.Y + box.Height,
				Color:  p.background(box),
			})
		}
		for _, w := range box.Words {
			cmds = append(cmds, DrawText{
				Top:    w.Y,
				Left:   w.X,
				Bottom: w.Y + p.measurer.Metrics(w.Font).Linespace,
				Text:   w.Text,
				Font:   w.Font,
				Color:  w.Color,
			})
		}
	}
	return cmds
}

func (p *Painter) background(box *layout.Box) string {
	if c := p.styles.Get(box.Node, "background-color"); c != "" {
		return c
	}
	return preBackground
}
