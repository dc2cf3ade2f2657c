package layout

import (
	"fmt"

	"toybrowser/pkg/html"
	"toybrowser/pkg/text"
)

// Kind distinguishes block boxes, which stack their children vertically,
// from inline boxes, which flow words into lines.
type Kind int

const (
	BlockBox Kind = iota
	InlineBox
)

func (k Kind) String() string {
	if k == InlineBox {
		return "inline"
	}
	return "block"
}

type Box struct {
	Kind     Kind
	Node     *html.Node
	Parent   *Box // nil for the root block
	Previous *Box // preceding sibling, used for vertical stacking
	Children []*Box

	X      float64
	Y      float64
	Width  float64
	Height float64

	// Words holds the positioned runs of an inline box.
	Words []Word
}

// Word is one positioned run of text inside an inline box. X and Y are the
// top-left corner of the run.
type Word struct {
	X     float64
	Y     float64
	Text  string
	Font  text.Font
	Color string
}

func (b *Box) String() string {
	return fmt.Sprintf("%s x=%g y=%g w=%g h=%g %s", b.Kind, b.X, b.Y, b.Width, b.Height, b.Node)
}

// Document is the synthetic top-level box. It owns exactly one block box
// wrapping the root of the document tree.
type Document struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Root   *Box
}

// Options holds layout geometry in pixels.
type Options struct {
	Width    float64 // viewport width
	HStep    float64 // horizontal page margin
	VStep    float64 // vertical page margin and paragraph gap
	FontSize int     // base font size in points
}

func DefaultOptions() Options {
	return Options{
		Width:    800,
		HStep:    13,
		VStep:    18,
		FontSize: 16,
	}
}
