package paint

import (
	"fmt"

	"toybrowser/pkg/text"
)

// Command is one entry of a display list. The set of commands is closed:
// DrawText and DrawRect are the only implementations.
type Command interface {
	// Extent returns the vertical bounds used for viewport culling.
	Extent() (top, bottom float64)
	String() string
	command()
}

// DrawText draws a single word with its top-left corner at (Left, Top).
type DrawText struct {
	Top    float64
	Left   float64
	Bottom float64
	Text   string
	Font   text.Font
	Color  string
}

func (c DrawText) Extent() (float64, float64) { return c.Top, c.Bottom }

func (c DrawText) String() string {
	return fmt.Sprintf("DrawText(top=%g left=%g bottom=%g text=%q font=%s color=%s)",
		c.Top, c.Left, c.Bottom, c.Text, c.Font, c.Color)
}

func (DrawText) command() {}

// DrawRect fills the rectangle spanning Left..Right and Top..Bottom.
type DrawRect struct {
	Top    float64
	Left   float64
	Right  float64
	Bottom float64
	Color  string
}

func (c DrawRect) Extent() (float64, float64) { return c.Top, c.Bottom }

func (c DrawRect) String() string {
	return fmt.Sprintf("DrawRect(top=%g left=%g bottom=%g right=%g color=%s)",
		c.Top, c.Left, c.Bottom, c.Right, c.Color)
}

func (DrawRect) command() {}
