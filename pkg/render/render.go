package render

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"toybrowser/pkg/css"
	"toybrowser/pkg/paint"
	"toybrowser/pkg/text"
)

var (
	background = color.White
	foreground = color.Black
)

// Renderer draws display lists onto an in-memory raster surface.
type Renderer struct {
	context *gg.Context
	faces   *text.FaceCache
	width   int
	height  int
}

func NewRenderer(width, height int, faces *text.FaceCache) *Renderer {
	return &Renderer{
		context: gg.NewContext(width, height),
		faces:   faces,
		width:   width,
		height:  height,
	}
}

// Visible reports whether any part of cmd lies inside the viewport window
// [scroll, scroll+height].
func Visible(cmd paint.Command, scroll, height float64) bool {
	top, bottom := cmd.Extent()
	return top <= scroll+height && bottom >= scroll
}

// Draw clears the surface and draws the visible commands of cmds, shifted
// up by scroll. It returns the number of commands drawn.
func (r *Renderer) Draw(cmds []paint.Command, scroll float64) int {
	r.context.SetColor(background)
	r.context.Clear()

	drawn := 0
	for _, cmd := range cmds {
		if !Visible(cmd, scroll, float64(r.height)) {
			continue
		}
		switch c := cmd.(type) {
		case paint.DrawText:
			r.drawText(c, scroll)
		case paint.DrawRect:
			r.drawRect(c, scroll)
		}
		drawn++
	}
	return drawn
}

func (r *Renderer) drawText(c paint.DrawText, scroll float64) {
	r.context.SetFontFace(r.faces.Face(c.Font))
	r.setColor(c.Color)
	// gg positions text by its baseline.
	baseline := c.Top - scroll + r.faces.Metrics(c.Font).Ascent
	r.context.DrawString(c.Text, c.Left, baseline)
}

func (r *Renderer) drawRect(c paint.DrawRect, scroll float64) {
	r.setColor(c.Color)
	r.context.DrawRectangle(c.Left, c.Top-scroll, c.Right-c.Left, c.Bottom-c.Top)
	r.context.Fill()
}

func (r *Renderer) setColor(value string) {
	if c, ok := css.ParseColor(value); ok {
		r.context.SetColor(c)
		return
	}
	r.context.SetColor(foreground)
}

func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.context.EncodePNG(w)
}
