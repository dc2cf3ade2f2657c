package visualtest

import (
	"image"
	"image/draw"

	"toybrowser/pkg/css"
	"toybrowser/pkg/html"
	"toybrowser/pkg/layout"
	"toybrowser/pkg/paint"
	"toybrowser/pkg/render"
	"toybrowser/pkg/text"
)

// RenderHTML runs the whole pipeline on body with the default stylesheet
// and embedded fonts, and returns one viewport drawn at scroll.
func RenderHTML(body string, width, height int, scroll float64) image.Image {
	faces := text.NewFaceCache(text.DefaultFontConfig())
	root := html.Parse(body)

	rules := css.ParseStylesheet(css.DefaultStylesheet)
	for _, sheet := range html.StyleTexts(root) {
		rules = append(rules, css.ParseStylesheet(sheet)...)
	}
	styles := css.ComputeStyles(root, rules)

	opts := layout.DefaultOptions()
	opts.Width = float64(width)
	doc := layout.NewEngine(faces, opts).Layout(root, styles)
	cmds := paint.NewPainter(faces, styles).Paint(doc)

	r := render.NewRenderer(width, height, faces)
	r.Draw(cmds, scroll)
	return Snapshot(r.Image())
}

// Snapshot copies img so later draws on the same surface leave it intact.
func Snapshot(img image.Image) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// Crop returns the part of img inside r, re-based at the origin.
func Crop(img image.Image, r image.Rectangle) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}
