package render

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toybrowser/pkg/paint"
	"toybrowser/pkg/text"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
)

func newTestRenderer() *Renderer {
	return NewRenderer(40, 30, text.NewFaceCache(text.DefaultFontConfig()))
}

func TestVisible(t *testing.T) {
	cmd := paint.DrawRect{Top: 100, Bottom: 120}
	tests := []struct {
		name   string
		scroll float64
		want   bool
	}{
		{"inside", 90, true},
		{"entirely below", 0, false},
		{"top edge touches bottom of window", 70, true},
		{"bottom edge touches top of window", 120, true},
		{"entirely above", 121, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Visible(cmd, tt.scroll, 30))
		})
	}
}

func TestDraw_FillsRectangle(t *testing.T) {
	r := newTestRenderer()
	drawn := r.Draw([]paint.Command{
		paint.DrawRect{Top: 0, Left: 0, Right: 10, Bottom: 10, Color: "red"},
	}, 0)

	assert.Equal(t, 1, drawn)
	img := r.Image()
	assert.Equal(t, red, color.RGBAModel.Convert(img.At(5, 5)))
	assert.Equal(t, white, color.RGBAModel.Convert(img.At(20, 20)))
}

func TestDraw_AppliesScrollAndCulls(t *testing.T) {
	r := newTestRenderer()
	cmds := []paint.Command{
		paint.DrawRect{Top: 0, Left: 0, Right: 10, Bottom: 10, Color: "red"},
		paint.DrawRect{Top: 100, Left: 0, Right: 10, Bottom: 110, Color: "blue"},
	}

	assert.Equal(t, 1, r.Draw(cmds, 5), "the far rectangle is culled")
	img := r.Image()
	assert.Equal(t, red, color.RGBAModel.Convert(img.At(5, 2)))
	assert.Equal(t, white, color.RGBAModel.Convert(img.At(5, 7)))
}

func TestDraw_TextLeavesInk(t *testing.T) {
	r := newTestRenderer()
	font := text.Font{Size: 16, Weight: text.Bold}
	r.Draw([]paint.Command{
		paint.DrawText{Top: 4, Left: 2, Bottom: 24, Text: "WW", Font: font, Color: "no-such-color"},
	}, 0)

	img := r.Image()
	inked := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !inked; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.RGBAModel.Convert(img.At(x, y)) != white {
				inked = true
				break
			}
		}
	}
	assert.True(t, inked, "text should change some pixels")
}

func TestSavePNG(t *testing.T) {
	r := newTestRenderer()
	r.Draw(nil, 0)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, r.SavePNG(path))

	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	w, h := r.Size()
	assert.Equal(t, w, img.Bounds().Dx())
	assert.Equal(t, h, img.Bounds().Dy())
}
