package text

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

type Weight int

const (
	Normal Weight = iota
	Bold
)

func (w Weight) String() string {
	if w == Bold {
		return "bold"
	}
	return "normal"
}

type Slant int

const (
	Roman Slant = iota
	Italic
)

func (s Slant) String() string {
	if s == Italic {
		return "italic"
	}
	return "roman"
}

// Font is a font handle. Equal handles denote the same face.
type Font struct {
	Size   int
	Weight Weight
	Slant  Slant
}

func (f Font) String() string {
	return fmt.Sprintf("%dpt %s %s", f.Size, f.Weight, f.Slant)
}

// Metrics are vertical font metrics in pixels.
type Metrics struct {
	Ascent    float64
	Descent   float64
	Linespace float64
}

// Measurer is the text-measurement service used by layout.
type Measurer interface {
	Resolve(size int, weight Weight, slant Slant) Font
	Measure(f Font, s string) float64
	Metrics(f Font) Metrics
}

// FontConfig holds paths to TrueType files. Empty paths fall back to the
// embedded Go fonts.
type FontConfig struct {
	Regular    string
	Bold       string
	Italic     string
	BoldItalic string
}

// DefaultFontConfig returns a FontConfig that uses only the embedded Go fonts.
func DefaultFontConfig() FontConfig {
	return FontConfig{}
}

// FontPath returns the font path for the given style combination.
func (fc FontConfig) FontPath(weight Weight, slant Slant) string {
	switch {
	case weight == Bold && slant == Italic:
		return fc.BoldItalic
	case weight == Bold:
		return fc.Bold
	case slant == Italic:
		return fc.Italic
	}
	return fc.Regular
}

func embeddedFont(weight Weight, slant Slant) []byte {
	switch {
	case weight == Bold && slant == Italic:
		return gobolditalic.TTF
	case weight == Bold:
		return gobold.TTF
	case slant == Italic:
		return goitalic.TTF
	}
	return goregular.TTF
}

type variant struct {
	weight Weight
	slant  Slant
}

// FaceCache resolves font handles to TrueType faces, creating each face
// once per (size, weight, slant). It is not safe for concurrent use.
type FaceCache struct {
	config FontConfig
	fonts  map[variant]*truetype.Font
	faces  map[Font]font.Face
}

func NewFaceCache(config FontConfig) *FaceCache {
	return &FaceCache{
		config: config,
		fonts:  make(map[variant]*truetype.Font),
		faces:  make(map[Font]font.Face),
	}
}

// Resolve returns the handle for the given style. Sizes below one point
// are clamped to one.
func (c *FaceCache) Resolve(size int, weight Weight, slant Slant) Font {
	if size < 1 {
		size = 1
	}
	f := Font{Size: size, Weight: weight, Slant: slant}
	c.Face(f)
	return f
}

// Face returns the face for f, loading it on first use.
func (c *FaceCache) Face(f Font) font.Face {
	if face, ok := c.faces[f]; ok {
		return face
	}
	face := truetype.NewFace(c.font(f.Weight, f.Slant), &truetype.Options{
		Size:    float64(f.Size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.faces[f] = face
	return face
}

func (c *FaceCache) font(weight Weight, slant Slant) *truetype.Font {
	v := variant{weight, slant}
	if tf, ok := c.fonts[v]; ok {
		return tf
	}
	tf, err := loadFont(c.config.FontPath(weight, slant), weight, slant)
	if err != nil {
		// A broken configured font must not stop rendering.
		tf, _ = truetype.Parse(embeddedFont(weight, slant))
	}
	c.fonts[v] = tf
	return tf
}

func loadFont(path string, weight Weight, slant Slant) (*truetype.Font, error) {
	data := embeddedFont(weight, slant)
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading font %s: %w", path, err)
		}
		data = b
	}
	tf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", path, err)
	}
	return tf, nil
}

// Len returns the number of faces created so far.
func (c *FaceCache) Len() int {
	return len(c.faces)
}

func (c *FaceCache) Measure(f Font, s string) float64 {
	return fromFixed(font.MeasureString(c.Face(f), s))
}

func (c *FaceCache) Metrics(f Font) Metrics {
	m := c.Face(f).Metrics()
	return Metrics{
		Ascent:    fromFixed(m.Ascent),
		Descent:   fromFixed(m.Descent),
		Linespace: fromFixed(m.Height),
	}
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
