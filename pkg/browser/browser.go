// Package browser runs the full pipeline for one page: fetch, parse,
// style, lay out and paint, then draws the display list at a scroll offset.
package browser

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"toybrowser/pkg/config"
	"toybrowser/pkg/css"
	"toybrowser/pkg/html"
	"toybrowser/pkg/layout"
	"toybrowser/pkg/paint"
	"toybrowser/pkg/render"
	"toybrowser/pkg/resource"
	"toybrowser/pkg/text"
	stdnet "toybrowser/std/net"
)

// Browser holds the state of the currently loaded page. It is not safe for
// concurrent use.
type Browser struct {
	cfg      *config.Config
	fetcher  resource.Fetcher
	faces    *text.FaceCache
	measurer text.Measurer
	logger   *zap.Logger

	page *page
}

// page is everything derived from one successful load.
type page struct {
	url         string
	root        *html.Node
	rules       []css.Rule
	styles      css.StyleMap
	doc         *layout.Document
	displayList []paint.Command
	scroll      float64
}

type Option func(*Browser)

func WithFetcher(f resource.Fetcher) Option {
	return func(b *Browser) {
		if f != nil {
			b.fetcher = f
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(b *Browser) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMeasurer replaces the font cache for layout and paint. Drawing still
// uses the font cache.
func WithMeasurer(m text.Measurer) Option {
	return func(b *Browser) {
		if m != nil {
			b.measurer = m
		}
	}
}

func New(cfg *config.Config, opts ...Option) *Browser {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	b := &Browser{
		cfg:    cfg,
		faces:  text.NewFaceCache(cfg.FontConfig()),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.fetcher == nil {
		b.fetcher = resource.NewFetcher("",
			resource.WithClient(stdnet.NewClient(cfg.Network.Timeout)),
			resource.WithLogger(b.logger))
	}
	if b.measurer == nil {
		b.measurer = b.faces
	}
	return b
}

// Load fetches url and rebuilds the page from scratch. If the document
// cannot be fetched, the previously loaded page is kept.
func (b *Browser) Load(ctx context.Context, url string) error {
	body, _, err := b.fetcher.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("loading %s: %w", url, err)
	}

	p := &page{url: url, root: html.Parse(body)}
	p.rules = b.collectRules(ctx, url, p.root)
	p.styles = css.ComputeStyles(p.root, p.rules, css.WithLogger(b.logger))

	p.doc = layout.NewEngine(b.measurer, b.cfg.LayoutOptions()).Layout(p.root, p.styles)
	p.displayList = paint.NewPainter(b.measurer, p.styles).Paint(p.doc)

	b.page = p
	b.logger.Info("page loaded",
		zap.String("url", url),
		zap.Int("rules", len(p.rules)),
		zap.Float64("height", p.doc.Height),
		zap.Int("commands", len(p.displayList)))
	return nil
}

// collectRules gathers the default sheet, linked sheets and style elements
// in that order. Linked sheets that fail to load are skipped.
func (b *Browser) collectRules(ctx context.Context, url string, root *html.Node) []css.Rule {
	rules := css.ParseStylesheet(css.DefaultStylesheet, css.WithLogger(b.logger))

	for _, href := range html.StylesheetLinks(root) {
		sheetURL := stdnet.ResolveURL(url, href)
		sheet, err := b.fetcher.FetchCSS(ctx, sheetURL)
		if err != nil {
			b.logger.Warn("skipping stylesheet", zap.String("href", sheetURL), zap.Error(err))
			continue
		}
		rules = append(rules, css.ParseStylesheet(sheet, css.WithLogger(b.logger))...)
	}
	for _, sheet := range html.StyleTexts(root) {
		rules = append(rules, css.ParseStylesheet(sheet, css.WithLogger(b.logger))...)
	}
	return rules
}

// ScrollDown advances the scroll offset by one step and returns it.
func (b *Browser) ScrollDown() float64 {
	return b.ScrollTo(b.Scroll() + b.cfg.Layout.ScrollStep)
}

// ScrollTo sets the scroll offset, clamped to [0, max(0, height-viewport)],
// and returns the offset actually applied.
func (b *Browser) ScrollTo(y float64) float64 {
	if b.page == nil {
		return 0
	}
	b.page.scroll = max(0, min(y, b.maxScroll()))
	return b.page.scroll
}

func (b *Browser) maxScroll() float64 {
	return max(0, b.page.doc.Height-float64(b.cfg.Viewport.Height))
}

func (b *Browser) Scroll() float64 {
	if b.page == nil {
		return 0
	}
	return b.page.scroll
}

// NewRenderer returns a surface sized to the configured viewport that
// shares the browser's font cache.
func (b *Browser) NewRenderer() *render.Renderer {
	return render.NewRenderer(b.cfg.Viewport.Width, b.cfg.Viewport.Height, b.faces)
}

// Draw paints the current display list onto r at the current scroll
// offset and returns the number of commands drawn.
func (b *Browser) Draw(r *render.Renderer) int {
	if b.page == nil {
		return r.Draw(nil, 0)
	}
	return r.Draw(b.page.displayList, b.page.scroll)
}

func (b *Browser) URL() string {
	if b.page == nil {
		return ""
	}
	return b.page.url
}

func (b *Browser) Tree() *html.Node {
	if b.page == nil {
		return nil
	}
	return b.page.root
}

func (b *Browser) Rules() []css.Rule {
	if b.page == nil {
		return nil
	}
	return b.page.rules
}

func (b *Browser) Document() *layout.Document {
	if b.page == nil {
		return nil
	}
	return b.page.doc
}

func (b *Browser) DisplayList() []paint.Command {
	if b.page == nil {
		return nil
	}
	return b.page.displayList
}
