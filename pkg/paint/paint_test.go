package paint

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toybrowser/pkg/css"
	"toybrowser/pkg/html"
	"toybrowser/pkg/layout"
	"toybrowser/pkg/text"
	"toybrowser/pkg/text/texttest"
)

func paintHTML(t *testing.T, body, stylesheet string) []Command {
	t.Helper()
	m := texttest.New()
	root := html.Parse(body)
	var styles css.StyleMap
	if stylesheet != "" {
		styles = css.ComputeStyles(root, css.ParseStylesheet(stylesheet))
	}
	doc := layout.NewEngine(m, layout.DefaultOptions()).Layout(root, styles)
	return NewPainter(m, styles).Paint(doc)
}

func TestPaint_DisplayListOrder(t *testing.T) {
	cmds := paintHTML(t, `<p>hi <b>there</b></p><pre>code</pre>`, "")

	regular := text.Font{Size: 16}
	bold := text.Font{Size: 16, Weight: text.Bold}
	want := []Command{
		DrawText{Top: 21.2, Left: 13, Bottom: 37.2, Text: "hi", Font: regular, Color: "black"},
		DrawText{Top: 21.2, Left: 37, Bottom: 37.2, Text: "there", Font: bold, Color: "black"},
		DrawRect{Top: 56, Left: 13, Right: 787, Bottom: 76, Color: "gray"},
		DrawText{Top: 59.2, Left: 13, Bottom: 75.2, Text: "code", Font: regular, Color: "black"},
	}
	if diff := cmp.Diff(want, cmds, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("display list mismatch (-want +got):\n%s", diff)
	}
}

func TestPaint_PreBackgroundFromCascade(t *testing.T) {
	cmds := paintHTML(t, `<pre>x</pre>`, css.DefaultStylesheet+` pre { background-color: navy; }`)

	require.NotEmpty(t, cmds)
	rect, ok := cmds[0].(DrawRect)
	require.True(t, ok, "first command is %T", cmds[0])
	assert.Equal(t, "navy", rect.Color)
}

func TestPaint_TextColorFromCascade(t *testing.T) {
	cmds := paintHTML(t, `<p>plain <a>link</a></p>`, css.DefaultStylesheet)

	require.Len(t, cmds, 2)
	assert.Equal(t, "black", cmds[0].(DrawText).Color)
	assert.Equal(t, "blue", cmds[1].(DrawText).Color)
}

func TestPaint_BlocksEmitNothing(t *testing.T) {
	assert.Empty(t, paintHTML(t, `<div><div></div></div>`, ""))
	assert.Empty(t, NewPainter(texttest.New(), nil).Paint(nil))
}

func TestPaint_Deterministic(t *testing.T) {
	body := `<h1>Title</h1><p>a <i>b</i> <big>c</big><br>d</p><pre>e f</pre>`
	first := paintHTML(t, body, css.DefaultStylesheet)
	second := paintHTML(t, body, css.DefaultStylesheet)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("display lists differ (-first +second):\n%s", diff)
	}
}

func TestCommand_Extent(t *testing.T) {
	var cmd Command = DrawRect{Top: 1, Left: 2, Right: 3, Bottom: 4, Color: "red"}
	top, bottom := cmd.Extent()
	assert.Equal(t, 1.0, top)
	assert.Equal(t, 4.0, bottom)

	cmd = DrawText{Top: 5, Bottom: 9, Text: "w"}
	top, bottom = cmd.Extent()
	assert.Equal(t, 5.0, top)
	assert.Equal(t, 9.0, bottom)
	assert.Contains(t, cmd.String(), `"w"`)
}

func TestPaint_MatchesLayoutWords(t *testing.T) {
	m := texttest.New()
	root := html.Parse(`<p>one two three</p>`)
	doc := layout.NewEngine(m, layout.DefaultOptions()).Layout(root, nil)
	cmds := NewPainter(m, nil).Paint(doc)

	var words []layout.Word
	var walk func(b *layout.Box)
	walk = func(b *layout.Box) {
		words = append(words, b.Words...)
		for _, c := range b.Children {
			walk(c)
		}
	}
	walk(doc.Root)

	require.Len(t, cmds, len(words))
	for i, w := range words {
		dt := cmds[i].(DrawText)
		assert.Equal(t, w.Text, dt.Text)
		assert.Equal(t, w.X, dt.Left)
		assert.Equal(t, w.Y, dt.Top)
	}
}
