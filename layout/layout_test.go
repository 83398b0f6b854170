package layout

import (
	"testing"

	"github.com/jsphweid/incipitdex/glyph"
	"github.com/jsphweid/incipitdex/model"
	"github.com/jsphweid/incipitdex/pae"
	"github.com/jsphweid/incipitdex/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyIncipitDrawsStaffAndClef(t *testing.T) {
	e := New(DefaultConfig())
	cmds := e.Layout(pae.ParseIncipit(""), nil)
	assert := assert.New(t)
	assert.Equal(5, glyph.Count(cmds, glyph.StaffPart))
	assert.Equal(1, glyph.Count(cmds, glyph.ClefPart))
	assert.Len(cmds, 6)
}

func TestCursorAdvances(t *testing.T) {
	e := New(DefaultConfig())
	inc := pae.ParseIncipit("%G-2 $x @4/4 G4 / A4 4- B4")
	cmds := e.Layout(inc, nil)

	heads := glyph.Filter(cmds, glyph.HeadPart)
	bars := glyph.Filter(cmds, glyph.BarPart)
	require.Len(t, heads, 3)
	require.Len(t, bars, 1)

	assert := assert.New(t)
	start, step := e.StartX(), e.Spacing()
	assert.Equal(53+94.0, start)
	assert.Equal(36.0, step)
	assert.Equal(start, heads[0].X)
	assert.Equal(start+step, bars[0].X1)
	assert.Equal(start+step+18, heads[1].X)
	// the rest is invisible but still takes a slot
	assert.Equal(start+2*step+18+step, heads[2].X)
	assert.Equal(heads[2].X+step, e.Cursor(inc.Events))
}

func TestNotesUseClefForHeight(t *testing.T) {
	e := New(DefaultConfig())
	m := e.Metrics()

	treble := glyph.Filter(e.Layout(pae.ParseIncipit("%G-2 E4"), nil), glyph.HeadPart)[0]
	assert.Equal(t, m.BottomY(), treble.Y)

	bass := glyph.Filter(e.Layout(pae.ParseIncipit("%F-4 G,,4"), nil), glyph.HeadPart)[0]
	assert.Equal(t, m.BottomY(), bass.Y)

	alto := glyph.Filter(e.Layout(pae.ParseIncipit("%C-3 C4"), nil), glyph.HeadPart)[0]
	assert.Equal(t, m.LineY(2), alto.Y)
}

func TestRestGlyphsAreOptional(t *testing.T) {
	inc := pae.ParseIncipit("4- 8-")
	assert.Zero(t, glyph.Count(New(DefaultConfig()).Layout(inc, nil), glyph.RestPart))

	cfg := DefaultConfig()
	cfg.RestGlyphs = true
	assert.Equal(t, 2, glyph.Count(New(cfg).Layout(inc, nil), glyph.RestPart))
}

func TestTieTakesNoSpace(t *testing.T) {
	e := New(DefaultConfig())
	a := e.Cursor(pae.DecodeBody("C4 C4"))
	b := e.Cursor(pae.DecodeBody("C4 = C4"))
	assert.Equal(t, a, b)
}

func TestPreviewDrawnLastAtCursor(t *testing.T) {
	e := New(DefaultConfig())
	inc := pae.ParseIncipit("C'4 D'4")
	preview := &model.Note{Step: model.G, Octave: 4, Duration: 8}
	cmds := e.Layout(inc, preview)

	guides := glyph.Filter(cmds, glyph.GuidePart)
	require.Len(t, guides, 1)
	cursor := e.Cursor(inc.Events)
	assert.Equal(t, cursor, guides[0].X1)
	m := e.Metrics()
	assert.Equal(t, m.Top-m.LineGap, guides[0].Y1)
	assert.Equal(t, m.BottomY()+m.LineGap, guides[0].Y2)

	last := cmds[len(cmds)-1]
	assert.True(t, last.Ghost)
	heads := glyph.Filter(cmds, glyph.HeadPart)
	assert.Len(t, heads, 3)
	assert.True(t, heads[2].Ghost)
	assert.Equal(t, cursor, heads[2].X)

	// the incipit itself is untouched
	assert.Len(t, inc.Events, 2)
}

func TestRendererLifecycle(t *testing.T) {
	rec := surface.NewRecorder()
	r := NewRenderer(DefaultConfig(), rec)
	require := require.New(t)

	require.NoError(r.Render(pae.ParseIncipit("C4 D4"), nil))
	first := len(rec.Commands())
	require.NoError(r.Render(pae.ParseIncipit("C4 D4 E4"), nil))
	assert.Greater(t, len(rec.Commands()), first)
	assert.Equal(t, 2, rec.Frames())

	require.NoError(r.Dispose())
	assert.ErrorIs(t, r.Render(pae.ParseIncipit("C4"), nil), ErrDisposed)
	assert.NoError(t, r.Dispose())
}
