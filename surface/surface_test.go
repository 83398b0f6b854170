package surface

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/incipitdex/glyph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFrame() []glyph.Command {
	return []glyph.Command{
		{Kind: glyph.Line, Part: glyph.StaffPart, X1: 10, Y1: 10, X2: 100, Y2: 10, Width: 2},
		{Kind: glyph.Ellipse, Part: glyph.HeadPart, X: 50, Y: 40, RX: 8, RY: 6, Rotation: -0.35, Filled: true, Width: 1.6},
		{Kind: glyph.Curve, Part: glyph.FlagPart, X1: 58, Y1: 0, CX: 69, CY: 6, X2: 56, Y2: 12, Width: 1.6},
		{Kind: glyph.Circle, Part: glyph.DotPart, X: 64, Y: 36, RX: 1.6, Filled: true},
		{Kind: glyph.Text, Part: glyph.AccidentalPart, X: 30, Y: 46, Text: "♯", Fallback: "#", Size: 13},
		{Kind: glyph.Line, Part: glyph.GuidePart, X1: 80, Y1: 0, X2: 80, Y2: 100, Dash: []float64{6, 6}, Ghost: true},
	}
}

func TestRecorderKeepsLastFrame(t *testing.T) {
	r := NewRecorder()
	require := require.New(t)

	require.NoError(r.Clear(200, 100))
	for _, c := range sampleFrame() {
		require.NoError(r.Draw(c))
	}
	require.NoError(r.Flush())
	assert.Len(t, r.Commands(), 6)

	require.NoError(r.Clear(200, 100))
	require.NoError(r.Draw(sampleFrame()[0]))
	// unflushed frame is not visible yet
	assert.Len(t, r.Commands(), 6)
	require.NoError(r.Flush())
	assert.Len(t, r.Commands(), 1)
	assert.Equal(t, 2, r.Frames())

	require.NoError(r.Close())
	assert.ErrorIs(t, r.Clear(200, 100), ErrClosed)
}

func TestPDFWritesDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPDF(&buf, "")
	require := require.New(t)

	require.NoError(p.Clear(200, 100))
	for _, c := range sampleFrame() {
		require.NoError(p.Draw(c))
	}
	require.NoError(p.Flush())
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	require.NoError(p.Close())
	assert.ErrorIs(t, p.Draw(sampleFrame()[0]), ErrClosed)
}

func TestPDFFileIsRewrittenPerFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staff.pdf")
	p := NewPDFFile(path, "")
	defer p.Close()

	for i := 0; i < 2; i++ {
		require.NoError(t, p.Clear(200, 100))
		require.NoError(t, p.Draw(sampleFrame()[0]))
		require.NoError(t, p.Flush())
	}
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPDFDrawBeforeClear(t *testing.T) {
	p := NewPDF(&bytes.Buffer{}, "")
	assert.Error(t, p.Draw(sampleFrame()[0]))
}
