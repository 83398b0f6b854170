package glyph

import "math"

const (
	DefaultLineGap   = 24
	DefaultNoteScale = 0.58

	// pixel offsets below were tuned at this line gap and scale with it
	designGap = 24.0
)

// Metrics derives every size from the line gap. Note glyphs are further
// scaled by NoteScale; clefs are not.
type Metrics struct {
	LineGap   float64
	NoteScale float64
	Top       float64
	Width     float64
}

// NewMetrics centers a five line staff vertically in a canvas.
func NewMetrics(lineGap, noteScale, width, height float64) Metrics {
	m := Metrics{LineGap: lineGap, NoteScale: noteScale, Width: width}
	m.Top = math.Round(height/2 - 2*lineGap)
	return m
}

func (m Metrics) px(v float64) float64 {
	return v * m.LineGap / designGap
}

func (m Metrics) BottomY() float64 {
	return m.Top + 4*m.LineGap
}

// LineY is the y of a staff line counted from the bottom, starting at 0.
func (m Metrics) LineY(fromBottom int) float64 {
	return m.BottomY() - float64(fromBottom)*m.LineGap
}

func (m Metrics) MarginLeft() float64 {
	return math.Round(m.LineGap * 2.2)
}

func (m Metrics) MarginRight() float64 {
	return math.Round(m.LineGap * 1.6)
}

func (m Metrics) StemLen() float64 {
	return m.LineGap * 3.3 * m.NoteScale
}

func (m Metrics) HeadRX() float64 {
	return m.LineGap * 0.62 * m.NoteScale
}

func (m Metrics) HeadRY() float64 {
	return m.LineGap * 0.48 * m.NoteScale
}

func (m Metrics) DotR() float64 {
	return m.LineGap * 0.12 * m.NoteScale
}

func (m Metrics) AccidentalSize() float64 {
	return math.Round(m.LineGap * 0.92 * m.NoteScale)
}

func (m Metrics) RestSize() float64 {
	return math.Round(m.LineGap * 2 * m.NoteScale)
}
