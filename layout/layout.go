// Package layout places an incipit on a staff from left to right and hands
// each element to the glyph renderer.
package layout

import (
	"math"

	"github.com/jsphweid/incipitdex/glyph"
	"github.com/jsphweid/incipitdex/model"
	"github.com/jsphweid/incipitdex/pitch"
)

type Config struct {
	Width     float64
	Height    float64
	LineGap   float64
	NoteScale float64
	// RestGlyphs draws rest symbols. Off, rests only take up space.
	RestGlyphs bool
	MaxFlags   int
}

func DefaultConfig() Config {
	return Config{
		Width:     860,
		Height:    260,
		LineGap:   glyph.DefaultLineGap,
		NoteScale: glyph.DefaultNoteScale,
		MaxFlags:  3,
	}
}

type Engine struct {
	cfg    Config
	glyphs glyph.Renderer
}

func New(cfg Config) *Engine {
	m := glyph.NewMetrics(cfg.LineGap, cfg.NoteScale, cfg.Width, cfg.Height)
	return &Engine{cfg: cfg, glyphs: glyph.Renderer{Metrics: m, MaxFlags: cfg.MaxFlags}}
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) Metrics() glyph.Metrics {
	return e.glyphs.Metrics
}

func (e *Engine) Mapper() pitch.Mapper {
	return pitch.Mapper{BottomY: e.glyphs.BottomY(), LineGap: e.cfg.LineGap}
}

func (e *Engine) StartX() float64 {
	return e.glyphs.MarginLeft() + math.Round(e.cfg.LineGap*3.9)
}

// Spacing is the cursor advance for notes and rests. Bars take half.
func (e *Engine) Spacing() float64 {
	return math.Round(e.cfg.LineGap * 1.5)
}

// Layout draws the whole staff: lines, clef, every event, then the preview
// note if there is one. The preview never affects the incipit.
func (e *Engine) Layout(inc model.Incipit, preview *model.Note) []glyph.Command {
	cmds := e.glyphs.Staff()
	cmds = append(cmds, e.glyphs.Clef(inc.Clef))

	mapper := e.Mapper()
	x := e.StartX()
	for _, ev := range inc.Events {
		switch v := ev.(type) {
		case model.Bar:
			cmds = append(cmds, e.glyphs.BarLine(x))
			x += math.Round(e.Spacing() * 0.5)
		case model.Note:
			y := mapper.ToY(v.Step, v.Octave, inc.Clef)
			cmds = append(cmds, e.glyphs.Note(x, y, v, false)...)
			x += e.Spacing()
		case model.Rest:
			if e.cfg.RestGlyphs {
				cmds = append(cmds, e.glyphs.Rest(x, v.Duration, false))
			}
			x += e.Spacing()
		}
	}

	if preview != nil {
		cmds = append(cmds, e.glyphs.Guide(x))
		y := mapper.ToY(preview.Step, preview.Octave, inc.Clef)
		cmds = append(cmds, e.glyphs.Note(x, y, *preview, true)...)
	}
	return cmds
}

// Cursor is the x where the next event would be drawn.
func (e *Engine) Cursor(events []model.Event) float64 {
	x := e.StartX()
	for _, ev := range events {
		switch ev.(type) {
		case model.Bar:
			x += math.Round(e.Spacing() * 0.5)
		case model.Note, model.Rest:
			x += e.Spacing()
		}
	}
	return x
}
