package editor

import (
	"github.com/jsphweid/incipitdex/glyph"
	"github.com/jsphweid/incipitdex/layout"
	"github.com/jsphweid/incipitdex/model"
)

// Palette is what the next clicked note will look like.
type Palette struct {
	Duration   int
	Accidental model.Accidental
	Dotted     bool
}

var DefaultPalette = Palette{Duration: model.DefaultDuration}

func (p Palette) Valid() bool {
	return model.ValidDuration(p.Duration) && p.Accidental <= model.Natural
}

// Editor adds pointer input and the preview note to a Document.
type Editor struct {
	Doc     *Document
	Palette Palette
	engine  *layout.Engine
	preview *model.Note
}

func New(doc *Document, engine *layout.Engine) *Editor {
	return &Editor{Doc: doc, Palette: DefaultPalette, engine: engine}
}

func (e *Editor) noteAt(y float64) model.Note {
	p := e.engine.Mapper().FromY(y, e.Doc.Header().Clef)
	return model.Note{
		Step:       p.Step,
		Octave:     p.Octave,
		Duration:   e.Palette.Duration,
		Accidental: e.Palette.Accidental,
		Dotted:     e.Palette.Dotted,
	}
}

// Click appends a note at the staff position under y.
func (e *Editor) Click(y float64) model.Note {
	n := e.noteAt(y)
	e.Doc.Append(n)
	return n
}

func (e *Editor) ClickBar(kind model.BarKind) {
	e.Doc.Append(model.Bar{Kind: kind})
}

// Hover moves the preview note; it is never part of the document.
func (e *Editor) Hover(y float64) {
	n := e.noteAt(y)
	e.preview = &n
}

func (e *Editor) Leave() {
	e.preview = nil
}

func (e *Editor) Preview() *model.Note {
	return e.preview
}

func (e *Editor) Draw() []glyph.Command {
	return e.engine.Layout(e.Doc.Incipit(), e.preview)
}
