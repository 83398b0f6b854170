package layout

import (
	"github.com/jsphweid/incipitdex/model"
	"github.com/jsphweid/incipitdex/surface"
	"github.com/pkg/errors"
)

var ErrDisposed = errors.New("renderer disposed")

// Renderer owns a surface for its whole life: construct, Render as often as
// the incipit changes, then Dispose. Every Render redraws from scratch.
type Renderer struct {
	engine  *Engine
	surface surface.Surface
}

func NewRenderer(cfg Config, s surface.Surface) *Renderer {
	return &Renderer{engine: New(cfg), surface: s}
}

func (r *Renderer) Engine() *Engine {
	return r.engine
}

func (r *Renderer) Render(inc model.Incipit, preview *model.Note) error {
	if r.surface == nil {
		return ErrDisposed
	}
	cfg := r.engine.Config()
	if err := r.surface.Clear(cfg.Width, cfg.Height); err != nil {
		return errors.Wrap(err, "clearing surface")
	}
	for _, c := range r.engine.Layout(inc, preview) {
		if err := r.surface.Draw(c); err != nil {
			return errors.Wrapf(err, "drawing %s", c.Part)
		}
	}
	return errors.Wrap(r.surface.Flush(), "flushing surface")
}

func (r *Renderer) Dispose() error {
	if r.surface == nil {
		return nil
	}
	err := r.surface.Close()
	r.surface = nil
	return err
}
