// Package surface holds the drawing backends that consume glyph commands.
package surface

import (
	"github.com/jsphweid/incipitdex/glyph"
	"github.com/pkg/errors"
)

var ErrClosed = errors.New("surface closed")

// Surface receives one full frame per Clear ... Flush sequence.
type Surface interface {
	Clear(width, height float64) error
	Draw(cmd glyph.Command) error
	Flush() error
	Close() error
}

// Recorder keeps the commands of the last flushed frame in memory. It backs
// the JSON output of the CLI and HTTP server.
type Recorder struct {
	Width, Height float64
	pending       []glyph.Command
	frame         []glyph.Command
	frames        int
	closed        bool
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Clear(width, height float64) error {
	if r.closed {
		return ErrClosed
	}
	r.Width, r.Height = width, height
	r.pending = r.pending[:0]
	return nil
}

func (r *Recorder) Draw(cmd glyph.Command) error {
	if r.closed {
		return ErrClosed
	}
	r.pending = append(r.pending, cmd)
	return nil
}

func (r *Recorder) Flush() error {
	if r.closed {
		return ErrClosed
	}
	r.frame = append([]glyph.Command(nil), r.pending...)
	r.frames++
	return nil
}

func (r *Recorder) Close() error {
	r.closed = true
	r.pending = nil
	return nil
}

// Commands returns the last flushed frame.
func (r *Recorder) Commands() []glyph.Command {
	return r.frame
}

// Frames counts flushes, i.e. full redraws.
func (r *Recorder) Frames() int {
	return r.frames
}
