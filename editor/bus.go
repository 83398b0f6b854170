package editor

import (
	"context"

	"github.com/jsphweid/incipitdex/glyph"
	"github.com/jsphweid/incipitdex/logger"
	"github.com/jsphweid/incipitdex/model"
	"github.com/jsphweid/incipitdex/pae"
)

// Command is a message from an input widget to the editor.
type Command interface {
	isCommand()
}

// Insert appends the events in one or more body tokens.
type Insert struct{ Token string }

// Sync replaces the whole incipit with a PAE string.
type Sync struct{ PAE string }

type Clear struct{}

type Undo struct{}

type Click struct{ Y float64 }

type Hover struct{ Y float64 }

type Leave struct{}

type Select struct{ Palette Palette }

func (Insert) isCommand() {}
func (Sync) isCommand()   {}
func (Clear) isCommand()  {}
func (Undo) isCommand()   {}
func (Click) isCommand()  {}
func (Hover) isCommand()  {}
func (Leave) isCommand()  {}
func (Select) isCommand() {}

// State is a snapshot taken after a command, with the staff fully redrawn.
type State struct {
	PAE     string
	Body    string
	Events  []model.Event
	Skipped []string
	Incipit model.Incipit
	Preview *model.Note
	Drawing []glyph.Command
}

func (e *Editor) Snapshot() State {
	inc := e.Doc.Incipit()
	var preview *model.Note
	if e.preview != nil {
		p := *e.preview
		preview = &p
	}
	return State{
		PAE:     e.Doc.PAE(),
		Body:    e.Doc.Body(),
		Events:  inc.Events,
		Skipped: e.Doc.Skipped(),
		Incipit: inc,
		Preview: preview,
		Drawing: e.engine.Layout(inc, preview),
	}
}

// Apply runs one command against the editor.
func (e *Editor) Apply(cmd Command) State {
	var skipped []string
	switch c := cmd.(type) {
	case Insert:
		var events []model.Event
		events, skipped = pae.DecodeBodyReport(c.Token)
		if len(events) > 0 {
			e.Doc.Append(events...)
		}
	case Sync:
		e.Doc.SetPAE(c.PAE)
		skipped = e.Doc.Skipped()
	case Clear:
		e.Doc.Clear()
		e.Leave()
	case Undo:
		e.Doc.Undo()
	case Click:
		e.Click(c.Y)
	case Hover:
		e.Hover(c.Y)
	case Leave:
		e.Leave()
	case Select:
		if c.Palette.Valid() {
			e.Palette = c.Palette
		}
	}
	if len(skipped) > 0 {
		logger.EDIT.Printf("skipped %d token(s): %q", len(skipped), skipped)
	}
	st := e.Snapshot()
	if _, ok := cmd.(Insert); ok {
		// an insert reports its own tokens; otherwise the last text edit's stand
		st.Skipped = skipped
	}
	return st
}

type envelope struct {
	cmd  Command
	done chan State
}

// Bus serializes commands from any number of producers onto the single
// goroutine that owns the editor.
type Bus struct {
	editor   *Editor
	ch       chan envelope
	onChange func(State)
}

func NewBus(e *Editor, onChange func(State)) *Bus {
	return &Bus{editor: e, ch: make(chan envelope), onChange: onChange}
}

// Run applies commands until ctx is done.
func (b *Bus) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env := <-b.ch:
			st := b.editor.Apply(env.cmd)
			if b.onChange != nil {
				b.onChange(st)
			}
			if env.done != nil {
				env.done <- st
			}
		}
	}
}

// Send delivers cmd and waits for the resulting state.
func (b *Bus) Send(ctx context.Context, cmd Command) (State, error) {
	env := envelope{cmd: cmd, done: make(chan State, 1)}
	select {
	case <-ctx.Done():
		return State{}, ctx.Err()
	case b.ch <- env:
	}
	select {
	case <-ctx.Done():
		return State{}, ctx.Err()
	case st := <-env.done:
		return st, nil
	}
}

// Post delivers cmd without waiting for it to be applied.
func (b *Bus) Post(ctx context.Context, cmd Command) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case b.ch <- envelope{cmd: cmd}:
		return nil
	}
}
