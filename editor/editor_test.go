package editor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jsphweid/incipitdex/glyph"
	"github.com/jsphweid/incipitdex/layout"
	"github.com/jsphweid/incipitdex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditor(pae string) *Editor {
	return New(FromPAE(pae), layout.New(layout.DefaultConfig()))
}

func TestClickAppendsPaletteNote(t *testing.T) {
	e := newEditor("")
	m := e.engine.Metrics()
	e.Palette = Palette{Duration: 8, Accidental: model.Sharp, Dotted: true}

	n := e.Click(m.LineY(1))
	want := model.Note{Step: model.G, Octave: 4, Duration: 8, Accidental: model.Sharp, Dotted: true}
	assert.Equal(t, want, n)
	assert.Equal(t, "Gx8.", e.Doc.Body())

	e.ClickBar(model.DoubleBar)
	assert.Equal(t, "Gx8. //", e.Doc.Body())
}

func TestClickFollowsClef(t *testing.T) {
	e := newEditor("%F-4")
	m := e.engine.Metrics()
	n := e.Click(m.BottomY())
	assert.Equal(t, model.G, n.Step)
	assert.Equal(t, 2, n.Octave)
}

func TestClickFarAboveClampsOctave(t *testing.T) {
	e := newEditor("")
	n := e.Click(-2000)
	assert.Equal(t, 6, n.Octave)
}

func TestHoverDoesNotTouchDocument(t *testing.T) {
	e := newEditor("C4")
	m := e.engine.Metrics()
	e.Hover(m.LineY(2))

	assert := assert.New(t)
	assert.Equal(model.Note{Step: model.B, Octave: 4, Duration: 4}, *e.Preview())
	assert.Equal("C4", e.Doc.Body())
	assert.Equal(1, glyph.Count(e.Draw(), glyph.GuidePart))

	e.Leave()
	assert.Nil(e.Preview())
	assert.Zero(glyph.Count(e.Draw(), glyph.GuidePart))
}

func TestApply(t *testing.T) {
	e := newEditor("")
	assert := assert.New(t)

	st := e.Apply(Insert{Token: "C4 nope D8"})
	assert.Equal("C4 D8", st.Body)
	assert.Equal([]string{"nope"}, st.Skipped)
	assert.Equal(2, glyph.Count(st.Drawing, glyph.HeadPart))

	st = e.Apply(Undo{})
	assert.Equal("C4", st.Body)

	st = e.Apply(Sync{PAE: "%C-3 $FC @2/4 E4 F4"})
	assert.Equal("%C-3 $FC @2/4 E4 F4", st.PAE)
	assert.Len(st.Events, 2)

	st = e.Apply(Select{Palette: Palette{Duration: 3}})
	assert.Equal(DefaultPalette, e.Palette)
	st = e.Apply(Select{Palette: Palette{Duration: 16}})
	assert.Equal(16, e.Palette.Duration)

	st = e.Apply(Clear{})
	assert.Equal("", st.Body)
	assert.Equal("%C-3 $FC @2/4", st.PAE)
}

func TestBusSerializesProducers(t *testing.T) {
	var mu sync.Mutex
	var changes int
	b := NewBus(newEditor(""), func(State) {
		mu.Lock()
		changes++
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := b.Send(ctx, Insert{Token: "C4"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	st, err := b.Send(ctx, Insert{Token: "/"})
	require.NoError(t, err)
	assert.Len(t, st.Events, 11)

	require.NoError(t, b.Post(ctx, Clear{}))
	st, err = b.Send(ctx, Undo{})
	require.NoError(t, err)
	assert.Empty(t, st.Events)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("bus did not stop")
	}

	mu.Lock()
	assert.Equal(t, 13, changes)
	mu.Unlock()
}

func TestSendAfterStop(t *testing.T) {
	b := NewBus(newEditor(""), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.Send(ctx, Clear{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPointerCommandsKeepTextEditSkipped(t *testing.T) {
	e := newEditor("")
	m := e.engine.Metrics()
	assert := assert.New(t)

	st := e.Apply(Sync{PAE: "C4 Z9 D4"})
	assert.Equal([]string{"Z9"}, st.Skipped)

	st = e.Apply(Hover{Y: m.LineY(2)})
	assert.Equal([]string{"Z9"}, st.Skipped)
	st = e.Apply(Click{Y: m.LineY(2)})
	assert.Equal([]string{"Z9"}, st.Skipped)
	st = e.Apply(Select{Palette: Palette{Duration: 8}})
	assert.Equal([]string{"Z9"}, st.Skipped)

	st = e.Apply(Insert{Token: "E4"})
	assert.Empty(st.Skipped)
	st = e.Apply(Leave{})
	assert.Equal([]string{"Z9"}, st.Skipped)
}
