package editor

import (
	"testing"

	"github.com/jsphweid/incipitdex/model"
	"github.com/stretchr/testify/assert"
)

func TestStructureEditsReencodeText(t *testing.T) {
	d := NewDocument()
	d.Append(model.Note{Step: model.G, Octave: 5, Duration: 4})
	d.Append(model.Bar{Kind: model.SingleBar})

	assert := assert.New(t)
	assert.Equal(StructureAuthority, d.Authority())
	assert.Equal("G'4 /", d.Body())
	assert.Equal("%G-2 $x @4/4 G'4 /", d.PAE())
}

func TestTextEditsRedecodeStructure(t *testing.T) {
	d := NewDocument()
	d.SetBody("C4  D8 ?? E2")

	assert := assert.New(t)
	assert.Equal(TextAuthority, d.Authority())
	// text is kept as typed apart from whitespace
	assert.Equal("C4 D8 ?? E2", d.Body())
	assert.Equal(3, d.Len())
	assert.Equal([]string{"??"}, d.Skipped())

	// a structural edit after a text edit makes the structure authoritative
	// and drops the undecodable token from the text
	d.Append(model.Rest{Duration: 4})
	assert.Equal(StructureAuthority, d.Authority())
	assert.Equal("C4 D8 E2 4-", d.Body())
}

func TestUndoAndClear(t *testing.T) {
	d := FromPAE("%F-4 $bB @3/4 G,4 A,4")
	assert := assert.New(t)
	assert.Equal(model.BassClef, d.Header().Clef)
	assert.Equal(-1, d.Header().Key)

	assert.True(d.Undo())
	assert.Equal("G,4", d.Body())
	assert.True(d.Undo())
	assert.False(d.Undo())

	d.SetBody("C4 D4")
	d.Clear()
	assert.Empty(d.Events())
	assert.Equal("%F-4 $bB @3/4", d.PAE())
}

func TestHeaderSetters(t *testing.T) {
	d := NewDocument()
	d.SetKey(9)
	d.SetClef(model.Clef{ID: 'X', Line: 2})
	d.SetTime(model.TimeSignature{Numerator: 6, Denominator: 8})
	assert.Equal(t, "%G-2 $FCGDAEB @6/8", d.PAE())
}

func TestEventsAreCopied(t *testing.T) {
	d := FromPAE("C4 D4")
	evs := d.Events()
	evs[0] = model.Rest{Duration: 2}
	assert.Equal(t, "C4 D4", d.Body())
	assert.Equal(t, model.Note{Step: model.C, Octave: 4, Duration: 4}, d.Events()[0])
}
