package pitch

import (
	"testing"

	"github.com/jsphweid/incipitdex/model"
	"github.com/stretchr/testify/assert"
)

func TestMIDI(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(60, MIDI(model.C, 4, 0))
	assert.Equal(69, MIDI(model.A, 4, 0))
	assert.Equal(61, MIDI(model.C, 4, 1))
	assert.Equal(59, MIDI(model.C, 4, -1))
}

func TestSpellerAppliesKeyAndBarAccidentals(t *testing.T) {
	sp := NewSpeller(1) // F sharp
	assert := assert.New(t)

	assert.Equal(66, sp.Pitch(model.Note{Step: model.F, Octave: 4}))
	assert.Equal(65, sp.Pitch(model.Note{Step: model.F, Octave: 4, Accidental: model.Natural}))
	// natural holds for the rest of the bar
	assert.Equal(65, sp.Pitch(model.Note{Step: model.F, Octave: 4}))
	// but not in another octave
	assert.Equal(78, sp.Pitch(model.Note{Step: model.F, Octave: 5}))

	sp.Bar()
	assert.Equal(66, sp.Pitch(model.Note{Step: model.F, Octave: 4}))
}

func TestSpell(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(model.Note{Step: model.C, Octave: 4}, Spell(60, 0))
	assert.Equal(model.Note{Step: model.C, Octave: 4, Accidental: model.Sharp}, Spell(61, 0))
	assert.Equal(model.Note{Step: model.D, Octave: 4, Accidental: model.Flat}, Spell(61, -2))
	assert.Equal(model.Note{Step: model.F, Octave: 4}, Spell(66, 1))
	assert.Equal(model.Note{Step: model.F, Octave: 4, Accidental: model.Natural}, Spell(65, 1))
	assert.Equal(model.Note{Step: model.B, Octave: 4}, Spell(70, -1))
	assert.Equal(model.Note{Step: model.B, Octave: 3}, Spell(59, 0))
}

func TestSpellerSpellFollowsTheBar(t *testing.T) {
	sp := NewSpeller(0)
	assert := assert.New(t)

	assert.Equal(model.Note{Step: model.F, Octave: 4, Accidental: model.Sharp}, sp.Spell(66))
	assert.Equal(model.Note{Step: model.F, Octave: 4}, sp.Spell(66))
	assert.Equal(model.Note{Step: model.F, Octave: 4, Accidental: model.Natural}, sp.Spell(65))
	assert.Equal(model.Note{Step: model.F, Octave: 4, Accidental: model.Sharp}, sp.Spell(66))

	sp.Bar()
	assert.Equal(model.Note{Step: model.F, Octave: 4, Accidental: model.Sharp}, sp.Spell(66))

	// every spelled note sounds as the key it came from
	check := NewSpeller(-3)
	replay := NewSpeller(-3)
	for _, k := range []int{63, 64, 63, 68, 67, 68, 70, 71, 59} {
		assert.Equal(k, replay.Pitch(check.Spell(k)), "key %d", k)
	}
}
