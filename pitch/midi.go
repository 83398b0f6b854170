package pitch

import (
	"github.com/jsphweid/incipitdex/key"
	"github.com/jsphweid/incipitdex/model"
	"github.com/jsphweid/incipitdex/util"
)

var semitones = [7]int{0, 2, 4, 5, 7, 9, 11}

// MIDI returns the key number for a step, octave and semitone alteration,
// with C4 at 60.
func MIDI(s model.Step, octave, alter int) int {
	return (octave+1)*12 + semitones[s] + alter
}

// Speller tracks accidentals through a bar so notes can be turned into
// sounding pitches. Explicit accidentals hold for the same step and octave
// until the next bar line.
type Speller struct {
	Key     int
	inForce map[int]int
}

func NewSpeller(keySig int) *Speller {
	return &Speller{Key: keySig, inForce: make(map[int]int)}
}

func (sp *Speller) Bar() {
	sp.inForce = make(map[int]int)
}

func (sp *Speller) Pitch(n model.Note) int {
	ix := DiatonicIndex(n.Step, n.Octave)
	alter, ok := sp.inForce[ix]
	switch n.Accidental {
	case model.Sharp:
		alter, ok = 1, true
	case model.Flat:
		alter, ok = -1, true
	case model.Natural:
		alter, ok = 0, true
	}
	if ok {
		sp.inForce[ix] = alter
	} else {
		alter = key.Alteration(sp.Key, n.Step)
	}
	return MIDI(n.Step, n.Octave, alter)
}

func spelling(midiKey int, keySig int) (step model.Step, octave, alter int) {
	octave = util.FloorDiv(midiKey, 12) - 1
	pc := util.FloorMod(midiKey, 12)
	for s := model.B; ; s-- {
		if semitones[s] == pc {
			return s, octave, 0
		}
		if semitones[s] < pc {
			if keySig < 0 {
				return s + 1, octave, -1
			}
			return s, octave, 1
		}
	}
}

// Spell names a MIDI key. Black keys are spelled with sharps for a key
// signature >= 0 and flats otherwise. An accidental is written only when the
// key signature, or an accidental already written in this bar, says otherwise.
func (sp *Speller) Spell(midiKey int) model.Note {
	step, octave, alter := spelling(midiKey, sp.Key)
	n := model.Note{Step: step, Octave: octave}

	ix := DiatonicIndex(step, octave)
	current, ok := sp.inForce[ix]
	if !ok {
		current = key.Alteration(sp.Key, step)
	}
	if alter == current {
		return n
	}
	switch alter {
	case 1:
		n.Accidental = model.Sharp
	case -1:
		n.Accidental = model.Flat
	default:
		n.Accidental = model.Natural
	}
	sp.inForce[ix] = alter
	return n
}

// Spell names a single MIDI key against the key signature alone.
func Spell(midiKey int, keySig int) model.Note {
	return NewSpeller(keySig).Spell(midiKey)
}
