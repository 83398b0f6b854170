// Package pitch maps (step, octave) pairs to vertical staff positions.
//
// Pitches are handled as diatonic indices, octave*7 + step, so that one unit
// is one staff position: a line or the space next to it. A clef fixes which
// diatonic index sits on the bottom staff line.
package pitch

import (
	"math"

	"github.com/jsphweid/incipitdex/model"
	"github.com/jsphweid/incipitdex/util"
)

// Pointer-derived octaves are kept within this range.
const (
	MinOctave = 2
	MaxOctave = 6
)

type Pitch struct {
	Step   model.Step
	Octave int
}

func DiatonicIndex(s model.Step, octave int) int {
	return octave*7 + int(s)
}

func (p Pitch) Index() int {
	return DiatonicIndex(p.Step, p.Octave)
}

func FromIndex(ix int) Pitch {
	return Pitch{model.Step(util.FloorMod(ix, 7)), util.FloorDiv(ix, 7)}
}

// clefPitch is the pitch a clef symbol names: G4, F3 or C4.
func clefPitch(id model.ClefID) int {
	switch id {
	case model.FClef:
		return DiatonicIndex(model.F, 3)
	case model.CClef:
		return DiatonicIndex(model.C, 4)
	}
	return DiatonicIndex(model.G, 4)
}

// Reference is the diatonic index on the bottom staff line for the clef.
func Reference(c model.Clef) int {
	return clefPitch(c.ID) - 2*(c.Line-1)
}

// Mapper carries the staff geometry needed to turn pitches into y values.
type Mapper struct {
	BottomY float64
	LineGap float64
}

func (m Mapper) unit() float64 {
	return m.LineGap / 2
}

func (m Mapper) ToY(s model.Step, octave int, c model.Clef) float64 {
	diff := DiatonicIndex(s, octave) - Reference(c)
	return m.BottomY - float64(diff)*m.unit()
}

// FromY snaps y to the nearest line or space. The octave is clamped to
// [MinOctave, MaxOctave] which keeps clicks far off the staff usable.
func (m Mapper) FromY(y float64, c model.Clef) Pitch {
	offset := int(math.Round((m.BottomY - y) / m.unit()))
	p := FromIndex(Reference(c) + offset)
	p.Octave = util.Clamp(p.Octave, MinOctave, MaxOctave)
	return p
}
