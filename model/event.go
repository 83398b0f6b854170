package model

import (
	"encoding/json"

	"github.com/pkg/errors"
)

type Step uint8

const (
	C Step = iota
	D
	E
	F
	G
	A
	B
)

var stepNames = [7]string{"C", "D", "E", "F", "G", "A", "B"}

func (s Step) String() string {
	if s > B {
		return "?"
	}
	return stepNames[s]
}

// ParseStep accepts a single upper case letter A-G.
func ParseStep(r byte) (Step, bool) {
	if r < 'A' || r > 'G' {
		return 0, false
	}
	// A and B sit at the top of the diatonic order
	if r <= 'B' {
		return Step(r-'A') + A, true
	}
	return Step(r - 'C'), true
}

type Accidental uint8

const (
	NoAccidental Accidental = iota
	Sharp
	Flat
	Natural
)

// Code is the PAE letter for the accidental.
func (a Accidental) Code() string {
	switch a {
	case Sharp:
		return "x"
	case Flat:
		return "b"
	case Natural:
		return "n"
	}
	return ""
}

func (a Accidental) String() string {
	switch a {
	case Sharp:
		return "sharp"
	case Flat:
		return "flat"
	case Natural:
		return "natural"
	}
	return "none"
}

func ParseAccidental(code byte) (Accidental, bool) {
	switch code {
	case 'x':
		return Sharp, true
	case 'b':
		return Flat, true
	case 'n':
		return Natural, true
	}
	return NoAccidental, false
}

// Durations lists the allowed note values, 1 being a whole note.
var Durations = []int{1, 2, 4, 8, 16, 32}

const DefaultDuration = 4

func ValidDuration(d int) bool {
	for _, v := range Durations {
		if v == d {
			return true
		}
	}
	return false
}

type BarKind string

const (
	SingleBar   BarKind = "/"
	DoubleBar   BarKind = "//"
	RepeatOpen  BarKind = ":/"
	RepeatClose BarKind = "/:"
	RepeatBoth  BarKind = ":/:"
)

var BarKinds = []BarKind{SingleBar, DoubleBar, RepeatOpen, RepeatClose, RepeatBoth}

func ParseBarKind(tok string) (BarKind, bool) {
	for _, k := range BarKinds {
		if string(k) == tok {
			return k, true
		}
	}
	return "", false
}

func (k BarKind) String() string {
	switch k {
	case SingleBar:
		return "single"
	case DoubleBar:
		return "double"
	case RepeatOpen:
		return "repeat-open"
	case RepeatClose:
		return "repeat-close"
	case RepeatBoth:
		return "repeat-both"
	}
	return "unknown"
}

// Event is one element of an incipit body: Note, Rest, Bar or Tie.
type Event interface {
	isEvent()
}

type Note struct {
	Step       Step
	Octave     int
	Duration   int
	Accidental Accidental
	Dotted     bool
}

type Rest struct {
	Duration int
}

type Bar struct {
	Kind BarKind
}

// Tie is carried through text and structure but has no musical meaning here.
type Tie struct{}

func (Note) isEvent() {}
func (Rest) isEvent() {}
func (Bar) isEvent()  {}
func (Tie) isEvent()  {}

func (n Note) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string `json:"type"`
		Step       string `json:"step"`
		Octave     int    `json:"octave"`
		Duration   int    `json:"duration"`
		Accidental string `json:"accidental"`
		Dotted     bool   `json:"dotted"`
	}{"note", n.Step.String(), n.Octave, n.Duration, n.Accidental.String(), n.Dotted})
}

func (r Rest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		Duration int    `json:"duration"`
	}{"rest", r.Duration})
}

func (b Bar) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Kind string `json:"kind"`
		Code string `json:"code"`
	}{"bar", b.Kind.String(), string(b.Kind)})
}

func (Tie) MarshalJSON() ([]byte, error) {
	return []byte(`{"type":"tie"}`), nil
}

func accidentalByName(name string) (Accidental, bool) {
	for a := NoAccidental; a <= Natural; a++ {
		if a.String() == name {
			return a, true
		}
	}
	return NoAccidental, false
}

// Events is an event list that also reads back the JSON its members write.
type Events []Event

func (evs *Events) UnmarshalJSON(b []byte) error {
	var raw []struct {
		Type       string `json:"type"`
		Step       string `json:"step"`
		Octave     int    `json:"octave"`
		Duration   int    `json:"duration"`
		Accidental string `json:"accidental"`
		Dotted     bool   `json:"dotted"`
		Code       string `json:"code"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	res := make(Events, 0, len(raw))
	for i, r := range raw {
		switch r.Type {
		case "note":
			if len(r.Step) != 1 {
				return errors.Errorf("event %d: bad step %q", i, r.Step)
			}
			step, ok := ParseStep(r.Step[0])
			if !ok {
				return errors.Errorf("event %d: bad step %q", i, r.Step)
			}
			acc := NoAccidental
			if r.Accidental != "" {
				if acc, ok = accidentalByName(r.Accidental); !ok {
					return errors.Errorf("event %d: bad accidental %q", i, r.Accidental)
				}
			}
			res = append(res, Note{Step: step, Octave: r.Octave, Duration: r.Duration, Accidental: acc, Dotted: r.Dotted})
		case "rest":
			res = append(res, Rest{Duration: r.Duration})
		case "bar":
			kind, ok := ParseBarKind(r.Code)
			if !ok {
				return errors.Errorf("event %d: bad bar %q", i, r.Code)
			}
			res = append(res, Bar{Kind: kind})
		case "tie":
			res = append(res, Tie{})
		default:
			return errors.Errorf("event %d: unknown type %q", i, r.Type)
		}
	}
	*evs = res
	return nil
}
