package model

import "fmt"

type ClefID byte

const (
	GClef ClefID = 'G'
	FClef ClefID = 'F'
	CClef ClefID = 'C'
)

// Clef fixes which staff line carries which pitch. Line counts from the
// bottom staff line, starting at 1, as in the PAE clef token.
type Clef struct {
	ID   ClefID
	Line int
}

var (
	TrebleClef = Clef{GClef, 2}
	BassClef   = Clef{FClef, 4}
	AltoClef   = Clef{CClef, 3}
	TenorClef  = Clef{CClef, 4}
)

func (c Clef) String() string {
	return fmt.Sprintf("%%%c-%d", c.ID, c.Line)
}

// Valid reports whether the clef is one of G, F, C on lines 1 to 5.
func (c Clef) Valid() bool {
	switch c.ID {
	case GClef, FClef, CClef:
	default:
		return false
	}
	return c.Line >= 1 && c.Line <= 5
}

type TimeSignature struct {
	Numerator   int
	Denominator int
}

var CommonTime = TimeSignature{4, 4}

func (t TimeSignature) String() string {
	return fmt.Sprintf("@%d/%d", t.Numerator, t.Denominator)
}

type Header struct {
	Clef Clef
	Key  int
	Time TimeSignature
}

var DefaultHeader = Header{Clef: TrebleClef, Key: 0, Time: CommonTime}

type Incipit struct {
	Header
	Events []Event
}

// Notes returns only the Note events, in order.
func (inc *Incipit) Notes() []Note {
	var res []Note
	for _, e := range inc.Events {
		if n, ok := e.(Note); ok {
			res = append(res, n)
		}
	}
	return res
}
