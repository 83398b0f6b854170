// Package pae reads and writes Plaine & Easie incipits.
//
// Decoding is lenient: tokens that do not match the grammar are dropped and
// malformed numbers fall back to defaults, so text that is still being typed
// always yields something drawable.
package pae

import (
	"strconv"
	"strings"

	"github.com/jsphweid/incipitdex/model"
)

const TieToken = "="

// octaveMarks is indexed by octave - 2.
var octaveMarks = []string{",,", ",", "", "'", "''"}

const (
	lowestMarkedOctave  = 2
	highestMarkedOctave = 6
	defaultOctave       = 4
)

func OctaveMark(octave int) string {
	if octave <= lowestMarkedOctave {
		return octaveMarks[0]
	}
	if octave >= highestMarkedOctave {
		return octaveMarks[len(octaveMarks)-1]
	}
	return octaveMarks[octave-lowestMarkedOctave]
}

func octaveFromMark(mark string) int {
	for i, m := range octaveMarks {
		if m == mark {
			return i + lowestMarkedOctave
		}
	}
	return defaultOctave
}

func parseDuration(digits string) int {
	d, err := strconv.Atoi(digits)
	if err != nil || !model.ValidDuration(d) {
		return model.DefaultDuration
	}
	return d
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isOctaveMark(c byte) bool {
	return c == '\'' || c == ','
}

func decodeRest(tok string) (model.Rest, bool) {
	digits := strings.TrimSuffix(tok, "-")
	if len(digits) == len(tok) || digits == "" {
		return model.Rest{}, false
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return model.Rest{}, false
		}
	}
	return model.Rest{Duration: parseDuration(digits)}, true
}

// decodeNote matches <step><accidental?><octave marks?><digits?><dot?>.
func decodeNote(tok string) (model.Note, bool) {
	var n model.Note
	if tok == "" {
		return n, false
	}
	step, ok := model.ParseStep(tok[0])
	if !ok {
		return n, false
	}
	n.Step = step
	i := 1

	if i < len(tok) {
		if acc, ok := model.ParseAccidental(tok[i]); ok {
			n.Accidental = acc
			i++
		}
	}

	start := i
	for i < len(tok) && isOctaveMark(tok[i]) {
		i++
	}
	n.Octave = octaveFromMark(tok[start:i])

	start = i
	for i < len(tok) && isDigit(tok[i]) {
		i++
	}
	n.Duration = parseDuration(tok[start:i])

	if i < len(tok) && tok[i] == '.' {
		n.Dotted = true
		i++
	}
	if i != len(tok) {
		return model.Note{}, false
	}
	return n, true
}

// DecodeToken decodes a single body token. Bars are tried first, then rests,
// then notes.
func DecodeToken(tok string) (model.Event, bool) {
	if kind, ok := model.ParseBarKind(tok); ok {
		return model.Bar{Kind: kind}, true
	}
	if tok == TieToken {
		return model.Tie{}, true
	}
	if r, ok := decodeRest(tok); ok {
		return r, true
	}
	if n, ok := decodeNote(tok); ok {
		return n, true
	}
	return nil, false
}

// DecodeBodyReport decodes a whitespace separated body and also returns the
// tokens it could not read, in order.
func DecodeBodyReport(body string) (events []model.Event, skipped []string) {
	events = []model.Event{}
	for _, tok := range strings.Fields(body) {
		ev, ok := DecodeToken(tok)
		if !ok {
			skipped = append(skipped, tok)
			continue
		}
		events = append(events, ev)
	}
	return events, skipped
}

func DecodeBody(body string) []model.Event {
	events, _ := DecodeBodyReport(body)
	return events
}

func EncodeEvent(ev model.Event) string {
	switch e := ev.(type) {
	case model.Note:
		var sb strings.Builder
		sb.WriteString(e.Step.String())
		sb.WriteString(e.Accidental.Code())
		sb.WriteString(OctaveMark(e.Octave))
		sb.WriteString(strconv.Itoa(e.Duration))
		if e.Dotted {
			sb.WriteString(".")
		}
		return sb.String()
	case model.Rest:
		return strconv.Itoa(e.Duration) + "-"
	case model.Bar:
		return string(e.Kind)
	case model.Tie:
		return TieToken
	}
	return ""
}

func EncodeBody(events []model.Event) string {
	tokens := make([]string, 0, len(events))
	for _, ev := range events {
		if tok := EncodeEvent(ev); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return strings.Join(tokens, " ")
}
