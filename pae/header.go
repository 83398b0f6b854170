package pae

import (
	"strconv"
	"strings"

	"github.com/jsphweid/incipitdex/key"
	"github.com/jsphweid/incipitdex/model"
)

// ParseClef reads "%G-2" style tokens. Anything else is the treble clef.
func ParseClef(tok string) model.Clef {
	if len(tok) < 4 || tok[0] != '%' || tok[2] != '-' {
		return model.TrebleClef
	}
	line, err := strconv.Atoi(tok[3:])
	if err != nil {
		return model.TrebleClef
	}
	c := model.Clef{ID: model.ClefID(tok[1]), Line: line}
	if !c.Valid() {
		return model.TrebleClef
	}
	return c
}

// ParseTime reads "@N/D". Either number falls back to 4 when unreadable.
func ParseTime(tok string) model.TimeSignature {
	ts := model.CommonTime
	num, den, _ := strings.Cut(strings.TrimPrefix(tok, "@"), "/")
	if n, err := strconv.Atoi(num); err == nil && n > 0 {
		ts.Numerator = n
	}
	if d, err := strconv.Atoi(den); err == nil && d > 0 {
		ts.Denominator = d
	}
	return ts
}

func FormatHeader(h model.Header) string {
	return strings.Join([]string{h.Clef.String(), key.Encode(h.Key), h.Time.String()}, " ")
}

// SplitHeader separates leading header tokens from the body. Header tokens
// may appear in any order; each one missing keeps its default.
func SplitHeader(s string) (model.Header, string) {
	h := model.DefaultHeader
	rest := strings.TrimSpace(s)
	for rest != "" {
		tok, tail, _ := strings.Cut(rest, " ")
		switch tok[0] {
		case '%':
			h.Clef = ParseClef(tok)
		case '$':
			h.Key = key.Decode(tok)
		case '@':
			h.Time = ParseTime(tok)
		default:
			return h, rest
		}
		rest = strings.TrimSpace(tail)
	}
	return h, rest
}

func ParseIncipitReport(s string) (model.Incipit, []string) {
	h, body := SplitHeader(strings.Join(strings.Fields(s), " "))
	events, skipped := DecodeBodyReport(body)
	return model.Incipit{Header: h, Events: events}, skipped
}

func ParseIncipit(s string) model.Incipit {
	inc, _ := ParseIncipitReport(s)
	return inc
}

func FormatIncipit(inc model.Incipit) string {
	return strings.TrimSpace(FormatHeader(inc.Header) + " " + EncodeBody(inc.Events))
}

func View(inc model.Incipit) model.IncipitView {
	return model.IncipitView{
		Clef:   inc.Clef.String(),
		Key:    inc.Key,
		Time:   inc.Time.String(),
		Events: inc.Events,
	}
}
