// Package key converts key signatures between a signed count of sharps
// (positive) or flats (negative) and the PAE key token.
package key

import (
	"strings"

	"github.com/jsphweid/incipitdex/model"
	"github.com/jsphweid/incipitdex/util"
)

const MaxAltered = 7

var SharpOrder = []model.Step{model.F, model.C, model.G, model.D, model.A, model.E, model.B}
var FlatOrder = []model.Step{model.B, model.E, model.A, model.D, model.G, model.C, model.F}

func Clamp(n int) int {
	return util.Clamp(n, -MaxAltered, MaxAltered)
}

func Encode(n int) string {
	n = Clamp(n)
	if n == 0 {
		return "$x"
	}
	var sb strings.Builder
	sb.WriteString("$")
	order := SharpOrder
	if n < 0 {
		sb.WriteString("b")
		order = FlatOrder
	}
	for _, s := range order[:util.Abs(n)] {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Decode never fails; anything it does not understand is the neutral key.
func Decode(token string) int {
	if token == "" || token == "$x" || !strings.HasPrefix(token, "$") {
		return 0
	}
	letters := token[1:]
	sign := 1
	if strings.HasPrefix(letters, "b") {
		sign = -1
		letters = letters[1:]
	}
	// only the number of letters counts, not which letters they are
	return Clamp(sign * len(letters))
}

// Alteration is the semitone shift the key applies to a step: +1, -1 or 0.
func Alteration(n int, s model.Step) int {
	n = Clamp(n)
	order, shift := SharpOrder, 1
	if n < 0 {
		order, shift = FlatOrder, -1
	}
	for _, altered := range order[:util.Abs(n)] {
		if altered == s {
			return shift
		}
	}
	return 0
}
