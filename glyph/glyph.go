// Package glyph turns notation elements into drawing primitives. Nothing in
// here knows about a concrete drawing API; see package surface for that.
package glyph

import (
	"math"

	"github.com/jsphweid/incipitdex/model"
)

const (
	headRotation = -0.35
	ledgerEps    = 1e-6

	staffWidth  = 2
	barWidth    = 2
	ledgerWidth = 1.4
	noteWidth   = 1.6
	guideWidth  = 1
)

type clefDraw struct {
	symbol   string
	sizeMul  float64
	xOff     float64
	yOffGaps float64
}

// hand tuned per clef glyph
var clefDraws = map[model.ClefID]clefDraw{
	model.GClef: {"𝄞", 5.0, 8, -0.48},
	model.FClef: {"𝄢", 5.0, 11, 0.72},
	model.CClef: {"𝄡", 4.4, 9, 0.48},
}

var accidentalSymbols = map[model.Accidental][2]string{
	model.Sharp:   {"♯", "#"},
	model.Flat:    {"♭", "b"},
	model.Natural: {"♮", "n"},
}

var restSymbols = map[int]string{
	1:  "𝄻",
	2:  "𝄼",
	4:  "𝄽",
	8:  "𝄾",
	16: "𝄿",
	32: "𝅀",
}

// Renderer emits commands for one staff. MaxFlags caps the flags drawn on
// short notes.
type Renderer struct {
	Metrics
	MaxFlags int
}

func (r Renderer) Staff() []Command {
	var res []Command
	x1, x2 := r.MarginLeft(), r.Width-r.MarginRight()
	for i := 0; i < 5; i++ {
		y := r.Top + float64(i)*r.LineGap
		res = append(res, Command{Kind: Line, Part: StaffPart, X1: x1, Y1: y, X2: x2, Y2: y, Width: staffWidth})
	}
	return res
}

func (r Renderer) Clef(c model.Clef) Command {
	cd, ok := clefDraws[c.ID]
	if !ok {
		cd = clefDraws[model.GClef]
	}
	return Command{
		Kind:     Text,
		Part:     ClefPart,
		X:        r.MarginLeft() + r.px(cd.xOff),
		Y:        r.LineY(c.Line-1) + cd.yOffGaps*r.LineGap,
		Text:     cd.symbol,
		Fallback: string(c.ID),
		Size:     math.Round(r.LineGap * cd.sizeMul),
		Middle:   true,
	}
}

func (r Renderer) BarLine(x float64) Command {
	return Command{Kind: Line, Part: BarPart, X1: x, Y1: r.Top - 1, X2: x, Y2: r.BottomY() + 1, Width: barWidth}
}

// Guide is the dashed vertical line marking where the next note goes.
func (r Renderer) Guide(x float64) Command {
	return Command{
		Kind:  Line,
		Part:  GuidePart,
		X1:    x,
		Y1:    r.Top - r.LineGap,
		X2:    x,
		Y2:    r.BottomY() + r.LineGap,
		Width: guideWidth,
		Dash:  []float64{r.px(6), r.px(6)},
		Ghost: true,
	}
}

func (r Renderer) LedgerLines(x, y float64) []Command {
	var res []Command
	half := r.HeadRX() + r.px(4)
	line := func(yy float64) Command {
		return Command{Kind: Line, Part: LedgerPart, X1: x - half, Y1: yy, X2: x + half, Y2: yy, Width: ledgerWidth}
	}
	for yy := r.Top - r.LineGap; yy >= y-ledgerEps; yy -= r.LineGap {
		res = append(res, line(yy))
	}
	for yy := r.BottomY() + r.LineGap; yy <= y+ledgerEps; yy += r.LineGap {
		res = append(res, line(yy))
	}
	return res
}

func (r Renderer) flags(duration int) int {
	n := 0
	for d := 8; d <= duration; d *= 2 {
		n++
	}
	if n > r.MaxFlags {
		n = r.MaxFlags
	}
	return n
}

// Note draws a head centered at x, y with its ledger lines, stem, flags,
// accidental and dot. Stems always go up on the right of the head.
func (r Renderer) Note(x, y float64, n model.Note, ghost bool) []Command {
	res := r.LedgerLines(x, y)

	rx := r.HeadRX()
	res = append(res, Command{
		Kind:     Ellipse,
		Part:     HeadPart,
		X:        x,
		Y:        y,
		RX:       rx,
		RY:       r.HeadRY(),
		Rotation: headRotation,
		Filled:   n.Duration >= 4,
		Width:    noteWidth,
	})

	if n.Duration >= 2 {
		stemX, stemTop := x+rx, y-r.StemLen()
		res = append(res, Command{Kind: Line, Part: StemPart, X1: stemX, Y1: y, X2: stemX, Y2: stemTop, Width: noteWidth})
		for i := 0; i < r.flags(n.Duration); i++ {
			off := r.px(10) * float64(i)
			res = append(res, Command{
				Kind:  Curve,
				Part:  FlagPart,
				X1:    stemX,
				Y1:    stemTop + off,
				CX:    stemX + r.px(11),
				CY:    stemTop + r.px(6) + off,
				X2:    stemX - r.px(2),
				Y2:    stemTop + r.px(12) + off,
				Width: noteWidth,
			})
		}
	}

	if sym, ok := accidentalSymbols[n.Accidental]; ok {
		res = append(res, Command{
			Kind:     Text,
			Part:     AccidentalPart,
			X:        x - (rx + r.px(14)),
			Y:        y + r.px(6),
			Text:     sym[0],
			Fallback: sym[1],
			Size:     r.AccidentalSize(),
		})
	}

	if n.Dotted {
		res = append(res, Command{Kind: Circle, Part: DotPart, X: x + rx + r.px(6), Y: y - r.px(4), RX: r.DotR(), Filled: true})
	}

	if ghost {
		for i := range res {
			res[i].Ghost = true
		}
	}
	return res
}

// Rest draws a rest symbol on the middle staff line.
func (r Renderer) Rest(x float64, duration int, ghost bool) Command {
	sym, ok := restSymbols[duration]
	if !ok {
		sym = restSymbols[model.DefaultDuration]
	}
	return Command{
		Kind:     Text,
		Part:     RestPart,
		X:        x - r.HeadRX(),
		Y:        r.LineY(2),
		Text:     sym,
		Fallback: "r",
		Size:     r.RestSize(),
		Middle:   true,
		Ghost:    ghost,
	}
}
