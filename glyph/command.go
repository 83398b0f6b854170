package glyph

type Kind string

const (
	Line    Kind = "line"
	Ellipse Kind = "ellipse"
	Circle  Kind = "circle"
	Curve   Kind = "curve"
	Text    Kind = "text"
)

// Part says which piece of notation a command draws.
type Part string

const (
	StaffPart      Part = "staff"
	ClefPart       Part = "clef"
	HeadPart       Part = "head"
	StemPart       Part = "stem"
	FlagPart       Part = "flag"
	DotPart        Part = "dot"
	AccidentalPart Part = "accidental"
	LedgerPart     Part = "ledger"
	BarPart        Part = "bar"
	GuidePart      Part = "guide"
	RestPart       Part = "rest"
)

// Command is one primitive for a drawing surface. Which fields matter depends
// on Kind:
//
//	Line:    X1,Y1 to X2,Y2
//	Curve:   quadratic from X1,Y1 through control CX,CY to X2,Y2
//	Ellipse: center X,Y, radii RX,RY, Rotation in radians (clockwise, y down)
//	Circle:  center X,Y, radius RX
//	Text:    Text at X,Y in Size px; Y is the baseline unless Middle is set
//
// Fallback is a plain ASCII stand-in for surfaces without a music font.
type Command struct {
	Kind     Kind      `json:"kind"`
	Part     Part      `json:"part"`
	X1       float64   `json:"x1,omitempty"`
	Y1       float64   `json:"y1,omitempty"`
	X2       float64   `json:"x2,omitempty"`
	Y2       float64   `json:"y2,omitempty"`
	CX       float64   `json:"cx,omitempty"`
	CY       float64   `json:"cy,omitempty"`
	X        float64   `json:"x,omitempty"`
	Y        float64   `json:"y,omitempty"`
	RX       float64   `json:"rx,omitempty"`
	RY       float64   `json:"ry,omitempty"`
	Rotation float64   `json:"rotation,omitempty"`
	Filled   bool      `json:"filled,omitempty"`
	Width    float64   `json:"width,omitempty"`
	Dash     []float64 `json:"dash,omitempty"`
	Text     string    `json:"text,omitempty"`
	Fallback string    `json:"fallback,omitempty"`
	Size     float64   `json:"size,omitempty"`
	Middle   bool      `json:"middle,omitempty"`
	Ghost    bool      `json:"ghost,omitempty"`
}

// Count returns how many commands draw the given part.
func Count(cmds []Command, p Part) int {
	n := 0
	for _, c := range cmds {
		if c.Part == p {
			n++
		}
	}
	return n
}

func Filter(cmds []Command, p Part) []Command {
	var res []Command
	for _, c := range cmds {
		if c.Part == p {
			res = append(res, c)
		}
	}
	return res
}
