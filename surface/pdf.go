package surface

import (
	"io"
	"math"
	"os"

	"github.com/jsphweid/incipitdex/glyph"
	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
)

const (
	musicFamily = "music"
	plainFamily = "Helvetica"

	inkAlpha   = 1.0
	ghostLine  = 0.80
	ghostFill  = 0.28
	middleDrop = 0.35
)

type rgb struct{ r, g, b int }

var (
	ink   = rgb{14, 14, 15}
	ghost = rgb{30, 64, 175}
)

// PDF draws each frame onto a single page sized to the staff, one point per
// pixel. Without a music font, text glyphs fall back to their ASCII form.
type PDF struct {
	open     func() (io.WriteCloser, error)
	fontPath string
	doc      *gofpdf.Fpdf
	closed   bool
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// NewPDF writes every flushed frame to w.
func NewPDF(w io.Writer, fontPath string) *PDF {
	return &PDF{
		open:     func() (io.WriteCloser, error) { return nopCloser{w}, nil },
		fontPath: fontPath,
	}
}

// NewPDFFile rewrites path on every flush.
func NewPDFFile(path, fontPath string) *PDF {
	return &PDF{
		open:     func() (io.WriteCloser, error) { return os.Create(path) },
		fontPath: fontPath,
	}
}

func (p *PDF) Clear(width, height float64) error {
	if p.closed {
		return ErrClosed
	}
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	if p.fontPath != "" {
		doc.AddUTF8Font(musicFamily, "", p.fontPath)
	}
	doc.AddPage()
	p.doc = doc
	return errors.Wrap(doc.Error(), "creating pdf page")
}

func (p *PDF) color(c glyph.Command, fill bool) {
	col, alpha := ink, inkAlpha
	if c.Ghost {
		col, alpha = ghost, ghostLine
		if fill {
			alpha = ghostFill
		}
	}
	p.doc.SetDrawColor(col.r, col.g, col.b)
	p.doc.SetFillColor(col.r, col.g, col.b)
	p.doc.SetTextColor(col.r, col.g, col.b)
	p.doc.SetAlpha(alpha, "Normal")
}

func style(filled bool) string {
	if filled {
		return "FD"
	}
	return "D"
}

func (p *PDF) text(c glyph.Command) {
	txt := c.Text
	if p.fontPath != "" {
		p.doc.SetFont(musicFamily, "", c.Size)
	} else {
		p.doc.SetFont(plainFamily, "", c.Size)
		txt = c.Fallback
	}
	y := c.Y
	if c.Middle {
		y += c.Size * middleDrop
	}
	p.doc.Text(c.X, y, txt)
}

func (p *PDF) Draw(c glyph.Command) error {
	if p.closed {
		return ErrClosed
	}
	if p.doc == nil {
		return errors.New("pdf surface drawn before Clear")
	}
	p.color(c, c.Filled || c.Kind == glyph.Text)
	p.doc.SetLineWidth(c.Width)
	if len(c.Dash) > 0 {
		p.doc.SetDashPattern(c.Dash, 0)
		defer p.doc.SetDashPattern([]float64{}, 0)
	}

	switch c.Kind {
	case glyph.Line:
		p.doc.Line(c.X1, c.Y1, c.X2, c.Y2)
	case glyph.Curve:
		p.doc.Curve(c.X1, c.Y1, c.CX, c.CY, c.X2, c.Y2, "D")
	case glyph.Ellipse:
		// gofpdf rotates counter-clockwise in degrees
		p.doc.Ellipse(c.X, c.Y, c.RX, c.RY, -c.Rotation*180/math.Pi, style(c.Filled))
	case glyph.Circle:
		p.doc.Circle(c.X, c.Y, c.RX, style(c.Filled))
	case glyph.Text:
		p.text(c)
	default:
		return errors.Errorf("unknown command kind %q", c.Kind)
	}
	return p.doc.Error()
}

func (p *PDF) Flush() error {
	if p.closed {
		return ErrClosed
	}
	if p.doc == nil {
		return nil
	}
	w, err := p.open()
	if err != nil {
		return errors.Wrap(err, "opening pdf output")
	}
	if err := p.doc.Output(w); err != nil {
		w.Close()
		return errors.Wrap(err, "writing pdf")
	}
	return w.Close()
}

func (p *PDF) Close() error {
	p.closed = true
	p.doc = nil
	return nil
}
