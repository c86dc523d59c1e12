package label

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Renderer paints label documents as PDF.
type Renderer struct {
	fonts    *FontLoader
	geometry Geometry
}

// NewRenderer returns an A4 renderer using fonts for Hangul text. A nil
// loader behaves like one whose font is missing.
func NewRenderer(fonts *FontLoader) *Renderer {
	return &Renderer{fonts: fonts, geometry: A4}
}

// withGeometry returns a copy of r that lays out pages with g.
func (r *Renderer) withGeometry(g Geometry) *Renderer {
	clone := *r
	clone.geometry = g
	return &clone
}

// Render lays out doc and returns the finished PDF.
func (r *Renderer) Render(doc Document) ([]byte, error) {
	pages := r.geometry.Layout(doc)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: r.geometry.PageWidth, Ht: r.geometry.PageHeight},
	})
	pdf.SetMargins(r.geometry.Margin, r.geometry.Margin, r.geometry.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(doc.GeneratedAt)
	pdf.SetModificationDate(doc.GeneratedAt)
	pdf.SetTitle(fmt.Sprintf("%s - %s", titleText, doc.recipeName()), true)
	pdf.SetCreator("nutrilabel", true)

	setFont := r.fontSetter(pdf)

	for _, page := range pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			if op.Role == RoleRule {
				pdf.Line(op.X, op.Y, op.X2, op.Y)
				continue
			}
			setFont(op.Size, op.Bold)
			x := op.X
			if op.AlignRight {
				x -= pdf.GetStringWidth(op.Text)
			}
			pdf.Text(x, op.Y, op.Text)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render label: %w", err)
	}
	return buf.Bytes(), nil
}

// fontSetter registers the Unicode font when it is available and returns a
// function selecting the right face for each text op. The Unicode font has no
// bold face, so bold text falls back to the regular one.
func (r *Renderer) fontSetter(pdf *fpdf.Fpdf) func(size float64, bold bool) {
	var capability FontCapability
	if r.fonts != nil {
		capability = r.fonts.Load()
	}

	if capability.Available() {
		pdf.AddUTF8FontFromBytes(capability.Family, "", capability.Data)
		return func(size float64, _ bool) {
			pdf.SetFont(capability.Family, "", size)
		}
	}

	return func(size float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont(fallbackFamily, style, size)
	}
}
