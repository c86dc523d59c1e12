package label

import (
	"fmt"

	"nutrilabel/internal/nutrition"
)

// Geometry describes the page and pagination thresholds, in millimetres.
// Vertical positions are measured from the top edge.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	// TableBreak is the distance from the bottom edge below which the
	// nutrient table continues on a new page.
	TableBreak float64
	// ItemsBreak is the same threshold for the composition list.
	ItemsBreak float64
}

// A4 is the default label geometry.
var A4 = Geometry{
	PageWidth:  210,
	PageHeight: 297,
	Margin:     20,
	TableBreak: 60,
	ItemsBreak: 20,
}

// Role tags what a drawing operation represents.
type Role int

const (
	RoleTitle Role = iota
	RoleMeta
	RoleHeader
	RoleRule
	RoleRow
	RoleSection
	RoleItem
)

// Op is a single drawing operation. Text ops are drawn with their baseline
// at Y; right-aligned text ends at X. Rules run from X to X2.
type Op struct {
	Role       Role
	X, Y, X2   float64
	Text       string
	Size       float64
	Bold       bool
	AlignRight bool
	Key        nutrition.Key
}

// Page holds the drawing operations of one page.
type Page struct {
	Ops []Op
}

const (
	titleSize  = 16
	bodySize   = 11
	itemSize   = 10
	valueBand  = 98
	per100Band = 138

	titleText   = "영양성분표 (Nutrition Facts)"
	sectionText = "레시피 구성 (원재료 | 사용량 g)"
)

var columnHeaders = []struct {
	offset float64
	text   string
}{
	{0, "항목"},
	{70, "1개 기준"},
	{110, "100g 기준"},
}

// Layout places every element of doc onto pages. The nutrient table repeats
// its column header after a page break; the composition list does not.
func (g Geometry) Layout(doc Document) []Page {
	b := &layoutBuilder{geometry: g}
	b.newPage()
	x := g.Margin

	b.text(RoleTitle, x, titleText, titleSize, true)
	b.y += 10

	b.text(RoleMeta, x, fmt.Sprintf("레시피명: %s", doc.recipeName()), bodySize, false)
	b.y += 6
	b.text(RoleMeta, x, fmt.Sprintf("1개 무게: %.1f g", doc.unitWeight()), bodySize, false)
	b.y += 6
	b.text(RoleMeta, x, fmt.Sprintf("산출일: %s", doc.GeneratedAt.Format("2006-01-02 15:04")), bodySize, false)
	b.y += 10

	b.tableHeader()

	order := doc.order()
	tableLimit := g.PageHeight - g.TableBreak
	for i, nutrient := range order {
		perUnit := nutrition.FormatValue(doc.Totals.PerUnit[nutrient.Key], nutrient.Unit)
		per100g := nutrition.FormatValue(doc.Totals.Per100g[nutrient.Key], nutrient.Unit)
		b.row(nutrient, perUnit, per100g)
		b.y += 6

		if b.y > tableLimit {
			b.newPage()
			if i < len(order)-1 {
				b.tableHeader()
			}
		}
	}

	b.y += 6
	b.text(RoleSection, x, sectionText, bodySize, true)
	b.y += 4
	b.rule()
	b.y += 6

	itemsLimit := g.PageHeight - g.ItemsBreak
	for _, item := range doc.Items {
		if item.Ingredient == nil {
			continue
		}
		line := fmt.Sprintf("- %s  |  %.2f g", item.Ingredient.DisplayName, nutrition.ToNonNegativeFloat(item.AmountG))
		b.text(RoleItem, x, line, itemSize, false)
		b.y += 5

		if b.y > itemsLimit {
			b.newPage()
		}
	}

	return b.finish()
}

type layoutBuilder struct {
	geometry Geometry
	pages    []Page
	y        float64
}

func (b *layoutBuilder) newPage() {
	b.pages = append(b.pages, Page{})
	b.y = b.geometry.Margin
}

func (b *layoutBuilder) add(op Op) {
	page := &b.pages[len(b.pages)-1]
	page.Ops = append(page.Ops, op)
}

func (b *layoutBuilder) text(role Role, x float64, text string, size float64, bold bool) {
	b.add(Op{Role: role, X: x, Y: b.y, Text: text, Size: size, Bold: bold})
}

func (b *layoutBuilder) rule() {
	g := b.geometry
	b.add(Op{Role: RoleRule, X: g.Margin, Y: b.y, X2: g.PageWidth - g.Margin})
}

func (b *layoutBuilder) tableHeader() {
	for _, header := range columnHeaders {
		b.text(RoleHeader, b.geometry.Margin+header.offset, header.text, bodySize, true)
	}
	b.y += 4
	b.rule()
	b.y += 6
}

func (b *layoutBuilder) row(nutrient nutrition.Nutrient, perUnit, per100g string) {
	x := b.geometry.Margin
	b.add(Op{Role: RoleRow, X: x, Y: b.y, Text: nutrient.Label, Size: bodySize, Key: nutrient.Key})
	b.add(Op{Role: RoleRow, X: x + valueBand, Y: b.y, Text: perUnit, Size: bodySize, AlignRight: true, Key: nutrient.Key})
	b.add(Op{Role: RoleRow, X: x + per100Band, Y: b.y, Text: per100g, Size: bodySize, AlignRight: true, Key: nutrient.Key})
}

// finish drops a trailing page that received no content.
func (b *layoutBuilder) finish() []Page {
	pages := b.pages
	for len(pages) > 1 && len(pages[len(pages)-1].Ops) == 0 {
		pages = pages[:len(pages)-1]
	}
	return pages
}
