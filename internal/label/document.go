// Package label renders nutrition facts and recipe composition into a
// printable PDF label.
package label

import (
	"fmt"
	"math"
	"strings"
	"time"

	"nutrilabel/internal/nutrition"
)

const (
	// ContentType is the media type of rendered labels.
	ContentType = "application/pdf"
	// DefaultRecipeName is printed when a recipe has no name.
	DefaultRecipeName = "레시피"
)

// Document is the input to a label rendering.
type Document struct {
	RecipeName  string
	UnitWeightG float64
	Totals      nutrition.Totals
	Items       []nutrition.LineItem
	GeneratedAt time.Time
}

// Filename returns the suggested attachment name for a label generated at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("nutrition_label_%s.pdf", t.Format("20060102_150405"))
}

func (d Document) recipeName() string {
	if name := strings.TrimSpace(d.RecipeName); name != "" {
		return name
	}
	return DefaultRecipeName
}

// unitWeight is the unit weight as entered; only non-finite values are
// replaced by 0.
func (d Document) unitWeight() float64 {
	if math.IsNaN(d.UnitWeightG) || math.IsInf(d.UnitWeightG, 0) {
		return 0
	}
	return d.UnitWeightG
}

func (d Document) order() []nutrition.Nutrient {
	if len(d.Totals.Order) > 0 {
		return d.Totals.Order
	}
	return nutrition.Order()
}
