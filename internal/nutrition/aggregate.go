package nutrition

import (
	"math"

	"nutrilabel/models"
)

// LineItem pairs an ingredient snapshot with the grams used in the recipe.
type LineItem struct {
	Ingredient *models.Ingredient
	AmountG    float64
}

// Values maps nutrient keys to quantities.
type Values map[Key]float64

// Totals holds the nutrition facts of a recipe. PerUnit and Per100g are
// rounded for display; the Raw maps keep full precision.
type Totals struct {
	Order      []Nutrient
	PerUnit    Values
	Per100g    Values
	RawPerUnit Values
	RawPer100g Values
}

// Kcal computes energy with digestible carbohydrate (carbs minus fiber and
// allulose, floored at zero) at 4 kcal/g, fiber at 2 kcal/g, allulose at 0,
// protein at 4 kcal/g and fat at 9 kcal/g.
func Kcal(carbsG, fiberG, alluloseG, proteinG, fatG float64) float64 {
	digestible := math.Max(carbsG-fiberG-alluloseG, 0)
	return 4*digestible + 2*fiberG + 4*proteinG + 9*fatG
}

// Aggregate sums the nutrient contribution of every line item and derives
// energy, per-100g values and their rounded forms. A non-positive unit weight
// yields all-zero per-100g values. Aggregate never rejects input.
func Aggregate(items []LineItem, unitWeightG float64) Totals {
	perUnit := Values{}
	for _, nutrient := range order {
		perUnit[nutrient.Key] = 0
	}

	for _, item := range items {
		if item.Ingredient == nil {
			continue
		}
		factor := ToNonNegativeFloat(item.AmountG) / 100.0
		for key, density := range densities(item.Ingredient) {
			perUnit[key] += factor * ToNonNegativeFloat(density)
		}
	}

	perUnit[KeyKcal] = Kcal(
		perUnit[KeyCarbs],
		perUnit[KeyFiber],
		perUnit[KeyAllulose],
		perUnit[KeyProtein],
		perUnit[KeyFat],
	)

	per100g := make(Values, len(perUnit))
	unitWeightG = ToNonNegativeFloat(unitWeightG)
	ratio := 0.0
	if unitWeightG > 0 {
		ratio = 100.0 / unitWeightG
	}
	for key, value := range perUnit {
		per100g[key] = value * ratio
	}

	totals := Totals{
		Order:      Order(),
		PerUnit:    make(Values, len(order)),
		Per100g:    make(Values, len(order)),
		RawPerUnit: perUnit,
		RawPer100g: per100g,
	}
	for _, nutrient := range order {
		totals.PerUnit[nutrient.Key] = Round(perUnit[nutrient.Key], nutrient.Unit)
		totals.Per100g[nutrient.Key] = Round(per100g[nutrient.Key], nutrient.Unit)
	}
	return totals
}

func densities(ing *models.Ingredient) map[Key]*float64 {
	return map[Key]*float64{
		KeySodium:   ing.SodiumMg100g,
		KeyCarbs:    ing.CarbsG100g,
		KeySugars:   ing.SugarsG100g,
		KeyFiber:    ing.FiberG100g,
		KeyAllulose: ing.AlluloseG100g,
		KeyFat:      ing.FatG100g,
		KeyTransFat: ing.TransFatG100g,
		KeySatFat:   ing.SatFatG100g,
		KeyChol:     ing.CholMg100g,
		KeyProtein:  ing.ProteinG100g,
	}
}
