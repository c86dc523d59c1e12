// Package components holds view fragments shared across pages.
package components

import (
	"strconv"

	"github.com/a-h/templ"

	"nutrilabel/internal/nutrition"
	"nutrilabel/models"
)

// Flash renders a status banner; an empty message renders nothing.
func Flash(kind, message string) templ.Component {
	return Func(func(h *HTML) {
		if message == "" {
			return
		}
		h.Printf(`<p class="flash flash-%s" role="alert">%s</p>`, kind, message)
	})
}

// NutritionTable renders rounded per-unit and per-100g values in nutrient order.
func NutritionTable(totals nutrition.Totals) templ.Component {
	return Func(func(h *HTML) {
		order := totals.Order
		if len(order) == 0 {
			order = nutrition.Order()
		}
		h.Raw(`<table class="nutrition-table"><thead><tr><th>항목</th><th>1개 기준</th><th>100g 기준</th></tr></thead><tbody>`)
		for _, n := range order {
			h.Printf(`<tr data-key="%s"><td>%s</td><td class="num">%s</td><td class="num">%s</td></tr>`,
				string(n.Key),
				n.Label,
				nutrition.FormatValue(totals.PerUnit[n.Key], n.Unit),
				nutrition.FormatValue(totals.Per100g[n.Key], n.Unit),
			)
		}
		h.Raw(`</tbody></table>`)
	})
}

// CompositionList renders the recipe's ingredients with their amounts.
func CompositionList(items []nutrition.LineItem) templ.Component {
	return Func(func(h *HTML) {
		if len(items) == 0 {
			h.Raw(`<p class="empty">등록된 원재료가 없습니다.</p>`)
			return
		}
		h.Raw(`<ul class="composition">`)
		for _, item := range items {
			if item.Ingredient == nil {
				continue
			}
			h.Printf(`<li><span class="name">%s</span> <span class="amount">%s g</span></li>`,
				item.Ingredient.DisplayName, FormatAmount(item.AmountG))
		}
		h.Raw(`</ul>`)
	})
}

// IngredientSelect renders a select of ingredients with selected preselected.
// The first option is blank so an unused row submits no ingredient.
func IngredientSelect(name string, options []models.Ingredient, selected uint) templ.Component {
	return Func(func(h *HTML) {
		h.Printf(`<select name="%s"><option value="">-- 원재료 선택 --</option>`, name)
		for _, option := range options {
			attr := ""
			if option.ID == selected {
				attr = " selected"
			}
			h.Printf(`<option value="%d"%s>%s</option>`, option.ID, attr, option.DisplayName)
		}
		h.Raw(`</select>`)
	})
}

// FormatAmount renders a gram amount without trailing zeros; zero renders empty.
func FormatAmount(value float64) string {
	if value == 0 {
		return ""
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// FormatDensity renders a nullable density, blank when undeclared.
func FormatDensity(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
