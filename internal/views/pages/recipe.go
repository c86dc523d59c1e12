// Package pages renders the application's full pages and their HTMX partials.
package pages

import (
	"strconv"

	"github.com/a-h/templ"

	"nutrilabel/internal/nutrition"
	"nutrilabel/internal/recipe"
	"nutrilabel/internal/views/components"
	"nutrilabel/internal/views/layout"
	"nutrilabel/models"
)

// MinRecipeRows is the number of ingredient rows the recipe form always offers.
const MinRecipeRows = 10

// RecipeData feeds the recipe form.
type RecipeData struct {
	Draft       recipe.Draft
	Ingredients []models.Ingredient
	Admin       bool
}

// Recipe renders the full recipe form page.
func Recipe(data RecipeData) templ.Component {
	return layout.Layout("레시피 입력", layout.Nav{Active: "recipe", Admin: data.Admin}, RecipePartial(data))
}

// RecipePartial renders the recipe form without the document shell.
func RecipePartial(data RecipeData) templ.Component {
	return components.Func(func(h *components.HTML) {
		h.Raw(`<section class="recipe"><h1>레시피 입력</h1>`)
		h.Raw(`<form method="post" action="/recipe/save" class="recipe-form">`)
		h.Printf(`<label>레시피명 <input type="text" name="recipe_name" value="%s"></label>`, data.Draft.Name)
		h.Printf(`<label>1개 무게 (g) <input type="number" step="any" min="0" name="unit_weight_g" value="%s"></label>`,
			components.FormatAmount(data.Draft.UnitWeightG))

		h.Raw(`<table class="recipe-items"><thead><tr><th>원재료</th><th>사용량 (g)</th></tr></thead><tbody>`)
		for _, item := range recipeRows(data.Draft) {
			h.Raw(`<tr><td>`)
			h.Component(components.IngredientSelect("ingredient_id", data.Ingredients, item.IngredientID))
			h.Printf(`</td><td><input type="number" step="any" min="0" name="amount_g" value="%s"></td></tr>`,
				components.FormatAmount(item.AmountG))
		}
		h.Raw(`</tbody></table>`)

		h.Raw(`<div class="actions"><button type="submit">계산하기</button></div></form>`)
		h.Raw(`<form method="post" action="/recipe/reset" class="inline"><button type="submit" class="secondary">초기화</button></form>`)
		h.Raw(`</section>`)
	})
}

func recipeRows(draft recipe.Draft) []recipe.Item {
	rows := make([]recipe.Item, 0, max(len(draft.Items), MinRecipeRows))
	rows = append(rows, draft.Items...)
	for len(rows) < MinRecipeRows {
		rows = append(rows, recipe.Item{})
	}
	return rows
}

// ResultData feeds the result page.
type ResultData struct {
	Draft  recipe.Draft
	Items  []nutrition.LineItem
	Totals nutrition.Totals
	Admin  bool
}

// Result renders the full result page.
func Result(data ResultData) templ.Component {
	return layout.Layout("결과", layout.Nav{Active: "result", Admin: data.Admin}, ResultPartial(data))
}

// ResultPartial renders the nutrition facts and composition without the document shell.
func ResultPartial(data ResultData) templ.Component {
	return components.Func(func(h *components.HTML) {
		name := data.Draft.Name
		if name == "" {
			name = "레시피"
		}
		h.Printf(`<section class="result"><h1>%s</h1>`, name)
		h.Printf(`<p class="meta">1개 무게: %s g</p>`, strconv.FormatFloat(data.Draft.UnitWeightG, 'f', 1, 64))
		h.Component(components.NutritionTable(data.Totals))
		h.Raw(`<h2>레시피 구성</h2>`)
		h.Component(components.CompositionList(data.Items))
		h.Raw(`<div class="actions"><a class="button" href="/label.pdf">PDF 라벨 다운로드</a> <a href="/">레시피 수정</a></div>`)
		h.Raw(`</section>`)
	})
}
