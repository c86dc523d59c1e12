package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"nutrilabel/internal/ingredients"
	"nutrilabel/internal/nutrition"
	"nutrilabel/internal/recipe"
	"nutrilabel/models"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render page: %v", err)
	}
	return buf.String()
}

func ingredient(id uint, name string) models.Ingredient {
	ing := models.Ingredient{DisplayName: name, Name: name, BaseG: 100}
	ing.ID = id
	return ing
}

func TestRecipeFormPadsRows(t *testing.T) {
	data := RecipeData{
		Draft: recipe.Draft{
			Name:        "머핀",
			UnitWeightG: 55,
			Items:       []recipe.Item{{IngredientID: 2, AmountG: 120}},
		},
		Ingredients: []models.Ingredient{ingredient(1, "밀가루"), ingredient(2, "설탕")},
	}

	out := render(t, Recipe(data))
	if got := strings.Count(out, `name="amount_g"`); got != MinRecipeRows {
		t.Fatalf("expected %d amount inputs, got %d", MinRecipeRows, got)
	}
	if !strings.Contains(out, `value="머핀"`) || !strings.Contains(out, `value="55"`) {
		t.Fatalf("expected draft metadata in form: %s", out)
	}
	if !strings.Contains(out, `<option value="2" selected>설탕</option>`) {
		t.Fatalf("expected stored ingredient to be selected: %s", out)
	}
	if !strings.Contains(out, `value="120"`) {
		t.Fatalf("expected stored amount: %s", out)
	}
}

func TestRecipeRowsKeepsLongDrafts(t *testing.T) {
	items := make([]recipe.Item, MinRecipeRows+3)
	if got := len(recipeRows(recipe.Draft{Items: items})); got != MinRecipeRows+3 {
		t.Fatalf("expected %d rows, got %d", MinRecipeRows+3, got)
	}
}

func TestResultShowsTotalsAndComposition(t *testing.T) {
	flour := ingredient(1, "밀가루|곰표")
	flour.CarbsG100g = models.Float(50)
	flour.FiberG100g = models.Float(5)
	flour.ProteinG100g = models.Float(10)
	flour.FatG100g = models.Float(2)
	flour.SodiumMg100g = models.Float(200)
	items := []nutrition.LineItem{{Ingredient: &flour, AmountG: 200}}

	out := render(t, Result(ResultData{
		Draft:  recipe.Draft{UnitWeightG: 100},
		Items:  items,
		Totals: nutrition.Aggregate(items, 100),
	}))
	for _, token := range []string{"<h1>레시피</h1>", "1개 무게: 100.0 g", "496 kcal", "밀가루|곰표", "200 g", "/label.pdf"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected %q in result page: %s", token, out)
		}
	}
}

func TestAdminLoginShowsMessage(t *testing.T) {
	out := render(t, AdminLoginPartial("비밀번호가 올바르지 않습니다."))
	if !strings.Contains(out, "비밀번호가 올바르지 않습니다.") {
		t.Fatalf("expected error message: %s", out)
	}
	if strings.Contains(out, "<html") {
		t.Fatalf("expected partial without document shell: %s", out)
	}
}

func TestAdminIngredientsListsRows(t *testing.T) {
	out := render(t, AdminIngredients(AdminIngredientsData{
		Query:       "밀",
		Ingredients: []models.Ingredient{ingredient(7, "밀가루")},
	}))
	for _, token := range []string{`value="밀"`, `/admin/ingredients/7/edit`, `/admin/ingredients/7/delete`, "밀가루", "/admin/logout"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected %q in listing: %s", token, out)
		}
	}

	empty := render(t, AdminIngredientsPartial(AdminIngredientsData{Query: "없음"}))
	if !strings.Contains(empty, "검색 결과가 없습니다.") {
		t.Fatalf("expected empty state: %s", empty)
	}
}

func TestIngredientFormTargets(t *testing.T) {
	create := render(t, IngredientFormPartial(IngredientFormData{Error: "원재료명은 필수입니다."}))
	if !strings.Contains(create, `action="/admin/ingredients/new"`) {
		t.Fatalf("expected create action: %s", create)
	}
	if !strings.Contains(create, `name="base_g" value="100"`) {
		t.Fatalf("expected default base weight: %s", create)
	}
	if !strings.Contains(create, "원재료명은 필수입니다.") {
		t.Fatalf("expected validation message: %s", create)
	}

	edit := render(t, IngredientFormPartial(IngredientFormData{
		ID:    3,
		Input: ingredients.Input{Name: "버터", Brand: "앵커", BaseG: 100, FatG100g: 82},
	}))
	for _, token := range []string{`action="/admin/ingredients/3/edit"`, `value="버터"`, `value="앵커"`, `name="fat_g_100g" value="82"`} {
		if !strings.Contains(edit, token) {
			t.Fatalf("expected %q in edit form: %s", token, edit)
		}
	}
}
