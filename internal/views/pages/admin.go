package pages

import (
	"strconv"

	"github.com/a-h/templ"

	"nutrilabel/internal/ingredients"
	"nutrilabel/internal/views/components"
	"nutrilabel/internal/views/layout"
	"nutrilabel/models"
)

// AdminLogin renders the full admin sign-in page.
func AdminLogin(message string) templ.Component {
	return layout.Layout("관리자 로그인", layout.Nav{Active: "admin"}, AdminLoginPartial(message))
}

// AdminLoginPartial renders the sign-in form.
func AdminLoginPartial(message string) templ.Component {
	return components.Func(func(h *components.HTML) {
		h.Raw(`<section class="admin-login"><h1>관리자 로그인</h1>`)
		h.Component(components.Flash("error", message))
		h.Raw(`<form method="post" action="/admin/login">`)
		h.Raw(`<label>비밀번호 <input type="password" name="password" autocomplete="current-password" required></label>`)
		h.Raw(`<button type="submit">로그인</button></form></section>`)
	})
}

// AdminIngredientsData feeds the ingredient listing.
type AdminIngredientsData struct {
	Query       string
	Ingredients []models.Ingredient
}

// AdminIngredients renders the full ingredient listing page.
func AdminIngredients(data AdminIngredientsData) templ.Component {
	return layout.Layout("원재료 관리", layout.Nav{Active: "admin", Admin: true}, AdminIngredientsPartial(data))
}

// AdminIngredientsPartial renders the search form and result table.
func AdminIngredientsPartial(data AdminIngredientsData) templ.Component {
	return components.Func(func(h *components.HTML) {
		h.Raw(`<section class="admin-ingredients"><h1>원재료 관리</h1>`)
		h.Printf(`<form method="get" action="/admin/ingredients" class="search"><input type="search" name="q" value="%s" placeholder="원재료 검색" hx-get="/admin/ingredients" hx-trigger="keyup changed delay:300ms" hx-target="#content">`, data.Query)
		h.Raw(`<button type="submit">검색</button></form>`)
		h.Raw(`<p><a class="button" href="/admin/ingredients/new">원재료 추가</a></p>`)

		if len(data.Ingredients) == 0 {
			h.Raw(`<p class="empty">검색 결과가 없습니다.</p></section>`)
			return
		}

		h.Raw(`<table class="ingredients"><thead><tr><th>원재료명</th>`)
		for _, field := range ingredients.Fields() {
			h.Printf(`<th>%s</th>`, field.Label)
		}
		h.Raw(`<th></th></tr></thead><tbody>`)
		for _, ing := range data.Ingredients {
			in := ingredients.InputFrom(&ing)
			h.Printf(`<tr data-id="%d"><td>%s</td>`, ing.ID, ing.DisplayName)
			for _, field := range ingredients.Fields() {
				h.Printf(`<td class="num">%s</td>`, strconv.FormatFloat(field.Value(in), 'f', -1, 64))
			}
			h.Printf(`<td><a href="/admin/ingredients/%d/edit">수정</a> `, ing.ID)
			h.Printf(`<form method="post" action="/admin/ingredients/%d/delete" class="inline" onsubmit="return confirm('삭제하시겠습니까?')"><button type="submit" class="danger">삭제</button></form></td></tr>`, ing.ID)
		}
		h.Raw(`</tbody></table></section>`)
	})
}

// IngredientFormData feeds the create and edit form. ID is zero when creating.
type IngredientFormData struct {
	ID    uint
	Input ingredients.Input
	Error string
}

func (d IngredientFormData) action() string {
	if d.ID == 0 {
		return "/admin/ingredients/new"
	}
	return "/admin/ingredients/" + strconv.FormatUint(uint64(d.ID), 10) + "/edit"
}

func (d IngredientFormData) title() string {
	if d.ID == 0 {
		return "원재료 추가"
	}
	return "원재료 수정"
}

// IngredientForm renders the full create or edit page.
func IngredientForm(data IngredientFormData) templ.Component {
	return layout.Layout(data.title(), layout.Nav{Active: "admin", Admin: true}, IngredientFormPartial(data))
}

// IngredientFormPartial renders the create or edit form.
func IngredientFormPartial(data IngredientFormData) templ.Component {
	return components.Func(func(h *components.HTML) {
		h.Printf(`<section class="ingredient-form"><h1>%s</h1>`, data.title())
		h.Component(components.Flash("error", data.Error))
		h.Printf(`<form method="post" action="%s">`, data.action())
		h.Printf(`<label>원재료명 <input type="text" name="name" value="%s" required></label>`, data.Input.Name)
		h.Printf(`<label>브랜드/제조사 <input type="text" name="brand" value="%s"></label>`, data.Input.Brand)
		for _, field := range ingredients.Fields() {
			value := field.Value(data.Input)
			unit := string(field.Unit) + "/100g"
			if field.Name == "base_g" {
				unit = string(field.Unit)
				if value == 0 {
					value = 100
				}
			}
			h.Printf(`<label>%s (%s) <input type="number" step="any" min="0" name="%s" value="%s"></label>`,
				field.Label, unit, field.Name, strconv.FormatFloat(value, 'f', -1, 64))
		}
		h.Printf(`<label>메모 <textarea name="memo">%s</textarea></label>`, data.Input.Memo)
		h.Raw(`<div class="actions"><button type="submit">저장</button> <a href="/admin/ingredients">취소</a></div></form></section>`)
	})
}
