package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"nutrilabel/internal/ingredients"
	applog "nutrilabel/internal/log"
	"nutrilabel/internal/views/pages"
)

const (
	messageNameRequired = "원재료명은 필수입니다."
	messageDuplicate    = "같은 원재료명과 브랜드가 이미 등록되어 있습니다."
)

// formError returns the message shown on the ingredient form for validation
// failures, or "" when err is not one.
func formError(err error) string {
	switch {
	case errors.Is(err, ingredients.ErrNameRequired):
		return messageNameRequired
	case errors.Is(err, ingredients.ErrDuplicate):
		return messageDuplicate
	default:
		return ""
	}
}

// AdminIngredients lists ingredients whose display name contains ?q=.
func AdminIngredients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	list, err := ingredientStore.Search(r.Context(), query)
	if err != nil {
		writeStoreError(w, r, err, "failed to search ingredients")
		return
	}

	data := pages.AdminIngredientsData{Query: query, Ingredients: list}
	render(w, r, pages.AdminIngredients(data), pages.AdminIngredientsPartial(data))
}

// NewIngredient renders the create form and stores submissions.
func NewIngredient(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		renderIngredientForm(w, r, pages.IngredientFormData{})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		in := ingredients.ParseForm(r.PostForm)
		created, err := ingredientStore.Create(r.Context(), in)
		if message := formError(err); message != "" {
			renderIngredientForm(w, r, pages.IngredientFormData{Input: in, Error: message})
			return
		}
		if err != nil {
			writeStoreError(w, r, err, "failed to create ingredient")
			return
		}
		applog.Info(r.Context(), "ingredient created", "id", created.ID, "displayName", created.DisplayName)
		redirect(w, r, "/admin/ingredients")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// EditIngredient renders the edit form and stores submissions.
func EditIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := ingredientID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	existing, err := ingredientStore.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, "failed to load ingredient")
		return
	}

	if r.Method != http.MethodPost {
		renderIngredientForm(w, r, pages.IngredientFormData{ID: id, Input: ingredients.InputFrom(existing)})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	in := ingredients.ParseForm(r.PostForm)
	updated, err := ingredientStore.Update(r.Context(), id, in)
	if message := formError(err); message != "" {
		renderIngredientForm(w, r, pages.IngredientFormData{ID: id, Input: in, Error: message})
		return
	}
	if err != nil {
		writeStoreError(w, r, err, "failed to update ingredient")
		return
	}
	applog.Info(r.Context(), "ingredient updated", "id", updated.ID, "displayName", updated.DisplayName)
	redirect(w, r, "/admin/ingredients")
}

// DeleteIngredient removes an ingredient.
func DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := ingredientID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := ingredientStore.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err, "failed to delete ingredient")
		return
	}
	applog.Info(r.Context(), "ingredient deleted", "id", id)
	redirect(w, r, "/admin/ingredients")
}

func renderIngredientForm(w http.ResponseWriter, r *http.Request, data pages.IngredientFormData) {
	render(w, r, pages.IngredientForm(data), pages.IngredientFormPartial(data))
}

func ingredientID(r *http.Request) (uint, bool) {
	value, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}
