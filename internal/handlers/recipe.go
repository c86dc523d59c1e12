package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"nutrilabel/internal/ingredients"
	"nutrilabel/internal/label"
	applog "nutrilabel/internal/log"
	"nutrilabel/internal/nutrition"
	"nutrilabel/internal/recipe"
	"nutrilabel/internal/views/pages"
)

var nowFunc = time.Now

// RecipeForm renders the recipe composer with the current draft.
func RecipeForm(w http.ResponseWriter, r *http.Request) {
	list, err := ingredientStore.List(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "failed to list ingredients")
		return
	}

	data := pages.RecipeData{
		Draft:       recipe.Load(r.Context(), sessionManager),
		Ingredients: list,
		Admin:       AdminSession(r),
	}
	render(w, r, pages.Recipe(data), pages.RecipePartial(data))
}

// SaveRecipe stores the submitted recipe as the session draft.
func SaveRecipe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	draft, err := recipe.ParseForm(r.PostForm)
	if err != nil {
		applog.Debug(r.Context(), "rejected recipe submission", "error", err)
		http.Error(w, "ingredient_id and amount_g length mismatch", http.StatusBadRequest)
		return
	}

	recipe.Save(r.Context(), sessionManager, draft)
	applog.Debug(r.Context(), "recipe draft saved", "items", len(draft.Items), "unitWeightG", draft.UnitWeightG)
	redirect(w, r, "/result")
}

// ResetRecipe drops the session draft.
func ResetRecipe(w http.ResponseWriter, r *http.Request) {
	recipe.Reset(r.Context(), sessionManager)
	redirect(w, r, "/")
}

// Result renders the nutrition facts of the session draft.
func Result(w http.ResponseWriter, r *http.Request) {
	draft, items, err := hydrateDraft(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "failed to load recipe ingredients")
		return
	}

	data := pages.ResultData{
		Draft:  draft,
		Items:  items,
		Totals: nutrition.Aggregate(items, draft.UnitWeightG),
		Admin:  AdminSession(r),
	}
	render(w, r, pages.Result(data), pages.ResultPartial(data))
}

// LabelPDF streams the nutrition label of the session draft as a PDF attachment.
func LabelPDF(w http.ResponseWriter, r *http.Request) {
	if labelRenderer == nil {
		http.Error(w, "label rendering is not available", http.StatusServiceUnavailable)
		return
	}

	draft, items, err := hydrateDraft(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "failed to load recipe ingredients")
		return
	}

	now := nowFunc()
	doc := label.Document{
		RecipeName:  draft.Name,
		UnitWeightG: draft.UnitWeightG,
		Totals:      nutrition.Aggregate(items, draft.UnitWeightG),
		Items:       items,
		GeneratedAt: now,
	}
	data, err := labelRenderer.Render(doc)
	if err != nil {
		applog.Error(r.Context(), "failed to render nutrition label", "error", err)
		http.Error(w, "We were unable to generate the label. Please try again.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", label.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", label.Filename(now)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		applog.Warn(r.Context(), "failed to write label response", "error", err)
	}
}

func hydrateDraft(ctx context.Context) (recipe.Draft, []nutrition.LineItem, error) {
	draft := recipe.Load(ctx, sessionManager)
	byID, err := ingredientStore.ByIDs(ctx, draft.IDs())
	if err != nil {
		return draft, nil, err
	}
	return draft, recipe.Hydrate(draft, byID), nil
}

func writeStoreError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, ingredients.ErrInvalidDB):
		http.Error(w, "The ingredient database is not configured.", http.StatusServiceUnavailable)
	case errors.Is(err, ingredients.ErrNotFound):
		http.Error(w, "원재료를 찾을 수 없습니다.", http.StatusNotFound)
	default:
		applog.Error(r.Context(), msg, "error", err)
		http.Error(w, "We were unable to complete the request. Please try again.", http.StatusInternalServerError)
	}
}
