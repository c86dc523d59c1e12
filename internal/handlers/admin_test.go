package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestAdminRoutesRequireSession(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/admin/ingredients"},
		{http.MethodGet, "/admin/ingredients/new"},
		{http.MethodPost, "/admin/ingredients/new"},
		{http.MethodGet, "/admin/ingredients/1/edit"},
		{http.MethodPost, "/admin/ingredients/1/delete"},
	}
	for _, tt := range tests {
		var form url.Values
		if tt.method == http.MethodPost {
			form = url.Values{"name": {"x"}}
		}
		rr := h.do(tt.method, tt.target, form)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tt.method, tt.target, rr.Code)
		}
	}
}

func TestAdminSearchFiltersByDisplayName(t *testing.T) {
	h := newHarness(t)
	h.login()

	all := h.get("/admin/ingredients")
	expectStatus(t, all, http.StatusOK)
	if strings.Count(all.Body.String(), "<tr data-id=") != 5 {
		t.Fatalf("expected all seeded ingredients: %s", all.Body.String())
	}

	filtered := h.get("/admin/ingredients?q=" + url.QueryEscape("BUTTER"))
	expectStatus(t, filtered, http.StatusOK)
	body := filtered.Body.String()
	if strings.Count(body, "<tr data-id=") != 1 || !strings.Contains(body, "Unsalted Butter") {
		t.Fatalf("expected only butter in results: %s", body)
	}
}

func TestAdminSearchHTMXReturnsPartial(t *testing.T) {
	h := newHarness(t)
	h.login()

	req := h.get("/admin/ingredients")
	if !strings.Contains(req.Body.String(), "<html") {
		t.Fatal("expected full page for regular request")
	}

	// a fresh request with the HX-Request header renders only the section
	rr := h.doHTMX("/admin/ingredients?q=flour")
	expectStatus(t, rr, http.StatusOK)
	if strings.Contains(rr.Body.String(), "<html") {
		t.Fatalf("expected partial for HTMX request: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "almond flour") {
		t.Fatalf("expected search hit in partial: %s", rr.Body.String())
	}
}

func TestAdminCreateIngredient(t *testing.T) {
	h := newHarness(t)
	h.login()

	blank := h.post("/admin/ingredients/new", url.Values{"name": {"   "}, "brand": {"백설"}})
	expectStatus(t, blank, http.StatusOK)
	if !strings.Contains(blank.Body.String(), "원재료명은 필수입니다.") {
		t.Fatalf("expected required name message: %s", blank.Body.String())
	}

	rr := h.post("/admin/ingredients/new", url.Values{
		"name":          {"설탕"},
		"brand":         {"백설"},
		"base_g":        {""},
		"sugars_g_100g": {"99.9"},
		"carbs_g_100g":  {"99.9"},
	})
	expectRedirect(t, rr, "/admin/ingredients")

	id := h.ingredientID("설탕|백설")
	created, err := ingredientStore.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("load created ingredient: %v", err)
	}
	if created.BaseG != 100 {
		t.Fatalf("expected default base weight 100, got %v", created.BaseG)
	}
	if created.SugarsG100g == nil || *created.SugarsG100g != 99.9 {
		t.Fatalf("unexpected sugars density %v", created.SugarsG100g)
	}
}

func TestAdminEditIngredient(t *testing.T) {
	h := newHarness(t)
	h.login()
	id := h.ingredientID("almond flour")
	target := fmt.Sprintf("/admin/ingredients/%d/edit", id)

	form := h.get(target)
	expectStatus(t, form, http.StatusOK)
	if !strings.Contains(form.Body.String(), `value="almond flour"`) {
		t.Fatalf("expected current values in edit form: %s", form.Body.String())
	}

	blank := h.post(target, url.Values{"name": {""}})
	expectStatus(t, blank, http.StatusOK)
	if !strings.Contains(blank.Body.String(), "원재료명은 필수입니다.") {
		t.Fatalf("expected required name message: %s", blank.Body.String())
	}

	expectRedirect(t, h.post(target, url.Values{
		"name":       {"almond flour"},
		"brand":      {"Bob's"},
		"fat_g_100g": {"49.5"},
	}), "/admin/ingredients")

	updated, err := ingredientStore.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("load updated ingredient: %v", err)
	}
	if updated.DisplayName != "almond flour|Bob's" {
		t.Fatalf("unexpected display name %q", updated.DisplayName)
	}
	if updated.FatG100g == nil || *updated.FatG100g != 49.5 {
		t.Fatalf("unexpected fat density %v", updated.FatG100g)
	}
}

func TestAdminEditMissingIngredient(t *testing.T) {
	h := newHarness(t)
	h.login()

	expectStatus(t, h.get("/admin/ingredients/9999/edit"), http.StatusNotFound)
	expectStatus(t, h.post("/admin/ingredients/9999/edit", url.Values{"name": {""}}), http.StatusNotFound)
	expectStatus(t, h.get("/admin/ingredients/abc/edit"), http.StatusNotFound)
}

func TestAdminDeleteIngredient(t *testing.T) {
	h := newHarness(t)
	h.login()
	id := h.ingredientID("①이눌린")
	target := fmt.Sprintf("/admin/ingredients/%d/delete", id)

	expectRedirect(t, h.post(target, nil), "/admin/ingredients")
	expectStatus(t, h.post(target, nil), http.StatusNotFound)

	body := h.get("/admin/ingredients").Body.String()
	if strings.Contains(body, "이눌린") {
		t.Fatalf("expected deleted ingredient to disappear: %s", body)
	}
}

func TestAdminCreateRejectsDuplicateNameAndBrand(t *testing.T) {
	h := newHarness(t)
	h.login()

	form := url.Values{"name": {"소금"}, "brand": {"청정원"}, "sodium_mg_100g": {"38000"}}
	expectRedirect(t, h.post("/admin/ingredients/new", form), "/admin/ingredients")

	again := h.post("/admin/ingredients/new", form)
	expectStatus(t, again, http.StatusOK)
	if !strings.Contains(again.Body.String(), messageDuplicate) {
		t.Fatalf("expected duplicate message: %s", again.Body.String())
	}
	if !strings.Contains(again.Body.String(), `value="소금"`) {
		t.Fatalf("expected submitted values to be kept: %s", again.Body.String())
	}

	// same name under another brand is a different ingredient
	other := url.Values{"name": {"소금"}, "brand": {"샘표"}}
	expectRedirect(t, h.post("/admin/ingredients/new", other), "/admin/ingredients")
}

func TestAdminEditRejectsDuplicateNameAndBrand(t *testing.T) {
	h := newHarness(t)
	h.login()
	id := h.ingredientID("almond flour")
	target := fmt.Sprintf("/admin/ingredients/%d/edit", id)

	rr := h.post(target, url.Values{"name": {"Unsalted Butter"}, "brand": {"Elle & Vire"}})
	expectStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), messageDuplicate) {
		t.Fatalf("expected duplicate message: %s", rr.Body.String())
	}

	unchanged, err := ingredientStore.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("reload ingredient: %v", err)
	}
	if unchanged.Name != "almond flour" {
		t.Fatalf("expected ingredient to stay unchanged, got %q", unchanged.Name)
	}

	// resaving an ingredient under its own name is not a conflict
	expectRedirect(t, h.post(target, url.Values{"name": {"almond flour"}, "memo": {"blanched"}}), "/admin/ingredients")
}
