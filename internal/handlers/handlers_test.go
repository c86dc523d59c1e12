package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/ledongthuc/pdf"
	"golang.org/x/crypto/bcrypt"

	"nutrilabel/internal/db/mock"
	"nutrilabel/internal/label"
)

const testAdminPassword = "s3cret-admin"

// harness drives the handlers through a session-aware mux and carries cookies
// between requests like a browser would.
type harness struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := mock.New(context.Background())
	if err != nil {
		t.Fatalf("mock database: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash admin password: %v", err)
	}

	sm := scs.New()
	fonts := label.NewFontLoader(filepath.Join(t.TempDir(), "missing.ttf"))
	Configure(sm, db, Settings{Renderer: label.NewRenderer(fonts), AdminPasswordHash: hash})

	prevNow := nowFunc
	nowFunc = func() time.Time { return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) }
	t.Cleanup(func() {
		nowFunc = prevNow
		Configure(nil, nil, Settings{})
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return &harness{t: t, handler: sm.LoadAndSave(testRouter()), cookies: map[string]*http.Cookie{}}
}

func testRouter() http.Handler {
	admin := func(h http.HandlerFunc) http.Handler { return RequireAdmin(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", RecipeForm)
	mux.HandleFunc("POST /recipe/save", SaveRecipe)
	mux.HandleFunc("POST /recipe/reset", ResetRecipe)
	mux.HandleFunc("GET /result", Result)
	mux.HandleFunc("GET /label.pdf", LabelPDF)
	mux.HandleFunc("/admin/login", AdminLogin)
	mux.HandleFunc("POST /admin/logout", AdminLogout)
	mux.Handle("GET /admin/ingredients", admin(AdminIngredients))
	mux.Handle("/admin/ingredients/new", admin(NewIngredient))
	mux.Handle("/admin/ingredients/{id}/edit", admin(EditIngredient))
	mux.Handle("POST /admin/ingredients/{id}/delete", admin(DeleteIngredient))
	mux.HandleFunc("GET /healthz", Health)
	return mux
}

func (h *harness) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	h.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return h.send(req)
}

func (h *harness) doHTMX(target string) *httptest.ResponseRecorder {
	h.t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("HX-Request", "true")
	return h.send(req)
}

func (h *harness) send(req *http.Request) *httptest.ResponseRecorder {
	h.t.Helper()
	for _, cookie := range h.cookies {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	for _, cookie := range rr.Result().Cookies() {
		h.cookies[cookie.Name] = cookie
	}
	return rr
}

func (h *harness) get(target string) *httptest.ResponseRecorder {
	h.t.Helper()
	return h.do(http.MethodGet, target, nil)
}

func (h *harness) post(target string, form url.Values) *httptest.ResponseRecorder {
	h.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	return h.do(http.MethodPost, target, form)
}

func (h *harness) login() {
	h.t.Helper()
	rr := h.post("/admin/login", url.Values{"password": {testAdminPassword}})
	if rr.Code != http.StatusSeeOther {
		h.t.Fatalf("expected admin login redirect, got %d: %s", rr.Code, rr.Body.String())
	}
}

// ingredientID looks up a seeded ingredient by exact display name.
func (h *harness) ingredientID(displayName string) uint {
	h.t.Helper()
	items, err := ingredientStore.Search(context.Background(), displayName)
	if err != nil {
		h.t.Fatalf("search ingredients: %v", err)
	}
	for _, item := range items {
		if item.DisplayName == displayName {
			return item.ID
		}
	}
	h.t.Fatalf("ingredient %q not seeded", displayName)
	return 0
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rr.Code, rr.Body.String())
	}
}

func expectRedirect(t *testing.T, rr *httptest.ResponseRecorder, location string) {
	t.Helper()
	expectStatus(t, rr, http.StatusSeeOther)
	if got := rr.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

func pdfText(t *testing.T, data []byte) (int, string) {
	t.Helper()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("parse pdf: %v", err)
	}
	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			t.Fatalf("extract page %d text: %v", i, err)
		}
		text.WriteString(content)
	}
	return reader.NumPage(), text.String()
}
