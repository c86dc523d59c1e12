package handlers

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"nutrilabel/internal/ingredients"
	"nutrilabel/internal/label"
	applog "nutrilabel/internal/log"
	"nutrilabel/internal/views/pages"
)

const (
	sessionAdminKey = "admin:authenticated"

	messageInvalidPassword = "비밀번호가 올바르지 않습니다."
	messageAdminRequired   = "관리자 로그인이 필요합니다."
)

var (
	sessionManager    *scs.SessionManager
	database          *gorm.DB
	ingredientStore   *ingredients.Store
	labelRenderer     *label.Renderer
	adminPasswordHash []byte
)

// Settings carries the handler dependencies that are not part of the request
// pipeline itself.
type Settings struct {
	Renderer *label.Renderer
	// AdminPasswordHash is a bcrypt hash. When empty, admin login always fails.
	AdminPasswordHash []byte
}

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, db *gorm.DB, settings Settings) {
	sessionManager = sm
	database = db
	ingredientStore = ingredients.NewStore(db)
	labelRenderer = settings.Renderer
	adminPasswordHash = settings.AdminPasswordHash
}

// AdminPasswordHash resolves the configured admin credential to a bcrypt hash.
// An explicit hash wins over a plain password; with neither it returns nil.
func AdminPasswordHash(plain, hash string) ([]byte, error) {
	if hash != "" {
		return []byte(hash), nil
	}
	if plain == "" {
		return nil, nil
	}
	return bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
}

func verifyAdminPassword(password string) bool {
	if len(adminPasswordHash) == 0 || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(adminPasswordHash, []byte(password)) == nil
}

// AdminSession reports whether the request carries an authenticated admin session.
func AdminSession(r *http.Request) bool {
	if sessionManager == nil {
		return false
	}
	return sessionManager.GetBool(r.Context(), sessionAdminKey)
}

// RequireAdmin rejects requests without an admin session with 401.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !AdminSession(r) {
			applog.Debug(r.Context(), "admin route requested without admin session", "path", r.URL.Path)
			http.Error(w, messageAdminRequired, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminLogin renders the admin sign-in form and processes submissions.
func AdminLogin(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling admin login request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if AdminSession(r) {
			redirect(w, r, "/admin/ingredients")
			return
		}
		render(w, r, pages.AdminLogin(""), pages.AdminLoginPartial(""))
	case http.MethodPost:
		if sessionManager == nil {
			http.Error(w, "authentication not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse admin login form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}

		if !verifyAdminPassword(r.PostFormValue("password")) {
			applog.Info(r.Context(), "admin login rejected", "configured", len(adminPasswordHash) > 0)
			render(w, r, pages.AdminLogin(messageInvalidPassword), pages.AdminLoginPartial(messageInvalidPassword))
			return
		}

		if err := sessionManager.RenewToken(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to renew session token", "error", err)
			http.Error(w, "unable to sign in", http.StatusInternalServerError)
			return
		}
		sessionManager.Put(r.Context(), sessionAdminKey, true)
		applog.Info(r.Context(), "admin signed in")
		redirect(w, r, "/admin/ingredients")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// AdminLogout clears the admin flag and returns to the recipe form. The recipe
// draft stays in the session.
func AdminLogout(w http.ResponseWriter, r *http.Request) {
	if sessionManager != nil {
		sessionManager.Remove(r.Context(), sessionAdminKey)
	}
	redirect(w, r, "/")
}
