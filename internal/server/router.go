package server

import (
	"context"
	"net/http"

	"nutrilabel/internal/handlers"
	applog "nutrilabel/internal/log"
)

type route struct {
	pattern string
	handler http.Handler
	admin   bool
}

func routes(assetsDir string) []route {
	return []route{
		{pattern: "GET /healthz", handler: http.HandlerFunc(handlers.Health)},
		{pattern: "GET /{$}", handler: http.HandlerFunc(handlers.RecipeForm)},
		{pattern: "POST /recipe/save", handler: http.HandlerFunc(handlers.SaveRecipe)},
		{pattern: "POST /recipe/reset", handler: http.HandlerFunc(handlers.ResetRecipe)},
		{pattern: "GET /result", handler: http.HandlerFunc(handlers.Result)},
		{pattern: "GET /label.pdf", handler: http.HandlerFunc(handlers.LabelPDF)},
		{pattern: "/admin/login", handler: http.HandlerFunc(handlers.AdminLogin)},
		{pattern: "POST /admin/logout", handler: http.HandlerFunc(handlers.AdminLogout)},
		{pattern: "GET /admin/ingredients", handler: http.HandlerFunc(handlers.AdminIngredients), admin: true},
		{pattern: "/admin/ingredients/new", handler: http.HandlerFunc(handlers.NewIngredient), admin: true},
		{pattern: "/admin/ingredients/{id}/edit", handler: http.HandlerFunc(handlers.EditIngredient), admin: true},
		{pattern: "POST /admin/ingredients/{id}/delete", handler: http.HandlerFunc(handlers.DeleteIngredient), admin: true},
		{pattern: "/assets/", handler: http.StripPrefix("/assets/", http.FileServer(http.Dir(assetsDir)))},
	}
}

func newRouter(assetsDir string) http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	for _, rt := range routes(assetsDir) {
		handler := rt.handler
		if rt.admin {
			handler = handlers.RequireAdmin(handler)
		}
		mux.Handle(rt.pattern, handler)
		applog.Debug(context.Background(), "route registered", "pattern", rt.pattern, "protected", rt.admin)
	}
	return mux
}
