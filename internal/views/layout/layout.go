// Package layout renders the document shell shared by every page.
package layout

import (
	"github.com/a-h/templ"

	"nutrilabel/internal/views/components"
)

// AppName is shown in the header and appended to every page title.
const AppName = "영양성분 계산기"

// Nav describes the header links.
type Nav struct {
	Active string
	Admin  bool
}

type navLink struct {
	Section string
	Label   string
	Path    string
}

var links = []navLink{
	{Section: "recipe", Label: "레시피 입력", Path: "/"},
	{Section: "result", Label: "결과", Path: "/result"},
	{Section: "admin", Label: "원재료 관리", Path: "/admin/ingredients"},
}

// Title composes the document title for a page.
func Title(page string) string {
	if page == "" {
		return AppName
	}
	return page + " - " + AppName
}

// Layout wraps content in the HTML document shell.
func Layout(title string, nav Nav, content templ.Component) templ.Component {
	return components.Func(func(h *components.HTML) {
		h.Raw(`<!DOCTYPE html><html lang="ko"><head><meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Printf(`<title>%s</title>`, Title(title))
		h.Raw(`<link rel="stylesheet" href="/assets/css/app.css">`)
		h.Raw(`<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>`)
		h.Raw(`</head><body><header class="app-header">`)
		h.Printf(`<a class="brand" href="/">%s</a><nav>`, AppName)
		for _, link := range links {
			h.Printf(`<a href="%s" data-state="%s">%s</a>`, link.Path, linkState(link.Section, nav.Active), link.Label)
		}
		if nav.Admin {
			h.Raw(`<form method="post" action="/admin/logout" class="inline"><button type="submit">로그아웃</button></form>`)
		}
		h.Raw(`</nav></header><main id="content">`)
		h.Component(content)
		h.Raw(`</main></body></html>`)
	})
}

func linkState(section, active string) string {
	if section == active {
		return "active"
	}
	return "inactive"
}
