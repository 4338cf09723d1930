package templates

import (
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/facility-bookings/internal/services/bookings/routepath"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// Page describes one full HTML document.
type Page struct {
	Title       string
	Lang        string
	CurrentPath string
	Languages   []string
	Body        templ.Component
}

// Layout renders the document shell with the navigation bar around page.Body.
func Layout(page Page, loc Localizer) templ.Component {
	return component(func(hw *htmlWriter) {
		lang := page.Lang
		if lang == "" {
			lang = "en-US"
		}
		title := T(loc, "app.name")
		if page.Title != "" {
			title = page.Title + " | " + title
		}
		hw.raw("<!DOCTYPE html><html")
		hw.attr("lang", lang)
		hw.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		hw.text(title)
		hw.raw(`</title><link rel="stylesheet"`)
		hw.attr("href", routepath.Static+"app.css")
		hw.raw(`><script`)
		hw.attr("src", htmxScript)
		hw.raw(` defer></script></head><body>`)
		hw.render(Navbar(page.CurrentPath, page.Languages, loc))
		hw.raw(`<main class="container">`)
		hw.render(page.Body)
		hw.raw("</main></body></html>")
	})
}

// Navbar renders the app name, the create and export links, and language links.
func Navbar(currentPath string, languages []string, loc Localizer) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<nav class="navbar"><a class="brand"`)
		hw.attr("href", routepath.AppBookings)
		hw.raw(">")
		hw.text(T(loc, "app.name"))
		hw.raw(`</a><div class="nav-links"><a class="button light"`)
		hw.attr("href", routepath.AppBookingsNew)
		hw.raw(">")
		hw.text(T(loc, "nav.create"))
		hw.raw(`</a><a class="button light"`)
		hw.attr("href", routepath.AppBookingsExport)
		hw.raw(">")
		hw.text(T(loc, "nav.export"))
		hw.raw("</a>")
		if len(languages) > 0 {
			hw.raw(`<span class="languages"`)
			hw.attr("aria-label", T(loc, "nav.language"))
			hw.raw(">")
			for _, lang := range languages {
				hw.raw("<a")
				hw.attr("href", LanguageURL(currentPath, lang))
				hw.attr("hreflang", lang)
				hw.raw(">")
				hw.text(T(loc, "lang."+lang))
				hw.raw("</a>")
			}
			hw.raw("</span>")
		}
		hw.raw("</div></nav>")
	})
}

// LanguageURL returns path with the lang query parameter set to tag.
func LanguageURL(path string, tag string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = routepath.AppBookings
	}
	return path + "?" + url.Values{"lang": []string{tag}}.Encode()
}
