// Package components renders the landing page with gomponents.
package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// PageConfig holds the document title and meta description.
type PageConfig struct {
	Title       string
	Description string
}

// Layout wraps content in the HTML document shell.
func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = "Codelabs AI Solutions"
	}
	if config.Description == "" {
		config.Description = "AI innovation at the core. Chat sales assistants, OCR and analytics built for your business."
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),
				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),
				Link(Rel("stylesheet"), Href("/static/styles.css")),
			),
			Body(
				Class("site"),
				g.Group(content),
				Script(Type("module"), Src("/static/js/chat.js")),
				Script(Type("module"), Src("/static/js/search.js")),
			),
		),
	})
}
