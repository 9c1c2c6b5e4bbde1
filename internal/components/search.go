package components

import (
	"strings"

	"github.com/raphaelgruber/aisite-go/internal/models"
	"github.com/raphaelgruber/aisite-go/internal/search"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// SearchShowcase renders the product search section. The form works without
// scripts; the page script types the demo pages into it and swaps in
// SearchResults fragments from /search/suggest.
func SearchShowcase(res search.Result, pages []search.Noun) g.Node {
	names := make([]string, len(pages))
	for i, p := range pages {
		names[i] = string(p)
	}

	return Section(
		ID("search"),
		Class("section search"),
		g.Attr("data-search", ""),
		g.Attr("data-search-pages", strings.Join(names, ",")),
		Div(
			Class("section-heading"),
			P(Class("muted"), g.Text("Customers find what they mean, not just what they type")),
			H2(g.Text("Powering Search Engine")),
		),
		Form(
			Class("search-box"),
			Action("/#search"),
			Method("get"),
			Label(For("search-q"), Class("sr-only"), g.Text("Search products")),
			Div(
				Class("search-field"),
				Input(
					ID("search-q"),
					Name("q"),
					Type("search"),
					Value(res.Query),
					Placeholder("Search notebooks, tablets, smartwatches"),
					AutoComplete("off"),
					g.Attr("data-search-input", ""),
				),
				Span(Class("search-ghost"), g.Attr("aria-hidden", "true"), g.Attr("data-search-ghost", ""),
					Span(Class("search-ghost-typed"), g.Text(res.Query)),
					g.Text(res.Ghost),
				),
			),
		),
		Div(
			g.Attr("data-search-results", ""),
			g.Attr("aria-live", "polite"),
			SearchResults(res),
		),
		Ul(
			Class("search-features"),
			Li(g.Text("Understands partial words and Thai category names")),
			Li(g.Text("Suggests brands, categories and specs while typing")),
		),
	)
}

// SearchResults renders the chip rows and product row for one query. It is
// also the fragment /search/suggest returns.
func SearchResults(res search.Result) g.Node {
	return Div(
		Class("search-results"),
		g.Attr("data-noun", string(res.Noun)),
		g.Attr("data-ghost", res.Ghost),
		chipRow("Brands", g.Map(res.Brands, func(b search.BrandOption) g.Node {
			return chip("data-search-brand", b.Query, b.Brand, res.Query)
		})),
		chipRow("Categories", g.Map(res.Categories, func(o search.Option) g.Node {
			return chip("data-search-pick", o.Query, o.Label, res.Query)
		})),
		chipRow("Specs", g.Map(res.Specs, func(o search.Option) g.Node {
			return chip("data-search-pick", o.Query, o.Label, res.Query)
		})),
		g.If(!res.Matched, P(Class("muted search-fallback"), g.Text("No exact match. Popular picks:"))),
		Div(
			Class("product-row"),
			g.Map(res.Products, ProductTile),
		),
	)
}

func chipRow(label string, chips g.Group) g.Node {
	if len(chips) == 0 {
		return nil
	}
	return Div(
		Class("chip-row"),
		Span(Class("chip-row-label muted"), g.Text(label)),
		chips,
	)
}

func chip(attr, query, label, typed string) g.Node {
	return Button(
		Type("button"),
		Class("chip"),
		g.Attr(attr, query),
		Highlighted(label, typed),
	)
}

// Highlighted renders label with the part matching query wrapped in <mark>.
func Highlighted(label, query string) g.Node {
	pre, match, post, ok := search.Highlight(label, query)
	if !ok {
		return g.Text(label)
	}
	return g.Group{g.Text(pre), Mark(g.Text(match)), g.Text(post)}
}

// ProductTile renders one product of the search row.
func ProductTile(p search.Product) g.Node {
	return Div(
		Class("product-tile"),
		g.Attr("data-product", p.ID),
		g.If(p.Image != "", Img(Src(p.Image), Alt(p.Name), g.Attr("loading", "lazy"))),
		Div(Class("product-title"), g.Text(p.Name)),
		g.If(p.Price > 0, Strong(Class("product-price"), g.Text(models.FormatTHB(p.Price)))),
	)
}
