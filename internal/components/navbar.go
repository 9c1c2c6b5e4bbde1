package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Navbar renders the top bar with the products and resources dropdowns.
// Dropdowns are <details> elements so they work without scripts.
func Navbar(c SiteContent) g.Node {
	return Header(
		Class("navbar"),
		Nav(
			Class("navbar-inner"),
			g.Attr("aria-label", "Main"),
			A(Href("/"), Class("brand"), g.Text(c.Brand)),
			Ul(
				Class("navbar-menu"),
				Li(productsDropdown(c.Products)),
				Li(resourcesDropdown(c.Resources)),
			),
			A(Href("#contact"), Class("btn btn-primary"), g.Text(c.CTA)),
		),
	)
}

func productsDropdown(categories []ProductCategory) g.Node {
	return Details(
		Class("dropdown"),
		Summary(g.Text("Product")),
		Div(
			Class("dropdown-panel dropdown-products"),
			g.Map(categories, func(cat ProductCategory) g.Node {
				return Div(
					Class("dropdown-category"),
					H3(g.Text(cat.Name)),
					P(Class("muted"), g.Text(cat.Description)),
					Ul(g.Map(cat.Items, func(it NavItem) g.Node {
						return Li(A(
							Href(it.Href),
							Strong(g.Text(it.Name)),
							g.If(it.Description != "", Span(Class("muted"), g.Text(it.Description))),
						))
					})),
				)
			}),
		),
	)
}

func resourcesDropdown(items []NavItem) g.Node {
	return Details(
		Class("dropdown"),
		Summary(g.Text("Resources")),
		Ul(
			Class("dropdown-panel"),
			g.Map(items, func(it NavItem) g.Node {
				return Li(A(Href(it.Href), g.Text(it.Name)))
			}),
		),
	)
}
