package components

import (
	"fmt"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// PageFooter renders the link columns and copyright line.
func PageFooter(c SiteContent) g.Node {
	return Footer(
		Class("footer"),
		Div(
			Class("footer-columns"),
			g.Map(c.Footer, func(col FooterColumn) g.Node {
				return Div(
					H4(g.Text(col.Title)),
					Ul(g.Map(col.Links, func(l NavItem) g.Node {
						return Li(A(Href(l.Href), g.Text(l.Name)))
					})),
				)
			}),
		),
		Div(
			Class("footer-bottom"),
			P(g.Text(fmt.Sprintf("© %d %s. All rights reserved.", time.Now().Year(), c.Brand))),
			Ul(Class("inline-list"), g.Map(c.LegalLinks, func(l NavItem) g.Node {
				return Li(A(Href(l.Href), g.Text(l.Name)))
			})),
			Ul(Class("inline-list"), g.Map(c.Socials, func(l NavItem) g.Node {
				return Li(A(Href(l.Href), g.Attr("aria-label", l.Name), g.Text(l.Name)))
			})),
		),
	)
}
