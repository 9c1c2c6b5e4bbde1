package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Hero renders the headline section.
func Hero(c SiteContent) g.Node {
	return Section(
		Class("hero"),
		H1(
			Span(Class("block"), Span(Class("gradient-text"), g.Text("AI Innovation")), g.Text(" at the core.")),
			Span(Class("block"), g.Text("Turning "), Span(Class("gradient-text"), g.Text("Data → Insight")), g.Text(", instantly.")),
		),
		H2(Class("hero-subtitle"), g.Text(c.Subtitle)),
		Div(
			Class("hero-lines muted"),
			g.Map(c.HeroLines, func(line string) g.Node { return P(g.Text(line)) }),
		),
	)
}
