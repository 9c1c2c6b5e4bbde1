package components

import (
	"github.com/raphaelgruber/aisite-go/internal/chat"
	"github.com/raphaelgruber/aisite-go/internal/client"
	"github.com/raphaelgruber/aisite-go/internal/models"
	"github.com/raphaelgruber/aisite-go/internal/search"
	"github.com/raphaelgruber/aisite-go/internal/typewriter"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// LandingData is everything the landing page needs.
type LandingData struct {
	Content SiteContent
	Groups  []models.Group
	Chat    chat.Snapshot
	Lead    client.Lead
	Notice  *Notice

	// Search is the first frame of the search section. The section is left
	// out when SearchPages is empty.
	Search      search.Result
	SearchPages []search.Noun
}

// LandingPage renders the full home page.
func LandingPage(d LandingData) g.Node {
	return Layout(
		PageConfig{},
		Navbar(d.Content),
		Main(
			Hero(d.Content),
			ChatSale(d.Groups, d.Chat),
			OCRShowcase(typewriter.SampleParagraph1, typewriter.SampleParagraph2),
			g.Iff(len(d.SearchPages) > 0, func() g.Node { return SearchShowcase(d.Search, d.SearchPages) }),
			ContactForm(d.Lead, d.Notice),
		),
		PageFooter(d.Content),
	)
}
