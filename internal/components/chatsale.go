package components

import (
	"fmt"

	"github.com/raphaelgruber/aisite-go/internal/chat"
	"github.com/raphaelgruber/aisite-go/internal/models"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ChatSale renders the chat-sale showcase: persona tabs and the transcript
// viewport seeded with a first snapshot. The page script takes over from
// there through the websocket stream.
func ChatSale(groups []models.Group, snap chat.Snapshot) g.Node {
	return Section(
		ID("chat-sale"),
		Class("section chat-sale"),
		Div(
			Class("section-heading"),
			P(Class("muted"), g.Text("Sell around the clock")),
			H2(g.Text("Chat sale by AI")),
		),
		GroupTabs(groups, snap.Group),
		Div(
			Class("card-outer"),
			Div(
				ID("panel-"+string(snap.Group)),
				Class("chat-viewport"),
				g.Attr("role", "tabpanel"),
				g.Attr("data-chat", ""),
				g.Attr("data-group", string(snap.Group)),
				Div(
					Class("chat-content"),
					g.Attr("data-chat-content", ""),
					Style(fmt.Sprintf("transform: translateY(%.0fpx)", snap.Offset)),
					g.Map(snap.Entries, ChatEntry),
				),
				JumpToLatest(snap.ShowJumpToLatest),
			),
		),
	)
}

// GroupTabs renders the persona tab strip. Tabs are links so the section
// also switches groups without scripts.
func GroupTabs(groups []models.Group, active models.GroupKey) g.Node {
	return Div(
		Class("group-tabs"),
		g.Attr("role", "tablist"),
		g.Attr("aria-label", "Chat groups"),
		g.Map(groups, func(gr models.Group) g.Node {
			selected := gr.Key == active
			return A(
				Href("/?group="+string(gr.Key)+"#chat-sale"),
				Class(tabClass(selected)),
				g.Attr("role", "tab"),
				g.Attr("aria-selected", fmt.Sprint(selected)),
				g.Attr("aria-controls", "panel-"+string(gr.Key)),
				g.Attr("data-group-tab", string(gr.Key)),
				Title(gr.Label),
				Span(Class("icon icon-"+gr.Icon), g.Attr("aria-hidden", "true")),
				Span(g.Text(gr.Label)),
			)
		}),
	)
}

func tabClass(active bool) string {
	if active {
		return "tab active"
	}
	return "tab"
}

// JumpToLatest renders the button that returns the transcript to the newest entry.
func JumpToLatest(show bool) g.Node {
	return Button(
		Type("button"),
		Class("jump-latest"),
		g.Attr("data-jump-latest", ""),
		g.Attr("aria-label", "Scroll to latest"),
		g.If(!show, g.Attr("hidden", "")),
		g.Text("↓ Latest"),
	)
}

// ChatEntry renders one transcript entry. Entries that are not revealed yet
// show typing dots in place of their content.
func ChatEntry(e chat.Entry) g.Node {
	item := e.Item
	key := g.Attr("data-key", e.InstanceKey)
	state := g.Attr("data-revealed", fmt.Sprint(e.Revealed))

	switch item.Kind {
	case models.KindUser, models.KindTail:
		return Div(
			Class("msg msg-user"),
			key, state,
			Avatar("You", "/static/images/user.png"),
			Div(Class("bubble bubble-user"), revealed(e, P(g.Text(item.Text)))),
		)
	case models.KindAssistant:
		return Div(
			Class("msg msg-assistant"),
			key, state,
			Div(Class("bubble bubble-assistant"), revealed(e, P(g.Text(item.Text)))),
			Avatar("AI", "/static/images/starai.png"),
		)
	case models.KindCard:
		return Div(
			Class("msg msg-assistant"),
			key, state,
			Div(Class("card"), revealed(e, Card(e.InstanceKey, item.Scenario))),
			Avatar("AI", "/static/images/starai.png"),
		)
	default:
		return Div(
			Class("divider"),
			key, state,
			Span(Class("divider-line")),
			Span(Class("divider-label"), g.Text("Next")),
			Span(Class("divider-line")),
		)
	}
}

func revealed(e chat.Entry, content g.Node) g.Node {
	if e.Revealed {
		return content
	}
	return TypingDots()
}

// TypingDots is the placeholder shown while an entry is being "typed".
func TypingDots() g.Node {
	return Span(
		Class("typing"),
		g.Attr("role", "status"),
		g.Attr("aria-label", "Typing…"),
		Span(Class("dot")), Span(Class("dot")), Span(Class("dot")),
	)
}

// Avatar renders a speaker picture with its name.
func Avatar(name, src string) g.Node {
	return Div(
		Class("avatar"),
		Img(Src(src), Alt(name), Width("32"), Height("32")),
		Span(Class("avatar-name"), g.Text(name)),
	)
}

// Card renders a scenario's content card in its presentation style.
func Card(instanceKey string, sc *models.Scenario) g.Node {
	if sc == nil {
		return nil
	}
	switch sc.CardStyle() {
	case models.CardCarousel:
		return Div(
			Class("product-strip"),
			g.Map(sc.Products, ProductMiniCard),
		)
	case models.CardChart:
		return Figure(
			Class("chart-card"),
			Img(
				Src(sc.Product.Image),
				Alt(altText(sc.Product.Title, "chart")),
				g.Attr("loading", "lazy"),
				g.Attr("data-image-key", instanceKey),
			),
			g.If(sc.Product.Title != "", FigCaption(g.Text(sc.Product.Title))),
		)
	default:
		return SummaryTable(sc.Product)
	}
}

// ProductMiniCard renders one product of a carousel card. Missing prices and
// stock are left out.
func ProductMiniCard(p models.ProductInfo) g.Node {
	return Div(
		Class("product-mini"),
		g.If(p.Image != "", Img(Src(p.Image), Alt(p.Title), g.Attr("loading", "lazy"))),
		Div(Class("product-title"), g.Text(p.Title)),
		g.If(p.Category != "", Div(Class("muted"), g.Text(p.Category))),
		g.If(len(p.Specs) > 0, Ul(Class("specs"), g.Map(p.Specs, func(s string) g.Node { return Li(g.Text(s)) }))),
		Div(
			Class("product-price"),
			g.If(p.OriginalPrice != nil, Del(g.Text(formatPrice(p.OriginalPrice)))),
			g.If(p.Price != nil, Strong(g.Text(formatPrice(p.Price)))),
		),
		g.If(p.Stock != nil, Div(Class("muted"), g.Text(fmt.Sprintf("%d in stock", deref(p.Stock))))),
	)
}

// SummaryTable renders a product's spec lines as a one-column table.
func SummaryTable(p models.ProductInfo) g.Node {
	rows := p.Specs
	return Table(
		Class("summary-table"),
		Caption(g.Text(altText(p.Title, "Summary"))),
		g.If(len(rows) > 0, TBody(g.Map(rows, func(r string) g.Node {
			return Tr(Td(g.Text(r)))
		}))),
	)
}

func formatPrice(v *int) string {
	return models.FormatTHB(deref(v))
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func altText(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
