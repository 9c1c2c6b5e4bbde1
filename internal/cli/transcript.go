package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/aisite-go/internal/chat"
	"github.com/raphaelgruber/aisite-go/internal/models"
)

// entryText is the unstyled text of an entry, used by plain output.
func entryText(e chat.Entry) string {
	item := e.Item
	switch item.Kind {
	case models.KindUser, models.KindTail:
		return "You: " + item.Text
	case models.KindAssistant:
		return "AI:  " + item.Text
	case models.KindCard:
		return "AI:  " + strings.ReplaceAll(cardText(item.Scenario, false), "\n", "\n     ")
	default:
		return "----- Next -----"
	}
}

// cardText describes a scenario card in text. Carousels list their products,
// charts show their title and tables their rows.
func cardText(sc *models.Scenario, pendingImage bool) string {
	if sc == nil {
		return ""
	}
	var b strings.Builder
	switch sc.CardStyle() {
	case models.CardCarousel:
		for i, p := range sc.Products {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString("• " + p.Title)
			if p.Price != nil {
				b.WriteString("  " + models.FormatTHB(*p.Price))
			}
			if p.OriginalPrice != nil {
				b.WriteString(fmt.Sprintf(" (was %s)", models.FormatTHB(*p.OriginalPrice)))
			}
		}
	case models.CardChart:
		b.WriteString("[chart] " + sc.Product.Title)
		if pendingImage {
			b.WriteString("\nloading…")
		}
	default:
		b.WriteString(sc.Product.Title)
		for _, row := range sc.Product.Specs {
			b.WriteString("\n  " + row)
		}
	}
	return b.String()
}

// entryLines renders an entry into styled terminal lines no wider than width.
// Entries that are not revealed yet show the typing indicator.
func entryLines(e chat.Entry, width int, theme Theme, typing string, pendingImage string) []string {
	if width < 20 {
		width = 20
	}
	bubble := width * 3 / 4
	item := e.Item

	var out string
	switch item.Kind {
	case models.KindUser, models.KindTail:
		text := typing
		if e.Revealed {
			text = item.Text
		}
		out = theme.userStyle().Width(bubble).Render("You  " + text)
	case models.KindAssistant:
		text := typing
		if e.Revealed {
			text = item.Text
		}
		out = lipgloss.PlaceHorizontal(width, lipgloss.Right,
			theme.assistantStyle().Width(bubble).Align(lipgloss.Right).Render(text+"  AI"))
	case models.KindCard:
		text := typing
		if e.Revealed {
			text = cardText(item.Scenario, pendingImage == e.InstanceKey)
		}
		out = lipgloss.PlaceHorizontal(width, lipgloss.Right,
			theme.cardStyle().Width(bubble).Render(text))
	default:
		label := " Next "
		side := (width - len(label)) / 2
		if side < 1 {
			side = 1
		}
		out = theme.hintStyle().Render(strings.Repeat("─", side) + label + strings.Repeat("─", side))
	}
	return strings.Split(out, "\n")
}

// transcriptLines renders all entries with a blank line between them.
func transcriptLines(snap chat.Snapshot, width int, theme Theme, typing string) []string {
	var lines []string
	for i, e := range snap.Entries {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, entryLines(e, width, theme, typing, snap.PendingImage)...)
	}
	return lines
}
