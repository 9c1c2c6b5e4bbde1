package components

import (
	"strings"
	"testing"

	"github.com/raphaelgruber/aisite-go/internal/chat"
	"github.com/raphaelgruber/aisite-go/internal/client"
	"github.com/raphaelgruber/aisite-go/internal/models"
	"github.com/raphaelgruber/aisite-go/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func intp(v int) *int { return &v }

func TestChatEntry_PlaceholderUntilRevealed(t *testing.T) {
	e := chat.Entry{WindowEntry: models.WindowEntry{
		InstanceKey: "c1-u1#0",
		Item:        models.TimelineItem{Kind: models.KindUser, Key: "c1-u1", Text: "Hello there"},
	}}

	html := render(t, ChatEntry(e))
	assert.Contains(t, html, `data-key="c1-u1#0"`)
	assert.Contains(t, html, `class="typing"`)
	assert.NotContains(t, html, "Hello there")

	e.Revealed = true
	html = render(t, ChatEntry(e))
	assert.Contains(t, html, "Hello there")
	assert.Contains(t, html, `data-revealed="true"`)
}

func TestCard_Styles(t *testing.T) {
	carousel := &models.Scenario{
		Product:  models.ProductInfo{Image: "/x.png", Title: "Single"},
		Products: []models.ProductInfo{{Title: "Pods Lite", Price: intp(4990), OriginalPrice: intp(5990)}},
	}
	chart := &models.Scenario{Product: models.ProductInfo{Image: "/images/chart1.png", Title: "Client Retention"}}
	table := &models.Scenario{Product: models.ProductInfo{Title: "Executive Summary Table"}}

	tests := []struct {
		name    string
		sc      *models.Scenario
		want    []string
		notWant []string
	}{
		{"products win over product", carousel, []string{"product-strip", "Pods Lite", "฿4,990", "<del>฿5,990</del>"}, []string{"Single"}},
		{"chart waits on image", chart, []string{"chart-card", `data-image-key="s1-c#2"`, "Client Retention"}, nil},
		{"table without image", table, []string{"summary-table", "Executive Summary Table"}, []string{"<img"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := render(t, Card("s1-c#2", tt.sc))
			for _, w := range tt.want {
				assert.Contains(t, html, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, html, w)
			}
		})
	}
}

func TestGroupTabs_MarksActive(t *testing.T) {
	groups := []models.Group{
		{Key: models.GroupCustomers, Label: "For Customers", Icon: "user-round"},
		{Key: models.GroupExecutives, Label: "For Executives", Icon: "briefcase"},
	}
	html := render(t, GroupTabs(groups, models.GroupExecutives))
	assert.Contains(t, html, `class="tab active" role="tab" aria-selected="true" aria-controls="panel-executives"`)
	assert.Contains(t, html, `aria-selected="false" aria-controls="panel-customers"`)
}

func TestContactForm_KeepsValuesAndNotice(t *testing.T) {
	lead := client.Lead{Name: "Dana", Service: client.ServiceSupport, FormType: client.ModeAppointment}
	html := render(t, ContactForm(lead, &Notice{Kind: NoticeWarning, Title: "Missing required field", Message: "email"}))

	assert.Contains(t, html, `role="alert"`)
	assert.Contains(t, html, "notice-warning")
	assert.Contains(t, html, `value="Dana"`)
	assert.Contains(t, html, `<option value="support" selected>`)
	assert.Contains(t, html, `value="appointment" checked`)
}

func TestContactForm_WithoutNotice(t *testing.T) {
	var html string
	require.NotPanics(t, func() {
		html = render(t, ContactForm(client.Lead{}, nil))
	})

	assert.Contains(t, html, `id="contact"`)
	assert.NotContains(t, html, `role="alert"`)
	assert.Contains(t, html, `value="message" checked`)
}

func TestLandingPage(t *testing.T) {
	html := render(t, LandingPage(LandingData{
		Content: DefaultContent,
		Groups:  []models.Group{{Key: models.GroupCustomers, Label: "For Customers"}},
		Chat:    chat.Snapshot{Group: models.GroupCustomers},
	}))

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	for _, id := range []string{`id="chat-sale"`, `id="ocr"`, `id="contact"`, "Product", "Resources", "Case Studies"} {
		assert.Contains(t, html, id)
	}
	assert.NotContains(t, html, `role="alert"`)
}

func TestSearchShowcase(t *testing.T) {
	cat, err := search.Default()
	require.NoError(t, err)

	tests := []struct {
		name    string
		query   string
		want    []string
		notWant []string
	}{
		{
			name:    "empty query",
			query:   "",
			want:    []string{`id="search"`, `data-search-pages="Notebook,Tablet,Smartwatch"`, `data-search-brand="asus"`, `data-product="p-asus-zenbook-14"`, "฿32,900"},
			notWant: []string{"<mark>", "No exact match"},
		},
		{
			name:  "typed category",
			query: "Note",
			want:  []string{`value="Note"`, "book</span>", "<mark>Note</mark>book CPU Intel"},
		},
		{
			name:  "no match falls back",
			query: "zzz",
			want:  []string{"No exact match", `data-product="p-asus-zenbook-14"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := render(t, SearchShowcase(cat.Search(tt.query), cat.Pages()))
			for _, w := range tt.want {
				assert.Contains(t, html, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, html, w)
			}
		})
	}
}

func TestLandingPage_OmitsSearchWithoutPages(t *testing.T) {
	html := render(t, LandingPage(LandingData{Content: DefaultContent}))
	assert.NotContains(t, html, `id="search"`)
}
