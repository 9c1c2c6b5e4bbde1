package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/raphaelgruber/aisite-go/internal/models"
	"github.com/raphaelgruber/aisite-go/internal/search"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var searchQueryFlag string

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Play the product search demo",
	Long: `Play the search showcase: the category names are typed into the search
box one character at a time while brand, category and spec suggestions and
the product row follow along. Typing takes over; the demo resumes once the
box has been empty for a few seconds.

Keys:
  type to search      backspace  delete
  tab / shift+tab     select a suggestion
  enter               apply it   esc  clear
  ctrl+c              quit

With --query, or when output is not a terminal, the results of one query
are printed as tables.

Examples:
  aisite search
  aisite search --query "Notebook dell"`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchQueryFlag, "query", "q", "", "print the results for this query and exit")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cat, err := search.Default()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("query") || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printSearch(cmd.OutOrStdout(), cat.Search(searchQueryFlag))
	}

	demo := search.NewDemo(cat)
	defer demo.Stop()

	p := tea.NewProgram(newSearchModel(demo, defaultTheme), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("search UI error: %w", err)
	}
	return nil
}

func printSearch(w io.Writer, res search.Result) error {
	table := tablewriter.NewWriter(w)
	table.Header("Product", "Brand", "Price")
	for _, p := range res.Products {
		if err := table.Append(p.Name, p.Brand, models.FormatTHB(p.Price)); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	brands := make([]string, len(res.Brands))
	for i, b := range res.Brands {
		brands[i] = b.Brand
	}
	match := "matched"
	if !res.Matched {
		match = "no exact match, popular picks"
	}
	_, err := fmt.Fprintf(w, "%s: %s\nbrands: %s\ncategories: %s\nspecs: %s\n",
		res.Noun, match,
		strings.Join(brands, ", "),
		strings.Join(optionLabels(res.Categories), ", "),
		strings.Join(optionLabels(res.Specs), ", "))
	return err
}

func optionLabels(opts []search.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Label
	}
	return out
}

// searchStateMsg carries a frame from the demo.
type searchStateMsg search.State

// searchClosedMsg reports that the demo was stopped.
type searchClosedMsg struct{}

// suggestion is one selectable chip.
type suggestion struct {
	label string
	query string
	brand bool
}

// searchModel is the bubbletea model for the search demo.
type searchModel struct {
	demo     *search.Demo
	updates  <-chan search.State
	state    search.State
	focus    int
	theme    Theme
	width    int
	quitting bool
}

func newSearchModel(demo *search.Demo, theme Theme) searchModel {
	return searchModel{
		demo:    demo,
		updates: demo.Updates(),
		state:   demo.State(),
		focus:   -1,
		theme:   theme,
		width:   80,
	}
}

// Init starts typing.
func (m searchModel) Init() tea.Cmd {
	m.demo.Start()
	return waitForSearch(m.updates)
}

// Update handles messages and returns the updated model.
func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case searchStateMsg:
		m.state = search.State(msg)
		m.focus = min(m.focus, len(m.suggestions())-1)
		return m, waitForSearch(m.updates)

	case searchClosedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m searchModel) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	chips := m.suggestions()
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.demo.Input("")
		m.focus = -1
	case "backspace":
		r := []rune(m.state.Text)
		if len(r) > 0 {
			m.demo.Input(string(r[:len(r)-1]))
		}
	case "tab":
		if len(chips) > 0 {
			m.focus = (m.focus + 1) % len(chips)
		}
	case "shift+tab":
		if len(chips) > 0 {
			m.focus = max(m.focus, 0)
			m.focus = (m.focus - 1 + len(chips)) % len(chips)
		}
	case "enter":
		if m.focus < 0 || m.focus >= len(chips) {
			break
		}
		c := chips[m.focus]
		if c.brand {
			m.demo.PickBrand(c.query)
		} else {
			m.demo.Pick(c.query)
		}
		m.focus = -1
	default:
		if msg.Text == "" {
			return m, nil
		}
		m.demo.Input(m.state.Text + msg.Text)
	}
	m.state = m.demo.State()
	return m, nil
}

// suggestions lists the chips in display order: brands, categories, specs.
func (m searchModel) suggestions() []suggestion {
	res := m.state.Result
	out := make([]suggestion, 0, len(res.Brands)+len(res.Categories)+len(res.Specs))
	for _, b := range res.Brands {
		out = append(out, suggestion{label: b.Brand, query: b.Query, brand: true})
	}
	for _, o := range res.Categories {
		out = append(out, suggestion{label: o.Label, query: o.Query})
	}
	for _, o := range res.Specs {
		out = append(out, suggestion{label: o.Label, query: o.Query})
	}
	return out
}

// View renders the search demo.
func (m searchModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	v := tea.NewView(m.renderContent())
	v.AltScreen = true
	return v
}

func (m searchModel) renderContent() string {
	var b strings.Builder
	res := m.state.Result

	b.WriteString(m.theme.tabStyle(true).Render("Powering Search Engine"))
	b.WriteString("\n\n")

	b.WriteString(m.theme.userStyle().Render("> " + m.state.Text))
	b.WriteString("▌")
	b.WriteString(m.theme.hintStyle().Render(res.Ghost))
	b.WriteString("\n\n")

	chips := m.suggestions()
	rows := []struct {
		label string
		n     int
	}{{"Brands", len(res.Brands)}, {"Categories", len(res.Categories)}, {"Specs", len(res.Specs)}}
	i := 0
	for _, row := range rows {
		if row.n == 0 {
			continue
		}
		parts := make([]string, row.n)
		for j := range parts {
			parts[j] = m.theme.tabStyle(i == m.focus).Render(chips[i].label)
			i++
		}
		b.WriteString(lipgloss.NewStyle().Width(12).Render(row.label))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if !res.Matched {
		b.WriteString(m.theme.hintStyle().Render("No exact match. Popular picks:"))
		b.WriteString("\n")
	}
	nameWidth := max(m.width-16, 20)
	for _, p := range res.Products {
		b.WriteString(m.theme.assistantStyle().Render(truncate(p.Name, nameWidth)))
		b.WriteString("  ")
		b.WriteString(models.FormatTHB(p.Price))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	status := "demo"
	if m.state.Interacting {
		status = "paused"
	}
	b.WriteString(m.theme.hintStyle().Render(status + " · tab select · enter apply · esc clear · ctrl+c quit"))
	return b.String()
}

// waitForSearch blocks on the demo updates in a command goroutine.
func waitForSearch(ch <-chan search.State) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return searchClosedMsg{}
		}
		return searchStateMsg(st)
	}
}
