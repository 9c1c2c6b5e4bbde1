package cli

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/aisite-go/internal/typewriter"
	"github.com/spf13/cobra"
)

const ocrTick = 16 * time.Millisecond

var (
	ocrUnit   string
	ocrCycles int
	ocrSpeed  time.Duration
)

var ocrCmd = &cobra.Command{
	Use:   "ocr",
	Short: "Play the OCR scan and typewriter demo",
	Long: `Play the OCR showcase: a scan sweep over the sample document, then the
extracted paragraphs typed out one after the other, looping.

Examples:
  aisite ocr
  aisite ocr --unit word --cycles 2`,
	RunE: runOCR,
}

func init() {
	ocrCmd.Flags().StringVar(&ocrUnit, "unit", string(typewriter.UnitChar), "typing unit (char, word, sentence)")
	ocrCmd.Flags().IntVar(&ocrCycles, "cycles", 0, "stop after this many loops (0 loops until q)")
	ocrCmd.Flags().DurationVar(&ocrSpeed, "speed", typewriter.DefaultSpeed, "delay between typed units")
}

func runOCR(cmd *cobra.Command, args []string) error {
	unit := typewriter.Unit(ocrUnit)
	switch unit {
	case typewriter.UnitChar, typewriter.UnitWord, typewriter.UnitSentence:
	default:
		return fmt.Errorf("unknown unit %q (want char, word or sentence)", ocrUnit)
	}

	m := newOCRModel(typewriter.New(typewriter.SampleParagraph1, typewriter.SampleParagraph2, typewriter.Options{
		Unit:  unit,
		Speed: ocrSpeed,
	}), ocrCycles, defaultTheme)

	p := tea.NewProgram(m, tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ocr UI error: %w", err)
	}
	return nil
}

// ocrTickMsg advances the typewriter.
type ocrTickMsg time.Time

// ocrModel is the bubbletea model for the OCR demo.
type ocrModel struct {
	machine *typewriter.Machine
	cycles  int
	theme   Theme
	last    time.Time
	width   int
	done    bool
}

func newOCRModel(machine *typewriter.Machine, cycles int, theme Theme) ocrModel {
	return ocrModel{machine: machine, cycles: cycles, theme: theme, width: 80}
}

// Init starts the scan.
func (m ocrModel) Init() tea.Cmd {
	m.machine.Start()
	return ocrTickCmd()
}

// Update handles messages and returns the updated model.
func (m ocrModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.done = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case ocrTickMsg:
		now := time.Time(msg)
		elapsed := ocrTick
		if !m.last.IsZero() {
			elapsed = now.Sub(m.last)
		}
		m.last = now
		m.machine.Step(elapsed)

		if m.cycles > 0 && m.machine.Cycle() >= m.cycles {
			m.done = true
			return m, tea.Quit
		}
		return m, ocrTickCmd()
	}
	return m, nil
}

// View renders the OCR demo.
func (m ocrModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m ocrModel) renderContent() string {
	width := max(m.width-4, 20)
	var b strings.Builder

	b.WriteString(m.theme.tabStyle(true).Render("AI Optical Character Recognition"))
	b.WriteString("\n\n")
	b.WriteString(m.scanBar(width))
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().Width(width)
	for i := 0; i < 2; i++ {
		text := m.machine.Text(i)
		if m.machine.Typing(i) {
			text += "▌"
		}
		b.WriteString(body.Render(text))
		b.WriteString("\n\n")
	}

	if m.done {
		b.WriteString(m.theme.successStyle().Render("✓ Done"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(m.theme.hintStyle().Render(fmt.Sprintf("%s · loop %d · q quit", m.machine.Phase(), m.machine.Cycle()+1)))
	return b.String()
}

// scanBar draws the sweep position while scanning and a full bar after.
func (m ocrModel) scanBar(width int) string {
	filled := int(m.machine.ScanProgress() * float64(width))
	bar := strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
	return lipgloss.NewStyle().Foreground(m.theme.Accent).Render(bar)
}

func ocrTickCmd() tea.Cmd {
	return tea.Tick(ocrTick, func(t time.Time) tea.Msg {
		return ocrTickMsg(t)
	})
}
