package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/aisite-go/internal/chat"
	"github.com/raphaelgruber/aisite-go/internal/config"
	"github.com/raphaelgruber/aisite-go/internal/models"
	"github.com/raphaelgruber/aisite-go/internal/scroll"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	frameRate = 60
	// imageLoadDelay stands in for the time a browser needs to load a chart.
	imageLoadDelay = 250 * time.Millisecond
	scrollStep     = 3
	headerLines    = 2
	footerLines    = 1
)

var (
	demoGroup    string
	demoPlain    bool
	demoDuration time.Duration
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Play the chat-sale demo",
	Long: `Play the scripted chat-sale conversations in the terminal.

Keys:
  tab / →    next group         shift+tab / ←  previous group
  j / k      scroll             G / end        jump to latest
  q          quit

Output that is not a terminal, or --plain, prints revealed messages as text.

Examples:
  aisite demo
  aisite demo --group executives
  aisite demo --plain --duration 30s`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringVarP(&demoGroup, "group", "g", "", "persona group (customers, executives, consultants)")
	demoCmd.Flags().BoolVar(&demoPlain, "plain", false, "print messages as plain text")
	demoCmd.Flags().DurationVar(&demoDuration, "duration", 0, "stop after this long (0 runs until interrupted)")
}

func runDemo(cmd *cobra.Command, args []string) error {
	groupArg := demoGroup
	if groupArg == "" {
		groupArg = cfg.DefaultGroup
	}
	group, err := models.ParseGroupKey(groupArg)
	if err != nil {
		return err
	}

	cat, cache, err := loadTimelines()
	if err != nil {
		return err
	}

	// The screen belongs to the demo, so logs only go to the file.
	logger, closeLog := config.SetupFileLogger(cfg.LogFile, cfg.LogLevel)
	defer func() { _ = closeLog() }()

	view := chat.NewView(cache, cfg.ChatConfig(logger))
	if err := view.Mount(group); err != nil {
		return err
	}
	defer view.Unmount()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if demoDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, demoDuration)
		defer cancel()
	}

	if demoPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return playPlain(ctx, view, cmd.OutOrStdout())
	}

	p := tea.NewProgram(newDemoModel(view, cat.Groups(), defaultTheme), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("demo UI error: %w", err)
	}
	return nil
}

// playPlain prints each entry once it is revealed, until ctx ends. Charts
// count as loaded right away since there is nothing to load.
func playPlain(ctx context.Context, view *chat.View, out io.Writer) error {
	snaps, cancel := view.Subscribe()
	defer cancel()

	printed := make(map[string]bool)
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-snaps:
			if !ok {
				return nil
			}
			if snap.PendingImage != "" {
				_ = view.ImageLoaded(snap.PendingImage)
			}

			live := make(map[string]bool, len(snap.Entries))
			for _, e := range snap.Entries {
				live[e.InstanceKey] = true
				if e.Revealed && !printed[e.InstanceKey] {
					printed[e.InstanceKey] = true
					if _, err := fmt.Fprintln(out, entryText(e)); err != nil {
						return err
					}
				}
			}
			for k := range printed {
				if !live[k] {
					delete(printed, k)
				}
			}
		}
	}
}

// snapshotMsg carries a snapshot from the view subscription.
type snapshotMsg chat.Snapshot

// streamClosedMsg reports that the view was unmounted.
type streamClosedMsg struct{}

// frameMsg drives the scroll animation.
type frameMsg time.Time

// imageLoadedMsg reports that the simulated chart load finished.
type imageLoadedMsg struct{ key string }

// demoModel is the bubbletea model for the chat-sale demo.
type demoModel struct {
	view     *chat.View
	snaps    <-chan chat.Snapshot
	groups   []models.Group
	snap     chat.Snapshot
	lines    []string
	smoother *scroll.Smoother
	spinner  spinner.Model
	theme    Theme

	width, height int
	animating     bool
	loading       string
	quitting      bool
}

// newDemoModel subscribes to a mounted view.
func newDemoModel(view *chat.View, groups []models.Group, theme Theme) demoModel {
	snaps, _ := view.Subscribe()
	return demoModel{
		view:     view,
		snaps:    snaps,
		groups:   groups,
		snap:     view.Snapshot(),
		smoother: scroll.NewSmoother(frameRate),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Ellipsis)),
		theme:    theme,
		width:    80,
	}
}

// Init returns the initial commands.
func (m demoModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForSnapshot(m.snaps))
}

// Update handles messages and returns the updated model.
func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseWheelMsg:
		switch msg.Mouse().Button {
		case tea.MouseWheelUp:
			_ = m.view.Wheel(-scrollStep)
		case tea.MouseWheelDown:
			_ = m.view.Wheel(scrollStep)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.relayout()
		cmd := m.animate()
		return m, cmd

	case snapshotMsg:
		next := chat.Snapshot(msg)
		if next.Group != m.snap.Group {
			m.smoother.Jump(next.Offset)
		}
		m.snap = next
		m.relayout()
		cmd := tea.Batch(waitForSnapshot(m.snaps), m.animate(), m.loadImage())
		return m, cmd

	case streamClosedMsg:
		return m, tea.Quit

	case frameMsg:
		m.animating = false
		m.smoother.Step(m.snap.Offset)
		cmd := m.animate()
		return m, cmd

	case imageLoadedMsg:
		if msg.key == m.snap.PendingImage {
			_ = m.view.ImageLoaded(msg.key)
		}
		m.loading = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.relayout()
		return m, cmd
	}

	return m, nil
}

func (m demoModel) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab", "right", "l":
		_ = m.view.SelectGroup(m.snap.Group.Next())
	case "shift+tab", "left", "h":
		_ = m.view.SelectGroup(m.snap.Group.Prev())
	case "k", "up":
		_ = m.view.Wheel(-scrollStep)
	case "j", "down":
		_ = m.view.Wheel(scrollStep)
	case "pgup":
		_ = m.view.Wheel(-float64(max(scrollStep, m.viewportHeight()/2)))
	case "pgdown":
		_ = m.view.Wheel(float64(max(scrollStep, m.viewportHeight()/2)))
	case "g", "G", "end":
		_ = m.view.ScrollToLatest()
	}
	return m, nil
}

// relayout re-renders the transcript and reports the new layout to the view.
// A changed layout comes back as a fresh snapshot.
func (m *demoModel) relayout() {
	m.lines = transcriptLines(m.snap, m.width, m.theme, m.spinner.View())
	if vh := m.viewportHeight(); vh > 0 {
		_ = m.view.Measure(float64(vh), float64(len(m.lines)))
	}
}

func (m *demoModel) animate() tea.Cmd {
	if m.animating || m.smoother.Settled(m.snap.Offset) {
		return nil
	}
	m.animating = true
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// loadImage schedules the simulated load of a pending chart.
func (m *demoModel) loadImage() tea.Cmd {
	key := m.snap.PendingImage
	if key == "" || key == m.loading {
		return nil
	}
	m.loading = key
	return tea.Tick(imageLoadDelay, func(time.Time) tea.Msg {
		return imageLoadedMsg{key: key}
	})
}

func (m demoModel) viewportHeight() int {
	return m.height - headerLines - footerLines
}

// View renders the demo.
func (m demoModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	v := tea.NewView(m.renderContent())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// renderContent builds the display string.
func (m demoModel) renderContent() string {
	var b strings.Builder

	tabs := make([]string, len(m.groups))
	for i, g := range m.groups {
		tabs[i] = m.theme.tabStyle(g.Key == m.snap.Group).Render(g.Label)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	vh := m.viewportHeight()
	if vh < 1 {
		vh = 1
	}
	top := int(math.Round(-m.smoother.Position()))
	top = min(max(top, 0), max(len(m.lines)-vh, 0))
	for i := 0; i < vh; i++ {
		if n := top + i; n < len(m.lines) {
			b.WriteString(m.lines[n])
		}
		b.WriteByte('\n')
	}

	hint := "tab switch group · j/k scroll · G latest · q quit"
	if m.snap.ShowJumpToLatest {
		hint = "↓ newer messages (G) · " + hint
	}
	b.WriteString(m.theme.hintStyle().Render(hint))
	return b.String()
}

// waitForSnapshot blocks on the subscription in a command goroutine.
func waitForSnapshot(ch <-chan chat.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return snapshotMsg(snap)
	}
}
