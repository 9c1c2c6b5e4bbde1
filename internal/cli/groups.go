package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/raphaelgruber/aisite-go/internal/models"
	"github.com/raphaelgruber/aisite-go/internal/timeline"
	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List the persona groups and their scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, _, err := loadTimelines()
		if err != nil {
			return err
		}
		return printGroups(cmd.OutOrStdout(), cat.Groups())
	},
}

var (
	timelineGroup string
	timelineLimit int
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the flattened timeline of a group",
	Long: `Show the timeline the chat demo loops over: every scenario's messages,
its card and closing remark, with a divider between scenarios.

Examples:
  aisite timeline --group executives
  aisite timeline --group customers --limit 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		group, err := models.ParseGroupKey(timelineGroup)
		if err != nil {
			return err
		}
		_, cache, err := loadTimelines()
		if err != nil {
			return err
		}
		items, err := cache.Get(group)
		if err != nil {
			return err
		}
		return printTimeline(cmd.OutOrStdout(), items, timelineLimit)
	},
}

func init() {
	timelineCmd.Flags().StringVarP(&timelineGroup, "group", "g", "", "persona group (customers, executives, consultants)")
	timelineCmd.Flags().IntVarP(&timelineLimit, "limit", "n", 0, "show at most this many items (0 shows all)")
}

func printGroups(w io.Writer, groups []models.Group) error {
	table := tablewriter.NewWriter(w)
	table.Header("Key", "Label", "Scenarios", "Cards")

	for _, g := range groups {
		styles := make([]string, len(g.Scenarios))
		for i, sc := range g.Scenarios {
			styles[i] = string(sc.CardStyle())
		}
		if err := table.Append(string(g.Key), g.Label, fmt.Sprint(len(g.Scenarios)), strings.Join(styles, ", ")); err != nil {
			return err
		}
	}
	return table.Render()
}

func printTimeline(w io.Writer, items []models.TimelineItem, limit int) error {
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Key", "Kind", "Content")
	for i, it := range items[:limit] {
		if err := table.Append(fmt.Sprint(i), it.Key, string(it.Kind), itemSummary(it)); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d items, window cap %d\n", limit, len(items), timeline.DefaultWindowCap)
	return err
}

func itemSummary(it models.TimelineItem) string {
	switch it.Kind {
	case models.KindCard:
		if it.Scenario == nil {
			return ""
		}
		return fmt.Sprintf("[%s] %s", it.Scenario.CardStyle(), it.Scenario.Product.Title)
	case models.KindDivider:
		return "Next"
	default:
		return truncate(it.Text, 60)
	}
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
