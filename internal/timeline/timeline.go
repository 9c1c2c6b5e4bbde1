// Package timeline flattens scripted scenarios into the looping event
// sequence played by the chat-sale demo.
package timeline

import (
	"fmt"
	"strconv"

	"github.com/raphaelgruber/aisite-go/internal/models"
)

// DefaultWindowCap is the number of most recent entries kept on screen.
const DefaultWindowCap = 28

// Build flattens scenarios into timeline items. Per scenario it emits the user
// messages, the assistant reply, the card, a closing-remark tail and, except
// after the last scenario, a divider. An empty list yields an empty timeline.
func Build(scenarios []models.Scenario, closingRemark string) []models.TimelineItem {
	if len(scenarios) == 0 {
		return nil
	}

	items := make([]models.TimelineItem, 0, Len(scenarios))
	for idx := range scenarios {
		sc := &scenarios[idx]
		prefix := "s" + strconv.Itoa(idx+1)

		for _, m := range sc.UserMsgs {
			items = append(items, models.TimelineItem{
				Kind:          models.KindUser,
				Key:           m.ID,
				Text:          m.Text,
				ScenarioIndex: idx,
			})
		}
		items = append(items,
			models.TimelineItem{Kind: models.KindAssistant, Key: prefix + "-a", Text: sc.AssistantText, ScenarioIndex: idx},
			models.TimelineItem{Kind: models.KindCard, Key: prefix + "-c", ScenarioIndex: idx, Scenario: sc},
			models.TimelineItem{Kind: models.KindTail, Key: prefix + "-t", Text: closingRemark, ScenarioIndex: idx},
		)
		if idx < len(scenarios)-1 {
			items = append(items, models.TimelineItem{Kind: models.KindDivider, Key: prefix + "-d", ScenarioIndex: idx})
		}
	}
	return items
}

// Len returns the length Build would produce without building it.
func Len(scenarios []models.Scenario) int {
	if len(scenarios) == 0 {
		return 0
	}
	n := len(scenarios) - 1
	for _, sc := range scenarios {
		n += len(sc.UserMsgs) + 3
	}
	return n
}

// Window returns the most recent min(seq, windowCap) positions of the
// infinitely repeating timeline, oldest first.
func Window(items []models.TimelineItem, seq, windowCap int) []models.WindowEntry {
	l := len(items)
	if l == 0 || seq < 1 || windowCap < 1 {
		return nil
	}

	count := min(seq, windowCap)
	out := make([]models.WindowEntry, 0, count)
	for i := count; i >= 1; i-- {
		global := seq - i
		cycle := global / l
		pos := global % l
		base := items[pos]
		out = append(out, models.WindowEntry{
			InstanceKey: InstanceKey(base.Key, cycle),
			Cycle:       cycle,
			Position:    pos,
			Item:        base,
		})
	}
	return out
}

// InstanceKey identifies one pass of a timeline item.
func InstanceKey(key string, cycle int) string {
	return fmt.Sprintf("%s#%d", key, cycle)
}
