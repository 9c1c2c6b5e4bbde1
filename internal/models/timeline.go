package models

// ItemKind tags a TimelineItem variant.
type ItemKind string

const (
	KindUser      ItemKind = "user"
	KindAssistant ItemKind = "assistant"
	KindCard      ItemKind = "card"
	KindTail      ItemKind = "tail"
	KindDivider   ItemKind = "divider"
)

// TimelineItem is one discrete chat event of a flattened scenario list.
// Text is set for user, assistant and tail items. Scenario and ScenarioIndex
// are set for cards.
type TimelineItem struct {
	Kind          ItemKind  `json:"kind"`
	Key           string    `json:"key"`
	Text          string    `json:"text,omitempty"`
	ScenarioIndex int       `json:"scenarioIndex"`
	Scenario      *Scenario `json:"scenario,omitempty"`
}

// AwaitsImage reports whether the item is a chart card whose image must load
// before the view may auto-scroll to it.
func (t TimelineItem) AwaitsImage() bool {
	return t.Kind == KindCard && t.Scenario != nil && t.Scenario.AwaitsImage()
}

// WindowEntry is a timeline item placed in the visible window. InstanceKey
// disambiguates repeated passes through the looping timeline.
type WindowEntry struct {
	InstanceKey string       `json:"instanceKey"`
	Cycle       int          `json:"cycle"`
	Position    int          `json:"position"`
	Item        TimelineItem `json:"item"`
}
