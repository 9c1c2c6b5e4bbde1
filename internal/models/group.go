package models

import (
	"fmt"
	"strings"
)

// GroupKey selects which persona's scenarios the demo plays.
type GroupKey string

const (
	GroupCustomers   GroupKey = "customers"
	GroupExecutives  GroupKey = "executives"
	GroupConsultants GroupKey = "consultants"
)

// DefaultGroup is the persona shown when nothing was selected.
const DefaultGroup = GroupCustomers

// AllGroups lists persona groups in tab order.
var AllGroups = []GroupKey{GroupCustomers, GroupExecutives, GroupConsultants}

// ParseGroupKey converts user input into a GroupKey. Empty input yields DefaultGroup.
func ParseGroupKey(s string) (GroupKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultGroup, nil
	}
	for _, g := range AllGroups {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown group %q (want one of customers, executives, consultants)", s)
}

// Index returns the tab position of the group, or -1.
func (g GroupKey) Index() int {
	for i, k := range AllGroups {
		if k == g {
			return i
		}
	}
	return -1
}

// Next returns the group after g in tab order, wrapping around.
func (g GroupKey) Next() GroupKey {
	i := g.Index()
	return AllGroups[(i+1)%len(AllGroups)]
}

// Prev returns the group before g in tab order, wrapping around.
func (g GroupKey) Prev() GroupKey {
	i := g.Index()
	if i <= 0 {
		return AllGroups[len(AllGroups)-1]
	}
	return AllGroups[i-1]
}

// Group is a persona tab with its scripted scenarios.
type Group struct {
	Key       GroupKey   `yaml:"key" json:"key"`
	Label     string     `yaml:"label" json:"label"`
	Icon      string     `yaml:"icon" json:"icon"`
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}
