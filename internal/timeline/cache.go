package timeline

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/raphaelgruber/aisite-go/internal/models"
)

// Source provides the scenarios of a persona group.
type Source interface {
	Scenarios(key models.GroupKey) ([]models.Scenario, error)
	ClosingRemark() string
}

// Cache memoizes built timelines per group so repeated selections of the same
// group return the same slice.
type Cache struct {
	source Source
	built  *lru.Cache[models.GroupKey, []models.TimelineItem]
}

// NewCache creates a cache holding up to size timelines.
func NewCache(source Source, size int) (*Cache, error) {
	if size <= 0 {
		size = len(models.AllGroups)
	}
	built, err := lru.New[models.GroupKey, []models.TimelineItem](size)
	if err != nil {
		return nil, fmt.Errorf("create timeline cache: %w", err)
	}
	return &Cache{source: source, built: built}, nil
}

// Get returns the timeline of a group, building it on first use.
func (c *Cache) Get(key models.GroupKey) ([]models.TimelineItem, error) {
	if items, ok := c.built.Get(key); ok {
		return items, nil
	}

	scenarios, err := c.source.Scenarios(key)
	if err != nil {
		return nil, err
	}
	items := Build(scenarios, c.source.ClosingRemark())
	c.built.Add(key, items)
	return items, nil
}
