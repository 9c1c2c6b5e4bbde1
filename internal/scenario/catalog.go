// Package scenario loads the scripted conversations played by the chat-sale demo.
package scenario

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/raphaelgruber/aisite-go/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/scenarios.yaml
var embeddedCatalog []byte

// ErrUnknownGroup is returned when a group key has no scenarios in the catalog.
var ErrUnknownGroup = errors.New("unknown scenario group")

// ErrEmptyGroup is returned by Parse for a group without scenarios.
var ErrEmptyGroup = errors.New("scenario group has no scenarios")

// DefaultClosingRemark is used when the catalog does not set one.
const DefaultClosingRemark = "Awesome, thanks! That's exactly what I needed 🙌"

// Catalog is an immutable set of persona groups.
type Catalog struct {
	closingRemark string
	groups        []models.Group
	byKey         map[models.GroupKey]int
}

type catalogFile struct {
	ClosingRemark string         `yaml:"closing_remark"`
	Groups        []models.Group `yaml:"groups"`
}

// Parse decodes a YAML catalog and validates it.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		closingRemark: f.ClosingRemark,
		groups:        f.Groups,
		byKey:         make(map[models.GroupKey]int, len(f.Groups)),
	}
	if c.closingRemark == "" {
		c.closingRemark = DefaultClosingRemark
	}

	for i, g := range f.Groups {
		if g.Key.Index() < 0 {
			return nil, fmt.Errorf("group %d: %w: %q", i, ErrUnknownGroup, g.Key)
		}
		if _, dup := c.byKey[g.Key]; dup {
			return nil, fmt.Errorf("group %q declared twice", g.Key)
		}
		if len(g.Scenarios) == 0 {
			return nil, fmt.Errorf("group %q: %w", g.Key, ErrEmptyGroup)
		}
		for j, sc := range g.Scenarios {
			for _, m := range sc.UserMsgs {
				if m.ID == "" {
					return nil, fmt.Errorf("group %q scenario %d: user message without id", g.Key, j)
				}
			}
		}
		c.byKey[g.Key] = i
	}

	return c, nil
}

// Load reads a catalog from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(embeddedCatalog)
	})
	return defaultCatalog, defaultErr
}

// Open returns the catalog at path, or the embedded one when path is empty.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Groups returns the persona groups in tab order.
func (c *Catalog) Groups() []models.Group {
	out := make([]models.Group, len(c.groups))
	copy(out, c.groups)
	return out
}

// Group returns the persona group for key.
func (c *Catalog) Group(key models.GroupKey) (models.Group, error) {
	i, ok := c.byKey[key]
	if !ok {
		return models.Group{}, fmt.Errorf("%w: %q", ErrUnknownGroup, key)
	}
	return c.groups[i], nil
}

// Scenarios returns the scripted scenarios of a group. The slice is shared and
// must not be modified.
func (c *Catalog) Scenarios(key models.GroupKey) ([]models.Scenario, error) {
	g, err := c.Group(key)
	if err != nil {
		return nil, err
	}
	return g.Scenarios, nil
}

// ClosingRemark is the text of the synthetic tail item closing every scenario.
func (c *Catalog) ClosingRemark() string {
	return c.closingRemark
}
