package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/raphaelgruber/aisite-go/internal/models"
	"github.com/raphaelgruber/aisite-go/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat, err := scenario.Default()
	require.NoError(t, err)

	groups := cat.Groups()
	require.Len(t, groups, 3)
	for i, g := range groups {
		assert.Equal(t, models.AllGroups[i], g.Key, "groups must be in tab order")
		assert.NotEmpty(t, g.Label)
		assert.NotEmpty(t, g.Scenarios, "group %s has no scenarios", g.Key)
	}

	customers, err := cat.Scenarios(models.GroupCustomers)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, models.CardCarousel, customers[0].CardStyle())
	assert.Len(t, customers[0].Products, 3)
	require.NotNil(t, customers[0].Products[0].Price)
	assert.Equal(t, 8990, *customers[0].Products[0].Price)

	executives, err := cat.Scenarios(models.GroupExecutives)
	require.NoError(t, err)
	require.Len(t, executives, 2)
	assert.Equal(t, models.CardChart, executives[0].CardStyle())
	assert.Equal(t, models.CardTable, executives[1].CardStyle())

	assert.Contains(t, cat.ClosingRemark(), "exactly what I needed")
}

func TestCatalogUnknownGroup(t *testing.T) {
	cat, err := scenario.Default()
	require.NoError(t, err)

	_, err = cat.Scenarios(models.GroupKey("investors"))
	assert.ErrorIs(t, err, scenario.ErrUnknownGroup)
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown group key",
			yaml: "groups:\n  - key: investors\n    label: x\n",
		},
		{
			name: "duplicate group",
			yaml: "groups:\n  - key: customers\n  - key: customers\n",
		},
		{
			name: "message without id",
			yaml: "groups:\n  - key: customers\n    scenarios:\n      - user_msgs:\n          - role: user\n            text: hi\n",
		},
		{
			name: "group without scenarios",
			yaml: "groups:\n  - key: customers\n    label: x\n    scenarios: []\n",
		},
		{
			name: "not yaml",
			yaml: "groups: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseEmptyGroup(t *testing.T) {
	_, err := scenario.Parse([]byte("groups:\n  - key: executives\n    label: Execs\n"))
	assert.ErrorIs(t, err, scenario.ErrEmptyGroup)
}

func TestOpenFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	data := `
groups:
  - key: executives
    label: Execs
    scenarios:
      - user_msgs:
          - id: x1
            role: user
            text: hello
        assistant_text: hi
        product:
          title: Table
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cat, err := scenario.Open(path)
	require.NoError(t, err)
	assert.Equal(t, scenario.DefaultClosingRemark, cat.ClosingRemark())

	scs, err := cat.Scenarios(models.GroupExecutives)
	require.NoError(t, err)
	require.Len(t, scs, 1)
	assert.Equal(t, "hi", scs[0].AssistantText)

	_, err = cat.Scenarios(models.GroupCustomers)
	assert.ErrorIs(t, err, scenario.ErrUnknownGroup)
}
