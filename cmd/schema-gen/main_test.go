package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGroupSchema(t *testing.T) {
	for _, group := range groups {
		t.Run(group.Name, func(t *testing.T) {
			schema := generateGroupSchema(group)
			defs, ok := schema["$defs"].(map[string]any)
			require.True(t, ok)
			assert.NotEmpty(t, defs)
			assert.Equal(t, "https://wattplan.dev/schemas/"+group.Name+".json", schema["$id"])
		})
	}
}

func TestPlanSchemaConstraints(t *testing.T) {
	schema := generateGroupSchema(groups[1])
	path := filepath.Join(t.TempDir(), "plans.json")
	require.NoError(t, writeSchema(schema, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed struct {
		Defs map[string]struct {
			Properties map[string]map[string]any `json:"properties"`
		} `json:"$defs"`
	}
	require.NoError(t, json.Unmarshal(data, &parsed))

	plan, ok := parsed.Defs["DiscountPlan"]
	require.True(t, ok)
	assert.EqualValues(t, 23, plan.Properties["start_hour"]["maximum"])
	assert.EqualValues(t, 100, plan.Properties["discount"]["maximum"])
	assert.Len(t, plan.Properties["plan_type"]["enum"], 3)
}
