package tariff

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanStoreAdd(t *testing.T) {
	tests := []struct {
		name      string
		plan      DiscountPlan
		wantField string
	}{
		{name: "valid daytime", plan: DiscountPlan{StartHour: 6, EndHour: 16, Discount: 20, PlanType: PlanWeekdays}},
		{name: "valid overnight", plan: DiscountPlan{StartHour: 23, EndHour: 6, Discount: 100, PlanType: PlanBoth}},
		{name: "zero discount", plan: DiscountPlan{StartHour: 0, EndHour: 0, Discount: 0, PlanType: PlanWeekends}},
		{name: "start out of range", plan: DiscountPlan{StartHour: 24, EndHour: 6, Discount: 10, PlanType: PlanBoth}, wantField: "start_hour"},
		{name: "negative end", plan: DiscountPlan{StartHour: 1, EndHour: -1, Discount: 10, PlanType: PlanBoth}, wantField: "end_hour"},
		{name: "discount above 100", plan: DiscountPlan{StartHour: 1, EndHour: 2, Discount: 100.5, PlanType: PlanBoth}, wantField: "discount"},
		{name: "negative discount", plan: DiscountPlan{StartHour: 1, EndHour: 2, Discount: -1, PlanType: PlanBoth}, wantField: "discount"},
		{name: "unknown plan type", plan: DiscountPlan{StartHour: 1, EndHour: 2, Discount: 5, PlanType: "Holidays"}, wantField: "plan_type"},
		{name: "empty plan type", plan: DiscountPlan{StartHour: 1, EndHour: 2, Discount: 5}, wantField: "plan_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewPlanStore()
			require.NoError(t, store.Add(DiscountPlan{StartHour: 1, EndHour: 2, Discount: 1, PlanType: PlanBoth}))

			err := store.Add(tt.plan)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, 2, store.Len())
				assert.Equal(t, tt.plan, store.Plans()[1])
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, 1, store.Len(), "store must be unchanged on failure")
		})
	}
}

func TestPlanStoreKeepsDuplicates(t *testing.T) {
	store := NewPlanStore()
	p := DiscountPlan{StartHour: 23, EndHour: 6, Discount: 30, PlanType: PlanBoth}
	require.NoError(t, store.Add(p))
	require.NoError(t, store.Add(p))
	assert.Equal(t, []DiscountPlan{p, p}, store.Plans())
}

func TestPlanStoreImport(t *testing.T) {
	valid := `[
		{"start_hour": 23, "end_hour": 7, "discount": 20, "plan_type": "Both"},
		{"start_hour": 7, "end_hour": 17, "discount": 15.5, "plan_type": "Weekdays"}
	]`

	t.Run("replaces existing plans", func(t *testing.T) {
		store := NewPlanStore()
		require.NoError(t, store.Add(DiscountPlan{StartHour: 1, EndHour: 2, Discount: 1, PlanType: PlanWeekends}))

		require.NoError(t, store.Import([]byte(valid)))
		assert.Equal(t, []DiscountPlan{
			{StartHour: 23, EndHour: 7, Discount: 20, PlanType: PlanBoth},
			{StartHour: 7, EndHour: 17, Discount: 15.5, PlanType: PlanWeekdays},
		}, store.Plans())
	})

	t.Run("empty list clears store", func(t *testing.T) {
		store := NewPlanStore()
		require.NoError(t, store.Add(DiscountPlan{StartHour: 1, EndHour: 2, Discount: 1, PlanType: PlanWeekends}))
		require.NoError(t, store.Import([]byte(`[]`)))
		assert.Equal(t, 0, store.Len())
	})

	failures := []struct {
		name  string
		input string
	}{
		{"malformed json", `[{"start_hour": 1,`},
		{"not a list", `{"start_hour": 1}`},
		{"null", `null`},
		{"missing field", `[{"start_hour": 1, "end_hour": 2, "plan_type": "Both"}]`},
		{"unknown field", `[{"start_hour": 1, "end_hour": 2, "discount": 5, "plan_type": "Both", "note": "x"}]`},
		{"out of range entry", `[{"start_hour": 1, "end_hour": 2, "discount": 5, "plan_type": "Both"}, {"start_hour": 30, "end_hour": 2, "discount": 5, "plan_type": "Both"}]`},
		{"bad plan type", `[{"start_hour": 1, "end_hour": 2, "discount": 5, "plan_type": "Daily"}]`},
		{"fractional hour", `[{"start_hour": 1.5, "end_hour": 2, "discount": 5, "plan_type": "Both"}]`},
		{"trailing data", `[] []`},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			store := NewPlanStore()
			original := DiscountPlan{StartHour: 1, EndHour: 2, Discount: 1, PlanType: PlanWeekends}
			require.NoError(t, store.Add(original))

			err := store.Import([]byte(tt.input))
			var ierr *ImportError
			require.True(t, errors.As(err, &ierr), "expected ImportError, got %v", err)
			assert.Equal(t, "plans", ierr.Source)
			assert.Equal(t, []DiscountPlan{original}, store.Plans(), "store must be unchanged on failure")
		})
	}
}

func TestPlanStoreExportImportRoundTrip(t *testing.T) {
	store := NewPlanStore()
	plans := []DiscountPlan{
		{StartHour: 23, EndHour: 6, Discount: 30, PlanType: PlanBoth},
		{StartHour: 0, EndHour: 23, Discount: 12.25, PlanType: PlanWeekdays},
		{StartHour: 23, EndHour: 6, Discount: 30, PlanType: PlanBoth},
		{StartHour: 10, EndHour: 14, Discount: 0, PlanType: PlanWeekends},
	}
	for _, p := range plans {
		require.NoError(t, store.Add(p))
	}

	data, err := store.Export()
	require.NoError(t, err)

	restored := NewPlanStore()
	require.NoError(t, restored.Import(data))
	assert.Equal(t, store.Plans(), restored.Plans())
}

func TestPlanStoreExportEmpty(t *testing.T) {
	data, err := NewPlanStore().Export()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestPlanStoreImportYAML(t *testing.T) {
	doc := `
- start_hour: 23
  end_hour: 6
  discount: 25
  plan_type: Both
- start_hour: 9
  end_hour: 12
  discount: 5
  plan_type: Weekends
`
	store := NewPlanStore()
	require.NoError(t, store.ImportYAML([]byte(doc)))
	assert.Equal(t, []DiscountPlan{
		{StartHour: 23, EndHour: 6, Discount: 25, PlanType: PlanBoth},
		{StartHour: 9, EndHour: 12, Discount: 5, PlanType: PlanWeekends},
	}, store.Plans())

	err := store.ImportYAML([]byte("- start_hour: 1\n  end_hour: 2\n  plan_type: Both\n"))
	var ierr *ImportError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, 2, store.Len())
}

func TestDiscountPlanString(t *testing.T) {
	p := DiscountPlan{StartHour: 23, EndHour: 6, Discount: 30, PlanType: PlanBoth}
	assert.Equal(t, "23-6 hrs, 30% off (Both)", p.String())

	p.Discount = 12.5
	assert.Equal(t, "23-6 hrs, 12.5% off (Both)", p.String())
}

func TestDecodePlan(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		field   string
		wantErr bool
	}{
		{"valid", `{"start_hour": 23, "end_hour": 6, "discount": 30, "plan_type": "Both"}`, "", false},
		{"missing discount", `{"start_hour": 23, "end_hour": 6, "plan_type": "Both"}`, "discount", true},
		{"bad plan type", `{"start_hour": 1, "end_hour": 2, "discount": 5, "plan_type": "Holidays"}`, "plan_type", true},
		{"unknown field", `{"start_hour": 1, "end_hour": 2, "discount": 5, "plan_type": "Both", "name": "x"}`, "body", true},
		{"not json", `start=1`, "body", true},
		{"trailing garbage", `{"start_hour": 23, "end_hour": 6, "discount": 30, "plan_type": "Both"} garbage`, "body", true},
		{"second object", `{"start_hour": 23, "end_hour": 6, "discount": 30, "plan_type": "Both"}{}`, "body", true},
		{"trailing whitespace", "{\"start_hour\": 23, \"end_hour\": 6, \"discount\": 30, \"plan_type\": \"Both\"}\n  ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DecodePlan([]byte(tt.input))
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, DiscountPlan{StartHour: 23, EndHour: 6, Discount: 30, PlanType: PlanBoth}, p)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
