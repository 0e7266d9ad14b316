package tariff

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// PlanStore is the ordered list of discount plans owned by one session.
// It is not safe for concurrent use; the owning session serializes access.
type PlanStore struct {
	plans []DiscountPlan
}

// NewPlanStore creates an empty plan store.
func NewPlanStore() *PlanStore {
	return &PlanStore{plans: make([]DiscountPlan, 0)}
}

// Add validates p and appends it. On error the store is unchanged.
func (s *PlanStore) Add(p DiscountPlan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.plans = append(s.plans, p)
	return nil
}

// Plans returns a copy of the plans in store order.
func (s *PlanStore) Plans() []DiscountPlan {
	out := make([]DiscountPlan, len(s.plans))
	copy(out, s.plans)
	return out
}

// Len returns the number of plans.
func (s *PlanStore) Len() int {
	return len(s.plans)
}

// Replace validates every plan and swaps the whole list in.
func (s *PlanStore) Replace(plans []DiscountPlan) error {
	for i, p := range plans {
		if err := p.Validate(); err != nil {
			return &ImportError{Source: importSource, Err: fmt.Errorf("plan %d: %w", i+1, err)}
		}
	}
	next := make([]DiscountPlan, len(plans))
	copy(next, plans)
	s.plans = next
	return nil
}

// Import parses a JSON list of plans and replaces the store with it.
// Any decode or validation failure returns an *ImportError and leaves the
// store unchanged.
func (s *PlanStore) Import(data []byte) error {
	plans, err := DecodePlans(data)
	if err != nil {
		return err
	}
	return s.Replace(plans)
}

// ImportYAML is Import for the YAML form of the same list.
func (s *PlanStore) ImportYAML(data []byte) error {
	plans, err := DecodePlansYAML(data)
	if err != nil {
		return err
	}
	return s.Replace(plans)
}

// Export renders the plans as an indented JSON list accepted by Import.
func (s *PlanStore) Export() ([]byte, error) {
	return EncodePlans(s.plans)
}

// wirePlan mirrors DiscountPlan with pointer fields so absent keys are detected.
type wirePlan struct {
	StartHour *int      `json:"start_hour" yaml:"start_hour"`
	EndHour   *int      `json:"end_hour" yaml:"end_hour"`
	Discount  *float64  `json:"discount" yaml:"discount"`
	PlanType  *PlanType `json:"plan_type" yaml:"plan_type"`
}

func (w wirePlan) toPlan() (DiscountPlan, error) {
	switch {
	case w.StartHour == nil:
		return DiscountPlan{}, &ValidationError{Field: "start_hour", Reason: "missing"}
	case w.EndHour == nil:
		return DiscountPlan{}, &ValidationError{Field: "end_hour", Reason: "missing"}
	case w.Discount == nil:
		return DiscountPlan{}, &ValidationError{Field: "discount", Reason: "missing"}
	case w.PlanType == nil:
		return DiscountPlan{}, &ValidationError{Field: "plan_type", Reason: "missing"}
	}
	p := DiscountPlan{
		StartHour: *w.StartHour,
		EndHour:   *w.EndHour,
		Discount:  *w.Discount,
		PlanType:  *w.PlanType,
	}
	return p, p.Validate()
}

// DecodePlans parses and validates a JSON list of plans.
func DecodePlans(data []byte) ([]DiscountPlan, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var wire []wirePlan
	if err := dec.Decode(&wire); err != nil {
		return nil, &ImportError{Source: importSource, Err: fmt.Errorf("decode json: %w", err)}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &ImportError{Source: importSource, Err: errors.New("decode json: trailing data after plan list")}
	}
	if wire == nil {
		return nil, &ImportError{Source: importSource, Err: errors.New("decode json: expected a list of plans")}
	}
	return fromWire(wire)
}

// DecodePlan parses a single JSON plan object. Malformed input and missing
// or invalid fields are reported as *ValidationError.
func DecodePlan(data []byte) (DiscountPlan, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var w wirePlan
	if err := dec.Decode(&w); err != nil {
		return DiscountPlan{}, &ValidationError{Field: "body", Reason: err.Error()}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return DiscountPlan{}, &ValidationError{Field: "body", Reason: "trailing data after plan object"}
	}
	return w.toPlan()
}

// DecodePlansYAML parses and validates a YAML list of plans.
func DecodePlansYAML(data []byte) ([]DiscountPlan, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var wire []wirePlan
	if err := dec.Decode(&wire); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty document")
		}
		return nil, &ImportError{Source: importSource, Err: fmt.Errorf("decode yaml: %w", err)}
	}
	return fromWire(wire)
}

func fromWire(wire []wirePlan) ([]DiscountPlan, error) {
	plans := make([]DiscountPlan, 0, len(wire))
	for i, w := range wire {
		p, err := w.toPlan()
		if err != nil {
			return nil, &ImportError{Source: importSource, Err: fmt.Errorf("plan %d: %w", i+1, err)}
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// EncodePlans renders plans as a 4-space indented JSON list. A nil slice
// encodes as an empty list.
func EncodePlans(plans []DiscountPlan) ([]byte, error) {
	if plans == nil {
		plans = []DiscountPlan{}
	}
	data, err := json.MarshalIndent(plans, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode plans: %w", err)
	}
	return data, nil
}
