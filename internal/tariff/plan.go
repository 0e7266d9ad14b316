package tariff

import (
	"fmt"
	"math"
	"strconv"
)

// PlanType selects which day class a discount plan applies to.
type PlanType string

const (
	PlanWeekdays PlanType = "Weekdays"
	PlanWeekends PlanType = "Weekends"
	PlanBoth     PlanType = "Both"
)

// Valid reports whether t is one of the known plan types.
func (t PlanType) Valid() bool {
	switch t {
	case PlanWeekdays, PlanWeekends, PlanBoth:
		return true
	default:
		return false
	}
}

// AppliesToWeekdays reports whether the plan covers Monday to Friday.
func (t PlanType) AppliesToWeekdays() bool {
	return t == PlanWeekdays || t == PlanBoth
}

// AppliesToWeekends reports whether the plan covers Saturday and Sunday.
func (t PlanType) AppliesToWeekends() bool {
	return t == PlanWeekends || t == PlanBoth
}

// DiscountPlan is a time-of-day discount rule. Discount is a percentage of
// consumption inside the [StartHour, EndHour) window.
type DiscountPlan struct {
	StartHour int      `json:"start_hour" yaml:"start_hour" jsonschema:"minimum=0,maximum=23"`
	EndHour   int      `json:"end_hour" yaml:"end_hour" jsonschema:"minimum=0,maximum=23"`
	Discount  float64  `json:"discount" yaml:"discount" jsonschema:"minimum=0,maximum=100"`
	PlanType  PlanType `json:"plan_type" yaml:"plan_type" jsonschema:"enum=Weekdays,enum=Weekends,enum=Both"`
}

// Validate checks every field range. The first violation is returned.
func (p DiscountPlan) Validate() error {
	if p.StartHour < 0 || p.StartHour > 23 {
		return &ValidationError{Field: "start_hour", Reason: fmt.Sprintf("must be between 0 and 23, got %d", p.StartHour)}
	}
	if p.EndHour < 0 || p.EndHour > 23 {
		return &ValidationError{Field: "end_hour", Reason: fmt.Sprintf("must be between 0 and 23, got %d", p.EndHour)}
	}
	if math.IsNaN(p.Discount) || p.Discount < 0 || p.Discount > 100 {
		return &ValidationError{Field: "discount", Reason: fmt.Sprintf("must be between 0 and 100, got %v", p.Discount)}
	}
	if !p.PlanType.Valid() {
		return &ValidationError{Field: "plan_type", Reason: fmt.Sprintf("must be one of Weekdays, Weekends, Both, got %q", p.PlanType)}
	}
	return nil
}

// Overnight reports whether the window wraps past midnight.
func (p DiscountPlan) Overnight() bool {
	return p.StartHour > p.EndHour
}

// Covers reports whether hour h is inside the plan window.
func (p DiscountPlan) Covers(h int) bool {
	return InWindow(h, p.StartHour, p.EndHour)
}

// Rate returns the discount as a fraction.
func (p DiscountPlan) Rate() float64 {
	return p.Discount / 100
}

// String renders the plan the way it is listed to users, e.g. "23-6 hrs, 30% off (Both)".
func (p DiscountPlan) String() string {
	return fmt.Sprintf("%d-%d hrs, %s%% off (%s)", p.StartHour, p.EndHour,
		strconv.FormatFloat(p.Discount, 'f', -1, 64), p.PlanType)
}
