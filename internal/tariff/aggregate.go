package tariff

import (
	"fmt"
	"math"

	"github.com/wattplan/meter-service/internal/meter"
)

// PlanResult is the discount one plan yields over the selected readings.
type PlanResult struct {
	// Index is the plan position in the store, starting at 0.
	Index            int          `json:"index"`
	Plan             DiscountPlan `json:"plan"`
	WeekdayAmount    float64      `json:"weekdayAmount"`
	WeekendAmount    float64      `json:"weekendAmount"`
	DiscountAmount   float64      `json:"discountAmount"`
	DiscountCurrency float64      `json:"discountCurrency"`
	// NetCost is the report's gross cost less this plan's discount value.
	NetCost          float64      `json:"netCost"`
}

// String renders the summary line shown for the plan.
func (r PlanResult) String() string {
	return fmt.Sprintf("Plan %d: Total Cost = %.2f, Total Discount = %.2f kWh, Discount Value = %.2f",
		r.Index+1, r.NetCost, r.DiscountAmount, r.DiscountCurrency)
}

// Report holds the per-plan discounts and the gross cost of a reading selection.
// TotalCost is undiscounted; plan discounts are informational and are not
// subtracted from it.
type Report struct {
	Plans            []PlanResult `json:"plans"`
	TotalConsumption float64      `json:"totalConsumption"`
	TotalCost        float64      `json:"totalCost"`
}

// Aggregate applies every plan independently to the original consumption of
// the weekday and weekend subsets. A plan never sees another plan's discount.
func Aggregate(weekday, weekend []meter.Reading, plans []DiscountPlan, price float64) Report {
	report := Report{Plans: make([]PlanResult, 0, len(plans))}
	report.TotalConsumption = meter.Total(weekday) + meter.Total(weekend)
	report.TotalCost = report.TotalConsumption * price

	for i, p := range plans {
		res := PlanResult{Index: i, Plan: p}
		if p.PlanType.AppliesToWeekdays() {
			res.WeekdayAmount = WindowSum(weekday, p.StartHour, p.EndHour) * p.Rate()
		}
		if p.PlanType.AppliesToWeekends() {
			res.WeekendAmount = WindowSum(weekend, p.StartHour, p.EndHour) * p.Rate()
		}
		res.DiscountAmount = res.WeekdayAmount + res.WeekendAmount
		res.DiscountCurrency = res.DiscountAmount * price
		res.NetCost = report.TotalCost - res.DiscountCurrency
		report.Plans = append(report.Plans, res)
	}
	return report
}

// Rounded returns a copy with every monetary and energy figure rounded to
// two decimals for display.
func (r Report) Rounded() Report {
	out := Report{
		Plans:            make([]PlanResult, len(r.Plans)),
		TotalConsumption: Round2(r.TotalConsumption),
		TotalCost:        Round2(r.TotalCost),
	}
	for i, p := range r.Plans {
		p.WeekdayAmount = Round2(p.WeekdayAmount)
		p.WeekendAmount = Round2(p.WeekendAmount)
		p.DiscountAmount = Round2(p.DiscountAmount)
		p.DiscountCurrency = Round2(p.DiscountCurrency)
		p.NetCost = Round2(p.NetCost)
		out.Plans[i] = p
	}
	return out
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
