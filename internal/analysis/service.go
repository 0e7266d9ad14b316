// Package analysis answers report queries against a readings series and a
// plan list.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wattplan/meter-service/internal/meter"
	"github.com/wattplan/meter-service/internal/metrics"
	"github.com/wattplan/meter-service/internal/tariff"
	"github.com/wattplan/meter-service/internal/telemetry"
)

// DefaultPrice is the unit price used when a query omits one.
const DefaultPrice = 0.61

// ErrInvalidQuery is wrapped by every query validation failure.
var ErrInvalidQuery = errors.New("invalid query")

// Query selects the month and unit price of a report.
type Query struct {
	// Month is 1..12. Zero selects the earliest month present.
	Month int
	// Price per kWh. Nil selects the service default.
	Price *float64
}

// Report is the answer to a Query: per-plan discounts, gross cost and the
// hourly average profiles for charting.
type Report struct {
	tariff.Report
	Month         int                   `json:"month"`
	Price         float64               `json:"price"`
	Readings      int                   `json:"readings"`
	WeekdayHourly []meter.HourlyAverage `json:"weekdayHourly"`
	WeekendHourly []meter.HourlyAverage `json:"weekendHourly"`
}

// Service builds reports.
type Service struct {
	defaultPrice float64
	logger       zerolog.Logger
	metrics      *metrics.Recorder
}

// NewService creates a report service. A non-positive defaultPrice falls
// back to DefaultPrice.
func NewService(defaultPrice float64, logger *zerolog.Logger, recorder *metrics.Recorder) *Service {
	if defaultPrice <= 0 || math.IsNaN(defaultPrice) || math.IsInf(defaultPrice, 0) {
		defaultPrice = DefaultPrice
	}
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	return &Service{
		defaultPrice: defaultPrice,
		logger:       logger.With().Str("component", "analysis").Logger(),
		metrics:      recorder,
	}
}

// DefaultPrice returns the price applied when a query has none.
func (s *Service) DefaultPrice() float64 {
	return s.defaultPrice
}

// Resolve fills query defaults against series and validates the result.
func (s *Service) Resolve(series *meter.Series, q Query) (month int, price float64, err error) {
	if q.Month < 0 || q.Month > 12 {
		return 0, 0, fmt.Errorf("%w: month %d out of range 1..12", ErrInvalidQuery, q.Month)
	}
	month = q.Month
	if month == 0 {
		if months := series.Months(); len(months) > 0 {
			month = months[0]
		}
	}

	price = s.defaultPrice
	if q.Price != nil {
		price = *q.Price
		if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
			return 0, 0, fmt.Errorf("%w: price must be a finite non-negative number", ErrInvalidQuery)
		}
	}
	return month, price, nil
}

// Report partitions the selected month and aggregates plans over it.
// An empty series yields a zero report for month 0 when no month is given.
func (s *Service) Report(ctx context.Context, series *meter.Series, plans []tariff.DiscountPlan, q Query) (*Report, error) {
	_, span := telemetry.Tracer().Start(ctx, "analysis.Report")
	defer span.End()

	start := time.Now()

	month, price, err := s.Resolve(series, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	part := series.PartitionMonth(month)
	report := &Report{
		Report:        tariff.Aggregate(part.Weekday, part.Weekend, plans, price),
		Month:         month,
		Price:         price,
		Readings:      len(part.Weekday) + len(part.Weekend),
		WeekdayHourly: meter.HourlyAverages(part.Weekday),
		WeekendHourly: meter.HourlyAverages(part.Weekend),
	}

	span.SetAttributes(
		attribute.Int("report.month", month),
		attribute.Float64("report.price", price),
		attribute.Int("report.plans", len(plans)),
		attribute.Int("report.readings", report.Readings),
	)
	s.metrics.RecordReport("json", len(plans), time.Since(start))

	s.logger.Debug().
		Int("month", month).
		Float64("price", price).
		Int("plans", len(plans)).
		Int("readings", report.Readings).
		Msg("Report computed")

	return report, nil
}
