// Package session holds per-caller analysis state: one readings series and
// one plan store per session id.
package session

import (
	"sync"
	"time"

	"github.com/wattplan/meter-service/internal/meter"
	"github.com/wattplan/meter-service/internal/tariff"
)

// Session owns a series and a plan store. All access is serialized by mu.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	series     *meter.Series
	plans      *tariff.PlanStore
	lastAccess time.Time
}

func newSession(id string, series *meter.Series, now time.Time) *Session {
	if series == nil {
		series = meter.NewSeries(nil)
	}
	return &Session{
		ID:         id,
		CreatedAt:  now,
		series:     series,
		plans:      tariff.NewPlanStore(),
		lastAccess: now,
	}
}

// Series returns the current series. Series values are immutable.
func (s *Session) Series() *meter.Series {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.series
}

// ReplaceSeries swaps in a newly imported series.
func (s *Session) ReplaceSeries(series *meter.Series) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series = series
}

// Plans returns a copy of the plan list.
func (s *Session) Plans() []tariff.DiscountPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plans.Plans()
}

// AddPlan validates and appends a plan. It returns the plan count after the
// append, so the new plan's index is n-1.
func (s *Session) AddPlan(p tariff.DiscountPlan) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.plans.Add(p); err != nil {
		return 0, err
	}
	return s.plans.Len(), nil
}

// ImportPlans replaces the plan list from its JSON form.
func (s *Session) ImportPlans(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plans.Import(data)
}

// ExportPlans renders the plan list as JSON.
func (s *Session) ExportPlans() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plans.Export()
}

// Snapshot returns the series and plans as one consistent view.
func (s *Session) Snapshot() (*meter.Series, []tariff.DiscountPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.series, s.plans.Plans()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastAccess = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastAccess)
}
