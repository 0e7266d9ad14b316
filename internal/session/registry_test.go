package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattplan/meter-service/internal/meter"
	"github.com/wattplan/meter-service/internal/tariff"
	"github.com/wattplan/meter-service/internal/types"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestRegistry(t *testing.T, opts Options) *Registry {
	t.Helper()
	logger := zerolog.Nop()
	return NewRegistry(opts, &logger, nil)
}

func TestRegistry_CreateGetDelete(t *testing.T) {
	r := newTestRegistry(t, Options{})

	s, err := r.Create()
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, r.Delete(s.ID))
	_, err = r.Get(s.ID)
	assert.True(t, errors.Is(err, ErrSessionNotFound))
	assert.True(t, errors.Is(r.Delete(s.ID), ErrSessionNotFound))
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := newTestRegistry(t, Options{})

	a, err := r.GetOrCreate("browser-tab-1")
	require.NoError(t, err)
	b, err := r.GetOrCreate("browser-tab-1")
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = r.GetOrCreate("not/valid")
	assert.True(t, errors.Is(err, ErrInvalidID))
	_, err = r.GetOrCreate("")
	assert.True(t, errors.Is(err, ErrInvalidID))
}

func TestRegistry_Lookup(t *testing.T) {
	strict := newTestRegistry(t, Options{})
	_, err := strict.Lookup("abc")
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	lazy := newTestRegistry(t, Options{AutoCreate: true})
	s, err := lazy.Lookup("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", s.ID)
}

func TestRegistry_MaxSessions(t *testing.T) {
	r := newTestRegistry(t, Options{MaxSessions: 1})
	_, err := r.Create()
	require.NoError(t, err)

	_, err = r.Create()
	assert.True(t, errors.Is(err, ErrTooManySessions))
	_, err = r.GetOrCreate("other")
	assert.True(t, errors.Is(err, ErrTooManySessions))
}

func TestRegistry_Baseline(t *testing.T) {
	r := newTestRegistry(t, Options{})
	baseline := meter.NewSeries([]meter.Reading{
		{Timestamp: time.Date(2024, 9, 16, 8, 0, 0, 0, time.UTC), Consumption: 1},
	})
	r.SetBaseline(baseline)

	a, err := r.Create()
	require.NoError(t, err)
	b, err := r.Create()
	require.NoError(t, err)
	assert.Equal(t, 1, a.Series().Len())

	a.ReplaceSeries(meter.NewSeries(nil))
	assert.Equal(t, 0, a.Series().Len())
	assert.Equal(t, 1, b.Series().Len(), "sessions never share state")
}

func TestRegistry_ExpireIdle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 9, 16, 8, 0, 0, 0, time.UTC)}
	r := newTestRegistry(t, Options{Now: clock.Now})

	idle, err := r.Create()
	require.NoError(t, err)
	clock.Advance(20 * time.Minute)
	active, err := r.Create()
	require.NoError(t, err)

	clock.Advance(15 * time.Minute)
	_, err = r.Get(active.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, r.ExpireIdle(30*time.Minute))
	_, err = r.Get(idle.ID)
	assert.True(t, errors.Is(err, ErrSessionNotFound))
	_, err = r.Get(active.ID)
	assert.NoError(t, err)
}

func TestSession_Plans(t *testing.T) {
	r := newTestRegistry(t, Options{})
	s, err := r.Create()
	require.NoError(t, err)

	n, err := s.AddPlan(tariff.DiscountPlan{StartHour: 23, EndHour: 6, Discount: 30, PlanType: tariff.PlanBoth})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	var verr *tariff.ValidationError
	n, err = s.AddPlan(tariff.DiscountPlan{StartHour: 24, PlanType: tariff.PlanBoth})
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, 0, n)

	data, err := s.ExportPlans()
	require.NoError(t, err)

	var importErr *types.ImportError
	assert.True(t, errors.As(s.ImportPlans([]byte("{")), &importErr))
	assert.Len(t, s.Plans(), 1)

	require.NoError(t, s.ImportPlans(data))
	series, plans := s.Snapshot()
	assert.Equal(t, 0, series.Len())
	assert.Len(t, plans, 1)
}

func TestSession_ConcurrentAccess(t *testing.T) {
	r := newTestRegistry(t, Options{AutoCreate: true})

	counts := make(chan int, 20)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := r.Lookup("shared")
			if !assert.NoError(t, err) {
				return
			}
			n, err := s.AddPlan(tariff.DiscountPlan{StartHour: 1, EndHour: 2, Discount: 5, PlanType: tariff.PlanWeekdays})
			assert.NoError(t, err)
			counts <- n
		}()
	}
	wg.Wait()
	close(counts)

	// Each concurrent add observes its own position in the list.
	seen := make(map[int]bool)
	for n := range counts {
		assert.False(t, seen[n], "count %d returned twice", n)
		seen[n] = true
	}
	assert.Len(t, seen, 20)

	s, err := r.Get("shared")
	require.NoError(t, err)
	assert.Len(t, s.Plans(), 20)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_BaselineDefault(t *testing.T) {
	r := newTestRegistry(t, Options{})
	require.NotNil(t, r.Baseline())
	assert.Equal(t, 0, r.Baseline().Len())
}
