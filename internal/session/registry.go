package session

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wattplan/meter-service/internal/meter"
	"github.com/wattplan/meter-service/internal/metrics"
)

var (
	// ErrSessionNotFound is returned for ids the registry does not hold.
	ErrSessionNotFound = errors.New("session not found")
	// ErrTooManySessions is returned when MaxSessions would be exceeded.
	ErrTooManySessions = errors.New("too many sessions")
	// ErrInvalidID is returned for caller-supplied ids that are not usable as keys.
	ErrInvalidID = errors.New("invalid session id")
)

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Options configure a Registry.
type Options struct {
	// MaxSessions caps live sessions. Zero means unlimited.
	MaxSessions int
	// AutoCreate makes Lookup create sessions for unknown ids.
	AutoCreate bool
	// Now overrides the clock in tests.
	Now func() time.Time
}

// Registry maps session ids to sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	baseline *meter.Series

	opts    Options
	logger  zerolog.Logger
	metrics *metrics.Recorder
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options, logger *zerolog.Logger, recorder *metrics.Recorder) *Registry {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		opts:     opts,
		logger:   logger.With().Str("component", "sessions").Logger(),
		metrics:  recorder,
	}
}

// SetBaseline sets the series new sessions start with.
func (r *Registry) SetBaseline(series *meter.Series) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.baseline = series
}

// Baseline returns the series new sessions start with. It is never nil.
func (r *Registry) Baseline() *meter.Series {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.baseline == nil {
		return meter.NewSeries(nil)
	}
	return r.baseline
}

// Create starts a session under a fresh random id.
func (r *Registry) Create() (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createLocked(uuid.NewString())
}

// Get returns the session for id and marks it as used.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.touch(r.opts.Now())
	return s, nil
}

// GetOrCreate returns the session for id, creating it when absent.
func (r *Registry) GetOrCreate(id string) (*Session, error) {
	if !validID.MatchString(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if s, err := r.Get(id); err == nil {
		return s, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.touch(r.opts.Now())
		return s, nil
	}
	return r.createLocked(id)
}

// Lookup is Get, or GetOrCreate when the registry auto-creates sessions.
func (r *Registry) Lookup(id string) (*Session, error) {
	if r.opts.AutoCreate {
		return r.GetOrCreate(id)
	}
	return r.Get(id)
}

func (r *Registry) createLocked(id string) (*Session, error) {
	if r.opts.MaxSessions > 0 && len(r.sessions) >= r.opts.MaxSessions {
		return nil, fmt.Errorf("%w: limit %d", ErrTooManySessions, r.opts.MaxSessions)
	}
	s := newSession(id, r.baseline, r.opts.Now())
	r.sessions[id] = s
	r.metrics.SetActiveSessions(len(r.sessions))

	r.logger.Debug().Str("session_id", id).Msg("Session created")
	return s, nil
}

// Delete removes a session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(r.sessions, id)
	r.metrics.SetActiveSessions(len(r.sessions))
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// ExpireIdle removes sessions unused for longer than ttl and returns how
// many were removed.
func (r *Registry) ExpireIdle(ttl time.Duration) int {
	now := r.opts.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	expired := 0
	for id, s := range r.sessions {
		if s.idleSince(now) > ttl {
			delete(r.sessions, id)
			expired++
		}
	}
	if expired > 0 {
		r.metrics.SetActiveSessions(len(r.sessions))
		r.metrics.RecordSessionsExpired(expired)
	}
	return expired
}
