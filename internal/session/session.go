// Package session holds the loaded lead table for one dashboard session,
// replacing the ambient globals the original dashboard leaned on. Every view
// reads a point-in-time snapshot; a manual refresh is the only way the table
// changes.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/metwiz/leads-cli/internal/model"
	"github.com/metwiz/leads-cli/internal/normalize"
	"github.com/metwiz/leads-cli/internal/source"
)

// Session owns one in-memory copy of the lead table.
type Session struct {
	id      string
	src     source.Source
	classer normalize.Options

	mu       sync.RWMutex
	leads    []model.Lead
	loadedAt time.Time

	sf singleflight.Group
}

// New creates an empty session; call Refresh to load the table.
func New(src source.Source, opts normalize.Options) *Session {
	return &Session{
		id:      uuid.NewString(),
		src:     src,
		classer: opts,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Refresh reloads the table from the source, replacing the previous copy
// entirely. Concurrent refreshes collapse into a single load; all callers
// share its outcome.
func (s *Session) Refresh(ctx context.Context) error {
	_, err, _ := s.sf.Do("refresh", func() (any, error) {
		table, err := s.src.Load(ctx)
		if err != nil {
			return nil, err
		}

		opts := s.classer
		if opts.Now.IsZero() {
			opts.Now = time.Now()
		}
		leads := normalize.Leads(table, opts)

		s.mu.Lock()
		s.leads = leads
		s.loadedAt = opts.Now
		s.mu.Unlock()

		zap.L().Info("session: table refreshed",
			zap.String("session_id", s.id),
			zap.Int("leads", len(leads)),
		)
		return nil, nil
	})
	return err
}

// Clear drops the loaded table while keeping the session alive. Used when a
// refresh finds the source emptied upstream: the reload still replaces the
// whole table, with nothing.
func (s *Session) Clear() {
	s.mu.Lock()
	s.leads = nil
	s.loadedAt = time.Now()
	s.mu.Unlock()

	zap.L().Info("session: table cleared", zap.String("session_id", s.id))
}

// Leads returns a copy of the current table.
func (s *Session) Leads() []model.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Lead, len(s.leads))
	copy(out, s.leads)
	return out
}

// Lead looks up a single lead by its identifier.
func (s *Session) Lead(id string) (model.Lead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.leads {
		if l.ID == id {
			return l, true
		}
	}
	return model.Lead{}, false
}

// LoadedAt returns the "today" instant of the last successful refresh, which
// anchors every days_since value in the table.
func (s *Session) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Empty reports whether the session has no loaded leads.
func (s *Session) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.leads) == 0
}
