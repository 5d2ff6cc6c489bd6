// Package lifecycle is the entry point for every item state transition:
// intake, archive and restore, bulk donation, matching, claiming and the
// periodic sweep. It owns the clock and the staleness rules; the store owns
// atomicity.
package lifecycle

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/metrics"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/store"
)

// DefaultLostAfter is how long a lost report stays pending before the sweeper
// archives it as unsolved.
const DefaultLostAfter = 365 * 24 * time.Hour

// Service runs lifecycle transitions against one database.
type Service struct {
	db        *sql.DB
	log       *slog.Logger
	now       func() time.Time
	loc       *time.Location
	lostAfter time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger for transition records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithLocation sets the time zone that decides which calendar day it is.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithLostAfter sets the pending age after which the sweeper archives lost
// reports. Zero disables that half of the sweep.
func WithLostAfter(d time.Duration) Option {
	return func(s *Service) { s.lostAfter = d }
}

// New returns a Service on db.
func New(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:        db,
		log:       slog.Default(),
		now:       time.Now,
		loc:       time.UTC,
		lostAfter: DefaultLostAfter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// track starts timing op and returns a func that records the outcome. Store
// failures log at ERROR with the cause; expected refusals log at WARN.
func (s *Service) track(op string, attrs ...any) func(err error) {
	start := time.Now()
	return func(err error) {
		metrics.ObserveTransition(op, start, err)

		switch {
		case err == nil:
			s.log.Info(op, attrs...)
		case errors.Is(err, model.ErrValidation),
			errors.Is(err, model.ErrNotFound),
			errors.Is(err, model.ErrConflict):
			s.log.Warn(op+" refused", append(attrs, "reason", err.Error())...)
		default:
			s.log.Error(op+" failed", append(attrs, "error", err)...)
		}
	}
}

// today returns the current calendar date in the service time zone.
func (s *Service) today() string {
	return s.now().In(s.loc).Format("2006-01-02")
}

// Stats returns the dashboard summary.
func (s *Service) Stats(ctx context.Context) (model.Stats, error) {
	stats, err := store.SummaryStats(ctx, s.db)
	if err != nil {
		s.log.Error("stats failed", "error", err)
	}
	return stats, err
}
