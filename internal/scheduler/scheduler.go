package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = time.Minute

// SessionJanitor removes expired and revoked admin sessions.
type SessionJanitor interface {
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

// Scheduler runs housekeeping jobs on cron specs with seconds precision, in UTC.
type Scheduler struct {
	cron    *cron.Cron
	janitor SessionJanitor
	log     *zap.Logger
}

func NewScheduler(cleanupSpec string, janitor SessionJanitor, log *zap.Logger) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron:    c,
		janitor: janitor,
		log:     log.With(zap.String("component", "scheduler")),
	}

	if _, err := s.cron.AddFunc(cleanupSpec, s.cleanSessions); err != nil {
		return nil, fmt.Errorf("register session cleanup %q: %w", cleanupSpec, err)
	}

	return s, nil
}

func (s *Scheduler) cleanSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.janitor.CleanExpiredSessions(ctx)
	if err != nil {
		s.log.Error("Session cleanup failed", zap.Error(err))
		return
	}
	s.log.Info("Session cleanup finished",
		zap.Int64("removed", n),
		zap.Duration("duration", time.Since(start)),
	)
}

func (s *Scheduler) Start() {
	s.log.Info("Starting cron scheduler", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("Cron scheduler stopped")
}
