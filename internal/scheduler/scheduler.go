// Package scheduler runs the periodic housekeeping jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// SessionEvicter drops study sessions idle longer than ttl.
type SessionEvicter interface {
	EvictIdle(ttl time.Duration) int
}

// AuthSessionPurger deletes expired login sessions.
type AuthSessionPurger interface {
	DeleteExpiredAuthSessions(ctx context.Context, now time.Time) (int64, error)
}

// Janitor evicts idle study sessions and purges expired auth sessions once a
// minute.
type Janitor struct {
	scheduler *gocron.Scheduler
	sessions  SessionEvicter
	auth      AuthSessionPurger
	idleTTL   time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

func New(sessions SessionEvicter, auth AuthSessionPurger, idleTTL time.Duration, logger *slog.Logger) *Janitor {
	return &Janitor{
		scheduler: gocron.NewScheduler(time.UTC),
		sessions:  sessions,
		auth:      auth,
		idleTTL:   idleTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// Start schedules the sweep and returns without blocking.
func (j *Janitor) Start() error {
	if _, err := j.scheduler.Every(1).Minute().Do(j.Sweep); err != nil {
		return err
	}
	j.scheduler.StartAsync()
	return nil
}

func (j *Janitor) Stop() {
	j.scheduler.Stop()
}

// Sweep runs one pass of both jobs.
func (j *Janitor) Sweep() {
	if j.idleTTL > 0 {
		if n := j.sessions.EvictIdle(j.idleTTL); n > 0 {
			j.logger.Info("evicted idle study sessions", "count", n)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	n, err := j.auth.DeleteExpiredAuthSessions(ctx, j.now())
	if err != nil {
		j.logger.Error("failed to purge expired auth sessions", "error", err)
		return
	}
	if n > 0 {
		j.logger.Info("purged expired auth sessions", "count", n)
	}
}
