package practicesession

import (
	"math/rand"
	"time"

	"github.com/studycards/backend/internal/domain/progress"
	"github.com/studycards/backend/internal/grader"
)

// DefaultAutoAdvance is how long feedback stays up before moving on.
const DefaultAutoAdvance = 5 * time.Second

// Recorder receives one Event per submission. Implementations must not block.
type Recorder interface {
	Record(ev progress.Event)
}

// Timer is the part of *time.Timer the auto-advance task needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it through a wrapper.
type AfterFunc func(d time.Duration, f func()) Timer

// SessionConfig holds the collaborators and knobs of a practice session.
type SessionConfig struct {
	AutoAdvance time.Duration // 0 = advance only on request
	Shuffle     ShuffleFunc
	Grader      grader.Grader
	Recorders   []Recorder
	AfterFunc   AfterFunc
	Now         func() time.Time
}

// DefaultConfig returns a config with the 5 second auto-advance and no recorders.
func DefaultConfig() SessionConfig {
	return SessionConfig{
		AutoAdvance: DefaultAutoAdvance,
		Shuffle:     rand.Shuffle,
		Grader:      grader.ExactMatch{},
		AfterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		Now: time.Now,
	}
}

func (c SessionConfig) withDefaults() SessionConfig {
	def := DefaultConfig()
	if c.Shuffle == nil {
		c.Shuffle = def.Shuffle
	}
	if c.Grader == nil {
		c.Grader = def.Grader
	}
	if c.AfterFunc == nil {
		c.AfterFunc = def.AfterFunc
	}
	if c.Now == nil {
		c.Now = def.Now
	}
	return c
}
