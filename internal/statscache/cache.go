// Package statscache keeps a per-user, in-memory copy of question history so
// progress screens do not hit the database on every submission.
package statscache

import (
	"sort"
	"sync"

	"github.com/studycards/backend/internal/domain/progress"
)

type key struct {
	setID      string
	questionID string
}

// Cache is safe for concurrent use. It satisfies practicesession.Recorder.
type Cache struct {
	mu    sync.RWMutex
	users map[string]map[key]*progress.UserProgress
	seen  map[string]map[string]struct{} // user -> applied submission ids
}

func New() *Cache {
	return &Cache{
		users: make(map[string]map[key]*progress.UserProgress),
		seen:  make(map[string]map[string]struct{}),
	}
}

// Record upserts the row for the event's question. Repeated submission ids
// are ignored.
func (c *Cache) Record(ev progress.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ev.SubmissionID != "" {
		seen, ok := c.seen[ev.UserID]
		if !ok {
			seen = make(map[string]struct{})
			c.seen[ev.UserID] = seen
		}
		if _, dup := seen[ev.SubmissionID]; dup {
			return
		}
		seen[ev.SubmissionID] = struct{}{}
	}

	rows, ok := c.users[ev.UserID]
	if !ok {
		rows = make(map[key]*progress.UserProgress)
		c.users[ev.UserID] = rows
	}
	k := key{setID: ev.SetID, questionID: ev.QuestionID}
	p, ok := rows[k]
	if !ok {
		p = &progress.UserProgress{
			UserID:     ev.UserID,
			SetID:      ev.SetID,
			QuestionID: ev.QuestionID,
		}
		rows[k] = p
	}
	p.Apply(ev.Result, ev.At)
}

// SetProgress returns copies of the user's rows for one set, ordered by
// question id. An empty setID returns every set.
func (c *Cache) SetProgress(userID, setID string) []progress.UserProgress {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []progress.UserProgress{}
	for k, p := range c.users[userID] {
		if setID != "" && k.setID != setID {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SetID != out[j].SetID {
			return out[i].SetID < out[j].SetID
		}
		return out[i].QuestionID < out[j].QuestionID
	})
	return out
}

func (c *Cache) Summary(userID, setID string, totalQuestions int) progress.SetSummary {
	return progress.Summarize(c.SetProgress(userID, setID), totalQuestions)
}

// Clear drops everything cached for the user.
func (c *Cache) Clear(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.users, userID)
	delete(c.seen, userID)
}
