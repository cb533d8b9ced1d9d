// internal/service/study.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	practicesession "github.com/studycards/backend/internal/domain/practice_session"
	"github.com/studycards/backend/internal/domain/studyset"
	"github.com/studycards/backend/internal/id"
)

var ErrSessionNotFound = errors.New("study session not found")

// SetLoader loads a set with its questions ready to study.
type SetLoader interface {
	GetStudySession(ctx context.Context, setID string) (*studyset.StudySet, error)
}

// ProgressResetter wipes server-side history and refuses events that
// happened before at.
type ProgressResetter interface {
	DeleteProgress(ctx context.Context, userID, setID string, at time.Time) (int64, error)
}

// CacheClearer wipes the in-memory history of a user.
type CacheClearer interface {
	Clear(userID string)
}

type liveSession struct {
	session  *practicesession.PracticeSession
	lastUsed time.Time
}

// StudyService owns every live practice session. Sessions are bound to the
// user who started them; another user asking for one gets ErrSessionNotFound.
type StudyService struct {
	sets     SetLoader
	progress ProgressResetter
	cache    CacheClearer
	base     practicesession.SessionConfig
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*liveSession
}

// NewStudyService creates a StudyService. base is the template for every new
// session; its Recorders receive each submission.
func NewStudyService(sets SetLoader, progress ProgressResetter, cache CacheClearer, base practicesession.SessionConfig, logger *slog.Logger) *StudyService {
	return &StudyService{
		sets:     sets,
		progress: progress,
		cache:    cache,
		base:     base,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*liveSession),
	}
}

// SetClock replaces the clock used for idle tracking.
func (s *StudyService) SetClock(now func() time.Time) {
	s.now = now
}

// Start loads the set and opens a new session over it.
func (s *StudyService) Start(ctx context.Context, userID, setID string) (practicesession.Snapshot, error) {
	set, err := s.sets.GetStudySession(ctx, setID)
	if err != nil {
		return practicesession.Snapshot{}, err
	}

	sc := practicesession.Context{
		SessionID: id.GenerateID(),
		UserID:    userID,
		SetID:     set.ID,
	}
	session, err := practicesession.New(sc, set.Questions, s.base)
	if err != nil {
		return practicesession.Snapshot{}, fmt.Errorf("start session for set %s: %w", setID, err)
	}

	s.mu.Lock()
	s.sessions[sc.SessionID] = &liveSession{session: session, lastUsed: s.now()}
	s.mu.Unlock()

	s.logger.Info("study session started",
		"session_id", sc.SessionID,
		"user_id", userID,
		"set_id", set.ID,
		"questions", len(set.Questions),
	)
	return session.Snapshot(), nil
}

func (s *StudyService) Get(userID, sessionID string) (practicesession.Snapshot, error) {
	session, err := s.lookup(userID, sessionID)
	if err != nil {
		return practicesession.Snapshot{}, err
	}
	return session.Snapshot(), nil
}

// Submit grades the marked options and returns the feedback together with
// the resulting snapshot.
func (s *StudyService) Submit(userID, sessionID string, marked []string) (practicesession.Feedback, practicesession.Snapshot, error) {
	session, err := s.lookup(userID, sessionID)
	if err != nil {
		return practicesession.Feedback{}, practicesession.Snapshot{}, err
	}
	fb, err := session.Submit(marked)
	if err != nil {
		return practicesession.Feedback{}, session.Snapshot(), err
	}
	return fb, session.Snapshot(), nil
}

func (s *StudyService) Advance(userID, sessionID string) (practicesession.Snapshot, error) {
	session, err := s.lookup(userID, sessionID)
	if err != nil {
		return practicesession.Snapshot{}, err
	}
	return session.Advance()
}

// Restart puts every question back into the round and zeroes the tally.
// History is kept.
func (s *StudyService) Restart(userID, sessionID string) (practicesession.Snapshot, error) {
	session, err := s.lookup(userID, sessionID)
	if err != nil {
		return practicesession.Snapshot{}, err
	}
	return session.Reset(), nil
}

// ResetStats wipes the user's history for setID on the server, then the
// stats cache, then resets the session when sessionID is given. A failed
// server wipe stops the sequence and is returned. When setID is empty the
// set of the session is used. Writes still queued in the recorder for
// submissions made before the reset are discarded by the store.
func (s *StudyService) ResetStats(ctx context.Context, userID, setID, sessionID string) (*practicesession.Snapshot, error) {
	var session *practicesession.PracticeSession
	if sessionID != "" {
		var err error
		if session, err = s.lookup(userID, sessionID); err != nil {
			return nil, err
		}
		if setID == "" {
			setID = session.Context().SetID
		}
	}

	removed, err := s.progress.DeleteProgress(ctx, userID, setID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("reset progress: %w", err)
	}
	s.cache.Clear(userID)
	s.logger.Info("progress reset", "user_id", userID, "set_id", setID, "rows", removed)

	if session == nil {
		return nil, nil
	}
	snap := session.Reset()
	return &snap, nil
}

// EvictIdle closes sessions not touched for longer than ttl and returns how
// many were removed.
func (s *StudyService) EvictIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	var stale []*liveSession
	for sid, ls := range s.sessions {
		if ls.lastUsed.Before(cutoff) {
			stale = append(stale, ls)
			delete(s.sessions, sid)
		}
	}
	s.mu.Unlock()

	for _, ls := range stale {
		ls.session.Close()
	}
	return len(stale)
}

// Len reports the number of live sessions.
func (s *StudyService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops every pending auto-advance and forgets all sessions.
func (s *StudyService) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*liveSession)
	s.mu.Unlock()

	for _, ls := range sessions {
		ls.session.Close()
	}
}

func (s *StudyService) lookup(userID, sessionID string) (*practicesession.PracticeSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ls, ok := s.sessions[sessionID]
	if !ok || ls.session.Context().UserID != userID {
		return nil, ErrSessionNotFound
	}
	ls.lastUsed = s.now()
	return ls.session, nil
}
