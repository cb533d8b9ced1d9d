package practicesession

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/studycards/backend/internal/domain/progress"
	"github.com/studycards/backend/internal/domain/studyset"
)

type State string

const (
	StateIdle     State = "idle"     // waiting for a submission
	StateAnswered State = "answered" // feedback shown, waiting for advance
	StateComplete State = "complete"
)

var (
	ErrNoQuestions       = errors.New("session has no questions")
	ErrDuplicateQuestion = errors.New("duplicate question id in session")
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrNotIdle           = errors.New("session is not waiting for an answer")
	ErrNotAnswered       = errors.New("no answered question to advance from")
)

// Context identifies who is studying what. It is fixed for the lifetime of
// the session.
type Context struct {
	SessionID string
	UserID    string
	SetID     string
}

// Feedback describes the last graded submission.
type Feedback struct {
	QuestionID  string
	Result      progress.Result
	CorrectIDs  []string
	Explanation string
}

// Snapshot is a read-only view of a session at one point in time.
type Snapshot struct {
	Context   Context
	State     State
	Current   *studyset.Question // nil once complete
	Feedback  *Feedback          // set only while answered
	Stats     Stats
	Remaining int
}

// PracticeSession is the study loop over a fixed question snapshot: it
// presents the queue head, grades submissions, keeps the tally and
// re-sequences the queue.
//
// All mutation happens under mu. The auto-advance timer fires on its own
// goroutine and goes through the same lock.
type PracticeSession struct {
	ctx       Context
	cfg       SessionConfig
	questions map[string]studyset.Question

	mu       sync.Mutex
	queue    *Queue
	stats    Stats
	state    State
	current  string
	feedback *Feedback
	seq      int

	timer    Timer
	timerGen uint64
}

// New starts a session over questions. The queue is shuffled right away.
func New(ctx Context, questions []studyset.Question, cfg SessionConfig) (*PracticeSession, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	byID := make(map[string]studyset.Question, len(questions))
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateQuestion, q.ID)
		}
		byID[q.ID] = q
		ids = append(ids, q.ID)
	}

	cfg = cfg.withDefaults()
	s := &PracticeSession{
		ctx:       ctx,
		cfg:       cfg,
		questions: byID,
		queue:     NewQueue(ids, cfg.Shuffle),
		stats:     NewStats(len(ids)),
	}
	s.presentHead()
	return s, nil
}

func (s *PracticeSession) Context() Context {
	return s.ctx
}

// Submit grades the marked options for the current question.
//
// The stats update and queue reinsertion happen together; the recorders are
// notified once, after the lock is released. An invalid submission leaves the
// session untouched.
func (s *PracticeSession) Submit(markedOptionIDs []string) (Feedback, error) {
	s.mu.Lock()

	if s.state != StateIdle {
		s.mu.Unlock()
		return Feedback{}, ErrNotIdle
	}
	q := s.questions[s.current]
	if err := validateMarked(q, markedOptionIDs); err != nil {
		s.mu.Unlock()
		return Feedback{}, err
	}

	verdict := s.cfg.Grader.Grade(q, markedOptionIDs)
	s.stats.Record(verdict.Correct)
	s.queue.Resolve(verdict.Correct)

	s.seq++
	fb := Feedback{
		QuestionID:  q.ID,
		Result:      progress.ResultOf(verdict.Correct),
		CorrectIDs:  verdict.CorrectIDs,
		Explanation: q.Explanation,
	}
	s.feedback = &fb
	s.state = StateAnswered
	s.armTimer()

	ev := progress.Event{
		SubmissionID: s.ctx.SessionID + ":" + strconv.Itoa(s.seq),
		UserID:       s.ctx.UserID,
		SetID:        s.ctx.SetID,
		QuestionID:   q.ID,
		Result:       fb.Result,
		At:           s.cfg.Now(),
	}
	s.mu.Unlock()

	for _, r := range s.cfg.Recorders {
		r.Record(ev)
	}
	return fb, nil
}

// Advance leaves the answered state: it presents the next head or marks the
// session complete when the round is drained.
func (s *PracticeSession) Advance() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAnswered {
		return s.snapshot(), ErrNotAnswered
	}
	s.disarmTimer()
	s.presentHead()
	return s.snapshot(), nil
}

// Reset reshuffles every question back into the round and zeroes the tally.
// History recorders are not notified.
func (s *PracticeSession) Reset() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.disarmTimer()
	s.queue.Reset()
	s.stats.Reset()
	s.presentHead()
	return s.snapshot()
}

// Close stops a pending auto-advance. The session stays readable.
func (s *PracticeSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarmTimer()
}

func (s *PracticeSession) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *PracticeSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PeekHead returns the id of the next question the queue will present.
func (s *PracticeSession) PeekHead() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.PeekHead()
}

// ── internals (callers hold mu) ─────────────────────────────────────────────

func (s *PracticeSession) presentHead() {
	s.feedback = nil
	head, ok := s.queue.PeekHead()
	if !ok {
		s.state = StateComplete
		s.current = ""
		return
	}
	s.state = StateIdle
	s.current = head
}

func (s *PracticeSession) snapshot() Snapshot {
	snap := Snapshot{
		Context:   s.ctx,
		State:     s.state,
		Stats:     s.stats,
		Remaining: s.queue.Remaining(),
	}
	if s.current != "" {
		q := s.questions[s.current]
		snap.Current = &q
	}
	if s.feedback != nil {
		fb := *s.feedback
		snap.Feedback = &fb
	}
	return snap
}

func (s *PracticeSession) armTimer() {
	if s.cfg.AutoAdvance <= 0 {
		return
	}
	s.timerGen++
	gen := s.timerGen
	s.timer = s.cfg.AfterFunc(s.cfg.AutoAdvance, func() {
		s.autoAdvance(gen)
	})
}

// disarmTimer also bumps the generation so a callback that already started
// sees it is stale.
func (s *PracticeSession) disarmTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerGen++
}

func (s *PracticeSession) autoAdvance(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.timerGen || s.state != StateAnswered {
		return
	}
	s.timer = nil
	s.presentHead()
}

func validateMarked(q studyset.Question, marked []string) error {
	if len(marked) == 0 {
		return fmt.Errorf("%w: no option marked", ErrInvalidSubmission)
	}
	for _, id := range marked {
		if !q.HasOption(id) {
			return fmt.Errorf("%w: option %q does not belong to question %s", ErrInvalidSubmission, id, q.ID)
		}
	}
	return nil
}
