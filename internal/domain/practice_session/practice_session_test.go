package practicesession_test

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	practicesession "github.com/studycards/backend/internal/domain/practice_session"
	"github.com/studycards/backend/internal/domain/progress"
	"github.com/studycards/backend/internal/domain/studyset"
)

// ── fakes ───────────────────────────────────────────────────────────────────

type captureRecorder struct {
	mu     sync.Mutex
	events []progress.Event
}

func (c *captureRecorder) Record(ev progress.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *captureRecorder) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

type fakeTimer struct{ stopped bool }

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// manualClock hands out timers that fire only when the test says so.
type manualClock struct {
	fns    []func()
	timers []*fakeTimer
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) practicesession.Timer {
	t := &fakeTimer{}
	c.fns = append(c.fns, f)
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) fireLast() {
	c.fns[len(c.fns)-1]()
}

func noShuffle(int, func(i, j int)) {}

// ── helpers ─────────────────────────────────────────────────────────────────

func questionA() studyset.Question {
	return studyset.Question{
		ID:   "A",
		Type: studyset.TypeSingle,
		Stem: "Which HTTP method is idempotent by definition?",
		Options: []studyset.Option{
			{ID: "o1", Text: "POST"},
			{ID: "o2", Text: "PUT", IsCorrect: true},
			{ID: "o3", Text: "PATCH"},
		},
	}
}

func questionB() studyset.Question {
	n := 2
	return studyset.Question{
		ID:          "B",
		Type:        studyset.TypeMulti,
		Stem:        "Which are prime numbers? (select 2)",
		SelectCount: &n,
		Options: []studyset.Option{
			{ID: "p2", Text: "2", IsCorrect: true},
			{ID: "p3", Text: "3", IsCorrect: true},
			{ID: "p4", Text: "4"},
		},
	}
}

func numbered(n int) []studyset.Question {
	qs := make([]studyset.Question, n)
	for i := range qs {
		id := string(rune('a' + i))
		qs[i] = studyset.Question{
			ID:   id,
			Type: studyset.TypeSingle,
			Stem: "Question " + id,
			Options: []studyset.Option{
				{ID: id + "-ok", IsCorrect: true},
				{ID: id + "-no"},
			},
		}
	}
	return qs
}

func newSession(t *testing.T, qs []studyset.Question, rec practicesession.Recorder) *practicesession.PracticeSession {
	t.Helper()
	cfg := practicesession.SessionConfig{
		Shuffle: noShuffle,
	}
	if rec != nil {
		cfg.Recorders = []practicesession.Recorder{rec}
	}
	s, err := practicesession.New(practicesession.Context{
		SessionID: "sess1",
		UserID:    "user1",
		SetID:     "set_demo",
	}, qs, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func currentID(t *testing.T, s *practicesession.PracticeSession) string {
	t.Helper()
	snap := s.Snapshot()
	if snap.Current == nil {
		t.Fatal("expected a current question")
	}
	return snap.Current.ID
}

func mustSubmit(t *testing.T, s *practicesession.PracticeSession, ids ...string) practicesession.Feedback {
	t.Helper()
	fb, err := s.Submit(ids)
	if err != nil {
		t.Fatalf("submit %v: %v", ids, err)
	}
	return fb
}

func mustAdvance(t *testing.T, s *practicesession.PracticeSession) practicesession.Snapshot {
	t.Helper()
	snap, err := s.Advance()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	return snap
}

// ── tests ───────────────────────────────────────────────────────────────────

func TestNew_RejectsEmptyAndDuplicates(t *testing.T) {
	_, err := practicesession.New(practicesession.Context{}, nil, practicesession.DefaultConfig())
	if !errors.Is(err, practicesession.ErrNoQuestions) {
		t.Errorf("expected ErrNoQuestions, got %v", err)
	}

	_, err = practicesession.New(practicesession.Context{}, []studyset.Question{questionA(), questionA()}, practicesession.DefaultConfig())
	if !errors.Is(err, practicesession.ErrDuplicateQuestion) {
		t.Errorf("expected ErrDuplicateQuestion, got %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := practicesession.DefaultConfig()

	if cfg.AutoAdvance != 5*time.Second {
		t.Errorf("expected 5s auto-advance, got %v", cfg.AutoAdvance)
	}
	if cfg.Grader == nil || cfg.Shuffle == nil || cfg.AfterFunc == nil {
		t.Error("expected grader, shuffle and timer to be set")
	}
}

func TestTwoQuestionScenario(t *testing.T) {
	rec := &captureRecorder{}
	s := newSession(t, []studyset.Question{questionA(), questionB()}, rec)

	if got := currentID(t, s); got != "A" {
		t.Fatalf("expected A first, got %s", got)
	}

	fb := mustSubmit(t, s, "o1")
	if fb.Result != progress.ResultWrong {
		t.Fatalf("expected wrong, got %s", fb.Result)
	}
	snap := s.Snapshot()
	if snap.State != practicesession.StateAnswered {
		t.Errorf("expected answered, got %s", snap.State)
	}
	if head, _ := s.PeekHead(); head != "B" {
		t.Errorf("expected queue head B, got %s", head)
	}
	if snap.Stats.Answered != 1 || snap.Stats.Correct != 0 || snap.Stats.Wrong != 1 || snap.Stats.Pct() != 50 {
		t.Errorf("unexpected stats after first answer: %+v pct=%d", snap.Stats, snap.Stats.Pct())
	}

	snap = mustAdvance(t, s)
	if snap.Current.ID != "B" {
		t.Fatalf("expected B, got %s", snap.Current.ID)
	}

	fb = mustSubmit(t, s, "p3", "p2")
	if fb.Result != progress.ResultCorrect {
		t.Fatalf("expected correct, got %s", fb.Result)
	}
	snap = s.Snapshot()
	if snap.Remaining != 1 {
		t.Errorf("expected one question left in round, got %d", snap.Remaining)
	}
	if snap.Stats.Answered != 2 || snap.Stats.Correct != 1 || snap.Stats.Wrong != 1 {
		t.Errorf("unexpected stats after second answer: %+v", snap.Stats)
	}

	snap = mustAdvance(t, s)
	if snap.Current.ID != "A" {
		t.Fatalf("expected A again, got %s", snap.Current.ID)
	}

	mustSubmit(t, s, "o2")
	snap = mustAdvance(t, s)

	if snap.State != practicesession.StateComplete {
		t.Fatalf("expected complete, got %s", snap.State)
	}
	if snap.Stats.Answered != 3 || snap.Remaining != 0 || snap.Current != nil {
		t.Errorf("unexpected final snapshot: %+v", snap)
	}
	if rec.count() != 3 {
		t.Errorf("expected 3 recorded events, got %d", rec.count())
	}
}

func TestSubmit_RecordsEvent(t *testing.T) {
	rec := &captureRecorder{}
	s := newSession(t, []studyset.Question{questionA()}, rec)

	mustSubmit(t, s, "o2")

	ev := rec.events[0]
	if ev.UserID != "user1" || ev.SetID != "set_demo" || ev.QuestionID != "A" || ev.Result != progress.ResultCorrect {
		t.Errorf("unexpected event: %+v", ev)
	}
	if ev.SubmissionID == "" {
		t.Error("expected submission id")
	}
}

func TestSubmit_InvalidLeavesStateIdle(t *testing.T) {
	rec := &captureRecorder{}
	s := newSession(t, []studyset.Question{questionA(), questionB()}, rec)

	for _, marked := range [][]string{nil, {}, {"p2"}, {"o2", "zzz"}} {
		_, err := s.Submit(marked)
		if !errors.Is(err, practicesession.ErrInvalidSubmission) {
			t.Errorf("marked %v: expected ErrInvalidSubmission, got %v", marked, err)
		}
	}

	snap := s.Snapshot()
	if snap.State != practicesession.StateIdle || snap.Stats.Answered != 0 {
		t.Errorf("expected untouched idle session, got %+v", snap)
	}
	if rec.count() != 0 {
		t.Errorf("expected no recorded events, got %d", rec.count())
	}
}

func TestSubmit_TwiceIsRejected(t *testing.T) {
	s := newSession(t, []studyset.Question{questionA(), questionB()}, nil)
	mustSubmit(t, s, "o2")

	if _, err := s.Submit([]string{"o2"}); !errors.Is(err, practicesession.ErrNotIdle) {
		t.Errorf("expected ErrNotIdle, got %v", err)
	}
	if s.Snapshot().Stats.Answered != 1 {
		t.Error("expected second submission not to count")
	}
}

func TestAdvance_FromIdleIsRejected(t *testing.T) {
	s := newSession(t, []studyset.Question{questionA()}, nil)

	if _, err := s.Advance(); !errors.Is(err, practicesession.ErrNotAnswered) {
		t.Errorf("expected ErrNotAnswered, got %v", err)
	}
}

func TestWrongAnswer_ReappearsAfterTwoOthers(t *testing.T) {
	s := newSession(t, numbered(5), nil)

	first := currentID(t, s)
	mustSubmit(t, s, first+"-no")
	mustAdvance(t, s)

	var order []string
	for i := 0; i < 3; i++ {
		id := currentID(t, s)
		order = append(order, id)
		mustSubmit(t, s, id+"-ok")
		mustAdvance(t, s)
	}

	if order[2] != first {
		t.Errorf("expected %s third after the miss, got order %v", first, order)
	}
}

func TestTermination_RandomSessions(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for run := 0; run < 20; run++ {
		n := 1 + rng.Intn(8)
		s, err := practicesession.New(practicesession.Context{SessionID: "s"}, numbered(n), practicesession.SessionConfig{
			Shuffle: rng.Shuffle,
		})
		if err != nil {
			t.Fatal(err)
		}

		attempts := 0
		for s.State() != practicesession.StateComplete {
			id := currentID(t, s)
			suffix := "-ok"
			if rng.Intn(2) == 0 {
				suffix = "-no"
			}
			mustSubmit(t, s, id+suffix)
			mustAdvance(t, s)
			attempts++
			if attempts > 10000 {
				t.Fatal("session did not terminate")
			}
		}

		snap := s.Snapshot()
		if snap.Stats.Correct != n {
			t.Errorf("run %d: expected %d correct, got %d", run, n, snap.Stats.Correct)
		}
		if snap.Stats.Answered < n || snap.Stats.Answered != attempts {
			t.Errorf("run %d: answered=%d attempts=%d n=%d", run, snap.Stats.Answered, attempts, n)
		}
		if snap.Remaining != 0 {
			t.Errorf("run %d: expected empty round", run)
		}
	}
}

func TestReset_FromAnyState(t *testing.T) {
	rec := &captureRecorder{}
	s := newSession(t, numbered(3), rec)

	// answered state
	mustSubmit(t, s, "a-no")
	snap := s.Reset()
	assertFresh(t, snap, 3)

	// complete state
	for s.State() != practicesession.StateComplete {
		id := currentID(t, s)
		mustSubmit(t, s, id+"-ok")
		mustAdvance(t, s)
	}
	events := rec.count()
	snap = s.Reset()
	assertFresh(t, snap, 3)

	if rec.count() != events {
		t.Error("expected reset not to notify recorders")
	}
}

func assertFresh(t *testing.T, snap practicesession.Snapshot, n int) {
	t.Helper()
	if snap.State != practicesession.StateIdle {
		t.Errorf("expected idle, got %s", snap.State)
	}
	if snap.Stats.Answered != 0 || snap.Stats.Correct != 0 || snap.Stats.Wrong != 0 {
		t.Errorf("expected zeroed stats, got %+v", snap.Stats)
	}
	if snap.Remaining != n || snap.Stats.Total != n {
		t.Errorf("expected %d questions back in the queue, got %d", n, snap.Remaining)
	}
}

func TestAutoAdvance_TimerFires(t *testing.T) {
	clock := &manualClock{}
	s, _ := practicesession.New(practicesession.Context{}, []studyset.Question{questionA(), questionB()}, practicesession.SessionConfig{
		Shuffle:     noShuffle,
		AutoAdvance: 5 * time.Second,
		AfterFunc:   clock.AfterFunc,
	})

	mustSubmit(t, s, "o2")
	if len(clock.fns) != 1 {
		t.Fatalf("expected timer armed on answer, got %d", len(clock.fns))
	}

	clock.fireLast()

	snap := s.Snapshot()
	if snap.State != practicesession.StateIdle || snap.Current.ID != "B" {
		t.Errorf("expected auto-advance to B, got %s / %v", snap.State, snap.Current)
	}
}

func TestAutoAdvance_ManualAdvanceDisarms(t *testing.T) {
	clock := &manualClock{}
	s, _ := practicesession.New(practicesession.Context{}, numbered(3), practicesession.SessionConfig{
		Shuffle:     noShuffle,
		AutoAdvance: time.Second,
		AfterFunc:   clock.AfterFunc,
	})

	mustSubmit(t, s, "a-ok")
	mustAdvance(t, s)
	if !clock.timers[0].stopped {
		t.Error("expected timer to be stopped by manual advance")
	}

	mustSubmit(t, s, "b-ok")
	// a stale callback from the first answer must not advance the second
	clock.fns[0]()

	if s.State() != practicesession.StateAnswered {
		t.Errorf("expected stale timer to be ignored, got %s", s.State())
	}
}

func TestAutoAdvance_Disabled(t *testing.T) {
	clock := &manualClock{}
	s, _ := practicesession.New(practicesession.Context{}, numbered(2), practicesession.SessionConfig{
		Shuffle:   noShuffle,
		AfterFunc: clock.AfterFunc,
	})

	mustSubmit(t, s, "a-ok")

	if len(clock.fns) != 0 {
		t.Error("expected no timer when auto-advance is zero")
	}
}

func TestStats_Percentages(t *testing.T) {
	st := practicesession.NewStats(3)
	if st.Pct() != 0 || st.Accuracy() != 0 {
		t.Errorf("expected zero percentages, got %d / %d", st.Pct(), st.Accuracy())
	}

	st.Record(true)
	st.Record(false)

	if st.Pct() != 67 {
		t.Errorf("expected pct 67, got %d", st.Pct())
	}
	if st.Accuracy() != 50 {
		t.Errorf("expected accuracy 50, got %d", st.Accuracy())
	}

	st.Reset()
	if st.Total != 3 || st.Answered != 0 {
		t.Errorf("expected reset to keep total only, got %+v", st)
	}
}
