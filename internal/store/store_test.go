package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/studycards/backend/internal/domain/progress"
	"github.com/studycards/backend/internal/domain/studyset"
	"github.com/studycards/backend/internal/domain/user"
	"github.com/studycards/backend/internal/store"
)

func openTestStore(t *testing.T) *store.SQLStore {
	t.Helper()
	s, err := store.Open(context.Background(), store.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	// identity order keeps option assertions deterministic
	s.SetShuffle(func(n int, swap func(i, j int)) {})
	t.Cleanup(func() { s.Close() })
	return s
}

func two() *int { n := 2; return &n }

func sampleSet(t *testing.T) *studyset.StudySet {
	t.Helper()
	set := studyset.New("Networking Basics")
	set.Description = "HTTP and friends"
	if err := set.AddQuestion(studyset.Question{
		ID:   "q1",
		Type: studyset.TypeSingle,
		Stem: "Which method is idempotent?",
		Options: []studyset.Option{
			{ID: "o1", Text: "POST"},
			{ID: "o2", Text: "PUT", IsCorrect: true},
		},
		Explanation: "PUT replaces the resource.",
		Tags:        []string{"http"},
	}); err != nil {
		t.Fatalf("add q1: %v", err)
	}
	if err := set.AddQuestion(studyset.Question{
		ID:          "q2",
		Type:        studyset.TypeMulti,
		Stem:        "Pick the primes",
		SelectCount: two(),
		Options: []studyset.Option{
			{ID: "p2", Text: "2", IsCorrect: true},
			{ID: "p3", Text: "3", IsCorrect: true},
			{ID: "p4", Text: "4"},
		},
	}); err != nil {
		t.Fatalf("add q2: %v", err)
	}
	return set
}

func TestStore_UpsertAndLoadStudySession(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	res, err := s.UpsertStudySet(ctx, sampleSet(t))
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if res.QuestionsAdded != 2 || res.QuestionsUpdated != 0 {
		t.Errorf("expected 2 added, got %+v", res)
	}

	loaded, err := s.GetStudySession(ctx, res.SetID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Title != "Networking Basics" || loaded.QuestionCount != 2 {
		t.Fatalf("unexpected set: %+v", loaded)
	}

	q1 := loaded.Questions[0]
	if q1.ID != "q1" || len(q1.Options) != 2 || !q1.Options[1].IsCorrect {
		t.Errorf("unexpected q1: %+v", q1)
	}
	if len(q1.Tags) != 1 || q1.Tags[0] != "http" {
		t.Errorf("expected tags to round-trip, got %v", q1.Tags)
	}
	if q1.SelectCount != nil {
		t.Errorf("expected nil select count on single question")
	}

	q2 := loaded.Questions[1]
	if q2.SelectCount == nil || *q2.SelectCount != 2 {
		t.Errorf("expected select count 2, got %v", q2.SelectCount)
	}
	if got := q2.CorrectIDs(); len(got) != 2 || got[0] != "p2" || got[1] != "p3" {
		t.Errorf("unexpected correct ids %v", got)
	}
}

func TestStore_UpsertMatchesByTitleAndQuestionID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.UpsertStudySet(ctx, sampleSet(t))
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	again := sampleSet(t)
	again.Questions[0].Stem = "Which method is safe to retry?"
	again.Questions[0].Options = append(again.Questions[0].Options, studyset.Option{ID: "o3", Text: "PATCH"})
	if err := again.AddQuestion(studyset.Question{
		ID:      "q3",
		Type:    studyset.TypeSingle,
		Stem:    "Default HTTPS port?",
		Options: []studyset.Option{{ID: "a", Text: "80"}, {ID: "b", Text: "443", IsCorrect: true}},
	}); err != nil {
		t.Fatalf("add q3: %v", err)
	}

	second, err := s.UpsertStudySet(ctx, again)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.SetID != first.SetID {
		t.Errorf("expected same set id %s, got %s", first.SetID, second.SetID)
	}
	if second.QuestionsAdded != 1 || second.QuestionsUpdated != 2 {
		t.Errorf("expected 1 added 2 updated, got %+v", second)
	}

	loaded, err := s.GetStudySession(ctx, first.SetID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.QuestionCount != 3 {
		t.Fatalf("expected 3 questions, got %d", loaded.QuestionCount)
	}
	if loaded.Questions[0].Stem != "Which method is safe to retry?" || len(loaded.Questions[0].Options) != 3 {
		t.Errorf("expected q1 updated, got %+v", loaded.Questions[0])
	}
}

func TestStore_ListStudySetsCountsQuestions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.UpsertStudySet(ctx, sampleSet(t)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	sets, err := s.ListStudySets(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sets) != 1 || sets[0].QuestionCount != 2 {
		t.Errorf("unexpected sets: %+v", sets)
	}
}

func TestStore_GetStudySessionNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetStudySession(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ShuffleAppliesToOptions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	res, err := s.UpsertStudySet(ctx, sampleSet(t))
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	reverse := func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}
	s.SetShuffle(reverse)

	loaded, err := s.GetStudySession(ctx, res.SetID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Questions[0].Options[0].ID != "o2" {
		t.Errorf("expected reversed options, got %+v", loaded.Questions[0].Options)
	}
	if loaded.Questions[0].ID != "q1" {
		t.Errorf("question order must not be shuffled")
	}
}

func TestStore_RecordProgressIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	at := time.UnixMilli(1_700_000_000_000).UTC()

	events := []progress.Event{
		{SubmissionID: "s1:1", UserID: "u1", SetID: "set", QuestionID: "q1", Result: progress.ResultCorrect, At: at},
		{SubmissionID: "s1:2", UserID: "u1", SetID: "set", QuestionID: "q1", Result: progress.ResultCorrect, At: at},
		{SubmissionID: "s1:2", UserID: "u1", SetID: "set", QuestionID: "q1", Result: progress.ResultCorrect, At: at},
		{SubmissionID: "s1:3", UserID: "u1", SetID: "set", QuestionID: "q1", Result: progress.ResultWrong, At: at.Add(time.Second)},
	}
	applied := 0
	for _, ev := range events {
		ok, err := s.RecordProgress(ctx, ev)
		if err != nil {
			t.Fatalf("record %s: %v", ev.SubmissionID, err)
		}
		if ok {
			applied++
		}
	}
	if applied != 3 {
		t.Errorf("expected 3 applied events, got %d", applied)
	}

	rows, err := s.ListProgress(ctx, "u1", "set")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	p := rows[0]
	if p.CorrectCount != 2 || p.WrongCount != 1 {
		t.Errorf("expected 2 correct 1 wrong, got %+v", p)
	}
	if p.Streak != 0 || p.LastResult != progress.ResultWrong {
		t.Errorf("expected streak reset by wrong answer, got %+v", p)
	}
	if !p.LastSeen.Equal(at.Add(time.Second)) {
		t.Errorf("expected last seen %v, got %v", at.Add(time.Second), p.LastSeen)
	}
}

func TestStore_DeleteProgressScopesBySet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	for i, setID := range []string{"a", "a", "b"} {
		ev := progress.Event{
			SubmissionID: setID + ":" + string(rune('0'+i)),
			UserID:       "u1",
			SetID:        setID,
			QuestionID:   "q" + string(rune('0'+i)),
			Result:       progress.ResultCorrect,
			At:           now,
		}
		if _, err := s.RecordProgress(ctx, ev); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	removed, err := s.DeleteProgress(ctx, "u1", "a", now)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}

	rows, err := s.ListProgress(ctx, "u1", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].SetID != "b" {
		t.Errorf("expected only set b to remain, got %+v", rows)
	}
}

func TestStore_RecordProgressRefusesEventsBeforeReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	resetAt := time.UnixMilli(1_700_000_000_000).UTC()

	if _, err := s.DeleteProgress(ctx, "u1", "a", resetAt); err != nil {
		t.Fatalf("delete: %v", err)
	}

	tests := []struct {
		name    string
		ev      progress.Event
		applied bool
	}{
		{"before reset", progress.Event{SubmissionID: "s:1", UserID: "u1", SetID: "a", QuestionID: "q1", At: resetAt.Add(-time.Second)}, false},
		{"at reset", progress.Event{SubmissionID: "s:2", UserID: "u1", SetID: "a", QuestionID: "q1", At: resetAt}, true},
		{"other set", progress.Event{SubmissionID: "s:3", UserID: "u1", SetID: "b", QuestionID: "q1", At: resetAt.Add(-time.Second)}, true},
		{"other user", progress.Event{SubmissionID: "s:4", UserID: "u2", SetID: "a", QuestionID: "q1", At: resetAt.Add(-time.Second)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.ev.Result = progress.ResultCorrect
			applied, err := s.RecordProgress(ctx, tt.ev)
			if err != nil {
				t.Fatalf("record: %v", err)
			}
			if applied != tt.applied {
				t.Errorf("expected applied=%v, got %v", tt.applied, applied)
			}
		})
	}

	// a reset of every set covers set b as well
	if _, err := s.DeleteProgress(ctx, "u1", "", resetAt.Add(time.Minute)); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	late := progress.Event{SubmissionID: "s:5", UserID: "u1", SetID: "b", QuestionID: "q2", Result: progress.ResultWrong, At: resetAt.Add(time.Second)}
	if applied, err := s.RecordProgress(ctx, late); err != nil || applied {
		t.Errorf("expected event refused after full reset, got applied=%v err=%v", applied, err)
	}
	rows, err := s.ListProgress(ctx, "u1", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no history for u1, got %+v", rows)
	}
}

func TestStore_CreateUserConcurrentSameEmail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.CreateUser(ctx, user.New("race@example.com", "Racer", "hash", user.RoleUser))
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case !errors.Is(err, store.ErrConflict):
			t.Errorf("expected ErrConflict, got %v", err)
		}
	}
	if created != 1 {
		t.Errorf("expected exactly one account, got %d", created)
	}
}

func TestStore_UsersAndAuthSessions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u := user.New("ada@example.com", "Ada", "hash", user.RoleUser)
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	dup := user.New("ada@example.com", "Other", "hash", user.RoleUser)
	if err := s.CreateUser(ctx, dup); !errors.Is(err, store.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}

	got, err := s.GetUserByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != u.ID || got.Name != "Ada" {
		t.Errorf("unexpected user %+v", got)
	}

	now := time.Now()
	live := &user.AuthSession{ID: "s1", UserID: u.ID, TokenHash: "live", ExpiresAt: now.Add(time.Hour)}
	stale := &user.AuthSession{ID: "s2", UserID: u.ID, TokenHash: "stale", ExpiresAt: now.Add(-time.Hour)}
	for _, as := range []*user.AuthSession{live, stale} {
		if err := s.SaveAuthSession(ctx, as); err != nil {
			t.Fatalf("save session: %v", err)
		}
	}

	if _, err := s.GetAuthSession(ctx, "live", now); err != nil {
		t.Errorf("expected live session, got %v", err)
	}
	if _, err := s.GetAuthSession(ctx, "stale", now); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected expired session to be hidden, got %v", err)
	}

	n, err := s.DeleteExpiredAuthSessions(ctx, now)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 expired session removed, got %d", n)
	}

	if err := s.DeleteAuthSession(ctx, "live"); err != nil {
		t.Errorf("delete live: %v", err)
	}
	if err := s.DeleteAuthSession(ctx, "live"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
