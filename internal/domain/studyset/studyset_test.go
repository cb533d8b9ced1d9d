package studyset_test

import (
	"errors"
	"testing"

	"github.com/studycards/backend/internal/domain/studyset"
)

func intPtr(v int) *int { return &v }

func singleQuestion(id string) studyset.Question {
	return studyset.Question{
		ID:   id,
		Type: studyset.TypeSingle,
		Stem: "Which HTTP method is idempotent by definition?",
		Options: []studyset.Option{
			{ID: "o1", Text: "POST"},
			{ID: "o2", Text: "PUT", IsCorrect: true},
			{ID: "o3", Text: "PATCH"},
		},
	}
}

func TestNewStudySet(t *testing.T) {
	set := studyset.New("Demo CSA")

	if set.Title != "Demo CSA" {
		t.Errorf("expected title %q, got %q", "Demo CSA", set.Title)
	}
	if set.ID == "" {
		t.Error("expected non-empty ID")
	}
	if len(set.Questions) != 0 {
		t.Errorf("expected empty set, got %d questions", len(set.Questions))
	}
}

func TestAddQuestion(t *testing.T) {
	set := studyset.New("Demo CSA")

	if err := set.AddQuestion(singleQuestion("q1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.QuestionCount != 1 {
		t.Errorf("expected count 1, got %d", set.QuestionCount)
	}
}

func TestAddQuestion_GeneratesID(t *testing.T) {
	set := studyset.New("Demo CSA")

	if err := set.AddQuestion(singleQuestion("")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Questions[0].ID == "" {
		t.Error("expected generated question ID")
	}
}

func TestAddQuestion_Duplicate(t *testing.T) {
	set := studyset.New("Demo CSA")
	_ = set.AddQuestion(singleQuestion("q1"))

	err := set.AddQuestion(singleQuestion("q1"))
	if !errors.Is(err, studyset.ErrDuplicateQuestion) {
		t.Fatalf("expected ErrDuplicateQuestion, got %v", err)
	}
	if len(set.Questions) != 1 {
		t.Error("expected no question added after failure")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *studyset.Question)
		want   error
	}{
		{"valid single", func(q *studyset.Question) {}, nil},
		{"empty stem", func(q *studyset.Question) { q.Stem = "" }, studyset.ErrEmptyStem},
		{"bad type", func(q *studyset.Question) { q.Type = "essay" }, studyset.ErrInvalidType},
		{"one option", func(q *studyset.Question) { q.Options = q.Options[:1] }, studyset.ErrTooFewOptions},
		{"duplicate option", func(q *studyset.Question) { q.Options[1].ID = "o1" }, studyset.ErrDuplicateOption},
		{"no correct", func(q *studyset.Question) { q.Options[1].IsCorrect = false }, studyset.ErrNoCorrectOption},
		{"single two correct", func(q *studyset.Question) { q.Options[0].IsCorrect = true }, studyset.ErrSingleCorrectCount},
		{"multi open size", func(q *studyset.Question) {
			q.Type = studyset.TypeMulti
			q.Options[0].IsCorrect = true
		}, nil},
		{"multi count matches", func(q *studyset.Question) {
			q.Type = studyset.TypeMulti
			q.Options[0].IsCorrect = true
			q.SelectCount = intPtr(2)
		}, nil},
		{"multi count mismatch", func(q *studyset.Question) {
			q.Type = studyset.TypeMulti
			q.SelectCount = intPtr(2)
		}, studyset.ErrSelectCountMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := singleQuestion("q1")
			tt.mutate(&q)
			err := q.Validate()
			if tt.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCorrectIDs_Sorted(t *testing.T) {
	q := studyset.Question{
		Type: studyset.TypeMulti,
		Options: []studyset.Option{
			{ID: "p5"}, {ID: "p3", IsCorrect: true}, {ID: "p2", IsCorrect: true},
		},
	}

	got := q.CorrectIDs()
	if len(got) != 2 || got[0] != "p2" || got[1] != "p3" {
		t.Errorf("expected [p2 p3], got %v", got)
	}
}
