// simulation/simulation.go
package simulation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/studycards/backend/internal/domain/studyset"
	"github.com/studycards/backend/internal/store"
)

const (
	DemoSetID    = "set_demo"
	DemoSetTitle = "Demo CSA"
)

// Seeder is the part of the store the demo seed needs.
type Seeder interface {
	GetStudySetByTitle(ctx context.Context, title string) (*studyset.StudySet, error)
	UpsertStudySet(ctx context.Context, set *studyset.StudySet) (*store.UpsertResult, error)
}

// DemoSet returns the two-question demo set: one single choice question and
// one multi choice question that needs two marks.
func DemoSet() *studyset.StudySet {
	selectTwo := 2
	return &studyset.StudySet{
		ID:          DemoSetID,
		Title:       DemoSetTitle,
		Description: "Computer science warm-up questions",
		Version:     "1.0",
		Questions: []studyset.Question{
			{
				ID:          "q_http_idempotent",
				Type:        studyset.TypeSingle,
				Stem:        "Which HTTP method is idempotent by definition?",
				Explanation: "PUT is idempotent: repeating the request has the same effect as sending it once.",
				Options: []studyset.Option{
					{ID: "o1", Text: "POST"},
					{ID: "o2", Text: "PUT", IsCorrect: true},
					{ID: "o3", Text: "PATCH"},
					{ID: "o4", Text: "CONNECT"},
				},
			},
			{
				ID:          "q_primes",
				Type:        studyset.TypeMulti,
				Stem:        "Which of these are prime numbers? (select 2)",
				Explanation: "2 and 3 are the primes among the listed options.",
				SelectCount: &selectTwo,
				Options: []studyset.Option{
					{ID: "p2", Text: "2", IsCorrect: true},
					{ID: "p3", Text: "3", IsCorrect: true},
					{ID: "p4", Text: "4"},
					{ID: "p5", Text: "5"},
				},
			},
		},
		QuestionCount: 2,
	}
}

// SeedDemo stores the demo set unless a set with its title already exists.
// It reports whether anything was written.
func SeedDemo(ctx context.Context, s Seeder, logger *slog.Logger) (bool, error) {
	_, err := s.GetStudySetByTitle(ctx, DemoSetTitle)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	set := DemoSet()
	for i := range set.Questions {
		if err := set.Questions[i].Validate(); err != nil {
			return false, err
		}
	}
	res, err := s.UpsertStudySet(ctx, set)
	if err != nil {
		return false, err
	}
	logger.Info("demo set seeded", "set_id", res.SetID, "questions", res.QuestionsAdded)
	return true, nil
}
