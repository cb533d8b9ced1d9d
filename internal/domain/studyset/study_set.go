package studyset

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// StudySet is a named collection of questions studied as one session.
type StudySet struct {
	ID            string
	Title         string
	Description   string
	Version       string
	QuestionCount int
	Questions     []Question
}

func New(title string) *StudySet {
	return &StudySet{
		ID:        uuid.NewString(),
		Title:     title,
		Version:   "1.0",
		Questions: []Question{},
	}
}

// AddQuestion validates q and appends it to the set.
// A question without an ID gets a generated one.
func (s *StudySet) AddQuestion(q Question) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	for _, existing := range s.Questions {
		if existing.ID == q.ID {
			return fmt.Errorf("question %s: %w", q.ID, ErrDuplicateQuestion)
		}
	}
	if err := q.Validate(); err != nil {
		return fmt.Errorf("question %s: %w", q.ID, err)
	}
	s.Questions = append(s.Questions, q)
	s.QuestionCount = len(s.Questions)
	return nil
}

// QuestionIDs returns the ids in load order.
func (s *StudySet) QuestionIDs() []string {
	ids := make([]string, len(s.Questions))
	for i, q := range s.Questions {
		ids[i] = q.ID
	}
	return ids
}

var ErrEmptyTitle = errors.New("study set title cannot be empty")

func (s *StudySet) Validate() error {
	if s.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}
