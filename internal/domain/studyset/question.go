package studyset

import (
	"errors"
	"fmt"
	"sort"
)

type QuestionType string

const (
	TypeSingle QuestionType = "single"
	TypeMulti  QuestionType = "multi"
)

func (t QuestionType) Valid() bool {
	return t == TypeSingle || t == TypeMulti
}

// Option is one selectable answer. Immutable once loaded.
type Option struct {
	ID        string
	Text      string
	IsCorrect bool
}

type Question struct {
	ID          string
	Type        QuestionType
	Stem        string
	Options     []Option
	Explanation string
	SelectCount *int // only meaningful for multi

	// ingestion metadata, not used while studying
	Difficulty string
	Domain     string
	Tags       []string
}

// Data-integrity errors. These are raised at ingestion time only;
// the study engine assumes loaded questions already satisfy them.
var (
	ErrEmptyStem           = errors.New("question stem cannot be empty")
	ErrInvalidType         = errors.New("question type must be single or multi")
	ErrTooFewOptions       = errors.New("question needs at least two options")
	ErrDuplicateOption     = errors.New("duplicate option id")
	ErrNoCorrectOption     = errors.New("question has no correct option")
	ErrSingleCorrectCount  = errors.New("single question must have exactly one correct option")
	ErrSelectCountMismatch = errors.New("select_count does not match the number of correct options")
	ErrDuplicateQuestion   = errors.New("duplicate question id")
)

// Validate checks the invariants a question must hold before it is stored.
func (q *Question) Validate() error {
	if q.Stem == "" {
		return ErrEmptyStem
	}
	if !q.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, q.Type)
	}
	if len(q.Options) < 2 {
		return ErrTooFewOptions
	}

	seen := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		if _, dup := seen[o.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateOption, o.ID)
		}
		seen[o.ID] = struct{}{}
	}

	correct := len(q.CorrectIDs())
	switch {
	case correct == 0:
		return ErrNoCorrectOption
	case q.Type == TypeSingle && correct != 1:
		return ErrSingleCorrectCount
	case q.Type == TypeMulti && q.SelectCount != nil && *q.SelectCount != correct:
		return fmt.Errorf("%w: select_count=%d correct=%d", ErrSelectCountMismatch, *q.SelectCount, correct)
	}
	return nil
}

// CorrectIDs returns the sorted ids of the correct options.
func (q *Question) CorrectIDs() []string {
	ids := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		if o.IsCorrect {
			ids = append(ids, o.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

func (q *Question) HasOption(optionID string) bool {
	for _, o := range q.Options {
		if o.ID == optionID {
			return true
		}
	}
	return false
}
