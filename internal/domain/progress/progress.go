package progress

import (
	"errors"
	"math"
	"time"
)

type Result string

const (
	ResultCorrect Result = "correct"
	ResultWrong   Result = "wrong"
)

var ErrInvalidResult = errors.New("result must be correct or wrong")

func ParseResult(s string) (Result, error) {
	switch Result(s) {
	case ResultCorrect, ResultWrong:
		return Result(s), nil
	}
	return "", ErrInvalidResult
}

func ResultOf(correct bool) Result {
	if correct {
		return ResultCorrect
	}
	return ResultWrong
}

// Event is one graded submission as seen by the history sinks.
// SubmissionID makes recording idempotent.
type Event struct {
	SubmissionID string
	UserID       string
	SetID        string
	QuestionID   string
	Result       Result
	At           time.Time
}

// UserProgress is the running history of one user on one question.
// Display only: nothing here feeds back into queue ordering.
type UserProgress struct {
	UserID       string
	SetID        string
	QuestionID   string
	CorrectCount int
	WrongCount   int
	LastResult   Result
	LastSeen     time.Time
	Streak       int // consecutive correct answers
}

// Apply folds one result into the running history.
func (p *UserProgress) Apply(r Result, at time.Time) {
	if r == ResultCorrect {
		p.CorrectCount++
		p.Streak++
	} else {
		p.WrongCount++
		p.Streak = 0
	}
	p.LastResult = r
	p.LastSeen = at
}

// SetSummary aggregates the history of a user over one study set.
type SetSummary struct {
	TotalQuestions     int     `json:"total_questions"`
	CompletedQuestions int     `json:"completed_questions"`
	CorrectAnswers     int     `json:"correct_answers"`
	WrongAnswers       int     `json:"wrong_answers"`
	Accuracy           int     `json:"accuracy"`
	AverageStreak      float64 `json:"average_streak"`
}

// Summarize computes the set summary. Accuracy is a rounded percentage,
// average streak is rounded to one decimal.
func Summarize(rows []UserProgress, totalQuestions int) SetSummary {
	s := SetSummary{
		TotalQuestions:     totalQuestions,
		CompletedQuestions: len(rows),
	}
	streaks := 0
	for _, p := range rows {
		s.CorrectAnswers += p.CorrectCount
		s.WrongAnswers += p.WrongCount
		streaks += p.Streak
	}

	if answers := s.CorrectAnswers + s.WrongAnswers; answers > 0 {
		s.Accuracy = int(math.Round(float64(s.CorrectAnswers) / float64(answers) * 100))
	}
	if len(rows) > 0 {
		s.AverageStreak = math.Round(float64(streaks)/float64(len(rows))*10) / 10
	}
	return s
}
