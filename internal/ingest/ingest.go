// Package ingest turns uploaded question documents into validated study sets.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/studycards/backend/internal/domain/studyset"
)

// ErrInvalidDocument wraps every rejection so callers can map it to a
// client error.
var ErrInvalidDocument = errors.New("invalid question document")

// Document is the JSON upload format.
type Document struct {
	Certification string        `json:"certification"`
	Description   string        `json:"description"`
	Version       string        `json:"version"`
	Questions     []QuestionDoc `json:"questions"`
}

type QuestionDoc struct {
	ID             string   `json:"id"`
	Question       string   `json:"question"`
	Type           string   `json:"type,omitempty"`
	Options        []string `json:"options"`
	CorrectAnswer  *int     `json:"correct_answer,omitempty"`  // 0-based
	CorrectAnswers []int    `json:"correct_answers,omitempty"` // 0-based
	SelectCount    *int     `json:"select_count,omitempty"`
	Explanation    string   `json:"explanation"`
	Difficulty     string   `json:"difficulty"`
	Tags           []string `json:"tags"`
	Domain         string   `json:"domain"`
}

// ParseJSON decodes and validates a JSON document.
func ParseJSON(r io.Reader) (*studyset.StudySet, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc.Build()
}

// Build validates the document and converts it into a study set. The first
// invalid question rejects the whole document.
func (d *Document) Build() (*studyset.StudySet, error) {
	title := strings.TrimSpace(d.Certification)
	if title == "" {
		return nil, fmt.Errorf("%w: certification is required", ErrInvalidDocument)
	}
	if len(d.Questions) == 0 {
		return nil, fmt.Errorf("%w: questions are required", ErrInvalidDocument)
	}

	set := studyset.New(title)
	set.Description = d.Description
	if d.Version != "" {
		set.Version = d.Version
	}

	for i, qd := range d.Questions {
		q, err := qd.toQuestion()
		if err == nil {
			err = set.AddQuestion(q)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: question %s: %v", ErrInvalidDocument, qd.label(i), err)
		}
	}
	return set, nil
}

func (qd QuestionDoc) label(i int) string {
	if qd.ID != "" {
		return qd.ID
	}
	return "#" + strconv.Itoa(i+1)
}

func (qd QuestionDoc) toQuestion() (studyset.Question, error) {
	correct := qd.CorrectAnswers
	if len(correct) == 0 && qd.CorrectAnswer != nil {
		correct = []int{*qd.CorrectAnswer}
	}
	qt, err := parseType(qd.Type, len(qd.CorrectAnswers) > 0)
	if err != nil {
		return studyset.Question{}, err
	}

	options, err := buildOptions(qd.Options, correct)
	if err != nil {
		return studyset.Question{}, err
	}

	q := studyset.Question{
		ID:          strings.TrimSpace(qd.ID),
		Type:        qt,
		Stem:        strings.TrimSpace(qd.Question),
		Options:     options,
		Explanation: qd.Explanation,
		Difficulty:  qd.Difficulty,
		Domain:      qd.Domain,
		Tags:        qd.Tags,
	}
	if qt == studyset.TypeMulti {
		q.SelectCount = qd.SelectCount
	}
	return q, nil
}

// parseType maps the loose type names seen in uploads. A blank type is
// single unless a list of correct answers was given.
func parseType(raw string, hasAnswerList bool) (studyset.QuestionType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		if hasAnswerList {
			return studyset.TypeMulti, nil
		}
		return studyset.TypeSingle, nil
	case "single", "single_choice":
		return studyset.TypeSingle, nil
	case "multi", "multiple", "multiple_choice":
		return studyset.TypeMulti, nil
	}
	return "", fmt.Errorf("%w: %q", studyset.ErrInvalidType, raw)
}

// buildOptions assigns stable ids o1..on so re-uploads keep option identity.
func buildOptions(texts []string, correct []int) ([]studyset.Option, error) {
	options := make([]studyset.Option, len(texts))
	for i, t := range texts {
		options[i] = studyset.Option{
			ID:   "o" + strconv.Itoa(i+1),
			Text: strings.TrimSpace(t),
		}
	}
	for _, idx := range correct {
		if idx < 0 || idx >= len(options) {
			return nil, fmt.Errorf("correct answer index %d out of range", idx)
		}
		options[idx].IsCorrect = true
	}
	return options, nil
}
