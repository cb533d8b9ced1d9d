package grader

import (
	"sort"

	"github.com/studycards/backend/internal/domain/studyset"
)

// Grader turns a set of marked option ids into a verdict.
// Implementations must be pure: the same input always yields the same Verdict.
type Grader interface {
	Grade(q studyset.Question, markedOptionIDs []string) Verdict
}

// Verdict is the outcome of grading one submission.
type Verdict struct {
	Correct    bool
	CorrectIDs []string // sorted, for feedback display
}

// ExactMatch grades with no partial credit: single questions need exactly one
// marked id that is correct, multi questions need the marked set to equal the
// correct set.
type ExactMatch struct{}

// Compile-time check: ExactMatch satisfies the Grader interface.
var _ Grader = ExactMatch{}

func (ExactMatch) Grade(q studyset.Question, markedOptionIDs []string) Verdict {
	return Grade(q, markedOptionIDs)
}

// Grade is the ExactMatch rule as a plain function.
func Grade(q studyset.Question, markedOptionIDs []string) Verdict {
	correctIDs := q.CorrectIDs()
	selected := uniqueSorted(markedOptionIDs)

	var ok bool
	if q.Type == studyset.TypeSingle {
		ok = len(selected) == 1 && contains(correctIDs, selected[0])
	} else {
		ok = equal(selected, correctIDs)
	}

	return Verdict{Correct: ok, CorrectIDs: correctIDs}
}

func uniqueSorted(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// contains expects a sorted slice.
func contains(sorted []string, id string) bool {
	i := sort.SearchStrings(sorted, id)
	return i < len(sorted) && sorted[i] == id
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
