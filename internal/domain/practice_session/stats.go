package practicesession

import "math"

// Stats is the running tally of one study session.
// Answered counts attempts, so it can exceed Total once a question is missed.
type Stats struct {
	Total    int
	Answered int
	Correct  int
	Wrong    int
}

func NewStats(total int) Stats {
	return Stats{Total: total}
}

func (s *Stats) Record(correct bool) {
	s.Answered++
	if correct {
		s.Correct++
	} else {
		s.Wrong++
	}
}

// Reset zeroes the counters and keeps Total.
func (s *Stats) Reset() {
	*s = Stats{Total: s.Total}
}

// Pct is round(answered/total*100).
func (s Stats) Pct() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Answered) / float64(s.Total) * 100))
}

// Accuracy is round(correct/answered*100), 0 before the first answer.
func (s Stats) Accuracy() int {
	if s.Answered == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) / float64(s.Answered) * 100))
}
