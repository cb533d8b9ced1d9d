package practicesession

import "math/rand"

// wrongAnswerOffset is how many other questions are shown before a missed one
// comes back, when that many remain in the round.
const wrongAnswerOffset = 2

// ShuffleFunc has the signature of rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// Queue orders the question ids of a session.
//
// It is split in two segments: the round, whose head is the question being
// presented, and the tail, which collects questions answered correctly.
// A correct answer appends to the tail, the furthest point from the head;
// a wrong answer goes back into the round a couple of places down. The round
// shrinks only through correct answers and the session is done once it is
// empty. Round and tail together always hold every id exactly once.
type Queue struct {
	ids     []string
	round   []string
	tail    []string
	shuffle ShuffleFunc
}

// NewQueue builds a queue over ids and draws the first permutation.
// A nil shuffle uses math/rand.
func NewQueue(ids []string, shuffle ShuffleFunc) *Queue {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	q := &Queue{
		ids:     append([]string(nil), ids...),
		shuffle: shuffle,
	}
	q.Reset()
	return q
}

// Reset draws a fresh uniform permutation of all ids into the round.
func (q *Queue) Reset() {
	perm := make([]string, len(q.ids))
	copy(perm, q.ids)
	q.shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	q.round = perm
	q.tail = q.tail[:0]
}

// PeekHead returns the id of the question being presented.
func (q *Queue) PeekHead() (string, bool) {
	if len(q.round) == 0 {
		return "", false
	}
	return q.round[0], true
}

// Resolve removes the head and places it according to the verdict.
// It returns the resolved id, or false when the round is already empty.
func (q *Queue) Resolve(correct bool) (string, bool) {
	if len(q.round) == 0 {
		return "", false
	}
	head := q.round[0]
	rest := q.round[1:]

	if correct {
		q.round = rest
		q.tail = append(q.tail, head)
		return head, true
	}

	pos := min(wrongAnswerOffset, len(rest))
	round := make([]string, 0, len(rest)+1)
	round = append(round, rest[:pos]...)
	round = append(round, head)
	round = append(round, rest[pos:]...)
	q.round = round
	return head, true
}

// Remaining is the number of questions still pending in this round.
func (q *Queue) Remaining() int {
	return len(q.round)
}

// Drained reports whether every question has been answered correctly this round.
func (q *Queue) Drained() bool {
	return len(q.round) == 0
}

// Len is the fixed number of questions in the session.
func (q *Queue) Len() int {
	return len(q.ids)
}
