package progress

// Mastery rates a question 0-100 from its history. The latest result weighs
// 60%, the average of all earlier results 40%.
func (p *UserProgress) Mastery() int {
	answered := p.CorrectCount + p.WrongCount
	if answered == 0 {
		return 0
	}

	latest := 0
	if p.LastResult == ResultCorrect {
		latest = 100
	}
	if answered == 1 {
		// First attempt - mastery equals the score
		return latest
	}

	earlierCorrect := p.CorrectCount
	if latest == 100 {
		earlierCorrect--
	}
	historicalAvg := float64(earlierCorrect*100) / float64(answered-1)

	mastery := int(float64(latest)*0.6 + historicalAvg*0.4)
	if mastery > 100 {
		mastery = 100
	}
	if mastery < 0 {
		mastery = 0
	}
	return mastery
}
