package domain

import "time"

// Card represents a single question-answer entry within a subject.
type Card struct {
	ID        int64
	SubjectID int64
	Tier      Tier
	Question  string
	Answer    string
	Correct   int
	Incorrect int
}

// Attempts is the total number of times the card has been answered.
func (c Card) Attempts() int {
	return c.Correct + c.Incorrect
}

// Accuracy is the ratio of correct answers to total attempts.
// Grading always increments a counter before accuracy is shown, so the
// zero-attempt case only matters for unreviewed cards; it reports 0.
func (c Card) Accuracy() float64 {
	total := c.Attempts()
	if total == 0 {
		return 0
	}
	return float64(c.Correct) / float64(total)
}

// Subject is a named collection of cards and the unit of card storage.
type Subject struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Revision records when a subject's tier was last practiced.
type Revision struct {
	SubjectID int64
	Tier      Tier
	RevisedAt time.Time
}

// ReviewUpdate is one card's new state after a practice session, applied to
// storage as part of the session's finishing batch.
type ReviewUpdate struct {
	CardID    int64
	Tier      Tier
	Correct   int
	Incorrect int
}
