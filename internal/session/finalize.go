package session

import (
	"fmt"
	"slices"
	"time"

	"github.com/ciaranmay/revise/internal/domain"
)

// Summary reports the outcome of a completed practice pass.
type Summary struct {
	Subject         string
	Tier            domain.Tier
	CardsPracticed  int
	Correct         int
	PercentAccuracy float64
	Promoted        []string // questions of cards that moved up a tier
	Demoted         []string // questions of cards that dropped to weak
}

// Finalize commits the session: promoted cards move one tier up, demoted
// cards drop to weak, updated counters are persisted in one batch, and the
// subject's revision time for the practiced tier is touched. The Summary is
// computed before any write, so when persistence fails it is returned
// alongside an error wrapping ErrStoreWrite.
//
// Finalize can only run once, after every card in the working set has been
// graded (immediately, for an empty working set).
func (s *Session) Finalize(at time.Time) (Summary, error) {
	switch s.phase {
	case sampling:
		return Summary{}, ErrNotExhausted
	case done:
		return Summary{}, ErrFinished
	}
	s.phase = done

	// Deterministic output order; not load-bearing.
	slices.Sort(s.promote)
	slices.Sort(s.demote)

	byID := make(map[int64]*domain.Card, len(s.cards))
	for i := range s.cards {
		byID[s.cards[i].ID] = &s.cards[i]
	}
	for _, id := range s.promote {
		byID[id].Tier = byID[id].Tier.Promoted()
	}
	for _, id := range s.demote {
		byID[id].Tier = byID[id].Tier.Demoted()
	}

	summary := Summary{
		Subject:        s.subject,
		Tier:           s.tier,
		CardsPracticed: s.practiced,
		Correct:        s.correct,
	}
	if s.practiced > 0 {
		summary.PercentAccuracy = float64(s.correct) / float64(s.practiced) * 100
	}
	for _, id := range s.promote {
		summary.Promoted = append(summary.Promoted, byID[id].Question)
	}
	for _, id := range s.demote {
		summary.Demoted = append(summary.Demoted, byID[id].Question)
	}

	// An empty pass changes nothing; don't touch the store at all.
	if s.practiced == 0 {
		return summary, nil
	}

	updates := make([]domain.ReviewUpdate, 0, len(s.cards))
	for i := range s.cards {
		c := s.cards[i]
		updates = append(updates, domain.ReviewUpdate{
			CardID:    c.ID,
			Tier:      c.Tier,
			Correct:   c.Correct,
			Incorrect: c.Incorrect,
		})
	}
	if err := s.store.ApplyReviewBatch(updates); err != nil {
		return summary, fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	if err := s.store.TouchSubjectRevision(s.subject, s.tier, at); err != nil {
		return summary, fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	return summary, nil
}
