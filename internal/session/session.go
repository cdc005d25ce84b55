// Package session implements one practice pass over the cards in a subject's
// tier: loading the working set, drawing cards without repeats, grading
// answers, and committing tier moves and counters once the pass is complete.
package session

import (
	"time"

	"github.com/ciaranmay/revise/internal/domain"
)

// Store is the slice of card storage the session needs. *storage.DB satisfies
// it; tests substitute fakes.
type Store interface {
	// ListCards returns a subject's cards in one tier, failing with the
	// store's not-found error for unknown subjects.
	ListCards(subject string, tier domain.Tier) ([]domain.Card, error)

	// ApplyReviewBatch persists a session's card updates together.
	ApplyReviewBatch(updates []domain.ReviewUpdate) error

	// TouchSubjectRevision records when the subject's tier was practiced.
	TouchSubjectRevision(subject string, tier domain.Tier, at time.Time) error
}

type phase int

const (
	sampling phase = iota
	finalizing
	done
)

// Session is one practice pass. It owns a snapshot of the working set; nothing
// reaches the store until Finalize, so an abandoned session commits nothing.
type Session struct {
	store   Store
	subject string
	tier    domain.Tier

	cards   []domain.Card
	sampler *sampler
	current int // index of the drawn, not-yet-graded card; -1 when none

	practiced int
	correct   int
	promote   []int64 // card keys moving one tier up after the pass
	demote    []int64 // card keys dropping to weak after the pass

	phase phase
}

// Start loads the working set for subject's tier and returns a ready session.
// An unknown subject surfaces the store's error. An empty tier is not an
// error: the session starts with nothing to draw and Finalize reports zero
// cards practiced.
func Start(store Store, subject string, tier domain.Tier) (*Session, error) {
	return start(store, subject, tier, nil)
}

func start(store Store, subject string, tier domain.Tier, intn func(int) int) (*Session, error) {
	cards, err := store.ListCards(subject, tier)
	if err != nil {
		return nil, err
	}

	s := &Session{
		store:   store,
		subject: subject,
		tier:    tier,
		cards:   cards,
		sampler: newSampler(len(cards), intn),
		current: -1,
		phase:   sampling,
	}
	if len(cards) == 0 {
		s.phase = finalizing
	}
	return s, nil
}

// Tier returns the tier being practiced.
func (s *Session) Tier() domain.Tier { return s.tier }

// Remaining returns how many cards have not yet been graded.
func (s *Session) Remaining() int { return len(s.cards) - s.practiced }

// Draw returns the next card to practice and true, or false once every card
// in the working set has been drawn. Drawing again before the current card is
// graded returns the same card.
func (s *Session) Draw() (domain.Card, bool) {
	if s.phase != sampling {
		return domain.Card{}, false
	}
	if s.current >= 0 {
		return s.cards[s.current], true
	}
	i, ok := s.sampler.next()
	if !ok {
		return domain.Card{}, false
	}
	s.current = i
	return s.cards[i], true
}
