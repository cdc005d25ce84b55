package session

import (
	"github.com/ciaranmay/revise/internal/domain"
	"github.com/ciaranmay/revise/internal/match"
)

// ConfirmFunc lets the caller resolve answers that fail the automatic check
// but may be semantically right ("Paris, France" for "Paris"). It receives the
// user's answer and the stored one and reports whether to count the answer as
// correct. A nil ConfirmFunc counts every mismatch as incorrect.
type ConfirmFunc func(given, stored string) bool

// Feedback is the result of grading one answer. Accuracy reflects the card's
// counters after this attempt, so a first-ever answer reports exactly 1 or 0.
type Feedback struct {
	Correct  bool
	Accuracy float64
}

// Submit grades the user's answer against the currently drawn card. The
// answer is first auto-checked (trimmed, case-folded); on a mismatch the
// confirm callback decides. Exactly one of the card's counters is incremented,
// and the card is marked for promotion or demotion where its tier allows.
func (s *Session) Submit(answer string, confirm ConfirmFunc) (Feedback, error) {
	if s.current < 0 {
		return Feedback{}, ErrNoCardDrawn
	}

	card := &s.cards[s.current]
	correct := match.Answers(answer, card.Answer)
	if !correct && confirm != nil {
		correct = confirm(answer, card.Answer)
	}

	if correct {
		card.Correct++
		s.correct++
		// A strong card has nowhere to climb; it keeps its tier.
		if card.Tier != domain.Strong {
			s.promote = append(s.promote, card.ID)
		}
	} else {
		card.Incorrect++
		// A weak card has nowhere to fall; it keeps its tier.
		if card.Tier != domain.Weak {
			s.demote = append(s.demote, card.ID)
		}
	}

	s.practiced++
	s.current = -1
	if s.practiced == len(s.cards) {
		s.phase = finalizing
	}

	return Feedback{Correct: correct, Accuracy: card.Accuracy()}, nil
}
