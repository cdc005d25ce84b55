package session

import "errors"

// Sentinel errors for the session package.
// Use errors.Is to check: errors.Is(err, session.ErrStoreWrite)
var (
	// ErrNoCardDrawn means Submit was called without a drawn, ungraded card.
	ErrNoCardDrawn = errors.New("session: no card drawn")

	// ErrNotExhausted means Finalize was called while cards remain to practice.
	ErrNotExhausted = errors.New("session: cards remain to practice")

	// ErrFinished means the session was already finalized.
	ErrFinished = errors.New("session: already finished")

	// ErrStoreWrite means the finishing batch could not be persisted. The
	// Summary computed for the session is still returned alongside it.
	ErrStoreWrite = errors.New("session: store write failed")
)
