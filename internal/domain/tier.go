package domain

import (
	"encoding"
	"fmt"
	"strings"
)

// Tier is the proficiency bucket a card belongs to.
type Tier int

const (
	Weak     Tier = iota // Answered poorly, needs frequent practice.
	Learning             // Answered well sometimes.
	Strong               // Answered well consistently.
)

var tierNames = [...]string{Weak: "weak", Learning: "learning", Strong: "strong"}

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Tier(0)
	_ encoding.TextMarshaler   = Tier(0)
	_ encoding.TextUnmarshaler = (*Tier)(nil)
)

// IsValid reports whether t is one of the three defined tiers.
func (t Tier) IsValid() bool {
	return t >= Weak && t <= Strong
}

// String returns the lowercase tier name, or "tier(n)" for invalid values.
func (t Tier) String() string {
	if t.IsValid() {
		return tierNames[t]
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// ParseTier converts a user-supplied name into a Tier.
func ParseTier(name string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "weak":
		return Weak, nil
	case "learning":
		return Learning, nil
	case "strong":
		return Strong, nil
	}
	return 0, fmt.Errorf("unknown tier %q", name)
}

// Promoted returns the tier a card moves to after a successful session.
// Strong has nowhere to go and promotes to itself.
func (t Tier) Promoted() Tier {
	if t == Strong {
		return Strong
	}
	return t + 1
}

// Demoted returns the tier a card drops to after a failed session.
// Any demotion lands on Weak.
func (t Tier) Demoted() Tier {
	return Weak
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid tier: %d", int(t))
	}
	return []byte(tierNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(text []byte) error {
	v, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
