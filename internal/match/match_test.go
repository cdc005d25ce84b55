package match

import "testing"

func TestNormalize(t *testing.T) {
	got := Normalize("  What is HTMX? \r\n")
	want := "what is htmx?"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestAnswers(t *testing.T) {
	testCases := []struct {
		name   string
		given  string
		stored string
		want   bool
	}{
		{name: "exact", given: "Paris", stored: "Paris", want: true},
		{name: "case folded", given: "paris", stored: "Paris", want: true},
		{name: "whitespace trimmed", given: " paris \n", stored: "Paris", want: true},
		{name: "different answer", given: "Lyon", stored: "Paris", want: false},
		{name: "internal whitespace matters", given: "pa ris", stored: "Paris", want: false},
		{name: "empty vs stored", given: "", stored: "Paris", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Answers(tc.given, tc.stored); got != tc.want {
				t.Errorf("Answers(%q, %q) = %v, want %v", tc.given, tc.stored, got, tc.want)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		if Fingerprint("Q", "A") != Fingerprint("Q", "A") {
			t.Error("expected identical inputs to fingerprint identically")
		}
	})

	t.Run("normalization folds into identity", func(t *testing.T) {
		a := Fingerprint("  what is go? ", "A programming language.")
		b := Fingerprint("What Is Go?", "A programming language.")
		if a != b {
			t.Error("expected normalized variants to share a fingerprint")
		}
	})

	t.Run("field boundary preserved", func(t *testing.T) {
		if Fingerprint("ab", "c") == Fingerprint("a", "bc") {
			t.Error("expected shifted field boundary to change the fingerprint")
		}
	})

	t.Run("different cards differ", func(t *testing.T) {
		if Fingerprint("Card 1", "") == Fingerprint("Card 2", "") {
			t.Error("expected different cards to have different fingerprints")
		}
	})
}
