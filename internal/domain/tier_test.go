package domain

import "testing"

func TestParseTier(t *testing.T) {
	testCases := []struct {
		input   string
		want    Tier
		wantErr bool
	}{
		{input: "weak", want: Weak},
		{input: "learning", want: Learning},
		{input: "strong", want: Strong},
		{input: "  Strong \n", want: Strong},
		{input: "WEAK", want: Weak},
		{input: "", wantErr: true},
		{input: "medium", wantErr: true},
	}

	for _, tc := range testCases {
		got, err := ParseTier(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTier(%q): expected an error, got %v", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTier(%q): unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTier(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestTierSteps(t *testing.T) {
	t.Run("promotion moves one tier up", func(t *testing.T) {
		if got := Weak.Promoted(); got != Learning {
			t.Errorf("Weak.Promoted() = %v, want Learning", got)
		}
		if got := Learning.Promoted(); got != Strong {
			t.Errorf("Learning.Promoted() = %v, want Strong", got)
		}
		if got := Strong.Promoted(); got != Strong {
			t.Errorf("Strong.Promoted() = %v, want Strong", got)
		}
	})

	t.Run("demotion always lands on Weak", func(t *testing.T) {
		for _, tier := range []Tier{Weak, Learning, Strong} {
			if got := tier.Demoted(); got != Weak {
				t.Errorf("%v.Demoted() = %v, want Weak", tier, got)
			}
		}
	})
}

func TestTierText(t *testing.T) {
	for _, tier := range []Tier{Weak, Learning, Strong} {
		text, err := tier.MarshalText()
		if err != nil {
			t.Fatalf("%v.MarshalText(): %v", tier, err)
		}
		var back Tier
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != tier {
			t.Errorf("round trip of %v gave %v", tier, back)
		}
	}

	if _, err := Tier(7).MarshalText(); err == nil {
		t.Error("expected MarshalText to fail for an out-of-range tier")
	}
	if Tier(7).IsValid() {
		t.Error("Tier(7).IsValid() = true, want false")
	}
}

func TestCardAccuracy(t *testing.T) {
	testCases := []struct {
		name      string
		correct   int
		incorrect int
		want      float64
	}{
		{name: "three of four", correct: 3, incorrect: 1, want: 0.75},
		{name: "all correct", correct: 5, incorrect: 0, want: 1.0},
		{name: "all incorrect", correct: 0, incorrect: 2, want: 0.0},
		{name: "no attempts", correct: 0, incorrect: 0, want: 0.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Card{Correct: tc.correct, Incorrect: tc.incorrect}
			if got := c.Accuracy(); got != tc.want {
				t.Errorf("Accuracy() = %v, want %v", got, tc.want)
			}
		})
	}
}
