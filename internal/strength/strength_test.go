package strength

import "testing"

func TestCheckCommonPassword(t *testing.T) {
	r := Check("password")

	if !r.Scored {
		t.Fatal("expected a scored result")
	}
	if r.Score != 0 {
		t.Errorf("Score = %d, want 0 for a dictionary password", r.Score)
	}
	if r.Warning == "" {
		t.Error("expected a warning for a dictionary password")
	}
	if len(r.Suggestions) == 0 {
		t.Error("expected suggestions for a weak password")
	}
}

func TestCheckStrongPassword(t *testing.T) {
	r := Check("kT9#mWq2$vLxP7@dZn4R")

	if r.Score != 4 {
		t.Errorf("Score = %d, want 4 for a long random mixed-class password", r.Score)
	}
	if r.Warning != "" {
		t.Errorf("unexpected warning %q for a strong password", r.Warning)
	}
	if r.CrackTimeDisplay == "" {
		t.Error("expected a crack time display")
	}
}

func TestCheckEmptyCandidate(t *testing.T) {
	r := Check("")

	if r.Scored {
		t.Error("empty candidate should be unscored")
	}
	if r.Score != 0 {
		t.Errorf("Score = %d, want 0", r.Score)
	}
}

func TestCheckUserInputsAreGuessable(t *testing.T) {
	// The user's own identifiers weaken a password even when they look complex.
	withInputs := Check("Xq7salamander!9", "salamander")
	without := Check("Xq7salamander!9")

	if withInputs.Score > without.Score {
		t.Errorf("score with user inputs (%d) should not exceed score without (%d)",
			withInputs.Score, without.Score)
	}
}

func TestApplyBreachOverridesScore(t *testing.T) {
	r := Check("kT9#mWq2$vLxP7@dZn4R")
	if r.Score != 4 {
		t.Fatalf("precondition failed: Score = %d, want 4", r.Score)
	}

	breached := ApplyBreach(r, 1337)
	if breached.Score != 0 {
		t.Errorf("Score = %d, want 0 after breach override", breached.Score)
	}
	if !breached.Breached {
		t.Error("expected Breached to be set")
	}
	if breached.Warning != BreachedWarning {
		t.Errorf("Warning = %q, want %q", breached.Warning, BreachedWarning)
	}
}

func TestApplyBreachZeroCountIsNoop(t *testing.T) {
	r := Check("kT9#mWq2$vLxP7@dZn4R")

	same := ApplyBreach(r, 0)
	if same.Score != r.Score || same.Breached {
		t.Error("zero breach count must not change the result")
	}
}
