package strength

import (
	"github.com/nbutton23/zxcvbn-go"
	"github.com/nbutton23/zxcvbn-go/match"
)

// Result is the outcome of a strength check.
type Result struct {
	Score            int      `json:"score"`
	Warning          string   `json:"warning"`
	Suggestions      []string `json:"suggestions"`
	CrackTimeDisplay string   `json:"crack_time_display"`
	Scored           bool     `json:"scored"`
	Breached         bool     `json:"breached"`
}

// BreachedWarning is the warning reported when a breach signal overrides the
// heuristic score.
const BreachedWarning = "This password has appeared in a data breach"

// Check scores a candidate password on a 0..4 scale using a dictionary and
// keyboard-adjacency heuristic. userInputs lists strings that should be
// treated as guessable even when they look complex, such as the username or
// site name. An empty candidate yields an unscored result.
func Check(candidate string, userInputs ...string) Result {
	if candidate == "" {
		return Result{}
	}

	m := zxcvbn.PasswordStrength(candidate, userInputs)

	warning, suggestions := feedback(m.Score, m.MatchSequence)
	return Result{
		Score:            m.Score,
		Warning:          warning,
		Suggestions:      suggestions,
		CrackTimeDisplay: m.CrackTimeDisplay,
		Scored:           true,
	}
}

// ApplyBreach downgrades a result when the candidate is known-breached.
// Breach status always overrides the heuristic score.
func ApplyBreach(r Result, breachCount int) Result {
	if breachCount <= 0 {
		return r
	}
	r.Score = 0
	r.Warning = BreachedWarning
	r.Breached = true
	r.Suggestions = append([]string{"Choose a password that has never been exposed"}, r.Suggestions...)
	return r
}

// feedback derives a warning and suggestions from the scorer's match
// sequence. Strong results get no feedback.
func feedback(score int, sequence []match.Match) (string, []string) {
	if score > 2 || len(sequence) == 0 {
		return "", nil
	}

	longest := sequence[0]
	for _, m := range sequence[1:] {
		if len(m.Token) > len(longest.Token) {
			longest = m
		}
	}

	suggestions := []string{"Add another word or two; uncommon words are better"}

	switch longest.Pattern {
	case "dictionary":
		switch longest.DictionaryName {
		case "passwords":
			return "This is a commonly used password", suggestions
		case "user_inputs":
			return "Avoid names and words tied to you or this account", suggestions
		default:
			return "A word by itself is easy to guess", append(suggestions, "Capitalization and substitutions do not help much")
		}
	case "spatial":
		return "Short keyboard patterns are easy to guess", append(suggestions, "Use a longer keyboard pattern with more turns")
	case "repeat":
		return `Repeats like "aaa" are easy to guess`, append(suggestions, "Avoid repeated words and characters")
	case "sequence":
		return `Sequences like "abc" are easy to guess`, append(suggestions, "Avoid common character sequences")
	case "date":
		return "Dates are often easy to guess", append(suggestions, "Avoid dates and years associated with you")
	}

	return "", suggestions
}
