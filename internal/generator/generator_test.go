package generator

import (
	"strings"
	"testing"

	"github.com/keyforge/keyforge-go/internal/wordlist"
)

// sequenceSource returns the given values in order, then keeps returning the
// last one.
func sequenceSource(values ...uint32) Source {
	i := 0
	return func() (uint32, error) {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v, nil
	}
}

func TestGenerateLength(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"default options", DefaultOptions()},
		{"uppercase only", Options{Length: 16, Uppercase: true}},
		{"lowercase only", Options{Length: 16, Lowercase: true}},
		{"numbers only", Options{Length: 16, Numbers: true}},
		{"symbols only", Options{Length: 16, Symbols: true}},
		{"length 1", Options{Length: 1, Lowercase: true}},
		{"length 128", Options{Length: 128, Uppercase: true, Lowercase: true}},
		{"pronounceable", Options{Length: 24, Uppercase: true, Lowercase: true, Pronounceable: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Generate(tt.opts)
			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if len(result) != tt.opts.Length {
				t.Errorf("Generate() length = %d, want %d", len(result), tt.opts.Length)
			}
		})
	}
}

func TestGenerateNoClassesSelected(t *testing.T) {
	result, err := Generate(Options{Length: 16})
	if err != ErrEmptyPool {
		t.Errorf("Generate() error = %v, want ErrEmptyPool", err)
	}
	if result != "" {
		t.Errorf("Generate() = %q, want empty string", result)
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	for _, length := range []int{0, -1} {
		if _, err := Generate(Options{Length: length, Lowercase: true}); err != ErrInvalidLength {
			t.Errorf("Generate(length=%d) error = %v, want ErrInvalidLength", length, err)
		}
	}
}

func TestGenerateExcludesAmbiguous(t *testing.T) {
	opts := Options{
		Length:           64,
		Uppercase:        true,
		Lowercase:        true,
		Numbers:          true,
		Symbols:          true,
		ExcludeAmbiguous: true,
	}

	for i := 0; i < 20; i++ {
		result, err := Generate(opts)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if strings.ContainsAny(result, ambiguousChars) {
			t.Fatalf("result %q contains ambiguous character", result)
		}
	}
}

func TestGenerateExcludesSimilar(t *testing.T) {
	opts := Options{
		Length:         64,
		Uppercase:      true,
		Lowercase:      true,
		Numbers:        true,
		Symbols:        true,
		ExcludeSimilar: true,
	}

	result, err := Generate(opts)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if strings.ContainsAny(result, similarChars) {
		t.Fatalf("result %q contains similar character", result)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	opts := Options{
		Length:    16,
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Symbols:   true,
	}

	pool := BuildPool(opts)
	if len(pool) != 88 {
		t.Fatalf("full pool length = %d, want 88", len(pool))
	}

	values := make([]uint32, 16)
	for i := range values {
		values[i] = uint32(i)
	}

	result, err := GenerateFrom(opts, sequenceSource(values...))
	if err != nil {
		t.Fatalf("GenerateFrom() unexpected error: %v", err)
	}
	if result != pool[:16] {
		t.Errorf("GenerateFrom() = %q, want %q", result, pool[:16])
	}
}

func TestGenerateDeterministicModulo(t *testing.T) {
	opts := Options{Length: 3, Lowercase: true}

	// 26+0=a, 26+1=b, 26+25=z under mod 26.
	result, err := GenerateFrom(opts, sequenceSource(26, 27, 51))
	if err != nil {
		t.Fatalf("GenerateFrom() unexpected error: %v", err)
	}
	if result != "abz" {
		t.Errorf("GenerateFrom() = %q, want %q", result, "abz")
	}
}

func TestGeneratePronounceableAlternates(t *testing.T) {
	opts := Options{Length: 12, Lowercase: true, Pronounceable: true}

	result, err := GenerateFrom(opts, sequenceSource(0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5))
	if err != nil {
		t.Fatalf("GenerateFrom() unexpected error: %v", err)
	}

	consonants, vowels := splitPronounceable(BuildPool(opts))
	for i, ch := range result {
		subset := consonants
		if i%2 == 1 {
			subset = vowels
		}
		if !strings.ContainsRune(subset, ch) {
			t.Errorf("position %d: character %q not drawn from expected subset %q", i, string(ch), subset)
		}
	}
}

func TestGeneratePronounceableFallback(t *testing.T) {
	// A symbols-only pool has no vowels, so pronounceable mode degrades to
	// uniform selection over the full pool.
	opts := Options{Length: 4, Symbols: true, Pronounceable: true}

	result, err := GenerateFrom(opts, sequenceSource(0, 1, 2, 3))
	if err != nil {
		t.Fatalf("GenerateFrom() unexpected error: %v", err)
	}
	if result != symbolChars[:4] {
		t.Errorf("GenerateFrom() = %q, want %q", result, symbolChars[:4])
	}
}

func TestGeneratePassphrase(t *testing.T) {
	result, err := GeneratePassphrase(5, "-")
	if err != nil {
		t.Fatalf("GeneratePassphrase() unexpected error: %v", err)
	}

	parts := strings.Split(result, "-")
	if len(parts) != 5 {
		t.Fatalf("GeneratePassphrase() word count = %d, want 5", len(parts))
	}

	words := wordlist.Words()
	for _, p := range parts {
		found := false
		for _, w := range words {
			if p == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("word %q not in wordlist", p)
		}
	}
}

func TestGeneratePassphraseDeterministic(t *testing.T) {
	words := []string{"alpha", "bravo", "charlie"}

	result, err := GeneratePassphraseFrom(words, 4, " ", sequenceSource(0, 1, 2, 3))
	if err != nil {
		t.Fatalf("GeneratePassphraseFrom() unexpected error: %v", err)
	}
	if result != "alpha bravo charlie alpha" {
		t.Errorf("GeneratePassphraseFrom() = %q", result)
	}
}

func TestGeneratePassphraseInvalidWordCount(t *testing.T) {
	if _, err := GeneratePassphrase(0, "-"); err != ErrInvalidWordCount {
		t.Errorf("GeneratePassphrase(0) error = %v, want ErrInvalidWordCount", err)
	}
}

func TestEntropy(t *testing.T) {
	tests := []struct {
		length, poolSize, want int
	}{
		{16, 88, 103}, // 16 * log2(88) = 103.36
		{6, 2048, 66}, // 6 * 11
		{1, 2, 1},
		{10, 0, 0},
		{10, -5, 0},
		{0, 88, 0},
	}

	for _, tt := range tests {
		if got := Entropy(tt.length, tt.poolSize); got != tt.want {
			t.Errorf("Entropy(%d, %d) = %d, want %d", tt.length, tt.poolSize, got, tt.want)
		}
	}
}

func TestEntropyMonotonic(t *testing.T) {
	for length := 1; length < 40; length++ {
		if Entropy(length+1, 62) < Entropy(length, 62) {
			t.Fatalf("entropy decreased when length grew from %d", length)
		}
	}
	for pool := 1; pool < 100; pool++ {
		if Entropy(16, pool+1) < Entropy(16, pool) {
			t.Fatalf("entropy decreased when pool grew from %d", pool)
		}
	}
}

func TestPoolSize(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want int
	}{
		{"all classes", Options{Uppercase: true, Lowercase: true, Numbers: true, Symbols: true}, 87},
		{"letters", Options{Uppercase: true, Lowercase: true}, 52},
		{"numbers ambiguous", Options{Numbers: true, ExcludeAmbiguous: true}, 3},
		{"none", Options{}, 0},
		{"ambiguous only floors at zero", Options{ExcludeAmbiguous: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PoolSize(tt.opts); got != tt.want {
				t.Errorf("PoolSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPoolSizeIsAnEstimate(t *testing.T) {
	// PoolSize deliberately ignores ExcludeSimilar and counts symbols as 25;
	// the exact size comes from the built pool.
	opts := Options{Uppercase: true, Lowercase: true, Numbers: true, Symbols: true, ExcludeSimilar: true}

	exact := len(BuildPool(opts))
	if PoolSize(opts) == exact {
		t.Errorf("expected estimate %d to diverge from exact pool size %d", PoolSize(opts), exact)
	}
}

func TestGenerateProducesUniquePasswords(t *testing.T) {
	opts := DefaultOptions()
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		password, err := Generate(opts)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if seen[password] {
			t.Errorf("duplicate password generated: %q", password)
		}
		seen[password] = true
	}
}
