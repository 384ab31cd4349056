package generator

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"math"
	"strings"

	"github.com/keyforge/keyforge-go/internal/wordlist"
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// Glyphs that are easily confused when read aloud or retyped.
	ambiguousChars = "iI1LoO0"

	// Case-paired look-alikes and digit confusables, filtered when
	// ExcludeSimilar is set.
	similarChars = "iIlL1!|oO0QDcCkKpPsS5zZ2uUvVwWxXnNmMgq9bB8G6eE3tT7"

	vowelChars = "aeiouAEIOU"
)

var (
	ErrEmptyPool        = errors.New("character pool is empty")
	ErrInvalidLength    = errors.New("length must be positive")
	ErrInvalidWordCount = errors.New("word count must be positive")
)

// Options configures the password generator.
type Options struct {
	Length           int
	Uppercase        bool
	Lowercase        bool
	Numbers          bool
	Symbols          bool
	ExcludeAmbiguous bool
	ExcludeSimilar   bool
	Pronounceable    bool
}

// DefaultOptions returns sensible defaults: 16 characters with all classes enabled.
func DefaultOptions() Options {
	return Options{
		Length:    16,
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Symbols:   true,
	}
}

// Source yields uniformly-random 32-bit values. Generation consumes exactly
// one value per output character, so a fixed sequence produces a fixed output.
type Source func() (uint32, error)

// CryptoSource reads a 32-bit value from crypto/rand.
func CryptoSource() (uint32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// BuildPool assembles the character pool for the given options: enabled class
// alphabets concatenated in fixed order, then the ambiguous and similar
// exclusion filters applied over the whole pool.
func BuildPool(opts Options) string {
	var b strings.Builder

	if opts.Uppercase {
		b.WriteString(uppercaseChars)
	}
	if opts.Lowercase {
		b.WriteString(lowercaseChars)
	}
	if opts.Numbers {
		b.WriteString(numberChars)
	}
	if opts.Symbols {
		b.WriteString(symbolChars)
	}

	pool := b.String()
	if opts.ExcludeAmbiguous {
		pool = filterChars(pool, ambiguousChars)
	}
	if opts.ExcludeSimilar {
		pool = filterChars(pool, similarChars)
	}
	return pool
}

func filterChars(pool, exclude string) string {
	var b strings.Builder
	for _, ch := range pool {
		if !strings.ContainsRune(exclude, ch) {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// Generate creates a cryptographically secure random password based on the
// given options.
func Generate(opts Options) (string, error) {
	return GenerateFrom(opts, CryptoSource)
}

// GenerateFrom creates a password using the provided random source. Each
// output character is pool[value mod len(pool)]; in pronounceable mode the
// pool is split into consonants and vowels and positions alternate between
// them (even positions draw consonants), falling back to the full pool when
// either subset is empty.
func GenerateFrom(opts Options, src Source) (string, error) {
	if opts.Length <= 0 {
		return "", ErrInvalidLength
	}

	pool := BuildPool(opts)
	if pool == "" {
		return "", ErrEmptyPool
	}

	consonants, vowels := pool, ""
	alternate := false
	if opts.Pronounceable {
		consonants, vowels = splitPronounceable(pool)
		alternate = consonants != "" && vowels != ""
		if !alternate {
			consonants = pool
		}
	}

	var b strings.Builder
	b.Grow(opts.Length)
	for i := 0; i < opts.Length; i++ {
		v, err := src()
		if err != nil {
			return "", err
		}

		subset := pool
		if alternate {
			if i%2 == 0 {
				subset = consonants
			} else {
				subset = vowels
			}
		}
		b.WriteByte(subset[int(v%uint32(len(subset)))])
	}

	return b.String(), nil
}

// splitPronounceable partitions a pool into consonant and vowel subsets,
// preserving pool order within each subset.
func splitPronounceable(pool string) (consonants, vowels string) {
	var c, v strings.Builder
	for _, ch := range pool {
		if strings.ContainsRune(vowelChars, ch) {
			v.WriteRune(ch)
		} else {
			c.WriteRune(ch)
		}
	}
	return c.String(), v.String()
}

// GeneratePassphrase creates a passphrase of wordCount random words joined by
// separator.
func GeneratePassphrase(wordCount int, separator string) (string, error) {
	return GeneratePassphraseFrom(wordlist.Words(), wordCount, separator, CryptoSource)
}

// GeneratePassphraseFrom creates a passphrase from the given wordlist using
// the provided random source. Words are selected as words[value mod
// len(words)] and joined in draw order; repeats are allowed.
func GeneratePassphraseFrom(words []string, wordCount int, separator string, src Source) (string, error) {
	if wordCount <= 0 {
		return "", ErrInvalidWordCount
	}
	if len(words) == 0 {
		return "", ErrEmptyPool
	}

	picked := make([]string, wordCount)
	for i := range picked {
		v, err := src()
		if err != nil {
			return "", err
		}
		picked[i] = words[int(v%uint32(len(words)))]
	}

	return strings.Join(picked, separator), nil
}

// Entropy returns floor(length * log2(poolSize)) bits, or 0 when poolSize is
// not positive. The same formula applies to passphrases with the word count
// and wordlist size.
func Entropy(length, poolSize int) int {
	if poolSize <= 0 || length <= 0 {
		return 0
	}
	return int(math.Floor(float64(length) * math.Log2(float64(poolSize))))
}

// PoolSize is the quick pool-size estimate used for entropy display: the sum
// of enabled class sizes (26/26/10/25), minus 7 when ambiguous glyphs are
// excluded, floored at 0. It does not account for ExcludeSimilar and counts
// the symbol class as 25; callers needing the exact pool size must use
// len(BuildPool(opts)) instead.
func PoolSize(opts Options) int {
	size := 0
	if opts.Uppercase {
		size += 26
	}
	if opts.Lowercase {
		size += 26
	}
	if opts.Numbers {
		size += 10
	}
	if opts.Symbols {
		size += 25
	}
	if opts.ExcludeAmbiguous {
		size -= 7
	}
	if size < 0 {
		size = 0
	}
	return size
}
