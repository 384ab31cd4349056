package wordlist

import (
	"sync"

	"github.com/tyler-smith/go-bip39/wordlists"
)

var (
	once  sync.Once
	words []string
)

// Words returns the passphrase wordlist: a fixed, ordered sequence of distinct
// lowercase words. The list is loaded once and shared by all callers.
func Words() []string {
	once.Do(func() {
		words = wordlists.English
	})
	return words
}

// Size returns the number of words in the wordlist.
func Size() int {
	return len(Words())
}
