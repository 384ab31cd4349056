package service

import (
	"errors"

	"github.com/keyforge/keyforge-go/internal/generator"
	"github.com/keyforge/keyforge-go/internal/model"
	"github.com/keyforge/keyforge-go/internal/wordlist"
)

// GeneratorService handles password and passphrase generation business logic.
type GeneratorService struct {
	// silentEmpty preserves the legacy UI contract of answering an empty
	// misconfigured request with an empty password instead of an error.
	silentEmpty bool
}

// NewGeneratorService creates a new GeneratorService. silentEmpty controls
// whether an empty character pool produces an empty password or an error.
func NewGeneratorService(silentEmpty bool) *GeneratorService {
	return &GeneratorService{silentEmpty: silentEmpty}
}

// Generate produces a password based on the given request.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	opts := generator.Options{
		Length:           req.Length,
		Uppercase:        boolOrDefault(req.Uppercase, true),
		Lowercase:        boolOrDefault(req.Lowercase, true),
		Numbers:          boolOrDefault(req.Numbers, true),
		Symbols:          boolOrDefault(req.Symbols, true),
		ExcludeAmbiguous: req.ExcludeAmbiguous,
		ExcludeSimilar:   req.ExcludeSimilar,
		Pronounceable:    req.Pronounceable,
	}

	if opts.Length == 0 {
		opts.Length = 16
	}

	password, err := generator.Generate(opts)
	if err != nil {
		if s.silentEmpty && errors.Is(err, generator.ErrEmptyPool) {
			return model.GenerateResponse{}, nil
		}
		return model.GenerateResponse{}, err
	}

	return model.GenerateResponse{
		Password:    password,
		Length:      len(password),
		EntropyBits: generator.Entropy(opts.Length, generator.PoolSize(opts)),
	}, nil
}

// GeneratePassphrase produces a passphrase based on the given request.
func (s *GeneratorService) GeneratePassphrase(req model.PassphraseRequest) (model.PassphraseResponse, error) {
	wordCount := req.WordCount
	if wordCount == 0 {
		wordCount = 6
	}
	separator := req.Separator
	if separator == "" {
		separator = " "
	}

	passphrase, err := generator.GeneratePassphrase(wordCount, separator)
	if err != nil {
		return model.PassphraseResponse{}, err
	}

	return model.PassphraseResponse{
		Passphrase:  passphrase,
		WordCount:   wordCount,
		EntropyBits: generator.Entropy(wordCount, wordlist.Size()),
	}, nil
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
