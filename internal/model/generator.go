package model

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
type GenerateRequest struct {
	Length           int   `json:"length"`
	Uppercase        *bool `json:"uppercase"`
	Lowercase        *bool `json:"lowercase"`
	Numbers          *bool `json:"numbers"`
	Symbols          *bool `json:"symbols"`
	ExcludeAmbiguous bool  `json:"exclude_ambiguous"`
	ExcludeSimilar   bool  `json:"exclude_similar"`
	Pronounceable    bool  `json:"pronounceable"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password    string `json:"password"`
	Length      int    `json:"length"`
	EntropyBits int    `json:"entropy_bits"`
}

// PassphraseRequest represents a passphrase generation request.
type PassphraseRequest struct {
	WordCount int    `json:"word_count"`
	Separator string `json:"separator"`
}

// PassphraseResponse represents a passphrase generation response.
type PassphraseResponse struct {
	Passphrase  string `json:"passphrase"`
	WordCount   int    `json:"word_count"`
	EntropyBits int    `json:"entropy_bits"`
}

// StrengthRequest represents a strength check request. UserInputs lists
// user-specific strings (username, site name) to score as guessable.
type StrengthRequest struct {
	Password    string   `json:"password"`
	UserInputs  []string `json:"user_inputs"`
	CheckBreach bool     `json:"check_breach"`
}

// BreachRequest represents a breach check request.
type BreachRequest struct {
	Password string `json:"password"`
}

// BreachResponse represents a breach check response. A zero count means the
// password was not found in the queried range, not that it was never breached.
type BreachResponse struct {
	Count int `json:"count"`
}
