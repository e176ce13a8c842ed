package i

import (
	"time"
)

// Tokenizer defines methods for generating and decoding tokens.
type Tokenizer interface {
	// Generate creates a token for subject with the given extra claims and expiration duration.
	Generate(subject string, claims map[string]interface{}, expTime time.Duration) (string, error)

	// Decode validates and parses a token, returning its claims.
	// Tokens signed for another issuer are rejected.
	Decode(token string) (map[string]interface{}, error)
}
