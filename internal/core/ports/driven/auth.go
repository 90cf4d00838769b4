package driven

import "github.com/arcline-labs/arcline-core/internal/core/domain"

// AuthAdapter handles token and credential operations
type AuthAdapter interface {
	// GenerateToken creates a signed JWT from domain claims
	GenerateToken(claims *domain.TokenClaims) (string, error)

	// ParseToken validates a JWT and extracts domain claims
	ParseToken(tokenString string) (*domain.TokenClaims, error)

	// HashAPIKey generates a hash from a plaintext API key
	HashAPIKey(apiKey string) (string, error)

	// VerifyAPIKey checks if an API key matches a stored hash
	VerifyAPIKey(apiKey, hash string) bool
}
