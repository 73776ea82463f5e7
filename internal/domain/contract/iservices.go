package contract

import (
	"context"
)

// IHasher hashes and verifies passwords and token material.
type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hashedPassword string) error
	HashString(s string) string
	CheckHash(s, hash string) bool
}

// IUUIDGenerator produces new document ids.
type IUUIDGenerator interface {
	NewUUID() string
}

// IRandomGenerator produces URL-safe random tokens.
type IRandomGenerator interface {
	GenerateRandomToken(n int) (string, error)
}

// IEmailService sends plain-text email.
type IEmailService interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// IAIService generates text from a prompt via an external LLM provider.
type IAIService interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
