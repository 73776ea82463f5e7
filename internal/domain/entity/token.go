package entity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType identifies what a stored token is for.
type TokenType string

const (
	TokenTypeRefresh       TokenType = "refresh"
	TokenTypePasswordReset TokenType = "password_reset"
)

// Token is a stored credential record (refresh or password-reset).
// Only the hash of the token material is persisted.
type Token struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	TokenType TokenType `bson:"token_type" json:"token_type"`
	TokenHash string    `bson:"token_hash" json:"-"`
	Verifier  string    `bson:"verifier,omitempty" json:"-"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	Revoke    bool      `bson:"revoke" json:"revoke"`
}

// Claims are the parsed contents of an access or refresh token.
type Claims struct {
	UserID string
	Role   UserRole
	jwt.RegisteredClaims
}
