package data

import (
	"time"

	"github.com/emzola/critica/internal/validator"
)

// Token scopes. A confirmation token is issued at sign-up and exchanged,
// exactly once, for an authentication token.
const (
	ScopeConfirmation   = "confirmation"
	ScopeAuthentication = "authentication"
)

// Token defines a token model. Only the SHA-256 hash of the plaintext is
// persisted.
type Token struct {
	Plaintext string    `json:"token"`
	Hash      []byte    `json:"-"`
	UserID    int64     `json:"-"`
	Expiry    time.Time `json:"expiry"`
	Scope     string    `json:"-"`
}

func ValidateTokenPlaintext(v *validator.Validator, tokenPlaintext string) {
	v.Check(tokenPlaintext != "", "token", "must be provided")
	v.Check(len(tokenPlaintext) == 26, "token", "must be 26 bytes long")
}
