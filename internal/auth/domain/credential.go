package domain

import "time"

type CredentialID int64

// Credential is the stored password hash of exactly one user.
type Credential struct {
	ID           CredentialID
	UserID       int64
	PasswordHash string
	CreatedAt    time.Time
}
