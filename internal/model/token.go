package model

import "time"

// TokenData contains the data stored with a session token.
type TokenData struct {
	Signer    Identity  `json:"signer"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
