package models

import "time"

// Challenge is the ephemeral state backing one emergency password-reset
// attempt. Only the bcrypt digest of the verification code is retained; the
// plaintext code exists only on the delivery channel. A challenge is
// single-use and is discarded after the reset completes or expires.
type Challenge struct {
	ID         string
	UserName   string
	CodeDigest []byte
	IssuedAt   time.Time
	ExpiresAt  time.Time
	Verified   bool
}
