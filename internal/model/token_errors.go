package model

import "errors"

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenMalformed = errors.New("token malformed")

	// ErrTokenReused means a refresh token passed signature and expiry
	// checks but does not match the stored one: it was rotated away or the
	// session was terminated.
	ErrTokenReused = errors.New("refresh token expired or used")
)
