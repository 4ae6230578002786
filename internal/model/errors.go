package model

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUser      = errors.New("user with email or username already exists")
	ErrNoSession          = errors.New("no active session")
	ErrInvalidCredentials = errors.New("invalid user credentials")
)
