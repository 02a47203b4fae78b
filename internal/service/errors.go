package service

import "errors"

var (
	// ErrForbidden: the resolved session does not own the post it is
	// trying to publish or delete.
	ErrForbidden = errors.New("only the post author may do this")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
