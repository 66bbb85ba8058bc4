package model

import "errors"

var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken indicates that another account already uses the email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken indicates that another account already uses the username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
