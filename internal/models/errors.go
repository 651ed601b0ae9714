package models

import "errors"

var (
	// ErrNoRecord covers both unknown products and cart items that do not
	// exist or do not belong to the requesting user.
	ErrNoRecord = errors.New("models: no matching record found")

	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
)
