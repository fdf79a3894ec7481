package domain

import "errors"

var (
	// ErrNotFound indicates the requested product was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a product with the same name is already stored.
	ErrAlreadyExists = errors.New("already exists")
)
