// Package domain holds the repository contracts and rules of the clinic
// aggregates. Repositories report missing rows with ErrNotFound and unique
// constraint violations with ErrDuplicate.
package domain

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
