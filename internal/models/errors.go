package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicateKey = errors.New("duplicate key violation")
)

// FighterNotFoundError reports a fighter name with no record for the requested corner
type FighterNotFoundError struct {
	Side Corner
	Name string
}

func (e *FighterNotFoundError) Error() string {
	return fmt.Sprintf("no %s-corner record for fighter %q", e.Side, e.Name)
}

// Is lets errors.Is(err, ErrNotFound) match a FighterNotFoundError
func (e *FighterNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidInputError reports a missing or empty request field
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match an InvalidInputError
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
