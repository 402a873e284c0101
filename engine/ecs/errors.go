package ecs

import (
	"errors"
	"fmt"
)

// Sentinel errors for failed component lookups.
var (
	ErrNoEntity    = errors.New("entity does not exist")
	ErrNoComponent = errors.New("entity does not have component")
)

// LookupError describes a failed component lookup on an entity.
type LookupError struct {
	Entity    Entity
	Component string
	Err       error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup of %s on entity %v: %v", e.Component, e.Entity, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
