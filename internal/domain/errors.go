// Package domain holds definitions shared by the entity packages.
package domain

import "fmt"

// BuildingError is returned by entity builders when a draft violates one of
// the entity's invariants. Only the first violation, in field order, is reported.
type BuildingError struct {
	Entity string
	Field  string
	Reason string
}

func (e *BuildingError) Error() string {
	return fmt.Sprintf("build %s: %s: %s", e.Entity, e.Field, e.Reason)
}
