package receipt

import "fmt"

// ValidationError reports malformed or out-of-range input data. It maps
// to a client error at the HTTP layer.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NotFoundError reports an unknown receipt identifier.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("receipt not found: %s", e.ID)
}

// InvalidArgumentError reports a bad enum-like parameter, such as an
// unrecognized sort criteria.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return e.Reason
}

// InvalidInputError reports a nil required object passed to an internal
// computation. It should not be reachable through the HTTP surface.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}
