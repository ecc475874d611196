package routing

import "errors"

// Domain-specific errors for the routing package.
var (
	ErrRouteExists   = errors.New("route id already registered")
	ErrRouteNotFound = errors.New("route not found")
	ErrNilHandler    = errors.New("route handler is required")
	ErrEmptyRouteID  = errors.New("route id is required")
	ErrMissingIntent = errors.New("route intent type is required")
)
