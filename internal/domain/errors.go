package domain

import "errors"

// Error kinds. Callers classify failures with errors.Is; the HTTP layer maps
// each kind to a status code.
var (
	// ErrValidation marks malformed caller input.
	ErrValidation = errors.New("validation failed")

	// ErrUpstreamFetch marks an unreachable source API or a non-success
	// response status.
	ErrUpstreamFetch = errors.New("upstream fetch failed")

	// ErrUpstreamParse marks an unexpected response shape from a source or
	// from the AI gateway.
	ErrUpstreamParse = errors.New("upstream response parse failed")

	// ErrUpstreamGateway marks a failure of the AI gateway or the civic
	// lookup service.
	ErrUpstreamGateway = errors.New("upstream gateway error")

	// ErrPersistence marks a failed write to the bill store or sync log.
	ErrPersistence = errors.New("persistence failed")

	// ErrConfiguration marks a missing credential or setting.
	ErrConfiguration = errors.New("service not configured")

	// ErrNotFound marks a lookup with no matching record.
	ErrNotFound = errors.New("not found")
)
