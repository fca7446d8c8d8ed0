package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Registry adapters return these
// (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about external resources, not validation
// failures:
// - ErrNotFound: the registry has no entry for the identifier
// - ErrUnavailable: the registry is down or answered outside its contract
// - ErrInvalidState: the registry answered with data we cannot interpret
//
// For validation errors (bad input, missing fields), use pkg/domain-errors
// directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidState = errors.New("invalid state")
)
