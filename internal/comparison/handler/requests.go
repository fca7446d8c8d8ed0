package handler

import (
	dErrors "github.com/ENEASJO/sistema-de-filtro/pkg/domain-errors"
)

// CompareRequest is the HTTP request body for POST /comparison/relatives.
// Identifier parsing and the distinct-count minimum live in the service,
// alongside the dedupe both depend on.
type CompareRequest struct {
	DNIs []string `json:"dnis"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CompareRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.DNIs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "dnis is required")
	}
	return nil
}
