package handler

import (
	"strings"

	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
	dErrors "github.com/ENEASJO/sistema-de-filtro/pkg/domain-errors"
)

// OrganizationRequest is the HTTP request body for POST /screening/organization.
type OrganizationRequest struct {
	RUC string `json:"ruc"`

	// Parsed value (populated by Validate)
	parsedRUC domain.RUC
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *OrganizationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.RUC = strings.TrimSpace(r.RUC)
	if r.RUC == "" {
		return dErrors.New(dErrors.CodeValidation, "ruc is required")
	}

	ruc, err := domain.ParseRUC(r.RUC)
	if err != nil {
		return err
	}
	r.parsedRUC = ruc

	return nil
}

// ParsedRUC returns the validated organization identifier.
func (r *OrganizationRequest) ParsedRUC() domain.RUC {
	return r.parsedRUC
}

// OrganizationsRequest is the HTTP request body for POST /screening/organizations.
// Identifier parsing and the batch size cap live in the service, alongside the
// dedupe that both depend on.
type OrganizationsRequest struct {
	RUCs []string `json:"rucs"`
}

// Validate validates the request.
func (r *OrganizationsRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.RUCs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "rucs is required")
	}
	return nil
}
