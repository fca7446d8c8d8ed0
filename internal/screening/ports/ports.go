// Package ports defines the interfaces the screening service needs from
// external person registries. Adapters (HTTP clients, in-memory fakes)
// implement them, keeping the aggregation core independent of transport
// details and site-specific extraction.
package ports

import (
	"context"

	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
)

// PersonTuple is one raw (identifier, name) pair as reported by a registry,
// before merging or validation. Name may be empty; the identifier may turn
// out not to be a DNI at all.
type PersonTuple struct {
	DNI  string
	Name string
}

// SourceResult is a registry's normalized answer for one organization.
type SourceResult struct {
	CompanyName string
	People      []PersonTuple
}

// SourcePort wraps one external person registry. Implementations must be safe
// for concurrent use; the service fans out over all registered sources.
type SourcePort interface {
	// Name returns the stable source tag recorded in provenance
	// (e.g. "sunat", "osce").
	Name() string

	// FetchByRUC returns the registry's person tuples for an organization,
	// or an error when the source is unavailable. Partial answers with an
	// empty People list are valid.
	FetchByRUC(ctx context.Context, ruc domain.RUC) (*SourceResult, error)
}
