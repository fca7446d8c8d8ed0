// Package models holds the screening domain model. Entities live for one
// request: nothing here is persisted or mutated after construction.
package models

import (
	"time"

	"github.com/ENEASJO/sistema-de-filtro/internal/relationship"
	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
)

// Rejection reasons. The two classes are terminal for a run; neither is
// retried automatically.
const (
	ReasonFamilyLinkDetected = "family relation detected among candidate persons"
	ReasonNoIdentifiersFound = "no identifiers found"
)

// PersonRecord is one merged candidate person for an organization.
// There is exactly one record per distinct DNI per run; Sources only grows as
// more registries corroborate the same identifier.
type PersonRecord struct {
	DNI      domain.DNI `json:"dni"`
	FullName string     `json:"full_name"`
	Sources  []string   `json:"sources"`
	RUC      domain.RUC `json:"ruc"`
}

// AggregationResult is the full outcome of screening one organization.
//
// Invariants: Approved == (len(RejectedDNIs) == 0); ApprovedDNIs and
// RejectedDNIs are disjoint and together cover exactly the DNIs in People.
type AggregationResult struct {
	RUC         domain.RUC     `json:"ruc"`
	CompanyName string         `json:"company_name"`
	People      []PersonRecord `json:"people"`

	// FailedSources records degraded-mode runs: sources that failed while at
	// least one other source yielded data.
	FailedSources []string `json:"failed_sources,omitempty"`

	Relationships []relationship.Result `json:"-"`

	Approved        bool         `json:"approved"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	ApprovedDNIs    []domain.DNI `json:"approved_dnis"`
	RejectedDNIs    []domain.DNI `json:"rejected_dnis"`

	EvaluatedAt time.Time `json:"evaluated_at"`
}

// BatchEntry is one organization's slot in a batch run. Exactly one of Result
// and Error is set: an unclassified per-org failure is confined here instead
// of aborting the batch.
type BatchEntry struct {
	RUC    domain.RUC         `json:"ruc"`
	Result *AggregationResult `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// RejectionDetail summarizes one rejected organization for the batch summary.
type RejectionDetail struct {
	RUC          domain.RUC   `json:"ruc"`
	Reason       string       `json:"reason"`
	RejectedDNIs []domain.DNI `json:"rejected_dnis,omitempty"`
}

// BatchSummary aggregates counts over a batch run.
type BatchSummary struct {
	TotalProcessed   int               `json:"total_processed"`
	ApprovedCount    int               `json:"approved_count"`
	RejectedCount    int               `json:"rejected_count"`
	RejectionDetails []RejectionDetail `json:"rejection_details"`
}

// BatchResult is the outcome of a sequential batch run over several
// organizations.
type BatchResult struct {
	Entries []BatchEntry `json:"results"`
	Summary BatchSummary `json:"summary"`
}
