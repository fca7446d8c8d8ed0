// Package models holds the comparison-mode domain model.
package models

import (
	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
)

// FamilyLink is a detected relationship between two identifiers of a
// comparison batch. The pair is unordered: the report never carries both
// (A, B) and (B, A).
type FamilyLink struct {
	DNIA         domain.DNI `json:"dni_a"`
	DNIB         domain.DNI `json:"dni_b"`
	RelationType string     `json:"relation_type"`

	// RelativeName is the counterpart's name as carried by the claiming
	// side, falling back to the counterpart's own registered name when the
	// claim has none.
	RelativeName string `json:"relative_name,omitempty"`

	// Note records which side declared the link, keeping asymmetric source
	// data auditable.
	Note string `json:"note"`
}

// ComparisonReport summarizes the family links found inside one batch of
// identifiers.
//
// Invariant: DNIsWithLinks, DNIsWithoutData, and DNIsWithoutLinks partition
// the deduplicated input set with no overlap.
type ComparisonReport struct {
	TotalInput       int          `json:"total_input"`
	Links            []FamilyLink `json:"links"`
	DNIsWithLinks    []domain.DNI `json:"dnis_with_links"`
	DNIsWithoutData  []domain.DNI `json:"dnis_without_data"`
	DNIsWithoutLinks []domain.DNI `json:"dnis_without_links"`
}
