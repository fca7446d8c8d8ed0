package service

import (
	"fmt"

	"github.com/ENEASJO/sistema-de-filtro/internal/comparison/models"
	"github.com/ENEASJO/sistema-de-filtro/internal/relationship"
	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
)

// buildReport derives the pairwise family links and the report buckets from
// one result per input identifier. This is pure domain logic - no I/O.
//
// A link is emitted for every identifier whose lookup claims a relative that
// is itself a member of the batch. The sole deduplication rule is symmetric:
// once (A, B) is emitted, (B, A) is skipped. Conflicting relation-type labels
// between the two directions are not merged; the first claim wins. A link is
// still emitted when only one side claims it - asymmetric registry data is
// expected, not an error.
func buildReport(dnis []domain.DNI, results []relationship.Result) *models.ComparisonReport {
	inBatch := make(map[domain.DNI]bool, len(dnis))
	for _, dni := range dnis {
		inBatch[dni] = true
	}
	resultOf := make(map[domain.DNI]relationship.Result, len(results))
	for _, res := range results {
		resultOf[res.DNI] = res
	}

	report := &models.ComparisonReport{
		TotalInput:       len(dnis),
		Links:            []models.FamilyLink{},
		DNIsWithLinks:    []domain.DNI{},
		DNIsWithoutData:  []domain.DNI{},
		DNIsWithoutLinks: []domain.DNI{},
	}

	linked := make(map[domain.DNI]bool)
	for _, res := range results {
		if !res.Found || !res.Related || res.RelativeDNI == "" {
			continue
		}
		if !inBatch[res.RelativeDNI] {
			// The relative exists but is outside the batch; comparison mode
			// only reports links inside the caller-supplied set.
			continue
		}
		if hasSymmetricLink(report.Links, res.DNI, res.RelativeDNI) {
			continue
		}

		name := res.RelativeName
		if name == "" {
			// The claim carries no counterpart name; use the counterpart's
			// own registered name when its lookup produced one.
			name = resultOf[res.RelativeDNI].FullName
		}

		report.Links = append(report.Links, models.FamilyLink{
			DNIA:         res.DNI,
			DNIB:         res.RelativeDNI,
			RelationType: res.RelationType,
			RelativeName: name,
			Note:         fmt.Sprintf("declared by %s", res.DNI),
		})
		linked[res.DNI] = true
		linked[res.RelativeDNI] = true
	}

	// The three buckets partition the deduplicated input: linked ids first,
	// then ids the registry has no data for, then the remainder.
	for _, dni := range dnis {
		switch {
		case linked[dni]:
			report.DNIsWithLinks = append(report.DNIsWithLinks, dni)
		case !resultOf[dni].Found:
			report.DNIsWithoutData = append(report.DNIsWithoutData, dni)
		default:
			report.DNIsWithoutLinks = append(report.DNIsWithoutLinks, dni)
		}
	}

	return report
}

// hasSymmetricLink reports whether the pair (a, b) was already emitted in
// either direction.
func hasSymmetricLink(links []models.FamilyLink, a, b domain.DNI) bool {
	for _, link := range links {
		if (link.DNIA == a && link.DNIB == b) || (link.DNIA == b && link.DNIB == a) {
			return true
		}
	}
	return false
}
