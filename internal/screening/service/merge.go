package service

import (
	"github.com/ENEASJO/sistema-de-filtro/internal/screening/models"
	"github.com/ENEASJO/sistema-de-filtro/internal/screening/ports"
	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
)

// sourceOutcome is one adapter's settled slot after the fan-out: either a
// result or a failure, never both, never cancelled by a sibling.
type sourceOutcome struct {
	name   string
	result *ports.SourceResult
	err    error
}

// mergedView is the canonical per-run view built from all source outcomes.
type mergedView struct {
	companyName   string
	people        []models.PersonRecord
	failedSources []string
}

// merge folds source outcomes into deduplicated, provenance-tagged person
// records. Outcomes arrive in fixed source-priority order (adapter
// registration order); record order is the deterministic first-seen order of
// each DNI across that sequence, which keeps results reproducible.
//
// Field resolution is first-non-empty-wins in priority order, both for the
// company name and for each person's display name: an earlier empty name is
// filled by a later source, never overwritten by one.
func (s *Service) merge(ruc domain.RUC, outcomes []sourceOutcome) mergedView {
	view := mergedView{}
	indexByDNI := make(map[domain.DNI]int)

	for _, outcome := range outcomes {
		if outcome.err != nil {
			view.failedSources = append(view.failedSources, outcome.name)
			continue
		}

		if view.companyName == "" && outcome.result.CompanyName != "" {
			view.companyName = outcome.result.CompanyName
		}

		for _, tuple := range outcome.result.People {
			if domain.ClassifyIdentifier(tuple.DNI) != domain.KindDNI {
				// Truncated or mislabeled RUCs show up in raw registry data;
				// they are provenance noise, not candidate persons.
				s.logger.Debug("dropping non-dni token from source",
					"source", outcome.name,
					"token", tuple.DNI,
					"kind", domain.ClassifyIdentifier(tuple.DNI).String(),
				)
				continue
			}
			dni := domain.DNI(tuple.DNI)

			idx, seen := indexByDNI[dni]
			if !seen {
				indexByDNI[dni] = len(view.people)
				view.people = append(view.people, models.PersonRecord{
					DNI:      dni,
					FullName: tuple.Name,
					Sources:  []string{outcome.name},
					RUC:      ruc,
				})
				continue
			}

			record := &view.people[idx]
			record.Sources = appendSourceTag(record.Sources, outcome.name)
			if record.FullName == "" && tuple.Name != "" {
				record.FullName = tuple.Name
			}
		}
	}

	// Normalization runs once per merged record, after name resolution.
	for i := range view.people {
		view.people[i].FullName = normalizeName(view.people[i].FullName)
	}

	return view
}

// appendSourceTag unions a tag into the source set, preserving order.
func appendSourceTag(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}
