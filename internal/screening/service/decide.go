package service

import (
	"github.com/ENEASJO/sistema-de-filtro/internal/relationship"
	"github.com/ENEASJO/sistema-de-filtro/internal/screening/models"
	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
)

// decision is the outcome of applying the approval policy to one run.
type decision struct {
	approved     bool
	reason       string
	approvedDNIs []domain.DNI
	rejectedDNIs []domain.DNI
}

// decide applies the reject-if-any policy: a single related result fails the
// whole run. This is pure domain logic - no I/O, no side effects.
//
// An empty candidate set is itself a rejection with its own distinct reason,
// never a silent approval and never confused with the family-link reason.
// Postconditions: approved == (len(rejectedDNIs) == 0); approvedDNIs and
// rejectedDNIs are disjoint and together cover every person in the run.
func decide(people []models.PersonRecord, results []relationship.Result) decision {
	if len(people) == 0 {
		return decision{
			approved:     false,
			reason:       models.ReasonNoIdentifiersFound,
			approvedDNIs: []domain.DNI{},
			rejectedDNIs: []domain.DNI{},
		}
	}

	related := make(map[domain.DNI]bool, len(results))
	for _, res := range results {
		if res.Related {
			related[res.DNI] = true
		}
	}

	d := decision{
		approvedDNIs: make([]domain.DNI, 0, len(people)),
		rejectedDNIs: make([]domain.DNI, 0),
	}
	for _, person := range people {
		if related[person.DNI] {
			d.rejectedDNIs = append(d.rejectedDNIs, person.DNI)
		} else {
			d.approvedDNIs = append(d.approvedDNIs, person.DNI)
		}
	}

	d.approved = len(d.rejectedDNIs) == 0
	if !d.approved {
		d.reason = models.ReasonFamilyLinkDetected
	}
	return d
}
