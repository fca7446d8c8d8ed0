// Package relationship sequences family-relation lookups against the external
// relatives registry. The registry is fragile under concurrent load, so the
// checker is strictly sequential with a fixed pause between calls.
package relationship

import (
	"context"

	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
)

// Result is the outcome of one relatives-registry lookup.
//
// Invariants: Found=false implies Related=false with all optional fields
// empty; Related=true implies Found=true. Errored marks lookups that failed
// and were absorbed instead of aborting the queue.
type Result struct {
	DNI     domain.DNI
	Found   bool
	Errored bool
	Related bool

	// FullName is the queried person's registered display name.
	FullName string

	// Relative fields are set only when Related is true.
	RelativeName string
	RelativeDNI  domain.DNI
	RelationType string
}

// NotFoundResult builds the absorbed-failure shape used when a lookup errors
// or the registry has no entry.
func NotFoundResult(dni domain.DNI, errored bool) Result {
	return Result{DNI: dni, Found: false, Errored: errored}
}

// LookupPort is the external relatives-registry collaborator. Adapters
// (HTTP client, in-memory fake) implement it; the checker only sequences it.
type LookupPort interface {
	Check(ctx context.Context, dni domain.DNI) (*Result, error)
}
