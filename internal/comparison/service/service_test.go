package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ENEASJO/sistema-de-filtro/internal/relationship"
	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
	dErrors "github.com/ENEASJO/sistema-de-filtro/pkg/domain-errors"
)

// countingLookup scripts results and counts calls so tests can assert that
// validation failures perform zero lookups.
type countingLookup struct {
	results map[domain.DNI]*relationship.Result
	calls   int
}

func (c *countingLookup) Check(_ context.Context, dni domain.DNI) (*relationship.Result, error) {
	c.calls++
	if res, ok := c.results[dni]; ok {
		return res, nil
	}
	r := relationship.NotFoundResult(dni, false)
	return &r, nil
}

func newService(t *testing.T, lookup relationship.LookupPort) *Service {
	t.Helper()
	checker, err := relationship.NewChecker(lookup, 0)
	require.NoError(t, err)
	svc, err := New(checker)
	require.NoError(t, err)
	return svc
}

func TestCompareIdentifiers_MinimumCount(t *testing.T) {
	tests := []struct {
		name  string
		input []string
	}{
		{"empty input", nil},
		{"single identifier", []string{"00000111"}},
		{"duplicates collapse below the minimum", []string{"00000111", "00000111", " 00000111 "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := &countingLookup{}
			svc := newService(t, lookup)

			_, err := svc.CompareIdentifiers(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Equal(t, 0, lookup.calls, "minimum-count failures must perform zero lookups")
		})
	}
}

func TestCompareIdentifiers_InvalidDNI(t *testing.T) {
	lookup := &countingLookup{}
	svc := newService(t, lookup)

	_, err := svc.CompareIdentifiers(context.Background(), []string{"00000111", "nope"})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	assert.Equal(t, 0, lookup.calls)
}

func TestCompareIdentifiers_SingleDirectedClaim(t *testing.T) {
	lookup := &countingLookup{results: map[domain.DNI]*relationship.Result{
		"00000111": {DNI: "00000111", Found: true, Related: true, RelativeDNI: "00000222", RelationType: "SIBLING", RelativeName: "MARIA"},
		"00000222": {DNI: "00000222", Found: true},
		"00000333": {DNI: "00000333", Found: true},
	}}
	svc := newService(t, lookup)

	report, err := svc.CompareIdentifiers(context.Background(), []string{"00000111", "00000222", "00000333"})
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalInput)
	require.Len(t, report.Links, 1)
	assert.Equal(t, domain.DNI("00000111"), report.Links[0].DNIA)
	assert.Equal(t, domain.DNI("00000222"), report.Links[0].DNIB)
	assert.Equal(t, "SIBLING", report.Links[0].RelationType)

	assert.ElementsMatch(t, []domain.DNI{"00000111", "00000222"}, report.DNIsWithLinks)
	assert.Equal(t, []domain.DNI{"00000333"}, report.DNIsWithoutLinks)
	assert.Empty(t, report.DNIsWithoutData)
}

func TestCompareIdentifiers_SymmetricClaimsEmitOneLink(t *testing.T) {
	lookup := &countingLookup{results: map[domain.DNI]*relationship.Result{
		"00000111": {DNI: "00000111", Found: true, Related: true, RelativeDNI: "00000222", RelationType: "SIBLING"},
		"00000222": {DNI: "00000222", Found: true, Related: true, RelativeDNI: "00000111", RelationType: "HERMANO"},
	}}
	svc := newService(t, lookup)

	report, err := svc.CompareIdentifiers(context.Background(), []string{"00000111", "00000222"})
	require.NoError(t, err)

	require.Len(t, report.Links, 1, "the symmetric pair must not be emitted twice")
	// No label merging: the first direction's label wins.
	assert.Equal(t, "SIBLING", report.Links[0].RelationType)
}

func TestCompareIdentifiers_RelativeOutsideBatchIgnored(t *testing.T) {
	lookup := &countingLookup{results: map[domain.DNI]*relationship.Result{
		"00000111": {DNI: "00000111", Found: true, Related: true, RelativeDNI: "77777777", RelationType: "PARENT"},
		"00000222": {DNI: "00000222", Found: true},
	}}
	svc := newService(t, lookup)

	report, err := svc.CompareIdentifiers(context.Background(), []string{"00000111", "00000222"})
	require.NoError(t, err)
	assert.Empty(t, report.Links)
	assert.ElementsMatch(t, []domain.DNI{"00000111", "00000222"}, report.DNIsWithoutLinks)
}

func TestCompareIdentifiers_NameFallback(t *testing.T) {
	lookup := &countingLookup{results: map[domain.DNI]*relationship.Result{
		"00000111": {DNI: "00000111", Found: true, Related: true, RelativeDNI: "00000222", RelationType: "SPOUSE"},
		"00000222": {DNI: "00000222", Found: true, FullName: "QUISPE MAMANI, ROSA"},
	}}
	svc := newService(t, lookup)

	report, err := svc.CompareIdentifiers(context.Background(), []string{"00000111", "00000222"})
	require.NoError(t, err)
	require.Len(t, report.Links, 1)
	assert.Equal(t, "QUISPE MAMANI, ROSA", report.Links[0].RelativeName,
		"a claim without a counterpart name falls back to the counterpart's own registered name")
	assert.Equal(t, "declared by 00000111", report.Links[0].Note)
}

func TestCompareIdentifiers_BucketsPartitionInput(t *testing.T) {
	lookup := &countingLookup{results: map[domain.DNI]*relationship.Result{
		"00000111": {DNI: "00000111", Found: true, Related: true, RelativeDNI: "00000222", RelationType: "SIBLING"},
		"00000222": {DNI: "00000222", Found: true},
		"00000333": {DNI: "00000333", Found: false, Errored: true},
		"00000444": {DNI: "00000444", Found: true},
	}}
	svc := newService(t, lookup)

	input := []string{"00000111", "00000222", "00000333", "00000444"}
	report, err := svc.CompareIdentifiers(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, []domain.DNI{"00000333"}, report.DNIsWithoutData)
	assert.Equal(t, []domain.DNI{"00000444"}, report.DNIsWithoutLinks)

	seen := make(map[domain.DNI]int)
	for _, bucket := range [][]domain.DNI{report.DNIsWithLinks, report.DNIsWithoutData, report.DNIsWithoutLinks} {
		for _, dni := range bucket {
			seen[dni]++
		}
	}
	assert.Len(t, seen, report.TotalInput, "buckets must cover the whole input")
	for dni, count := range seen {
		assert.Equal(t, 1, count, "dni %s appears in more than one bucket", dni)
	}
}

// TestCompareIdentifiers_LinkedButDataless: an identifier claimed as a
// relative whose own lookup failed belongs to the linked bucket, keeping the
// partition free of overlap.
func TestCompareIdentifiers_LinkedButDataless(t *testing.T) {
	lookup := &countingLookup{results: map[domain.DNI]*relationship.Result{
		"00000111": {DNI: "00000111", Found: true, Related: true, RelativeDNI: "00000222", RelationType: "SIBLING"},
		"00000222": {DNI: "00000222", Found: false, Errored: true},
	}}
	svc := newService(t, lookup)

	report, err := svc.CompareIdentifiers(context.Background(), []string{"00000111", "00000222"})
	require.NoError(t, err)
	require.Len(t, report.Links, 1)
	assert.ElementsMatch(t, []domain.DNI{"00000111", "00000222"}, report.DNIsWithLinks)
	assert.Empty(t, report.DNIsWithoutData)
}

func TestCompareIdentifiers_NoPermutedPairs(t *testing.T) {
	// Several mutual claims; the emitted list must never contain two entries
	// that are permutations of the same pair.
	lookup := &countingLookup{results: map[domain.DNI]*relationship.Result{
		"00000111": {DNI: "00000111", Found: true, Related: true, RelativeDNI: "00000222", RelationType: "SIBLING"},
		"00000222": {DNI: "00000222", Found: true, Related: true, RelativeDNI: "00000111", RelationType: "SIBLING"},
		"00000333": {DNI: "00000333", Found: true, Related: true, RelativeDNI: "00000444", RelationType: "SPOUSE"},
		"00000444": {DNI: "00000444", Found: true, Related: true, RelativeDNI: "00000333", RelationType: "SPOUSE"},
	}}
	svc := newService(t, lookup)

	report, err := svc.CompareIdentifiers(context.Background(), []string{"00000111", "00000222", "00000333", "00000444"})
	require.NoError(t, err)
	require.Len(t, report.Links, 2)

	type pair struct{ a, b domain.DNI }
	seen := make(map[pair]bool)
	for _, link := range report.Links {
		a, b := link.DNIA, link.DNIB
		if b < a {
			a, b = b, a
		}
		require.False(t, seen[pair{a, b}], "pair (%s, %s) emitted twice", a, b)
		seen[pair{a, b}] = true
	}
}
