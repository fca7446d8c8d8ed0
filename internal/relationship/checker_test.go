package relationship

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ENEASJO/sistema-de-filtro/pkg/domain"
	dErrors "github.com/ENEASJO/sistema-de-filtro/pkg/domain-errors"
)

// fakeLookup returns scripted results per DNI and records call order.
type fakeLookup struct {
	results map[domain.DNI]*Result
	errs    map[domain.DNI]error
	calls   []domain.DNI
	callGap []time.Time
}

func (f *fakeLookup) Check(_ context.Context, dni domain.DNI) (*Result, error) {
	f.calls = append(f.calls, dni)
	f.callGap = append(f.callGap, time.Now())
	if err, ok := f.errs[dni]; ok {
		return nil, err
	}
	if res, ok := f.results[dni]; ok {
		return res, nil
	}
	r := NotFoundResult(dni, false)
	return &r, nil
}

func TestNewChecker(t *testing.T) {
	t.Run("nil lookup returns error", func(t *testing.T) {
		_, err := NewChecker(nil, 0)
		require.Error(t, err)
	})

	t.Run("negative delay returns error", func(t *testing.T) {
		_, err := NewChecker(&fakeLookup{}, -time.Millisecond)
		require.Error(t, err)
	})
}

func TestSweep_OrderMatchesInput(t *testing.T) {
	lookup := &fakeLookup{
		results: map[domain.DNI]*Result{
			"11111111": {DNI: "11111111", Found: true},
			"22222222": {DNI: "22222222", Found: true, Related: true, RelativeDNI: "11111111", RelationType: "SIBLING"},
			"33333333": {DNI: "33333333", Found: true},
		},
	}
	checker, err := NewChecker(lookup, 0)
	require.NoError(t, err)

	input := []domain.DNI{"33333333", "11111111", "22222222"}
	results, err := checker.Sweep(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, results, len(input))

	// Callers zip inputs with results, so order must match one to one.
	for i, dni := range input {
		assert.Equal(t, dni, results[i].DNI)
	}
	assert.Equal(t, input, lookup.calls, "lookups must run in input order")
}

func TestSweep_FaultIsolation(t *testing.T) {
	lookup := &fakeLookup{
		results: map[domain.DNI]*Result{
			"11111111": {DNI: "11111111", Found: true},
			"33333333": {DNI: "33333333", Found: true, Related: true, RelativeDNI: "11111111"},
		},
		errs: map[domain.DNI]error{
			"22222222": errors.New("registry hiccup"),
		},
	}
	checker, err := NewChecker(lookup, 0)
	require.NoError(t, err)

	results, err := checker.Sweep(context.Background(), []domain.DNI{"11111111", "22222222", "33333333"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	// The failed lookup is absorbed, not fatal, and does not block the queue.
	assert.True(t, results[1].Errored)
	assert.False(t, results[1].Found)
	assert.False(t, results[1].Related)

	assert.True(t, results[2].Related, "lookups after the failure still ran")
	assert.Len(t, lookup.calls, 3)
}

func TestSweep_DelayBetweenCalls(t *testing.T) {
	lookup := &fakeLookup{}
	delay := 30 * time.Millisecond
	checker, err := NewChecker(lookup, delay)
	require.NoError(t, err)

	_, err = checker.Sweep(context.Background(), []domain.DNI{"11111111", "22222222", "33333333"})
	require.NoError(t, err)
	require.Len(t, lookup.callGap, 3)

	for i := 1; i < len(lookup.callGap); i++ {
		gap := lookup.callGap[i].Sub(lookup.callGap[i-1])
		assert.GreaterOrEqual(t, gap, delay, "calls %d and %d ran closer than the configured delay", i-1, i)
	}
}

func TestSweep_NoDelayBeforeFirstCall(t *testing.T) {
	lookup := &fakeLookup{}
	checker, err := NewChecker(lookup, 5*time.Second)
	require.NoError(t, err)

	start := time.Now()
	_, err = checker.Sweep(context.Background(), []domain.DNI{"11111111"})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second, "single lookup must not wait for the inter-call delay")
}

func TestSweep_ContextCancellationAborts(t *testing.T) {
	t.Run("cancelled during the pause", func(t *testing.T) {
		lookup := &fakeLookup{}
		checker, err := NewChecker(lookup, 5*time.Second)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		results, err := checker.Sweep(ctx, []domain.DNI{"11111111", "22222222"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
		assert.Nil(t, results, "aborted sweeps return no partial results")
		assert.Len(t, lookup.calls, 1, "second lookup must not start after the deadline")
	})

	t.Run("lookup error with expired context is an abort, not an absorbed failure", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		lookup := &cancellingLookup{cancel: cancel}
		checker, err := NewChecker(lookup, 0)
		require.NoError(t, err)

		results, err := checker.Sweep(ctx, []domain.DNI{"11111111", "22222222"})
		require.Error(t, err)
		assert.Nil(t, results)
	})
}

// cancellingLookup cancels its own context and fails, simulating an abandoned
// in-flight call at the request deadline.
type cancellingLookup struct {
	cancel context.CancelFunc
}

func (c *cancellingLookup) Check(ctx context.Context, dni domain.DNI) (*Result, error) {
	c.cancel()
	return nil, ctx.Err()
}

func TestSweep_EmptyInput(t *testing.T) {
	lookup := &fakeLookup{}
	checker, err := NewChecker(lookup, 0)
	require.NoError(t, err)

	results, err := checker.Sweep(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, lookup.calls)
}
