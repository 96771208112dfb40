package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"neuroscreen/internal/models"
	"neuroscreen/internal/scoring"
	"neuroscreen/internal/store"
)

type stubNarrator struct {
	lines []string
	err   error
	calls int
}

func (n *stubNarrator) Recommendations(ctx context.Context, score int, domain models.Domain, responseCount int) ([]string, error) {
	n.calls++
	return n.lines, n.err
}

func completedSequencer(t *testing.T, clock Clock) *Sequencer {
	t.Helper()
	seq := NewFixedSequencer(testBattery(), clock)
	respond(t, seq, "apple chair penny")
	respond(t, seq, "100 93 86 79 72")
	respond(t, seq, "dog cat horse")
	require.True(t, seq.IsTerminal())
	return seq
}

func TestFinalizeRejectsLiveSession(t *testing.T) {
	clock := newFakeClock()
	agg := NewResultAggregator(store.NewMemoryStore(), nil, clock, zap.NewNop())
	seq := NewFixedSequencer(testBattery(), clock)

	_, err := agg.Finalize(context.Background(), seq)
	assert.Error(t, err)
}

func TestFinalizeEmitsResult(t *testing.T) {
	clock := newFakeClock()
	results := store.NewMemoryStore()
	agg := NewResultAggregator(results, nil, clock, zap.NewNop())

	seq := completedSequencer(t, clock)
	clock.advance(4 * time.Minute)

	result, err := agg.Finalize(context.Background(), seq)
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, models.DomainCognitive, result.Domain)
	assert.Equal(t, scoring.ClassifyRisk(result.Score), result.RiskLevel)
	assert.NotEmpty(t, result.Recommendations)
	assert.Len(t, result.Responses, 3)
	assert.EqualValues(t, 4*60*1000, result.DurationMs)
	assert.Equal(t, 3, result.QuestionCount)
	assert.Equal(t, clock.Now(), result.CreatedAt)

	// The result landed in the store.
	stored, err := results.Latest(models.DomainCognitive)
	require.NoError(t, err)
	assert.Equal(t, result.ID, stored.ID)
}

func TestFinalizeUsesNarratorWhenHealthy(t *testing.T) {
	clock := newFakeClock()
	narrator := &stubNarrator{lines: []string{"Keep up your daily word games."}}
	agg := NewResultAggregator(store.NewMemoryStore(), narrator, clock, zap.NewNop())

	result, err := agg.Finalize(context.Background(), completedSequencer(t, clock))
	require.NoError(t, err)

	assert.Equal(t, 1, narrator.calls)
	assert.Equal(t, narrator.lines, result.Recommendations)
}

func TestFinalizeFallsBackOnNarratorFailure(t *testing.T) {
	clock := newFakeClock()
	narrator := &stubNarrator{err: errors.New("connection refused")}
	agg := NewResultAggregator(store.NewMemoryStore(), narrator, clock, zap.NewNop())

	result, err := agg.Finalize(context.Background(), completedSequencer(t, clock))
	require.NoError(t, err)

	assert.Equal(t, 1, narrator.calls)
	assert.Equal(t,
		scoring.Recommendations(result.Domain, result.RiskLevel),
		result.Recommendations)
}
