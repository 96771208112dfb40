package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"neuroscreen/internal/models"
	"neuroscreen/internal/scoring"
	"neuroscreen/internal/store"
)

// Narrator is the optional external service that turns a finalized score
// into narrative recommendation text. Failures are recovered locally.
type Narrator interface {
	Recommendations(ctx context.Context, score int, domain models.Domain, responseCount int) ([]string, error)
}

// ResultAggregator turns a terminal sequencer into an immutable
// AssessmentResult: score, risk classification, recommendations, duration.
type ResultAggregator struct {
	store    store.ResultStore
	narrator Narrator
	clock    Clock
	log      *zap.Logger
}

// NewResultAggregator wires the aggregator. The narrator may be nil; the
// fixed recommendation tables then always apply.
func NewResultAggregator(results store.ResultStore, narrator Narrator, clock Clock, log *zap.Logger) *ResultAggregator {
	return &ResultAggregator{store: results, narrator: narrator, clock: clock, log: log}
}

// Finalize scores the completed session and emits its result to the store.
// It must only be called at the sequencer's terminal transition; the caller
// discards the session state afterwards.
func (a *ResultAggregator) Finalize(ctx context.Context, sequencer *Sequencer) (models.AssessmentResult, error) {
	if !sequencer.IsTerminal() {
		return models.AssessmentResult{}, fmt.Errorf("cannot finalize: session still has items")
	}

	state := sequencer.State()
	responses := sequencer.Responses()
	now := a.clock.Now()

	score := scoring.Score(state.Domain, responses, now)
	risk := scoring.ClassifyRisk(score)

	result := models.AssessmentResult{
		ID:              uuid.NewString(),
		Domain:          state.Domain,
		Score:           score,
		RiskLevel:       risk,
		Recommendations: a.recommendations(ctx, score, risk, state.Domain, len(responses)),
		Responses:       responses,
		DurationMs:      now.UnixMilli() - state.StartEpochMs,
		QuestionCount:   len(sequencer.Items()),
		CreatedAt:       now,
	}

	if err := a.store.Add(result); err != nil {
		return models.AssessmentResult{}, fmt.Errorf("failed to store result: %w", err)
	}

	a.log.Info("Assessment finalized",
		zap.String("session_id", state.SessionID),
		zap.String("domain", string(state.Domain)),
		zap.Int("score", score),
		zap.String("risk", string(risk)),
	)
	return result, nil
}

// recommendations prefers the narrative service but substitutes the fixed
// table on any failure. The external call never blocks result emission
// beyond its own timeout.
func (a *ResultAggregator) recommendations(ctx context.Context, score int, risk models.RiskLevel, domain models.Domain, responseCount int) []string {
	if a.narrator != nil {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		narrative, err := a.narrator.Recommendations(ctx, score, domain, responseCount)
		if err == nil && len(narrative) > 0 {
			return narrative
		}
		if err != nil {
			a.log.Warn("Insight service unavailable, using fixed recommendations",
				zap.String("domain", string(domain)), zap.Error(err))
		}
	}
	return scoring.Recommendations(domain, risk)
}
