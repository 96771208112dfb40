package scoring

import (
	"math"
	"time"

	"neuroscreen/internal/models"
)

// MetricResult is one sub-task's contribution to a domain score. Value is
// normalized to [0,1]; Calculated is false when the session produced no
// usable data for the sub-task, in which case its weight is excluded from
// the denominator instead of penalizing the score.
type MetricResult struct {
	Value      float64 `json:"value"`
	Calculated bool    `json:"calculated"`
	SampleSize int     `json:"sampleSize,omitempty"`
}

// weighted pairs a sub-task metric with its domain weight.
type weighted struct {
	metric MetricResult
	weight float64
}

// Score reduces a session's responses into a single 0-100 domain score.
// It is a pure function of its inputs: re-running it on the same response
// set yields the same score. The reference time is only consulted by the
// cognitive orientation sub-task.
func Score(domain models.Domain, responses []models.Response, now time.Time) int {
	switch domain {
	case models.DomainCognitive:
		return scoreCognitive(responses, now)
	case models.DomainMotor:
		return scoreMotor(responses)
	case models.DomainSpeech:
		return scoreSpeech(responses)
	case models.DomainBehavioral:
		return scoreBehavioral(responses)
	}
	return 0
}

// combine folds weighted sub-task metrics into a 0-100 score. Sub-tasks
// without a calculated metric drop out of both numerator and denominator;
// with nothing calculated the score is 0.
func combine(parts []weighted) int {
	var sum, totalWeight float64
	for _, p := range parts {
		if !p.metric.Calculated {
			continue
		}
		sum += clamp01(p.metric.Value) * p.weight
		totalWeight += p.weight
	}
	if totalWeight == 0 {
		return 0
	}
	return int(math.Round(100 * sum / totalWeight))
}

// byTask groups usable responses by their scoring sub-task. Responses whose
// capture ended in an error carry no payload and are dropped here, which is
// what gives them zero scoring weight.
func byTask(responses []models.Response) map[models.Task][]models.Response {
	grouped := make(map[models.Task][]models.Response)
	for _, r := range responses {
		if r.Capture.Failed() {
			continue
		}
		grouped[r.Task] = append(grouped[r.Task], r)
	}
	return grouped
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClassifyRisk maps a 0-100 score onto the three risk tiers. The 85 and 70
// boundaries are inclusive on the higher tier.
func ClassifyRisk(score int) models.RiskLevel {
	switch {
	case score >= 85:
		return models.RiskLow
	case score >= 70:
		return models.RiskModerate
	default:
		return models.RiskHigh
	}
}
