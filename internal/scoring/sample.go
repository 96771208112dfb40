package scoring

import (
	"strings"

	"neuroscreen/internal/models"
)

// SamplePerformance reduces one completed item into the ephemeral
// performance digest consumed by the adaptive difficulty controller. Failed
// captures sample as zero performance, which walks the staircase down.
func SamplePerformance(item models.TestItem, resp models.Response) models.PerformanceSample {
	sample := models.PerformanceSample{}
	if resp.Capture.Failed() {
		return sample
	}

	switch capture := resp.Capture.Data.(type) {
	case *models.TextCapture:
		// Generated question items carry their expected answer on the
		// payload; the checker only ever compares against that value.
		if item.Payload.Answer != "" {
			if strings.EqualFold(strings.TrimSpace(capture.Value), item.Payload.Answer) {
				sample.Score = 100
				sample.Accuracy = 1
			}
		}
	case *models.GameCapture:
		sample.TimeSpentMs = capture.DurationMs
		if capture.Total > 0 {
			ratio := float64(capture.Correct) / float64(capture.Total)
			sample.Score = 100 * ratio
			sample.Accuracy = ratio
		}
	case *models.SpatialCapture:
		if capture.Total > 0 {
			ratio := float64(capture.Correct) / float64(capture.Total)
			sample.Score = 100 * ratio
			sample.Accuracy = ratio
		}
	case *models.ExecutiveCapture:
		sample.TimeSpentMs = capture.AverageMs * float64(capture.Total)
		if capture.Total > 0 {
			ratio := float64(capture.Correct) / float64(capture.Total)
			sample.Score = 100 * ratio
			sample.Accuracy = ratio
		}
	case *models.ReactionCapture:
		metric := calculateTimedReaction([]models.Response{resp})
		if metric.Calculated {
			sample.Score = 100 * metric.Value
			sample.Accuracy = metric.Value
		}
	}

	return sample
}
