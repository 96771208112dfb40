package scoring

import (
	"strings"
	"time"

	"neuroscreen/internal/models"
)

// Cognitive sub-task weights. Only sub-tasks with a response contribute to
// the denominator.
const (
	weightRecall      = 0.30
	weightCountdown   = 0.25
	weightOrientation = 0.15
	weightFluency     = 0.20
	weightMiniGame    = 0.05
	weightReaction    = 0.05
)

// recallTargets are the three words presented at the start of the battery.
var recallTargets = []string{"apple", "chair", "penny"}

// countdownExpected is the canonical serial-sevens sequence from 100.
var countdownExpected = []string{"100", "93", "86", "79", "72"}

// fluencyCap is the distinct-item count that earns a full fluency score.
const fluencyCap = 10

func scoreCognitive(responses []models.Response, now time.Time) int {
	grouped := byTask(responses)

	return combine([]weighted{
		{calculateRecall(grouped[models.TaskRecall]), weightRecall},
		{calculateCountdown(grouped[models.TaskCountdown]), weightCountdown},
		{calculateOrientation(grouped[models.TaskOrientation], now), weightOrientation},
		{calculateFluency(grouped[models.TaskFluency]), weightFluency},
		{calculateMiniGame(grouped[models.TaskMiniGame]), weightMiniGame},
		{calculateTimedReaction(grouped[models.TaskReaction]), weightReaction},
	})
}

// calculateRecall scores word recall as the overlap ratio against the fixed
// three-word target list.
func calculateRecall(responses []models.Response) MetricResult {
	text, ok := firstText(responses)
	if !ok {
		return MetricResult{}
	}

	answer := strings.ToLower(text)
	matched := 0
	for _, target := range recallTargets {
		if strings.Contains(answer, target) {
			matched++
		}
	}

	return MetricResult{
		Value:      float64(matched) / float64(len(recallTargets)),
		Calculated: true,
		SampleSize: len(recallTargets),
	}
}

// calculateCountdown scores the serial-sevens task by position-wise equality
// against the canonical expected sequence.
func calculateCountdown(responses []models.Response) MetricResult {
	text, ok := firstText(responses)
	if !ok {
		return MetricResult{}
	}

	entered := splitItems(text)
	correct := 0
	for i, expected := range countdownExpected {
		if i < len(entered) && entered[i] == expected {
			correct++
		}
	}

	return MetricResult{
		Value:      float64(correct) / float64(len(countdownExpected)),
		Calculated: true,
		SampleSize: len(countdownExpected),
	}
}

// calculateOrientation awards full credit when the entered date falls on the
// same calendar day as the session's reference time, otherwise zero.
func calculateOrientation(responses []models.Response, now time.Time) MetricResult {
	text, ok := firstText(responses)
	if !ok {
		return MetricResult{}
	}

	entered, err := time.Parse("2006-01-02", strings.TrimSpace(text))
	if err != nil {
		return MetricResult{Calculated: true, SampleSize: 1}
	}

	value := 0.0
	y1, m1, d1 := entered.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		value = 1.0
	}

	return MetricResult{Value: value, Calculated: true, SampleSize: 1}
}

// calculateFluency counts distinct non-empty items, with the contribution
// capped so listing beyond the cap earns no extra credit.
func calculateFluency(responses []models.Response) MetricResult {
	text, ok := firstText(responses)
	if !ok {
		return MetricResult{}
	}

	seen := make(map[string]bool)
	for _, item := range splitItems(text) {
		seen[strings.ToLower(item)] = true
	}

	value := float64(len(seen)) / float64(fluencyCap)
	if value > 1 {
		value = 1
	}

	return MetricResult{Value: value, Calculated: true, SampleSize: len(seen)}
}

// calculateMiniGame averages the hit ratio across whichever mini-games were
// played during the session.
func calculateMiniGame(responses []models.Response) MetricResult {
	var sum float64
	count := 0
	for _, r := range responses {
		game, ok := r.Capture.Data.(*models.GameCapture)
		if !ok || game.Total == 0 {
			continue
		}
		sum += float64(game.Correct) / float64(game.Total)
		count++
	}

	if count == 0 {
		return MetricResult{}
	}
	return MetricResult{Value: sum / float64(count), Calculated: true, SampleSize: count}
}

// Reaction-time bounds: at or under the floor scores 1.0, at or over the
// ceiling scores 0.
const (
	reactionFloorMs   = 250.0
	reactionCeilingMs = 1000.0
)

func calculateTimedReaction(responses []models.Response) MetricResult {
	var trials []float64
	for _, r := range responses {
		if capture, ok := r.Capture.Data.(*models.ReactionCapture); ok {
			trials = append(trials, capture.TrialsMs...)
		}
	}
	if len(trials) == 0 {
		return MetricResult{}
	}

	var sum float64
	for _, t := range trials {
		sum += t
	}
	avg := sum / float64(len(trials))

	value := (reactionCeilingMs - avg) / (reactionCeilingMs - reactionFloorMs)
	return MetricResult{Value: clamp01(value), Calculated: true, SampleSize: len(trials)}
}

// firstText returns the first text-like capture value in the responses.
func firstText(responses []models.Response) (string, bool) {
	for _, r := range responses {
		if capture, ok := r.Capture.Data.(*models.TextCapture); ok {
			return capture.Value, true
		}
	}
	return "", false
}

// splitItems breaks a comma or newline separated answer into trimmed,
// non-empty entries.
func splitItems(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})

	items := make([]string, 0, len(fields))
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
