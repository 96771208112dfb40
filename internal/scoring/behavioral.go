package scoring

import (
	"strings"

	"neuroscreen/internal/models"
)

// severityTier maps keyword matches in free-text and Likert answers to a
// score decrement. This is a lexical scan, not semantic understanding.
type severityTier struct {
	keywords []string
	penalty  int
}

var severityTiers = []severityTier{
	{keywords: []string{"nearly every day", "severe", "very much", "poor"}, penalty: 20},
	{keywords: []string{"more than half", "moderate", "a little", "fair"}, penalty: 10},
	{keywords: []string{"several days", "mild"}, penalty: 5},
}

// scoreBehavioral starts at 100 and decrements for each severity keyword
// matched across the session's answers, floored at 0. An empty response set
// therefore scores a full 100.
func scoreBehavioral(responses []models.Response) int {
	score := 100
	for _, r := range responses {
		capture, ok := r.Capture.Data.(*models.TextCapture)
		if !ok {
			continue
		}
		answer := strings.ToLower(capture.Value)
		for _, tier := range severityTiers {
			for _, keyword := range tier.keywords {
				if strings.Contains(answer, keyword) {
					score -= tier.penalty
				}
			}
		}
	}

	if score < 0 {
		return 0
	}
	return score
}
