package models

import "time"

// AssessmentResult is the immutable outcome of one completed session.
// Created exactly once by the result aggregator at the sequencer's terminal
// transition.
type AssessmentResult struct {
	ID              string     `json:"id"`
	Domain          Domain     `json:"domain"`
	Score           int        `json:"score"`
	RiskLevel       RiskLevel  `json:"riskLevel"`
	Recommendations []string   `json:"recommendations"`
	Responses       []Response `json:"responses"`
	DurationMs      int64      `json:"durationMs"`
	QuestionCount   int        `json:"questionCount"`
	CreatedAt       time.Time  `json:"createdAt"`
}
