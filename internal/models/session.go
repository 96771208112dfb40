package models

// SessionState tracks one in-flight assessment. It is created at session
// start, mutated only by the sequencer and session controller, and discarded
// when the result is emitted.
//
// Invariants: CurrentItemIndex is a valid index into the materialized item
// list or equals its length (terminal); CompletedIndices and SkippedIndices
// never overlap and only reference indices strictly below CurrentItemIndex,
// so their combined length never exceeds it.
type SessionState struct {
	SessionID        string `json:"sessionId"`
	Domain           Domain `json:"domain"`
	StartEpochMs     int64  `json:"startEpochMs"`
	CurrentItemIndex int    `json:"currentItemIndex"`
	CompletedIndices []int  `json:"completedIndices"`
	SkippedIndices   []int  `json:"skippedIndices"`
}

// PerformanceSample is the per-item performance digest fed to the adaptive
// difficulty controller. It is computed right after a response is recorded
// and discarded after one use; it is never persisted on the response.
type PerformanceSample struct {
	Score       float64 `json:"score"`
	Accuracy    float64 `json:"accuracy"`
	TimeSpentMs float64 `json:"timeSpentMs"`
}

// DifficultyState is the staircase controller's state: the current 1-10
// level and the append-only history of levels after each adjustment.
type DifficultyState struct {
	Level   int   `json:"level"`
	History []int `json:"history"`
}
