package engine

import (
	"math"

	"neuroscreen/internal/models"
)

const (
	// MinLevel and MaxLevel bound the difficulty scale.
	MinLevel = 1
	MaxLevel = 10
	// StartLevel is where every adaptive run begins ("Average").
	StartLevel = 4
	// AdaptiveItemCap terminates an adaptive run regardless of trajectory.
	AdaptiveItemCap = 10
)

// DifficultyTier names one level of the 1-10 scale and carries the
// multiplier item generators apply to their content parameters.
type DifficultyTier struct {
	Name       string
	Multiplier float64
}

var difficultyTiers = [MaxLevel]DifficultyTier{
	{Name: "Beginner", Multiplier: 0.50},
	{Name: "Very Easy", Multiplier: 0.65},
	{Name: "Easy", Multiplier: 0.80},
	{Name: "Average", Multiplier: 0.95},
	{Name: "Challenging", Multiplier: 1.10},
	{Name: "Hard", Multiplier: 1.25},
	{Name: "Very Hard", Multiplier: 1.40},
	{Name: "Advanced", Multiplier: 1.55},
	{Name: "Expert", Multiplier: 1.70},
	{Name: "Extreme", Multiplier: 1.85},
}

// TierForLevel returns the named tier for a clamped 1-10 level.
func TierForLevel(level int) DifficultyTier {
	if level < MinLevel {
		level = MinLevel
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return difficultyTiers[level-1]
}

// DifficultyController adjusts item difficulty with a staircase rule. The
// working level is kept fractional so half-step adjustments accumulate;
// the exposed level and history are always rounded and clamped to [1,10].
type DifficultyController struct {
	level   float64
	history []int
}

func NewDifficultyController() *DifficultyController {
	return &DifficultyController{level: StartLevel}
}

// Level reports the current difficulty as a 1-10 integer.
func (c *DifficultyController) Level() int {
	return clampLevel(int(math.Round(c.level)))
}

// State snapshots the controller for progress reporting.
func (c *DifficultyController) State() models.DifficultyState {
	history := make([]int, len(c.history))
	copy(history, c.history)
	return models.DifficultyState{Level: c.Level(), History: history}
}

// Adjust applies the staircase rule to one item's performance sample and
// returns the resulting level. The sample is not retained.
func (c *DifficultyController) Adjust(sample models.PerformanceSample) int {
	var delta float64
	switch {
	case sample.Score >= 90 && sample.Accuracy >= 0.9:
		delta = 1
	case sample.Score >= 70 && sample.Score < 90 && sample.Accuracy >= 0.7:
		delta = 0.5
	case sample.Score < 50 || sample.Accuracy < 0.5:
		delta = -1
	case sample.Score < 70 || sample.Accuracy < 0.7:
		delta = -0.5
	}

	c.level += delta
	if c.level < MinLevel {
		c.level = MinLevel
	}
	if c.level > MaxLevel {
		c.level = MaxLevel
	}

	level := c.Level()
	c.history = append(c.history, level)
	return level
}

func clampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}
