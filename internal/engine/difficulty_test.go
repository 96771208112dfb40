package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"neuroscreen/internal/models"
)

func TestDifficultyStartsAtAverage(t *testing.T) {
	controller := NewDifficultyController()
	assert.Equal(t, StartLevel, controller.Level())
	assert.Equal(t, "Average", TierForLevel(controller.Level()).Name)
	assert.Empty(t, controller.State().History)
}

func TestPerfectStreakSaturatesAtTen(t *testing.T) {
	controller := NewDifficultyController()
	perfect := models.PerformanceSample{Score: 100, Accuracy: 1.0}

	previous := controller.Level()
	for i := 0; i < 12; i++ {
		level := controller.Adjust(perfect)
		assert.GreaterOrEqual(t, level, previous, "level must increase monotonically")
		assert.LessOrEqual(t, level, MaxLevel)
		previous = level
	}

	assert.Equal(t, MaxLevel, controller.Level())
	assert.Len(t, controller.State().History, 12)
}

func TestPoorStreakFloorsAtOne(t *testing.T) {
	controller := NewDifficultyController()
	poor := models.PerformanceSample{Score: 20, Accuracy: 0.2}

	for i := 0; i < 8; i++ {
		level := controller.Adjust(poor)
		assert.GreaterOrEqual(t, level, MinLevel)
	}
	assert.Equal(t, MinLevel, controller.Level())
}

func TestHalfStepAdjustments(t *testing.T) {
	controller := NewDifficultyController()

	// 70 <= score < 90 with accuracy >= 0.7 climbs half a step; two of
	// them move the rounded level from 4 to 5.
	good := models.PerformanceSample{Score: 80, Accuracy: 0.8}
	controller.Adjust(good)
	controller.Adjust(good)
	assert.Equal(t, 5, controller.Level())

	// 50 <= score < 70 descends half a step at a time.
	middling := models.PerformanceSample{Score: 60, Accuracy: 0.6}
	controller.Adjust(middling)
	controller.Adjust(middling)
	assert.Equal(t, 4, controller.Level())
}

func TestUnchangedBand(t *testing.T) {
	controller := NewDifficultyController()

	// High score but sub-0.9 accuracy matches no adjustment rule.
	level := controller.Adjust(models.PerformanceSample{Score: 95, Accuracy: 0.85})
	assert.Equal(t, StartLevel, level)
}

func TestLevelAlwaysInRange(t *testing.T) {
	controller := NewDifficultyController()
	samples := []models.PerformanceSample{
		{Score: 100, Accuracy: 1}, {Score: 0, Accuracy: 0}, {Score: 0, Accuracy: 0},
		{Score: 0, Accuracy: 0}, {Score: 0, Accuracy: 0}, {Score: 0, Accuracy: 0},
		{Score: 100, Accuracy: 1}, {Score: 80, Accuracy: 0.75}, {Score: 60, Accuracy: 0.6},
	}

	for _, s := range samples {
		level := controller.Adjust(s)
		assert.GreaterOrEqual(t, level, MinLevel)
		assert.LessOrEqual(t, level, MaxLevel)
	}

	for _, recorded := range controller.State().History {
		assert.GreaterOrEqual(t, recorded, MinLevel)
		assert.LessOrEqual(t, recorded, MaxLevel)
	}
}

func TestTierTableCoversAllLevels(t *testing.T) {
	names := map[string]bool{}
	for level := MinLevel; level <= MaxLevel; level++ {
		tier := TierForLevel(level)
		assert.NotEmpty(t, tier.Name)
		assert.Greater(t, tier.Multiplier, 0.0)
		names[tier.Name] = true
	}
	assert.Len(t, names, 10)

	// Out-of-range lookups clamp.
	assert.Equal(t, TierForLevel(MinLevel), TierForLevel(0))
	assert.Equal(t, TierForLevel(MaxLevel), TierForLevel(11))
}
