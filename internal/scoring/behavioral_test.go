package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"neuroscreen/internal/models"
)

func TestBehavioralAllSevereFloorsAtZero(t *testing.T) {
	responses := []models.Response{
		textResponse("q1", models.TaskMood, "Nearly every day"),
		textResponse("q2", models.TaskMood, "Nearly every day"),
		textResponse("q3", models.TaskMood, "Severe"),
		textResponse("q4", models.TaskMood, "Very much"),
		textResponse("q5", models.TaskMood, "Nearly every day"),
	}

	score := scoreBehavioral(responses)
	assert.Equal(t, 0, score)
	assert.Equal(t, models.RiskHigh, ClassifyRisk(score))
}

func TestBehavioralTierDecrements(t *testing.T) {
	assert.Equal(t, 80, scoreBehavioral([]models.Response{
		textResponse("q1", models.TaskMood, "Nearly every day"),
	}))
	assert.Equal(t, 90, scoreBehavioral([]models.Response{
		textResponse("q1", models.TaskMood, "More than half the days"),
	}))
	assert.Equal(t, 95, scoreBehavioral([]models.Response{
		textResponse("q1", models.TaskMood, "Several days"),
	}))
	assert.Equal(t, 100, scoreBehavioral([]models.Response{
		textResponse("q1", models.TaskMood, "Not at all"),
	}))
}

func TestBehavioralScanIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, 95, scoreBehavioral([]models.Response{
		textResponse("q1", models.TaskMood, "it has been MILD lately"),
	}))
}

func TestBehavioralFreeTextCanMatchMultipleKeywords(t *testing.T) {
	// "severe" and "poor" both land in the top tier.
	assert.Equal(t, 60, scoreBehavioral([]models.Response{
		textResponse("q1", models.TaskMood, "severe headaches and poor sleep"),
	}))
}

func TestBehavioralFailedCaptureIgnored(t *testing.T) {
	responses := []models.Response{
		{
			ItemID: "q1", Task: models.TaskMood,
			Capture: models.RawCapture{Kind: models.KindText, Error: "input aborted"},
		},
	}
	assert.Equal(t, 100, scoreBehavioral(responses))
}
