package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"neuroscreen/internal/models"
)

func textCapture(kind models.ItemKind, value string) models.RawCapture {
	return models.RawCapture{Kind: kind, Data: &models.TextCapture{Kind: kind, Value: value}}
}

func TestFreeTextValidation(t *testing.T) {
	item := models.TestItem{Kind: models.KindText}

	assert.Empty(t, ValidateResponse(item, textCapture(models.KindText, "three words here")))
	assert.NotEmpty(t, ValidateResponse(item, textCapture(models.KindText, "")))
	assert.NotEmpty(t, ValidateResponse(item, textCapture(models.KindText, "   ")))
	assert.NotEmpty(t, ValidateResponse(item, textCapture(models.KindText, "a")))

	// Skippable free-text items accept an empty submission.
	item.Skippable = true
	assert.Empty(t, ValidateResponse(item, textCapture(models.KindText, "")))
	// But a present answer is still held to the minimum length.
	assert.NotEmpty(t, ValidateResponse(item, textCapture(models.KindText, "x")))
}

func TestDateValidation(t *testing.T) {
	item := models.TestItem{Kind: models.KindDate}

	assert.Empty(t, ValidateResponse(item, textCapture(models.KindDate, "2026-08-28")))
	assert.NotEmpty(t, ValidateResponse(item, textCapture(models.KindDate, "")))
	assert.NotEmpty(t, ValidateResponse(item, textCapture(models.KindDate, "08/28/2026")))
	assert.NotEmpty(t, ValidateResponse(item, textCapture(models.KindDate, "2026-13-40")))
}

func TestRadioValidation(t *testing.T) {
	item := models.TestItem{
		Kind: models.KindRadio,
		Payload: models.ItemPayload{
			Options: []string{"Not at all", "Several days", "Nearly every day"},
		},
	}

	assert.Empty(t, ValidateResponse(item, textCapture(models.KindRadio, "Several days")))
	assert.Empty(t, ValidateResponse(item, textCapture(models.KindRadio, "several DAYS")),
		"option matching is case-insensitive")
	assert.NotEmpty(t, ValidateResponse(item, textCapture(models.KindRadio, "")))
	assert.NotEmpty(t, ValidateResponse(item, textCapture(models.KindRadio, "Sometimes")))
}

func TestFailedCapturesNeverBlocked(t *testing.T) {
	item := models.TestItem{Kind: models.KindText}
	failed := models.RawCapture{Kind: models.KindText, Error: "input device unavailable"}

	assert.Empty(t, ValidateResponse(item, failed))
}

func TestCollaboratorCapturesSkipValidation(t *testing.T) {
	item := models.TestItem{Kind: models.KindMotion}
	capture := models.RawCapture{
		Kind: models.KindMotion,
		Data: &models.MotionCapture{Samples: []models.MotionSample{{Timestamp: 1}}},
	}

	assert.Empty(t, ValidateResponse(item, capture))
}
