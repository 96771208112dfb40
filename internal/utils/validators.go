package utils

import (
	"fmt"
	"strings"
	"time"

	"neuroscreen/internal/models"
)

// minFreeTextLength guards against accidental single-character submissions
// on free-text prompts.
const minFreeTextLength = 2

// ValidateResponse checks a manually entered capture against the current
// item's rules. It returns a human-readable message list; a non-empty list
// blocks the item from advancing. Collaborator captures (motion, audio,
// games) are not validated here; their error path is the capture error.
func ValidateResponse(item models.TestItem, capture models.RawCapture) []string {
	if capture.Failed() {
		// Capture errors are recorded as-is, never blocked.
		return nil
	}

	text, ok := capture.Data.(*models.TextCapture)
	if !ok {
		return nil
	}

	var messages []string
	value := strings.TrimSpace(text.Value)

	switch item.Kind {
	case models.KindText, models.KindTimedText:
		if value == "" && !item.Skippable {
			messages = append(messages, "An answer is required for this question.")
		} else if value != "" && len(value) < minFreeTextLength {
			messages = append(messages, "The answer is too short.")
		}
	case models.KindDate:
		if value == "" {
			messages = append(messages, "A date is required.")
		} else if _, err := time.Parse("2006-01-02", value); err != nil {
			messages = append(messages, "The date must be in YYYY-MM-DD format.")
		}
	case models.KindRadio:
		if value == "" {
			messages = append(messages, "Please select an option.")
		} else if !containsOption(item.Payload.Options, value) {
			messages = append(messages, fmt.Sprintf("%q is not one of the available options.", value))
		}
	}

	return messages
}

func containsOption(options []string, value string) bool {
	for _, option := range options {
		if strings.EqualFold(option, value) {
			return true
		}
	}
	return false
}
