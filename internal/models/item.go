package models

// TestItem is one unit of assessment content shown to the user. It is
// immutable once materialized by the sequencer; adaptive batteries stamp a
// non-zero Difficulty, fixed batteries leave it at 0.
type TestItem struct {
	ID               string      `json:"id"`
	Domain           Domain      `json:"domain"`
	Kind             ItemKind    `json:"kind"`
	Task             Task        `json:"task"`
	Difficulty       int         `json:"difficulty,omitempty"`
	TimeLimitSeconds int         `json:"timeLimitSeconds,omitempty"`
	Skippable        bool        `json:"skippable,omitempty"`
	Payload          ItemPayload `json:"payload"`
}

// ItemPayload carries the presentation content for an item: the prompt
// shown to the user plus kind-specific extras.
type ItemPayload struct {
	Prompt      string   `json:"prompt"`
	Description string   `json:"description,omitempty"`
	Options     []string `json:"options,omitempty"`
	// Answer holds the expected response for generated question items. The
	// checker compares against this stored value, never re-derives it.
	Answer string `json:"-"`
}

// Response records one completed test item. Task is copied from the item so
// the scoring engine can group responses without the item list in hand.
type Response struct {
	ItemID          string     `json:"itemId"`
	Task            Task       `json:"task"`
	Capture         RawCapture `json:"rawCapture"`
	RecordedAtEpoch int64      `json:"recordedAtEpochMs"`
}
