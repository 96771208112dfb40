package engine

import (
	"time"

	"neuroscreen/internal/models"
)

// Clock abstracts wall-clock access so session timing is testable and timer
// semantics stay out of the sequencer's transition logic.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// defaultSecondsPerItem estimates remaining time for items without an
// explicit limit.
const defaultSecondsPerItem = 120

// Progress is the read-only session snapshot exposed to the host UI.
type Progress struct {
	SessionID                 string        `json:"sessionId"`
	Domain                    models.Domain `json:"domain"`
	CurrentItemIndex          int           `json:"currentItemIndex"`
	TotalItems                int           `json:"totalItems"`
	CompletedIndices          []int         `json:"completedIndices"`
	SkippedIndices            []int         `json:"skippedIndices"`
	CompletionRate            float64       `json:"completionRate"`
	ElapsedSeconds            int64         `json:"elapsedSeconds"`
	EstimatedRemainingSeconds int64         `json:"estimatedRemainingSeconds"`
	Terminal                  bool          `json:"terminal"`
}

// SessionController owns wall-clock timing for one session: elapsed and
// remaining-time estimation plus the cooperative per-item countdown.
type SessionController struct {
	sequencer *Sequencer
	clock     Clock

	countdownItem      string
	countdownRemaining int
}

func NewSessionController(sequencer *Sequencer, clock Clock) *SessionController {
	return &SessionController{sequencer: sequencer, clock: clock}
}

// ElapsedSeconds is the wall-clock time since session start.
func (c *SessionController) ElapsedSeconds() int64 {
	start := c.sequencer.State().StartEpochMs
	return (c.clock.Now().UnixMilli() - start) / 1000
}

// EstimatedRemainingSeconds sums the explicit time limits of the remaining
// items, substituting the default estimate for items without one.
func (c *SessionController) EstimatedRemainingSeconds() int64 {
	items := c.sequencer.Items()
	index := c.sequencer.State().CurrentItemIndex

	var remaining int64
	for i := index; i < len(items); i++ {
		if items[i].TimeLimitSeconds > 0 {
			remaining += int64(items[i].TimeLimitSeconds)
		} else {
			remaining += defaultSecondsPerItem
		}
	}
	return remaining
}

// Progress builds the host-facing snapshot.
func (c *SessionController) Progress() Progress {
	state := c.sequencer.State()
	total := len(c.sequencer.Items())

	rate := 0.0
	if total > 0 {
		rate = float64(len(state.CompletedIndices)) / float64(total)
	}

	return Progress{
		SessionID:                 state.SessionID,
		Domain:                    state.Domain,
		CurrentItemIndex:          state.CurrentItemIndex,
		TotalItems:                total,
		CompletedIndices:          state.CompletedIndices,
		SkippedIndices:            state.SkippedIndices,
		CompletionRate:            rate,
		ElapsedSeconds:            c.ElapsedSeconds(),
		EstimatedRemainingSeconds: c.EstimatedRemainingSeconds(),
		Terminal:                  c.sequencer.IsTerminal(),
	}
}

// Tick advances the cooperative per-item countdown by one second. When the
// current item's limit reaches zero the controller synthesizes the item-
// complete event by skipping the item, exactly as if the user had finished.
// This is the only form of implicit advancement. Items without a limit are
// unaffected. Tick reports whether the item was auto-completed.
func (c *SessionController) Tick() bool {
	item, err := c.sequencer.Current()
	if err != nil || item.TimeLimitSeconds == 0 {
		return false
	}

	if c.countdownItem != item.ID {
		c.countdownItem = item.ID
		c.countdownRemaining = item.TimeLimitSeconds
	}

	c.countdownRemaining--
	if c.countdownRemaining > 0 {
		return false
	}

	c.countdownItem = ""
	return c.sequencer.Skip() == nil
}

// RemainingItemSeconds reports the countdown left on the current item, or
// its full limit if ticking has not started.
func (c *SessionController) RemainingItemSeconds() int {
	item, err := c.sequencer.Current()
	if err != nil || item.TimeLimitSeconds == 0 {
		return 0
	}
	if c.countdownItem != item.ID {
		return item.TimeLimitSeconds
	}
	return c.countdownRemaining
}
