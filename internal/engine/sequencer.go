package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"neuroscreen/internal/models"
	"neuroscreen/internal/scoring"
)

var (
	// ErrTerminal rejects operations on a sequencer that already reached
	// its terminal state.
	ErrTerminal = errors.New("sequencer is terminal")
	// ErrResponseRequired rejects advancing past a non-skippable item that
	// has no recorded response.
	ErrResponseRequired = errors.New("current item requires a response")
	// ErrAlreadyAnswered rejects recording a second response for an item.
	ErrAlreadyAnswered = errors.New("current item already has a response")
	// ErrItemMismatch rejects a response addressed to a different item than
	// the current one.
	ErrItemMismatch = errors.New("response does not match the current item")
	// ErrCannotRewind rejects stepping back past the first item or off an
	// item whose response is already recorded.
	ErrCannotRewind = errors.New("cannot step back from this position")
)

// Sequencer owns the ordered item list for one session, advances and rewinds
// the current index, and tracks completed and skipped items. Fixed batteries
// materialize their whole list up front; adaptive runs grow one item at a
// time, capped at AdaptiveItemCap.
type Sequencer struct {
	state     models.SessionState
	items     []models.TestItem
	responses map[string]models.Response
	order     []string

	adaptive   bool
	difficulty *DifficultyController
	generator  ItemGenerator
	clock      Clock
}

// NewFixedSequencer builds a sequencer over a predefined battery.
func NewFixedSequencer(battery models.Battery, clock Clock) *Sequencer {
	return &Sequencer{
		state: models.SessionState{
			SessionID:    uuid.NewString(),
			Domain:       battery.Domain,
			StartEpochMs: clock.Now().UnixMilli(),
		},
		items:     battery.Materialize(),
		responses: make(map[string]models.Response),
		clock:     clock,
	}
}

// NewAdaptiveSequencer builds a sequencer whose items come from the
// generator, starting at the controller's initial level.
func NewAdaptiveSequencer(domain models.Domain, generator ItemGenerator, clock Clock) (*Sequencer, error) {
	controller := NewDifficultyController()
	first, err := generator.GenerateItem(domain, controller.Level())
	if err != nil {
		return nil, fmt.Errorf("failed to generate first adaptive item: %w", err)
	}

	return &Sequencer{
		state: models.SessionState{
			SessionID:    uuid.NewString(),
			Domain:       domain,
			StartEpochMs: clock.Now().UnixMilli(),
		},
		items:      []models.TestItem{first},
		responses:  make(map[string]models.Response),
		adaptive:   true,
		difficulty: controller,
		generator:  generator,
		clock:      clock,
	}, nil
}

// IsTerminal reports whether the session has moved past its last item.
func (s *Sequencer) IsTerminal() bool {
	return s.state.CurrentItemIndex >= len(s.items)
}

// Current returns the item awaiting a response.
func (s *Sequencer) Current() (models.TestItem, error) {
	if s.IsTerminal() {
		return models.TestItem{}, ErrTerminal
	}
	return s.items[s.state.CurrentItemIndex], nil
}

// Advance records a response for the current item and moves to the next one.
// A nil response is only accepted when the current item already has a
// recorded response (revisiting after Previous) or is skippable, in which
// case the item is skipped. Rejected calls leave the sequencer unchanged.
func (s *Sequencer) Advance(resp *models.Response) error {
	if s.IsTerminal() {
		return ErrTerminal
	}
	index := s.state.CurrentItemIndex
	item := s.items[index]

	if resp == nil {
		if _, answered := s.responses[item.ID]; answered {
			if !containsIndex(s.state.CompletedIndices, index) {
				s.state.CompletedIndices = append(s.state.CompletedIndices, index)
			}
			s.state.CurrentItemIndex++
			s.extendAdaptive(s.currentLevel())
			return nil
		}
		if !item.Skippable {
			return ErrResponseRequired
		}
		return s.Skip()
	}

	if resp.ItemID != item.ID {
		return ErrItemMismatch
	}
	if _, answered := s.responses[item.ID]; answered {
		return ErrAlreadyAnswered
	}

	recorded := *resp
	recorded.Task = item.Task
	recorded.RecordedAtEpoch = s.clock.Now().UnixMilli()
	s.responses[item.ID] = recorded
	s.order = append(s.order, item.ID)

	if !containsIndex(s.state.CompletedIndices, index) {
		s.state.CompletedIndices = append(s.state.CompletedIndices, index)
	}
	s.state.CurrentItemIndex++

	level := s.currentLevel()
	if s.adaptive {
		level = s.difficulty.Adjust(scoring.SamplePerformance(item, recorded))
	}
	s.extendAdaptive(level)
	return nil
}

// RecordError records a capture collaborator failure as a completed-with-
// error response and advances. The response contributes nothing to scoring;
// prior responses are untouched.
func (s *Sequencer) RecordError(message string) error {
	item, err := s.Current()
	if err != nil {
		return err
	}
	return s.Advance(&models.Response{
		ItemID:  item.ID,
		Capture: models.RawCapture{Kind: item.Kind, Error: message},
	})
}

// Skip advances past the current item without a response, marking its index
// as skipped. The session controller calls this when an item's time limit
// runs out; hosts call it for skippable items.
func (s *Sequencer) Skip() error {
	if s.IsTerminal() {
		return ErrTerminal
	}
	index := s.state.CurrentItemIndex
	if !containsIndex(s.state.SkippedIndices, index) && !containsIndex(s.state.CompletedIndices, index) {
		s.state.SkippedIndices = append(s.state.SkippedIndices, index)
	}
	s.state.CurrentItemIndex++
	s.extendAdaptive(s.currentLevel())
	return nil
}

// Previous steps back to the prior item. It is only valid before the
// current item's response has been recorded; the prior response stays
// recorded.
func (s *Sequencer) Previous() error {
	if s.IsTerminal() {
		return ErrTerminal
	}
	if s.state.CurrentItemIndex == 0 {
		return ErrCannotRewind
	}
	item := s.items[s.state.CurrentItemIndex]
	if _, answered := s.responses[item.ID]; answered {
		return ErrCannotRewind
	}
	s.state.CurrentItemIndex--

	// The revisited item becomes pending again. Its index rejoins the
	// completed or skipped set when the user moves past it, so an index is
	// never in either set while at or ahead of the current position.
	revisited := s.state.CurrentItemIndex
	s.state.CompletedIndices = removeIndex(s.state.CompletedIndices, revisited)
	s.state.SkippedIndices = removeIndex(s.state.SkippedIndices, revisited)
	return nil
}

// Responses returns the recorded responses in insertion order.
func (s *Sequencer) Responses() []models.Response {
	out := make([]models.Response, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.responses[id])
	}
	return out
}

// State returns a copy of the session state.
func (s *Sequencer) State() models.SessionState {
	state := s.state
	state.CompletedIndices = append([]int(nil), s.state.CompletedIndices...)
	state.SkippedIndices = append([]int(nil), s.state.SkippedIndices...)
	return state
}

// Items returns the materialized item list.
func (s *Sequencer) Items() []models.TestItem {
	return append([]models.TestItem(nil), s.items...)
}

// Difficulty exposes the adaptive controller state; the zero value is
// returned for fixed batteries.
func (s *Sequencer) Difficulty() models.DifficultyState {
	if s.difficulty == nil {
		return models.DifficultyState{}
	}
	return s.difficulty.State()
}

func (s *Sequencer) currentLevel() int {
	if s.difficulty == nil {
		return 0
	}
	return s.difficulty.Level()
}

// extendAdaptive grows the adaptive item list by one, up to the cap. Fixed
// batteries never grow.
func (s *Sequencer) extendAdaptive(level int) {
	if !s.adaptive || len(s.items) >= AdaptiveItemCap {
		return
	}
	if s.state.CurrentItemIndex < len(s.items) {
		return
	}
	next, err := s.generator.GenerateItem(s.state.Domain, level)
	if err != nil {
		// Generation failure ends the run early at the current item count.
		return
	}
	s.items = append(s.items, next)
}

func removeIndex(indices []int, index int) []int {
	for i, v := range indices {
		if v == index {
			return append(indices[:i], indices[i+1:]...)
		}
	}
	return indices
}

func containsIndex(indices []int, index int) bool {
	for _, i := range indices {
		if i == index {
			return true
		}
	}
	return false
}
