package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuroscreen/internal/models"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)}
}

func testBattery() models.Battery {
	return models.Battery{
		Domain: models.DomainCognitive,
		Items: []models.BatteryItem{
			{ID: "one", Kind: models.KindText, Task: models.TaskRecall, Prompt: "first"},
			{ID: "two", Kind: models.KindText, Task: models.TaskCountdown, Prompt: "second"},
			{ID: "three", Kind: models.KindText, Task: models.TaskFluency, Prompt: "third", Skippable: true},
		},
	}
}

func respond(t *testing.T, seq *Sequencer, value string) {
	t.Helper()
	item, err := seq.Current()
	require.NoError(t, err)
	require.NoError(t, seq.Advance(&models.Response{
		ItemID:  item.ID,
		Capture: models.RawCapture{Kind: item.Kind, Data: &models.TextCapture{Value: value}},
	}))
}

func TestFixedSequencerWalksBattery(t *testing.T) {
	seq := NewFixedSequencer(testBattery(), newFakeClock())

	item, err := seq.Current()
	require.NoError(t, err)
	assert.Equal(t, "one", item.ID)
	assert.False(t, seq.IsTerminal())

	respond(t, seq, "a")
	respond(t, seq, "b")
	respond(t, seq, "c")

	assert.True(t, seq.IsTerminal())
	assert.Equal(t, []int{0, 1, 2}, seq.State().CompletedIndices)
	assert.Len(t, seq.Responses(), 3)

	_, err = seq.Current()
	assert.ErrorIs(t, err, ErrTerminal)
}

func TestAdvanceRequiresResponse(t *testing.T) {
	seq := NewFixedSequencer(testBattery(), newFakeClock())

	// Item "one" is not skippable and has no response yet.
	assert.ErrorIs(t, seq.Advance(nil), ErrResponseRequired)
	assert.Equal(t, 0, seq.State().CurrentItemIndex)
}

func TestNoDoubleAdvance(t *testing.T) {
	seq := NewFixedSequencer(testBattery(), newFakeClock())

	resp := &models.Response{
		ItemID:  "one",
		Capture: models.RawCapture{Kind: models.KindText, Data: &models.TextCapture{Value: "a"}},
	}
	require.NoError(t, seq.Advance(resp))

	// Replaying the same response is rejected: it addresses item "one",
	// not the current item.
	assert.ErrorIs(t, seq.Advance(resp), ErrItemMismatch)
	// And advancing with no new response is rejected too.
	assert.ErrorIs(t, seq.Advance(nil), ErrResponseRequired)
	assert.Equal(t, 1, seq.State().CurrentItemIndex)
}

func TestPreviousOnlyBeforeResponse(t *testing.T) {
	seq := NewFixedSequencer(testBattery(), newFakeClock())

	assert.ErrorIs(t, seq.Previous(), ErrCannotRewind)

	respond(t, seq, "a")

	// Current item "two" has no response yet, so stepping back is fine
	// and the prior response stays recorded.
	require.NoError(t, seq.Previous())
	item, err := seq.Current()
	require.NoError(t, err)
	assert.Equal(t, "one", item.ID)
	assert.Len(t, seq.Responses(), 1)

	// Revisiting a completed item: a nil advance moves forward again.
	require.NoError(t, seq.Advance(nil))
	item, err = seq.Current()
	require.NoError(t, err)
	assert.Equal(t, "two", item.ID)

	// Recording a second response for the revisited item is rejected.
	require.NoError(t, seq.Previous())
	err = seq.Advance(&models.Response{
		ItemID:  "one",
		Capture: models.RawCapture{Kind: models.KindText, Data: &models.TextCapture{Value: "again"}},
	})
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
}

func TestSkipRecordsSkippedIndex(t *testing.T) {
	seq := NewFixedSequencer(testBattery(), newFakeClock())

	respond(t, seq, "a")
	respond(t, seq, "b")

	// Item "three" is skippable; a nil advance skips it.
	require.NoError(t, seq.Advance(nil))

	state := seq.State()
	assert.True(t, seq.IsTerminal())
	assert.Equal(t, []int{0, 1}, state.CompletedIndices)
	assert.Equal(t, []int{2}, state.SkippedIndices)
}

func TestCaptureErrorAdvances(t *testing.T) {
	seq := NewFixedSequencer(testBattery(), newFakeClock())

	require.NoError(t, seq.RecordError("accelerometer permission denied"))

	state := seq.State()
	assert.Equal(t, 1, state.CurrentItemIndex)
	assert.Equal(t, []int{0}, state.CompletedIndices)

	responses := seq.Responses()
	require.Len(t, responses, 1)
	assert.True(t, responses[0].Capture.Failed())
}

func TestIndexInvariantHolds(t *testing.T) {
	seq := NewFixedSequencer(testBattery(), newFakeClock())

	check := func() {
		state := seq.State()
		assert.LessOrEqual(t,
			len(state.CompletedIndices)+len(state.SkippedIndices),
			state.CurrentItemIndex)
		for _, c := range state.CompletedIndices {
			assert.NotContains(t, state.SkippedIndices, c)
		}
	}

	check()
	require.NoError(t, seq.Skip())
	check()
	require.NoError(t, seq.Previous())
	check()
	respond(t, seq, "a")
	check()
	require.NoError(t, seq.Previous())
	check()
	require.NoError(t, seq.Advance(nil))
	check()
	respond(t, seq, "b")
	check()
	require.NoError(t, seq.Skip())
	check()
}

func TestAnswerAfterSkipReclassifiesIndex(t *testing.T) {
	seq := NewFixedSequencer(testBattery(), newFakeClock())

	// Time out the first item, step back to it, then answer it. The
	// index moves from skipped to completed, never both.
	require.NoError(t, seq.Skip())
	assert.Equal(t, []int{0}, seq.State().SkippedIndices)

	require.NoError(t, seq.Previous())
	assert.Empty(t, seq.State().SkippedIndices, "a revisited item is pending again")

	respond(t, seq, "late but answered")

	state := seq.State()
	assert.Equal(t, []int{0}, state.CompletedIndices)
	assert.Empty(t, state.SkippedIndices)
	assert.Equal(t, 1, state.CurrentItemIndex)
	assert.LessOrEqual(t,
		len(state.CompletedIndices)+len(state.SkippedIndices),
		state.CurrentItemIndex)
}

type stubGenerator struct {
	generated int
}

func (g *stubGenerator) GenerateItem(domain models.Domain, difficulty int) (models.TestItem, error) {
	g.generated++
	return models.TestItem{
		ID:         fmt.Sprintf("adaptive-%d", g.generated),
		Domain:     domain,
		Kind:       models.KindText,
		Task:       models.TaskMiniGame,
		Difficulty: difficulty,
		Payload:    models.ItemPayload{Prompt: "stub question", Answer: "42"},
	}, nil
}

func TestAdaptiveRunCapsAtTenItems(t *testing.T) {
	gen := &stubGenerator{}
	seq, err := NewAdaptiveSequencer(models.DomainCognitive, gen, newFakeClock())
	require.NoError(t, err)

	answered := 0
	for !seq.IsTerminal() {
		respond(t, seq, "42")
		answered++
		require.LessOrEqual(t, answered, AdaptiveItemCap, "run must terminate")
	}

	assert.Equal(t, AdaptiveItemCap, answered)
	assert.Len(t, seq.Items(), AdaptiveItemCap)
	assert.Len(t, seq.Difficulty().History, AdaptiveItemCap)
}

func TestAdaptiveDifficultyClimbsOnCorrectAnswers(t *testing.T) {
	gen := &stubGenerator{}
	seq, err := NewAdaptiveSequencer(models.DomainCognitive, gen, newFakeClock())
	require.NoError(t, err)

	for !seq.IsTerminal() {
		respond(t, seq, "42")
	}

	// Every answer was perfect: the staircase walks 4 -> 10 and the later
	// items were generated at the saturated level.
	assert.Equal(t, MaxLevel, seq.Difficulty().Level)
	items := seq.Items()
	assert.Equal(t, StartLevel, items[0].Difficulty)
	assert.Equal(t, MaxLevel, items[len(items)-1].Difficulty)
}
