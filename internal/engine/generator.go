package engine

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"neuroscreen/internal/models"
)

// ItemGenerator materializes adaptive test items at a requested difficulty.
// Content generation is swappable; the engine only depends on this contract.
type ItemGenerator interface {
	GenerateItem(domain models.Domain, difficulty int) (models.TestItem, error)
}

// QuestionGenerator is the default adaptive content source. It rotates
// through item kinds and scales its parameters with the difficulty tier's
// multiplier. The expected answer for generated questions is derived from
// the operands actually placed in the prompt and stored on the item payload,
// so the checker can never disagree with the question shown.
type QuestionGenerator struct {
	rng  *rand.Rand
	seen int
}

func NewQuestionGenerator(rng *rand.Rand) *QuestionGenerator {
	return &QuestionGenerator{rng: rng}
}

func (g *QuestionGenerator) GenerateItem(domain models.Domain, difficulty int) (models.TestItem, error) {
	tier := TierForLevel(difficulty)
	g.seen++

	item := models.TestItem{
		ID:         uuid.NewString(),
		Domain:     domain,
		Difficulty: difficulty,
	}

	switch g.seen % 4 {
	case 1, 3:
		question, answer := g.mathQuestion(tier.Multiplier)
		item.Kind = models.KindText
		item.Task = models.TaskMiniGame
		item.TimeLimitSeconds = 30
		item.Payload = models.ItemPayload{
			Prompt:      question,
			Description: "Enter the answer as a number.",
			Answer:      answer,
		}
	case 2:
		item.Kind = models.KindSpatial
		item.Task = models.TaskMiniGame
		item.TimeLimitSeconds = 45
		item.Payload = models.ItemPayload{
			Prompt:      "Memorize the highlighted grid cells, then reproduce them.",
			Description: fmt.Sprintf("Grid size scales with difficulty (level %d).", difficulty),
		}
	default:
		item.Kind = models.KindExecutive
		item.Task = models.TaskMiniGame
		item.TimeLimitSeconds = 45
		item.Payload = models.ItemPayload{
			Prompt: "Select the ink color of each word, not the word itself.",
		}
	}

	return item, nil
}

// mathQuestion builds an arithmetic prompt whose operand range scales with
// the difficulty multiplier, and returns the answer computed from those same
// operands.
func (g *QuestionGenerator) mathQuestion(multiplier float64) (string, string) {
	ceiling := int(20 * multiplier)
	if ceiling < 5 {
		ceiling = 5
	}

	a := g.rng.Intn(ceiling) + 1
	b := g.rng.Intn(ceiling) + 1

	switch g.rng.Intn(3) {
	case 0:
		return fmt.Sprintf("What is %d + %d?", a, b), fmt.Sprintf("%d", a+b)
	case 1:
		if a < b {
			a, b = b, a
		}
		return fmt.Sprintf("What is %d - %d?", a, b), fmt.Sprintf("%d", a-b)
	default:
		// Keep products manageable at low tiers.
		b = g.rng.Intn(9) + 2
		return fmt.Sprintf("What is %d x %d?", a, b), fmt.Sprintf("%d", a*b)
	}
}
