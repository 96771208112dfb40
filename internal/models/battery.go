// battery.go
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BatteryItem is one item definition inside a battery YAML file.
type BatteryItem struct {
	ID               string   `yaml:"id"`
	Kind             ItemKind `yaml:"kind"`
	Task             Task     `yaml:"task"`
	Prompt           string   `yaml:"prompt"`
	Description      string   `yaml:"description,omitempty"`
	Options          []string `yaml:"options,omitempty"`
	TimeLimitSeconds int      `yaml:"time_limit_seconds,omitempty"`
	Skippable        bool     `yaml:"skippable,omitempty"`
}

// Battery is the fixed, ordered item list for one domain.
type Battery struct {
	Domain Domain        `yaml:"domain"`
	Items  []BatteryItem `yaml:"items"`
}

// BatterySet holds every configured battery keyed by domain.
type BatterySet struct {
	Batteries map[Domain]Battery `yaml:"batteries"`
}

// LoadBatteries reads and parses a batteries YAML file.
func LoadBatteries(path string) (*BatterySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read battery file: %w", err)
	}

	var set BatterySet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal battery YAML: %w", err)
	}

	for domain, battery := range set.Batteries {
		if !domain.Valid() {
			return nil, fmt.Errorf("unknown battery domain %q", domain)
		}
		if len(battery.Items) == 0 {
			return nil, fmt.Errorf("battery %q has no items", domain)
		}
		battery.Domain = domain
		set.Batteries[domain] = battery
	}
	return &set, nil
}

// Materialize converts a battery definition into the immutable item list a
// sequencer walks.
func (b Battery) Materialize() []TestItem {
	items := make([]TestItem, 0, len(b.Items))
	for _, def := range b.Items {
		items = append(items, TestItem{
			ID:               def.ID,
			Domain:           b.Domain,
			Kind:             def.Kind,
			Task:             def.Task,
			TimeLimitSeconds: def.TimeLimitSeconds,
			Skippable:        def.Skippable,
			Payload: ItemPayload{
				Prompt:      def.Prompt,
				Description: def.Description,
				Options:     def.Options,
			},
		})
	}
	return items
}

// DefaultBatteries returns the built-in battery definitions used when no
// YAML file overrides them.
func DefaultBatteries() *BatterySet {
	likertOptions := []string{
		"Not at all", "Several days", "More than half the days", "Nearly every day",
	}
	severityOptions := []string{"None", "Mild", "Moderate", "Severe"}

	return &BatterySet{Batteries: map[Domain]Battery{
		DomainCognitive: {
			Domain: DomainCognitive,
			Items: []BatteryItem{
				{ID: "cog-intro", Kind: KindContinue, Task: TaskIntro,
					Prompt: "Memorize these three words: apple, chair, penny."},
				{ID: "cog-orientation", Kind: KindDate, Task: TaskOrientation,
					Prompt: "What is today's date?"},
				{ID: "cog-countdown", Kind: KindText, Task: TaskCountdown,
					Prompt:      "Starting at 100, count down by 7, five times.",
					Description: "Enter the numbers separated by commas."},
				{ID: "cog-fluency", Kind: KindTimedText, Task: TaskFluency,
					Prompt:           "Name as many animals as you can.",
					TimeLimitSeconds: 60},
				{ID: "cog-recall", Kind: KindText, Task: TaskRecall,
					Prompt: "What were the three words from the start of the test?"},
				{ID: "cog-reaction", Kind: KindReaction, Task: TaskReaction,
					Prompt: "Tap as soon as the screen changes color.", Skippable: true},
				{ID: "cog-game", Kind: KindGameMemory, Task: TaskMiniGame,
					Prompt: "Repeat the highlighted sequence.", Skippable: true},
			},
		},
		DomainMotor: {
			Domain: DomainMotor,
			Items: []BatteryItem{
				{ID: "motor-tremor", Kind: KindMotion, Task: TaskTremor,
					Prompt:           "Hold the device steady in your outstretched hand.",
					TimeLimitSeconds: 10},
				{ID: "motor-tap", Kind: KindTap, Task: TaskTap,
					Prompt:           "Tap the circles as quickly and accurately as you can.",
					TimeLimitSeconds: 15},
				{ID: "motor-drawing", Kind: KindDrawing, Task: TaskDrawing,
					Prompt: "Trace the spiral without lifting your finger."},
				{ID: "motor-gait", Kind: KindMotion, Task: TaskGait,
					Prompt:           "Walk ten steps in a straight line with the device in your pocket.",
					TimeLimitSeconds: 30, Skippable: true},
			},
		},
		DomainSpeech: {
			Domain: DomainSpeech,
			Items: []BatteryItem{
				{ID: "speech-reading", Kind: KindAudio, Task: TaskReading,
					Prompt: "Read the displayed paragraph aloud.", TimeLimitSeconds: 45},
				{ID: "speech-spontaneous", Kind: KindAudio, Task: TaskSpontaneous,
					Prompt: "Describe what you did this morning.", TimeLimitSeconds: 60},
				{ID: "speech-naming", Kind: KindAudio, Task: TaskNaming,
					Prompt: "Name the objects shown in the pictures.", TimeLimitSeconds: 45},
			},
		},
		DomainBehavioral: {
			Domain: DomainBehavioral,
			Items: []BatteryItem{
				{ID: "beh-interest", Kind: KindRadio, Task: TaskMood,
					Prompt:  "Little interest or pleasure in doing things?",
					Options: likertOptions},
				{ID: "beh-mood", Kind: KindRadio, Task: TaskMood,
					Prompt:  "Feeling down, depressed, or hopeless?",
					Options: likertOptions},
				{ID: "beh-sleep", Kind: KindRadio, Task: TaskMood,
					Prompt:  "How would you rate your sleep quality?",
					Options: severityOptions},
				{ID: "beh-anxiety", Kind: KindRadio, Task: TaskMood,
					Prompt:  "Feeling nervous, anxious, or on edge?",
					Options: likertOptions},
				{ID: "beh-freeform", Kind: KindText, Task: TaskMood,
					Prompt: "In your own words, how have you been feeling lately?"},
			},
		},
	}}
}
