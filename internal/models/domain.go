package models

// Domain identifies one assessment category.
type Domain string

const (
	DomainCognitive  Domain = "cognitive"
	DomainMotor      Domain = "motor"
	DomainSpeech     Domain = "speech"
	DomainBehavioral Domain = "behavioral"
)

// Domains lists every supported assessment domain.
var Domains = []Domain{DomainCognitive, DomainMotor, DomainSpeech, DomainBehavioral}

// Valid reports whether d is one of the known domains.
func (d Domain) Valid() bool {
	switch d {
	case DomainCognitive, DomainMotor, DomainSpeech, DomainBehavioral:
		return true
	}
	return false
}

// RiskLevel classifies a 0-100 domain score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// ItemKind selects which capture collaborator renders a test item.
type ItemKind string

const (
	KindContinue     ItemKind = "continue"
	KindText         ItemKind = "text"
	KindDate         ItemKind = "date"
	KindTimedText    ItemKind = "timed-text"
	KindRadio        ItemKind = "radio"
	KindMotion       ItemKind = "motion"
	KindTap          ItemKind = "tap"
	KindDrawing      ItemKind = "drawing"
	KindAudio        ItemKind = "audio"
	KindReaction     ItemKind = "reaction-time"
	KindSpatial      ItemKind = "spatial-memory"
	KindExecutive    ItemKind = "executive-function"
	KindGameMemory   ItemKind = "game-memory"
	KindGameAttn     ItemKind = "game-attention"
	KindGamePattern  ItemKind = "game-pattern"
	KindGameWord     ItemKind = "game-word"
)

// Task names the scoring sub-task a response contributes to. The scoring
// engine groups responses by task, not by item ID, so the same sub-task can
// appear at different positions in a battery.
type Task string

const (
	// TaskIntro marks instruction-only items whose acknowledgement is
	// recorded but never scored.
	TaskIntro Task = "intro"

	TaskRecall      Task = "recall"
	TaskCountdown   Task = "countdown"
	TaskOrientation Task = "orientation"
	TaskFluency     Task = "fluency"
	TaskMiniGame    Task = "minigame"
	TaskReaction    Task = "reaction"

	TaskTremor  Task = "tremor"
	TaskTap     Task = "tap"
	TaskDrawing Task = "drawing"
	TaskGait    Task = "gait"

	TaskReading     Task = "reading"
	TaskSpontaneous Task = "spontaneous"
	TaskNaming      Task = "naming"

	TaskMood Task = "mood"
)
