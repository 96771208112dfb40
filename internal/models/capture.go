package models

import (
	"encoding/json"
	"fmt"
)

// Capture is the closed set of modality-specific payloads a collaborator can
// produce. Each variant maps to exactly one ItemKind so the scoring engine
// can switch exhaustively instead of probing optional fields.
type Capture interface {
	CaptureKind() ItemKind
}

// Acceleration is one triaxial accelerometer reading.
type Acceleration struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// MotionSample pairs an accelerometer reading with its capture time.
type MotionSample struct {
	Acceleration Acceleration `json:"acceleration"`
	Timestamp    float64      `json:"timestamp"`
}

// GaitStep is one simulated step during a walking task.
type GaitStep struct {
	LengthMeters float64 `json:"lengthMeters"`
	DurationMs   float64 `json:"durationMs"`
}

// MotionCapture holds raw motion-sensor data. Steps is only populated for
// gait tasks; tremor tasks carry samples alone.
type MotionCapture struct {
	Samples []MotionSample `json:"samples"`
	Steps   []GaitStep     `json:"steps,omitempty"`
}

func (MotionCapture) CaptureKind() ItemKind { return KindMotion }

// Tap is a single screen tap with its distance-normalized accuracy.
type Tap struct {
	Timestamp float64 `json:"timestamp"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Accuracy  float64 `json:"accuracy"`
}

type TapCapture struct {
	Taps []Tap `json:"taps"`
}

func (TapCapture) CaptureKind() ItemKind { return KindTap }

// DrawPoint is one sampled pointer position along a stroke.
type DrawPoint struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Timestamp float64 `json:"timestamp"`
}

type DrawingCapture struct {
	Points      []DrawPoint   `json:"points"`
	Strokes     [][]DrawPoint `json:"strokes"`
	TotalTimeMs float64       `json:"totalTime"`
	PathLength  float64       `json:"pathLength"`
}

func (DrawingCapture) CaptureKind() ItemKind { return KindDrawing }

// AudioAnalysis carries the collaborator's signal features; the engine never
// touches raw audio.
type AudioAnalysis struct {
	Volume  float64 `json:"volume"`
	Clarity float64 `json:"clarity"`
	Fluency float64 `json:"fluency"`
	Pauses  int     `json:"pauses"`
}

type AudioCapture struct {
	DurationMs float64       `json:"duration"`
	SampleRate int           `json:"sampleRate"`
	Analysis   AudioAnalysis `json:"analysis"`
}

func (AudioCapture) CaptureKind() ItemKind { return KindAudio }

// ReactionCapture holds per-trial reaction times in milliseconds.
type ReactionCapture struct {
	TrialsMs []float64 `json:"trials"`
}

func (ReactionCapture) CaptureKind() ItemKind { return KindReaction }

type SpatialCapture struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

func (SpatialCapture) CaptureKind() ItemKind { return KindSpatial }

// ExecutiveCapture covers Stroop-style interference tasks.
type ExecutiveCapture struct {
	Correct   int     `json:"correct"`
	Total     int     `json:"total"`
	AverageMs float64 `json:"averageMs"`
}

func (ExecutiveCapture) CaptureKind() ItemKind { return KindExecutive }

// GameCapture is shared by the four mini-games; the item kind distinguishes
// which game produced it.
type GameCapture struct {
	Game       ItemKind `json:"-"`
	Correct    int      `json:"correct"`
	Total      int      `json:"total"`
	DurationMs float64  `json:"durationMs"`
}

func (g GameCapture) CaptureKind() ItemKind {
	if g.Game != "" {
		return g.Game
	}
	return KindGameMemory
}

// TextCapture covers the manual-entry kinds: text, timed-text, date, radio
// and continue acknowledgements.
type TextCapture struct {
	Kind  ItemKind `json:"-"`
	Value string   `json:"value"`
}

func (t TextCapture) CaptureKind() ItemKind {
	if t.Kind != "" {
		return t.Kind
	}
	return KindText
}

// RawCapture is the wire envelope around a Capture. A non-empty Error marks
// a completed-with-error capture (permission denied, insufficient data); the
// payload is nil and the response contributes nothing to scoring.
type RawCapture struct {
	Kind  ItemKind `json:"kind"`
	Error string   `json:"error,omitempty"`
	Data  Capture  `json:"data,omitempty"`
}

// Failed reports whether the collaborator ended with an error instead of a
// usable payload.
func (r RawCapture) Failed() bool { return r.Error != "" || r.Data == nil }

func (r RawCapture) MarshalJSON() ([]byte, error) {
	type envelope struct {
		Kind  ItemKind        `json:"kind"`
		Error string          `json:"error,omitempty"`
		Data  json.RawMessage `json:"data,omitempty"`
	}
	env := envelope{Kind: r.Kind, Error: r.Error}
	if r.Data != nil {
		raw, err := json.Marshal(r.Data)
		if err != nil {
			return nil, err
		}
		env.Data = raw
	}
	return json.Marshal(env)
}

func (r *RawCapture) UnmarshalJSON(data []byte) error {
	var env struct {
		Kind  ItemKind        `json:"kind"`
		Error string          `json:"error"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("failed to decode capture envelope: %w", err)
	}

	r.Kind = env.Kind
	r.Error = env.Error
	r.Data = nil
	if len(env.Data) == 0 || env.Error != "" {
		return nil
	}

	capture, err := decodeCapture(env.Kind, env.Data)
	if err != nil {
		return err
	}
	r.Data = capture
	return nil
}

func decodeCapture(kind ItemKind, data json.RawMessage) (Capture, error) {
	switch kind {
	case KindMotion:
		var c MotionCapture
		return &c, json.Unmarshal(data, &c)
	case KindTap:
		var c TapCapture
		return &c, json.Unmarshal(data, &c)
	case KindDrawing:
		var c DrawingCapture
		return &c, json.Unmarshal(data, &c)
	case KindAudio:
		var c AudioCapture
		return &c, json.Unmarshal(data, &c)
	case KindReaction:
		var c ReactionCapture
		return &c, json.Unmarshal(data, &c)
	case KindSpatial:
		var c SpatialCapture
		return &c, json.Unmarshal(data, &c)
	case KindExecutive:
		var c ExecutiveCapture
		return &c, json.Unmarshal(data, &c)
	case KindGameMemory, KindGameAttn, KindGamePattern, KindGameWord:
		var c GameCapture
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		c.Game = kind
		return &c, nil
	case KindContinue, KindText, KindTimedText, KindDate, KindRadio:
		var c TextCapture
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		c.Kind = kind
		return &c, nil
	}
	return nil, fmt.Errorf("unknown capture kind %q", kind)
}
