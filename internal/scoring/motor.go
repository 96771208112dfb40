package scoring

import (
	"math"

	"neuroscreen/internal/models"
)

// Each motor sub-task carries equal weight; absent sub-tasks drop out of the
// denominator like everywhere else.
const weightMotorTask = 0.25

// tremorVarianceCeiling is the acceleration-magnitude variance (m/s^2
// squared) at which the tremor sub-score bottoms out.
const tremorVarianceCeiling = 1.5

// Tap blend parameters: full tempo credit at this tap rate.
const tapRateCeiling = 5.0

// drawingTurnScale normalizes cumulative heading change; two full rotations
// of accumulated turning halves the smoothness score.
const drawingTurnScale = 4 * math.Pi

// Gait targets for the simulated walking task.
const (
	gaitTargetStepMeters = 0.65
	gaitTargetStepMs     = 700.0
)

func scoreMotor(responses []models.Response) int {
	grouped := byTask(responses)

	return combine([]weighted{
		{calculateTremor(grouped[models.TaskTremor]), weightMotorTask},
		{calculateTapCoordination(grouped[models.TaskTap]), weightMotorTask},
		{calculateDrawingSmoothness(grouped[models.TaskDrawing]), weightMotorTask},
		{calculateGait(grouped[models.TaskGait]), weightMotorTask},
	})
}

// calculateTremor scores steadiness from the variance of triaxial
// acceleration magnitudes: the lower the variance, the higher the score.
func calculateTremor(responses []models.Response) MetricResult {
	samples := motionSamples(responses)
	if len(samples) < 2 {
		return MetricResult{}
	}

	magnitudes := make([]float64, len(samples))
	var sum float64
	for i, s := range samples {
		m := math.Sqrt(s.Acceleration.X*s.Acceleration.X +
			s.Acceleration.Y*s.Acceleration.Y +
			s.Acceleration.Z*s.Acceleration.Z)
		magnitudes[i] = m
		sum += m
	}
	avg := sum / float64(len(magnitudes))

	var variance float64
	for _, m := range magnitudes {
		diff := m - avg
		variance += diff * diff
	}
	variance /= float64(len(magnitudes))

	value := 1 - variance/tremorVarianceCeiling
	return MetricResult{Value: clamp01(value), Calculated: true, SampleSize: len(samples)}
}

// calculateTapCoordination blends tap tempo (taps per second against the
// rate ceiling) with average hit accuracy, half weight each.
func calculateTapCoordination(responses []models.Response) MetricResult {
	var taps []models.Tap
	for _, r := range responses {
		if capture, ok := r.Capture.Data.(*models.TapCapture); ok {
			taps = append(taps, capture.Taps...)
		}
	}
	if len(taps) == 0 {
		return MetricResult{}
	}

	var accuracySum float64
	for _, t := range taps {
		accuracySum += t.Accuracy
	}
	accuracy := accuracySum / float64(len(taps))

	rate := tapRateCeiling // a single tap cannot establish a tempo; give full tempo credit
	if len(taps) > 1 {
		elapsed := (taps[len(taps)-1].Timestamp - taps[0].Timestamp) / 1000
		if elapsed > 0 {
			rate = float64(len(taps)-1) / elapsed
		}
	}
	tempo := rate / tapRateCeiling
	if tempo > 1 {
		tempo = 1
	}

	value := 0.5*tempo + 0.5*clamp01(accuracy)
	return MetricResult{Value: clamp01(value), Calculated: true, SampleSize: len(taps)}
}

// calculateDrawingSmoothness scores stroke quality as the inverse of the
// cumulative heading-angle change along the drawn path.
func calculateDrawingSmoothness(responses []models.Response) MetricResult {
	var capture *models.DrawingCapture
	for _, r := range responses {
		if c, ok := r.Capture.Data.(*models.DrawingCapture); ok {
			capture = c
			break
		}
	}
	if capture == nil || len(capture.Points) < 3 {
		return MetricResult{}
	}

	totalTurn := 0.0
	prevHeading := math.NaN()
	for i := 1; i < len(capture.Points); i++ {
		dx := capture.Points[i].X - capture.Points[i-1].X
		dy := capture.Points[i].Y - capture.Points[i-1].Y
		if dx == 0 && dy == 0 {
			continue
		}
		heading := math.Atan2(dy, dx)
		if !math.IsNaN(prevHeading) {
			delta := math.Abs(heading - prevHeading)
			if delta > math.Pi {
				delta = 2*math.Pi - delta
			}
			totalTurn += delta
		}
		prevHeading = heading
	}

	value := 1 / (1 + totalTurn/drawingTurnScale)
	return MetricResult{Value: value, Calculated: true, SampleSize: len(capture.Points)}
}

// calculateGait blends step length, step timing proximity to the 0.7s
// target, and step-to-step variability into one sub-score.
func calculateGait(responses []models.Response) MetricResult {
	var steps []models.GaitStep
	for _, r := range responses {
		if capture, ok := r.Capture.Data.(*models.MotionCapture); ok {
			steps = append(steps, capture.Steps...)
		}
	}
	if len(steps) < 2 {
		return MetricResult{}
	}

	var lengthSum, durationSum float64
	for _, s := range steps {
		lengthSum += s.LengthMeters
		durationSum += s.DurationMs
	}
	avgLength := lengthSum / float64(len(steps))
	avgDuration := durationSum / float64(len(steps))

	lengthScore := clamp01(1 - math.Abs(avgLength-gaitTargetStepMeters)/gaitTargetStepMeters)
	timingScore := clamp01(1 - math.Abs(avgDuration-gaitTargetStepMs)/gaitTargetStepMs)

	var variance float64
	for _, s := range steps {
		diff := s.DurationMs - avgDuration
		variance += diff * diff
	}
	variance /= float64(len(steps))
	consistency := 1.0
	if avgDuration > 0 {
		consistency = clamp01(1 - math.Sqrt(variance)/avgDuration)
	}

	value := (lengthScore + timingScore + consistency) / 3
	return MetricResult{Value: value, Calculated: true, SampleSize: len(steps)}
}

func motionSamples(responses []models.Response) []models.MotionSample {
	var samples []models.MotionSample
	for _, r := range responses {
		if capture, ok := r.Capture.Data.(*models.MotionCapture); ok {
			samples = append(samples, capture.Samples...)
		}
	}
	return samples
}
