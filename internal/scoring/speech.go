package scoring

import "neuroscreen/internal/models"

// The three speech sub-tasks share the weight equally when present.
const weightSpeechTask = 1.0 / 3.0

func scoreSpeech(responses []models.Response) int {
	grouped := byTask(responses)

	return combine([]weighted{
		{calculateSpeechTask(grouped[models.TaskReading]), weightSpeechTask},
		{calculateSpeechTask(grouped[models.TaskSpontaneous]), weightSpeechTask},
		{calculateSpeechTask(grouped[models.TaskNaming]), weightSpeechTask},
	})
}

// calculateSpeechTask blends the collaborator's clarity and fluency features
// with equal weight. Features are expected in [0,1].
func calculateSpeechTask(responses []models.Response) MetricResult {
	var sum float64
	count := 0
	for _, r := range responses {
		capture, ok := r.Capture.Data.(*models.AudioCapture)
		if !ok {
			continue
		}
		sum += (clamp01(capture.Analysis.Clarity) + clamp01(capture.Analysis.Fluency)) / 2
		count++
	}

	if count == 0 {
		return MetricResult{}
	}
	return MetricResult{Value: sum / float64(count), Calculated: true, SampleSize: count}
}
