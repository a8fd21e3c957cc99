package progress

import "math"

const (
	// completionRatio is the watched fraction of a unit's expected duration
	// at which it counts as completed. Tolerates trailing credits without
	// letting a near-zero watch time complete the unit.
	completionRatio = 0.95

	// plausibilityFactor bounds observed elapsed seconds relative to the
	// unit's expected duration to reject corrupt client data.
	plausibilityFactor = 3
)

// CompletionThreshold returns the elapsed-seconds threshold at which a unit
// with the given expected duration counts as completed. Returns 0 for an
// unknown duration; ThresholdMet is the authoritative check.
func CompletionThreshold(durationSeconds int) int {
	if durationSeconds <= 0 {
		return 0
	}
	return int(math.Ceil(completionRatio * float64(durationSeconds)))
}

// ThresholdMet reports whether elapsed seconds alone satisfy the completion
// threshold. With an unknown duration there is no threshold to meet: an
// explicit completion signal from the playback client is required instead.
func ThresholdMet(durationSeconds, elapsedSeconds int) bool {
	if durationSeconds <= 0 {
		return false
	}
	return elapsedSeconds >= CompletionThreshold(durationSeconds)
}

// MaxPlausibleSeconds returns the upper bound accepted for observed elapsed
// seconds, or 0 when the duration is unknown and no bound applies.
func MaxPlausibleSeconds(durationSeconds int) int {
	if durationSeconds <= 0 {
		return 0
	}
	return plausibilityFactor * durationSeconds
}
