package domain

// Outcome labels shared by events, logs and metrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
