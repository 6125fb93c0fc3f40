package interfaces

// MetricsRecorder ships operational metrics to a monitoring backend. All
// methods are fire-and-forget; delivery failures must not surface to command
// handling.
type MetricsRecorder interface {
	SendCommandMetric(command string, isAdmin bool)
	SendSubmissionMetric(mapNum int)
	SendWeekResetMetric(playerCount int)
	Close() error
}
