package ports

// GenerationMetrics counts control-plane activity for the ops endpoint.
type GenerationMetrics interface {
	RecordWorldCreated()
	RecordToolCall(tool string)
	RecordFailure()
}
