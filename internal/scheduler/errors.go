package scheduler

import "errors"

// ErrUnknownStage indicates a stage ID that is not part of the pipeline
// snapshot. This is invalid input from the caller, not a configuration
// problem, and is never silently mapped to the default stage.
var ErrUnknownStage = errors.New("stage not in pipeline")

// ConfigError reports invalid pipeline or lead-time configuration: zero or
// multiple default/final stages, duplicate order indexes, or a rule that
// references a missing stage. Configuration errors abort the computation
// and are surfaced to the operator; the engine never guesses its way past
// them.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}
