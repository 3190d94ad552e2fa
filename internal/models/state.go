package models

// Analysis steps for the orchestrator lifecycle.
const (
	StepIdle       = "idle"
	StepProcessing = "processing"
)

// AnalysisState is a point-in-time snapshot of the orchestrator, suitable
// for JSON delivery to the UI. Exactly one shape is active at a time:
// idle (nothing set), loading (Loading true with Progress), error (Error
// set) or result (Results set).
type AnalysisState struct {
	Loading  bool             `json:"loading"`
	Progress int              `json:"progress"`
	Step     string           `json:"step"`
	Error    string           `json:"error,omitempty"`
	Results  []AnalysisResult `json:"results,omitempty"`
}

// Idle reports whether no analysis has run or the last outcome was dismissed.
func (s AnalysisState) Idle() bool {
	return !s.Loading && s.Error == "" && len(s.Results) == 0
}
