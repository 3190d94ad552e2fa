package models

import (
	"encoding/json"
	"testing"
)

func TestAnalysisResult_DCFAvailable(t *testing.T) {
	tests := []struct {
		name           string
		intrinsicValue float64
		marginOfSafety float64
		want           bool
	}{
		{"estimate present", 187.50, 12.3, true},
		{"estimate declined", 0, 0, false},
		{"negative margin still available", 92.10, -8.4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AnalysisResult{
				DCFIntrinsicValue: tt.intrinsicValue,
				DCFMarginOfSafety: tt.marginOfSafety,
			}
			if got := result.DCFAvailable(); got != tt.want {
				t.Errorf("DCFAvailable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalysisState_Idle(t *testing.T) {
	tests := []struct {
		name  string
		state AnalysisState
		want  bool
	}{
		{"zero value", AnalysisState{Step: StepIdle}, true},
		{"loading", AnalysisState{Loading: true, Progress: 40, Step: StepProcessing}, false},
		{"error", AnalysisState{Error: "No valid data found for the provided tickers"}, false},
		{"results", AnalysisState{Results: []AnalysisResult{{Ticker: "AAPL"}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Idle(); got != tt.want {
				t.Errorf("Idle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalysisState_JSONOmitsEmptyOutcome(t *testing.T) {
	state := AnalysisState{Loading: true, Progress: 12, Step: StepProcessing}

	data, err := json.Marshal(&state)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if _, ok := decoded["error"]; ok {
		t.Error("expected error field to be omitted while loading")
	}
	if _, ok := decoded["results"]; ok {
		t.Error("expected results field to be omitted while loading")
	}
}
