package common

import (
	"testing"
)

func TestParseSymbols(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "comma separated with irregular spacing",
			input: " aapl,  nvda ,tsla",
			want:  []string{"AAPL", "NVDA", "TSLA"},
		},
		{
			name:  "space and tab separated",
			input: "TSLA RIVN\tLCID",
			want:  []string{"TSLA", "RIVN", "LCID"},
		},
		{
			name:  "mixed commas and whitespace",
			input: "aapl, msft  goog,\tamzn",
			want:  []string{"AAPL", "MSFT", "GOOG", "AMZN"},
		},
		{
			name:  "single ticker",
			input: "nvda",
			want:  []string{"NVDA"},
		},
		{
			name:  "trailing and leading commas",
			input: ",AAPL,NVDA,",
			want:  []string{"AAPL", "NVDA"},
		},
		{
			name:  "consecutive separators",
			input: "AAPL,,  ,NVDA",
			want:  []string{"AAPL", "NVDA"},
		},
		{
			name:  "duplicates preserved in order",
			input: "AAPL, NVDA, AAPL",
			want:  []string{"AAPL", "NVDA", "AAPL"},
		},
		{
			name:  "newline separated",
			input: "AAPL\nNVDA\nTSLA",
			want:  []string{"AAPL", "NVDA", "TSLA"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
		{
			name:  "separators only",
			input: "  , ,  ",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseSymbols(tt.input)

			if len(result) != len(tt.want) {
				t.Fatalf("ParseSymbols(%q) returned %d symbols, want %d", tt.input, len(result), len(tt.want))
			}
			for i, symbol := range result {
				if symbol != tt.want[i] {
					t.Errorf("result[%d] = %q, want %q", i, symbol, tt.want[i])
				}
			}
		})
	}
}
