// Package common provides shared utilities across the application.
package common

import (
	"strings"
	"unicode"
)

// ParseSymbols parses free-text user input into an ordered list of ticker
// symbols. Input is split on commas and any whitespace; tokens are trimmed,
// uppercased and empty tokens discarded. Order is preserved and duplicates
// are kept.
//
// Examples:
//   - " aapl,  nvda ,tsla" -> ["AAPL", "NVDA", "TSLA"]
//   - "TSLA RIVN\tLCID"    -> ["TSLA", "RIVN", "LCID"]
//   - "  , ,  "            -> []
func ParseSymbols(raw string) []string {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	symbols := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		symbols = append(symbols, strings.ToUpper(token))
	}
	return symbols
}
