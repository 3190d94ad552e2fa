package llm

import "errors"

var (
	// ErrEmptyResponse indicates the model returned no text at all.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrMalformedResponse indicates the model returned text that could not
	// be parsed into the expected result structure.
	ErrMalformedResponse = errors.New("malformed response from model")

	// ErrNoResults indicates the model responded but produced no usable
	// result for any requested ticker.
	ErrNoResults = errors.New("no valid results in model response")
)
