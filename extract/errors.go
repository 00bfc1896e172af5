/*
errors.go - Error types for the extraction engines

ERROR CATEGORIES:
  1. Boundary validation - unknown engine/mode names
  2. Model failures - transport, unparsable reply, empty result
     (recoverable: the caller or the extractor itself substitutes the
     rule-based result)

USAGE:
  if errors.Is(err, extract.ErrUnknownEngine) { // 400 }
*/
package extract

import "errors"

var (
	// ErrUnknownEngine is returned for engine names outside the
	// closed enum.
	ErrUnknownEngine = errors.New("unknown extraction engine")

	// ErrUnknownMode is returned for mode names other than
	// single/bulk.
	ErrUnknownMode = errors.New("unknown extraction mode")

	// ErrModelUnavailable is returned when the model engine is
	// requested but no model client is configured.
	ErrModelUnavailable = errors.New("model engine is not configured")

	// ErrNoJSONObject is returned when a model reply contains no
	// top-level JSON object.
	ErrNoJSONObject = errors.New("no JSON object in model reply")
)
