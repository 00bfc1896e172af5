/*
model.go - Model-assisted extractor with rule-based fallback

PURPOSE:
  Wraps a generative-model call behind the same output shape as the
  rule-based extractor. Trust policy: the model result is used only
  when the call succeeds, the reply parses, and it carries at least
  one request; on any weakness the rule-based result substitutes
  wholesale. AI and rule-based output are never merged within a call.

REPLY PARSING:
  The model is instructed to answer with strict JSON, but replies
  often arrive fenced or prefixed. FirstJSONObject extracts the first
  top-level object by brace matching (string- and escape-aware);
  failure to find one is a hard parse failure, not a partial recovery.

SEE ALSO:
  - rules.go: The fallback engine
  - openai.go: The Completer implementation
  - batch.go: Chooses strict vs fallback dispatch
*/
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ModelNotesPrefix marks results produced by the model path. The
// model's own notes, if any, are appended after it.
const ModelNotesPrefix = "AI解析"

// =============================================================================
// COMPLETER - Narrow model-client interface
// =============================================================================

// Completer is the minimal surface the extractor needs from a chat
// model. Implementations own transport, auth, and model selection.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// =============================================================================
// MODEL-ASSISTED EXTRACTOR
// =============================================================================

type ModelExtractor struct {
	Completer Completer
	Rules     Rules
}

func NewModelExtractor(c Completer) *ModelExtractor {
	return &ModelExtractor{Completer: c}
}

// modelReply is the JSON shape the prompt demands.
type modelReply struct {
	ParsedRequests  []ShiftRequest `json:"parsedRequests"`
	ProcessingNotes string         `json:"processingNotes"`
}

// Extract runs the model path and falls back to the rule-based result
// on any failure or on an empty request list. Never returns an error:
// the fallback is always available.
func (m *ModelExtractor) Extract(ctx context.Context, text string, year int) ExtractionResult {
	result, err := m.ExtractStrict(ctx, text, year)
	if err != nil || len(result.ParsedRequests) == 0 {
		return m.Rules.Extract(text, year)
	}
	return result
}

// ExtractStrict runs the model path with no fallback: transport and
// parse failures surface to the caller. An empty-but-parsable result
// is returned as-is.
func (m *ModelExtractor) ExtractStrict(ctx context.Context, text string, year int) (ExtractionResult, error) {
	if m.Completer == nil {
		return ExtractionResult{}, ErrModelUnavailable
	}

	system, user := buildPrompt(text, year)
	reply, err := m.Completer.Complete(ctx, system, user)
	if err != nil {
		return ExtractionResult{}, fmt.Errorf("model call failed: %w", err)
	}

	body, err := FirstJSONObject(reply)
	if err != nil {
		return ExtractionResult{}, err
	}

	var parsed modelReply
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return ExtractionResult{}, fmt.Errorf("unparsable model reply: %w", err)
	}

	notes := ModelNotesPrefix
	if parsed.ProcessingNotes != "" {
		notes += ": " + parsed.ProcessingNotes
	}

	return ExtractionResult{
		OriginalText:    text,
		ParsedRequests:  parsed.ParsedRequests,
		ProcessingNotes: notes,
	}, nil
}

// =============================================================================
// REPLY PARSING
// =============================================================================

// FirstJSONObject returns the first top-level JSON object embedded in
// s, located by brace matching. Braces inside JSON strings do not
// count; escaped quotes are honored.
func FirstJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", ErrNoJSONObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSONObject
}
