/*
batch.go - Batch orchestration over multi-line input

PURPOSE:
  Dispatches input to the selected engine either once (single mode) or
  once per non-blank line (bulk mode), sequentially and in input
  order. Bulk results are wrapped per line so one failing line never
  aborts the batch; callers see exactly which lines failed.

FALLBACK POLICY:
  Explicit, not implicit per-engine behavior: Options.DisableFallback
  false (the default) substitutes the rule-based result on any model
  weakness; true surfaces model errors per line.

CANCELLATION:
  Sequential dispatch with a context check between lines only; an
  in-flight model call is abandoned by its own ctx, never mid-batch.
*/
package extract

import (
	"context"
	"strings"
)

// =============================================================================
// OPTIONS AND RESULTS
// =============================================================================

type Options struct {
	Engine Engine
	Mode   Mode
	Year   int // reference year for dates without one

	// DisableFallback surfaces model failures instead of
	// substituting the rule-based result. Meaningful only for the
	// model engine.
	DisableFallback bool
}

// LineResult is one batch entry: either a result or an error, in
// input order. In single mode there is exactly one entry carrying the
// whole text.
type LineResult struct {
	Line   string
	Result *ExtractionResult
	Err    error
}

// =============================================================================
// BATCH ORCHESTRATOR
// =============================================================================

type Batch struct {
	Rules Rules
	Model *ModelExtractor // nil when no model client is configured
}

func NewBatch(model *ModelExtractor) *Batch {
	return &Batch{Model: model}
}

// Run dispatches text per opts. The returned error covers
// batch-level failures only (unconfigured engine, cancellation);
// per-line extraction failures live in the line results.
func (b *Batch) Run(ctx context.Context, text string, opts Options) ([]LineResult, error) {
	if opts.Engine == EngineModelAssisted && b.Model == nil {
		return nil, ErrModelUnavailable
	}

	if opts.Mode != ModeBulk {
		result, err := b.dispatch(ctx, text, opts)
		return []LineResult{{Line: text, Result: result, Err: err}}, nil
	}

	var results []LineResult
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result, err := b.dispatch(ctx, line, opts)
		results = append(results, LineResult{Line: line, Result: result, Err: err})
	}
	return results, nil
}

func (b *Batch) dispatch(ctx context.Context, text string, opts Options) (*ExtractionResult, error) {
	switch opts.Engine {
	case EngineModelAssisted:
		if opts.DisableFallback {
			result, err := b.Model.ExtractStrict(ctx, text, opts.Year)
			if err != nil {
				return nil, err
			}
			return &result, nil
		}
		result := b.Model.Extract(ctx, text, opts.Year)
		return &result, nil
	default:
		result := b.Rules.Extract(text, opts.Year)
		return &result, nil
	}
}
