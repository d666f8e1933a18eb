package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// EvaluateFunc evaluates one scenario/response pair. Both Evaluate and
// (*Cache).Evaluate satisfy it.
type EvaluateFunc func(scenario, response string) (Report, error)

// BatchResult is the outcome for one input of a batch. Err is set for
// inputs that failed validation; Report is zero in that case.
type BatchResult struct {
	Index  int    `json:"index" yaml:"index"`
	Input  Input  `json:"input" yaml:"input"`
	Report Report `json:"report" yaml:"report"`
	Err    error  `json:"-" yaml:"-"`
}

// EvaluateBatch evaluates every input with at most parallel evaluations
// in flight. Results keep the input order. A failing input does not stop
// the batch; a cancelled context does, and its error is returned.
func EvaluateBatch(ctx context.Context, inputs []Input, parallel int, fn EvaluateFunc) ([]BatchResult, error) {
	if fn == nil {
		fn = Evaluate
	}
	if parallel <= 0 {
		parallel = 1
	}

	results := make([]BatchResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, in := range inputs {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(in.Scenario, in.Response)
			results[i] = BatchResult{Index: i, Input: in, Report: r, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
