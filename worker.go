package maze

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Query is one start/goal pair for SolveBatch.
type Query struct {
	Start Cell `json:"start" yaml:"start"`
	Goal  Cell `json:"goal" yaml:"goal"`
}

// QueryResult is the outcome of one Query. Err is set only for input errors
// that concern this query alone.
type QueryResult struct {
	Query  Query  `json:"query"`
	Result Result `json:"result"`
	Err    error  `json:"-"`
}

// SolveBatch solves every query against the shared, read-only grid using up
// to NumberOfWorkers concurrent searches. Results keep the order of queries.
// Cancellation of ctx aborts the whole batch.
func (p *Pathfinder) SolveBatch(ctx context.Context, grid *Grid, queries []Query) ([]QueryResult, error) {
	results := make([]QueryResult, len(queries))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.options.NumberOfWorkers)

	for i, query := range queries {
		group.Go(func() error {
			result, err := p.FindPath(groupCtx, grid, query.Start, query.Goal)
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				return err
			}
			results[i] = QueryResult{Query: query, Result: result, Err: err}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
