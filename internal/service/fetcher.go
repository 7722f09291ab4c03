package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rahhal10/Final-Backend/internal/domain"
	"github.com/rahhal10/Final-Backend/internal/repository"
)

// DatasetFetcher issues the assistant's dataset queries concurrently and
// joins their results.
type DatasetFetcher struct {
	reader       store.DatasetReader
	queryTimeout time.Duration
}

// DefaultQueryTimeout bounds each store query when no timeout is given.
const DefaultQueryTimeout = 5 * time.Second

// NewDatasetFetcher creates a fetcher. A non-positive queryTimeout falls
// back to DefaultQueryTimeout.
func NewDatasetFetcher(reader store.DatasetReader, queryTimeout time.Duration) *DatasetFetcher {
	if queryTimeout <= 0 {
		queryTimeout = DefaultQueryTimeout
	}
	return &DatasetFetcher{reader: reader, queryTimeout: queryTimeout}
}

// Queries returns the queries to issue for the given identity. Conditional
// datasets are left out for an anonymous caller.
func Queries(identity domain.Identity) []domain.DatasetQuery {
	var filter domain.IdentityFilter
	known := false
	switch id := identity.(type) {
	case domain.KnownIdentity:
		filter = domain.IdentityFilter{Email: id.Email, Username: id.Username}
		known = true
	case domain.Anonymous:
	}

	queries := make([]domain.DatasetQuery, 0, len(domain.DatasetNames))
	for _, name := range domain.DatasetNames {
		q := domain.DatasetQuery{
			Name:        name,
			Limit:       name.RowLimit(),
			Conditional: name.Conditional(),
		}
		if q.Conditional {
			if !known {
				continue
			}
			q.Filter = filter
		}
		queries = append(queries, q)
	}
	return queries
}

// Fetch runs every query for the identity in parallel. The first failure
// cancels the remaining queries and is returned as a *domain.DatasetError.
// On success every dataset key is present.
func (f *DatasetFetcher) Fetch(ctx context.Context, identity domain.Identity) (domain.AggregatedContext, error) {
	queries := Queries(identity)
	results := make([]domain.DatasetResult, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			rows, err := f.query(gctx, q)
			if err != nil {
				return &domain.DatasetError{Dataset: q.Name, Err: err}
			}
			results[i] = domain.DatasetResult{Name: q.Name, Rows: rows}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg := domain.NewAggregatedContext()
	for _, r := range results {
		agg.Set(r.Name, r.Rows)
	}
	return agg, nil
}

func (f *DatasetFetcher) query(ctx context.Context, q domain.DatasetQuery) ([]domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, f.queryTimeout)
	defer cancel()

	rows, err := f.reader.QueryDataset(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rows, nil
}
