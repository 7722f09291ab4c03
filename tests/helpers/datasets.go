package helpers

import (
	"context"
	"sync"
	"time"

	"github.com/rahhal10/Final-Backend/internal/domain"
	"github.com/rahhal10/Final-Backend/internal/repository"
)

// DatasetStub serves assistant datasets from memory and records every query.
// Non-dataset operations fall through to the embedded Store.
type DatasetStub struct {
	store.Store

	Rows  map[domain.DatasetName][]domain.Record
	Fail  map[domain.DatasetName]error
	Delay map[domain.DatasetName]time.Duration

	mu    sync.Mutex
	calls []domain.DatasetQuery
}

// QueryDataset implements store.DatasetReader.
func (s *DatasetStub) QueryDataset(ctx context.Context, q domain.DatasetQuery) ([]domain.Record, error) {
	s.mu.Lock()
	s.calls = append(s.calls, q)
	s.mu.Unlock()

	if err := sleepCtx(ctx, s.Delay[q.Name]); err != nil {
		return nil, err
	}
	if err := s.Fail[q.Name]; err != nil {
		return nil, err
	}

	rows := make([]domain.Record, len(s.Rows[q.Name]))
	copy(rows, s.Rows[q.Name])
	return rows, nil
}

// Calls returns the queries received so far.
func (s *DatasetStub) Calls() []domain.DatasetQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.DatasetQuery(nil), s.calls...)
}

// Called reports whether the named dataset was queried.
func (s *DatasetStub) Called(name domain.DatasetName) bool {
	for _, q := range s.Calls() {
		if q.Name == name {
			return true
		}
	}
	return false
}

// Rows builds n records for a dataset, each with an id and a title.
func Rows(n int) []domain.Record {
	rows := make([]domain.Record, n)
	for i := range rows {
		rows[i] = domain.Record{"id": int64(i + 1), "title": "row"}
	}
	return rows
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
