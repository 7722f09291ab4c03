// Package service implements the LearnHub use cases on top of the record
// store, the inference client and the admission policy.
package service

import (
	"context"

	"github.com/rahhal10/Final-Backend/internal/adapter/inference"
	"github.com/rahhal10/Final-Backend/internal/config"
	"github.com/rahhal10/Final-Backend/internal/repository"
	"github.com/rahhal10/Final-Backend/policy"
)

type Service struct {
	store           store.Store
	inferenceClient inference.Client
	config          *config.Config
	policyEngine    *policy.Engine
	fetcher         *DatasetFetcher
}

func New(store store.Store, inferenceClient inference.Client, cfg *config.Config, policyEngine *policy.Engine) *Service {
	return &Service{
		store:           store,
		inferenceClient: inferenceClient,
		config:          cfg,
		policyEngine:    policyEngine,
		fetcher:         NewDatasetFetcher(store, cfg.StoreQueryTimeout),
	}
}

// Config returns the configuration the service was built with.
func (s *Service) Config() *config.Config {
	return s.config
}

// Health checks that the record store is reachable.
func (s *Service) Health(ctx context.Context) error {
	return s.store.Ping(ctx)
}
