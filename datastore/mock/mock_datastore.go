/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory datastore.Source for testing
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/suparena/hotswap"
	"github.com/suparena/hotswap/errors"
	"github.com/suparena/hotswap/model"
	"github.com/suparena/hotswap/storagemodels"
)

// Record is a stored entity: the alias it hydrates through and its attributes.
type Record struct {
	Alias      string
	Attributes model.Attributes
}

// Source is an in-memory datastore.Source. Query and Stream return every record
// in insertion order; QueryParams are ignored unless a query func is set.
type Source struct {
	mu         sync.RWMutex
	maker      hotswap.Maker
	records    []Record
	queryFunc  func(ctx context.Context, params *storagemodels.QueryParams) ([]model.Model, error)
	queryError error
}

// New creates a Source constructing through maker.
func New(maker hotswap.Maker) *Source {
	return &Source{maker: maker}
}

// WithRecords appends records.
func (m *Source) WithRecords(records ...Record) *Source {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, records...)
	return m
}

// WithQueryFunc sets a custom query function for testing
func (m *Source) WithQueryFunc(f func(ctx context.Context, params *storagemodels.QueryParams) ([]model.Model, error)) *Source {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryFunc = f
	return m
}

// WithQueryError makes Query and Stream fail with err
func (m *Source) WithQueryError(err error) *Source {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryError = err
	return m
}

// Query hydrates every record. The first failure aborts the call.
func (m *Source) Query(ctx context.Context, params *storagemodels.QueryParams) ([]model.Model, error) {
	records, queryFunc, queryErr := m.snapshot()
	if queryErr != nil {
		return nil, queryErr
	}
	if queryFunc != nil {
		return queryFunc(ctx, params)
	}

	results := make([]model.Model, 0, len(records))
	for _, r := range records {
		entity, err := m.hydrate(r)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// Stream hydrates records one at a time. Per-record failures are reported in the result.
func (m *Source) Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}
	resultChan := make(chan storagemodels.StreamResult, options.BufferSize)

	go func() {
		defer close(resultChan)

		records, _, queryErr := m.snapshot()
		if queryErr != nil {
			select {
			case <-ctx.Done():
			case resultChan <- storagemodels.StreamResult{Error: fmt.Errorf("query failed: %w", queryErr)}:
			}
			return
		}

		for i, r := range records {
			entity, err := m.hydrate(r)
			select {
			case <-ctx.Done():
				return
			case resultChan <- storagemodels.StreamResult{
				Alias: r.Alias,
				Item:  entity,
				Error: err,
				Meta: storagemodels.StreamMeta{
					Index:      int64(i),
					PageNumber: 1,
				},
			}:
			}
		}
	}()

	return resultChan
}

// Count returns the number of stored records
func (m *Source) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Clear removes all records
func (m *Source) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
}

func (m *Source) snapshot() ([]Record, func(context.Context, *storagemodels.QueryParams) ([]model.Model, error), error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Record(nil), m.records...), m.queryFunc, m.queryError
}

func (m *Source) hydrate(r Record) (model.Model, error) {
	entity, err := m.maker.Make(r.Alias, r.Attributes)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("alias", r.Alias)
	}
	return entity, nil
}
