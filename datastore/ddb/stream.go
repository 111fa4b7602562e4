/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/hotswap/storagemodels"
)

// Stream pages through a query and hydrates every item. The channel is closed when
// the query is exhausted, a page fails, or ctx is done.
func (h *Hydrator) Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	resultCh := make(chan storagemodels.StreamResult, options.BufferSize)
	go h.streamWorker(ctx, params, options, resultCh)
	return resultCh
}

func (h *Hydrator) streamWorker(
	ctx context.Context,
	params *storagemodels.QueryParams,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult,
) {
	defer close(resultCh)

	var itemIndex int64
	var pageNumber int
	var errs []error
	// Consecutive failures on the current page that ErrorHandler chose to skip.
	// Past MaxRetries the stream stops.
	var pageFailures int
	startTime := time.Now()

	reportProgress := func(lastKey map[string]types.AttributeValue) {
		if options.ProgressHandler == nil {
			return
		}
		options.ProgressHandler(storagemodels.StreamProgress{
			ItemsProcessed: itemIndex,
			PagesProcessed: pageNumber,
			LastKey:        lastKey,
			Errors:         errs,
			StartTime:      startTime,
		})
	}

	send := func(r storagemodels.StreamResult) bool {
		select {
		case <-ctx.Done():
			return false
		case resultCh <- r:
			return true
		}
	}

	input := buildQueryInput(params)
	input.Limit = aws.Int32(options.PageSize)

	for {
		if ctx.Err() != nil {
			return
		}

		out, err := h.queryWithRetry(ctx, input, options)
		if err != nil {
			pageFailures++
			if options.ErrorHandler == nil || !options.ErrorHandler(err) || pageFailures > options.MaxRetries {
				send(storagemodels.StreamResult{
					Error: fmt.Errorf("query failed: %w", err),
					Meta:  storagemodels.StreamMeta{Index: itemIndex, PageNumber: pageNumber, Timestamp: time.Now()},
				})
				return
			}
			errs = append(errs, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(options.RetryBackoff):
			}
			continue
		}
		pageFailures = 0

		pageNumber++
		h.logger.Debug("hydrating page", "page", pageNumber, "items", len(out.Items))

		for _, item := range out.Items {
			m, alias, err := h.Decode(item)
			result := storagemodels.StreamResult{
				Alias: alias,
				Item:  m,
				Raw:   item,
				Error: err,
				Meta:  storagemodels.StreamMeta{Index: itemIndex, PageNumber: pageNumber, Timestamp: time.Now()},
			}
			itemIndex++
			if err != nil {
				errs = append(errs, err)
			}
			if !send(result) {
				return
			}
		}

		reportProgress(out.LastEvaluatedKey)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	reportProgress(nil)
}

// queryWithRetry retries transient DynamoDB errors with linear backoff.
func (h *Hydrator) queryWithRetry(ctx context.Context, input *sdk.QueryInput, options storagemodels.StreamOptions) (*sdk.QueryOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		out, err := h.client.Query(ctx, input)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return nil, err
		}

		if attempt < options.MaxRetries {
			backoff := time.Duration(attempt+1) * options.RetryBackoff
			h.logger.Debug("retrying query", "attempt", attempt+1, "backoff", backoff, "error", err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("query failed after %d retries: %w", options.MaxRetries, lastErr)
}

func isRetryableError(err error) bool {
	var pte *types.ProvisionedThroughputExceededException
	var rle *types.RequestLimitExceeded
	var ise *types.InternalServerError
	if errors.As(err, &pte) || errors.As(err, &rle) || errors.As(err, &ise) {
		return true
	}

	var retryable interface{ RetryableError() bool }
	if errors.As(err, &retryable) {
		return retryable.RetryableError()
	}
	return false
}
