/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/suparena/hotswap"
	"github.com/suparena/hotswap/storagemodels"
)

// QueryAPI is the subset of the DynamoDB client the Hydrator needs.
type QueryAPI interface {
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
}

// Hydrator implements datastore.Source by reading DynamoDB items and constructing
// each one through the alias in its type attribute.
type Hydrator struct {
	client        QueryAPI
	maker         hotswap.Maker
	typeAttribute string
	logger        *slog.Logger
}

// Option configures a Hydrator.
type Option func(*Hydrator)

// WithTypeAttribute sets the item attribute holding the alias. Defaults to "EntityType".
func WithTypeAttribute(name string) Option {
	return func(h *Hydrator) {
		h.typeAttribute = name
	}
}

// WithLogger sets the logger for paging and retry events.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hydrator) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHydrator constructs a Hydrator reading through client and building through maker,
// typically a *hotswap.Registry or its Sealed snapshot.
func NewHydrator(client QueryAPI, maker hotswap.Maker, opts ...Option) *Hydrator {
	h := &Hydrator{
		client:        client,
		maker:         maker,
		typeAttribute: storagemodels.DefaultTypeAttribute,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewDynamoDBClient initializes a DynamoDB client using static AWS credentials.
func NewDynamoDBClient(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(cfg), nil
}
