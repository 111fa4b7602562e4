/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/hotswap/errors"
	"github.com/suparena/hotswap/model"
	"github.com/suparena/hotswap/storagemodels"
)

// Query runs a single DynamoDB Query page and hydrates every item.
// The first item that cannot be hydrated fails the whole call.
func (h *Hydrator) Query(ctx context.Context, params *storagemodels.QueryParams) ([]model.Model, error) {
	out, err := h.client.Query(ctx, buildQueryInput(params))
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	results := make([]model.Model, 0, len(out.Items))
	for _, item := range out.Items {
		m, _, err := h.Decode(item)
		if err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	return results, nil
}

// Decode reads the alias from the item's type attribute, unmarshals the remaining
// attributes and constructs the bound class. The item is not modified.
func (h *Hydrator) Decode(item map[string]types.AttributeValue) (model.Model, string, error) {
	attr, ok := item[h.typeAttribute]
	if !ok {
		return nil, "", errors.NewValidationError(h.typeAttribute, "missing from item")
	}
	var alias string
	if err := attributevalue.Unmarshal(attr, &alias); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal %s: %w", h.typeAttribute, err)
	}

	rest := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		if k != h.typeAttribute {
			rest[k] = v
		}
	}
	attrs := model.Attributes{}
	if err := attributevalue.UnmarshalMap(rest, &attrs); err != nil {
		return nil, alias, fmt.Errorf("failed to unmarshal item for alias %q: %w", alias, err)
	}

	m, err := h.maker.Make(alias, attrs)
	if err != nil {
		return nil, alias, fmt.Errorf("failed to construct item for alias %q: %w", alias, err)
	}
	if m == nil {
		return nil, alias, errors.NewNotFoundError("alias", alias)
	}
	return m, alias, nil
}

func buildQueryInput(params *storagemodels.QueryParams) *sdk.QueryInput {
	return &sdk.QueryInput{
		TableName:                 &params.TableName,
		KeyConditionExpression:    &params.KeyConditionExpression,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		FilterExpression:          params.FilterExpression,
		IndexName:                 params.IndexName,
		Limit:                     params.Limit,
		ExclusiveStartKey:         params.ExclusiveStartKey,
		ScanIndexForward:          params.ScanIndexForward,
	}
}
