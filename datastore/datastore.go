/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/hotswap/model"
	"github.com/suparena/hotswap/storagemodels"
)

// Source reads stored records and constructs them through the alias registry.
type Source interface {
	Query(ctx context.Context, params *storagemodels.QueryParams) ([]model.Model, error)

	Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult
}
