/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/hotswap"
	"github.com/suparena/hotswap/errors"
	"github.com/suparena/hotswap/model/testmodels"
	"github.com/suparena/hotswap/storagemodels"
)

// fakeQueryAPI serves pages in order and records every input it sees.
type fakeQueryAPI struct {
	mu     sync.Mutex
	pages  []*sdk.QueryOutput
	errs   []error
	inputs []*sdk.QueryInput
}

func (f *fakeQueryAPI) Query(ctx context.Context, in *sdk.QueryInput, _ ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := *in
	f.inputs = append(f.inputs, &copied)

	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	if len(f.pages) == 0 {
		return &sdk.QueryOutput{}, nil
	}
	out := f.pages[0]
	f.pages = f.pages[1:]
	return out, nil
}

func item(alias string, attrs map[string]string) map[string]types.AttributeValue {
	it := map[string]types.AttributeValue{
		"EntityType": &types.AttributeValueMemberS{Value: alias},
	}
	for k, v := range attrs {
		it[k] = &types.AttributeValueMemberS{Value: v}
	}
	return it
}

func newLibrary(t *testing.T) *hotswap.Registry {
	t.Helper()
	r := hotswap.New()
	require.NoError(t, r.Register(testmodels.BookClass, testmodels.AuthorClass))
	return r
}

var testParams = &storagemodels.QueryParams{
	TableName:              "library",
	KeyConditionExpression: "PK = :pk",
	ExpressionAttributeValues: map[string]types.AttributeValue{
		":pk": &types.AttributeValueMemberS{Value: "SHELF#1"},
	},
}

func TestDecode(t *testing.T) {
	r := newLibrary(t)
	h := NewHydrator(&fakeQueryAPI{}, r)

	t.Run("ConstructsThroughAlias", func(t *testing.T) {
		raw := item("book", map[string]string{"title": "Dune", "PK": "SHELF#1"})
		m, alias, err := h.Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, "book", alias)

		book, ok := m.(*testmodels.Book)
		require.True(t, ok)
		assert.Equal(t, "Dune", book.Title())
		assert.Nil(t, book.GetAttribute("EntityType"), "type attribute is stripped")
		assert.Contains(t, raw, "EntityType", "input item is left intact")
	})

	t.Run("FollowsOverride", func(t *testing.T) {
		r := newLibrary(t)
		require.NoError(t, r.Override("book", testmodels.SpecialBookClass))

		m, _, err := NewHydrator(&fakeQueryAPI{}, r.Seal()).Decode(item("book", nil))
		require.NoError(t, err)
		assert.IsType(t, &testmodels.SpecialBook{}, m)
	})

	t.Run("NumbersAndBooleans", func(t *testing.T) {
		raw := item("author", nil)
		raw["born"] = &types.AttributeValueMemberN{Value: "1920"}
		raw["active"] = &types.AttributeValueMemberBOOL{Value: true}

		m, _, err := h.Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, float64(1920), m.GetAttribute("born"))
		assert.Equal(t, true, m.GetAttribute("active"))
	})

	t.Run("UnknownAlias", func(t *testing.T) {
		_, alias, err := h.Decode(item("magazine", nil))
		assert.Equal(t, "magazine", alias)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("MissingTypeAttribute", func(t *testing.T) {
		_, _, err := h.Decode(map[string]types.AttributeValue{
			"title": &types.AttributeValueMemberS{Value: "x"},
		})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("CustomTypeAttribute", func(t *testing.T) {
		custom := NewHydrator(&fakeQueryAPI{}, r, WithTypeAttribute("Kind"))
		m, alias, err := custom.Decode(map[string]types.AttributeValue{
			"Kind": &types.AttributeValueMemberS{Value: "author"},
			"name": &types.AttributeValueMemberS{Value: "Le Guin"},
		})
		require.NoError(t, err)
		assert.Equal(t, "author", alias)
		assert.Equal(t, "Le Guin", m.(*testmodels.Author).Name())
	})
}

func TestQuery(t *testing.T) {
	api := &fakeQueryAPI{pages: []*sdk.QueryOutput{{
		Items: []map[string]types.AttributeValue{
			item("book", map[string]string{"title": "A"}),
			item("author", map[string]string{"name": "B"}),
		},
	}}}
	h := NewHydrator(api, newLibrary(t))

	results, err := h.Query(context.Background(), testParams)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.IsType(t, &testmodels.Book{}, results[0])
	assert.IsType(t, &testmodels.Author{}, results[1])

	require.Len(t, api.inputs, 1)
	assert.Equal(t, "library", aws.ToString(api.inputs[0].TableName))
	assert.Equal(t, "PK = :pk", aws.ToString(api.inputs[0].KeyConditionExpression))
}

func TestQueryErrors(t *testing.T) {
	t.Run("ClientError", func(t *testing.T) {
		boom := stderrors.New("boom")
		h := NewHydrator(&fakeQueryAPI{errs: []error{boom}}, newLibrary(t))

		_, err := h.Query(context.Background(), testParams)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("UnknownAlias", func(t *testing.T) {
		api := &fakeQueryAPI{pages: []*sdk.QueryOutput{{
			Items: []map[string]types.AttributeValue{item("magazine", nil)},
		}}}
		_, err := NewHydrator(api, newLibrary(t)).Query(context.Background(), testParams)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestStream(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t.Run("Pages", func(t *testing.T) {
		lastKey := map[string]types.AttributeValue{"PK": &types.AttributeValueMemberS{Value: "SHELF#1"}}
		api := &fakeQueryAPI{pages: []*sdk.QueryOutput{
			{Items: []map[string]types.AttributeValue{item("book", nil), item("magazine", nil)}, LastEvaluatedKey: lastKey},
			{Items: []map[string]types.AttributeValue{item("author", nil)}},
		}}

		var progress []storagemodels.StreamProgress
		h := NewHydrator(api, newLibrary(t))
		results := h.Stream(ctx, testParams,
			storagemodels.WithPageSize(2),
			storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
				progress = append(progress, p)
			}),
		)

		var got []storagemodels.StreamResult
		for r := range results {
			got = append(got, r)
		}

		require.Len(t, got, 3)
		assert.Equal(t, "book", got[0].Alias)
		assert.NoError(t, got[0].Error)
		assert.True(t, errors.IsNotFound(got[1].Error), "per-item failures do not stop the stream")
		assert.Equal(t, 2, got[2].Meta.PageNumber)
		assert.Equal(t, int64(2), got[2].Meta.Index)

		require.Len(t, api.inputs, 2)
		assert.Equal(t, int32(2), aws.ToInt32(api.inputs[0].Limit))
		assert.Equal(t, lastKey, api.inputs[1].ExclusiveStartKey)

		require.NotEmpty(t, progress)
		final := progress[len(progress)-1]
		assert.Equal(t, int64(3), final.ItemsProcessed)
		assert.Equal(t, 2, final.PagesProcessed)
		assert.Len(t, final.Errors, 1)
	})

	t.Run("RetriesThrottling", func(t *testing.T) {
		api := &fakeQueryAPI{
			errs:  []error{&types.ProvisionedThroughputExceededException{}},
			pages: []*sdk.QueryOutput{{Items: []map[string]types.AttributeValue{item("book", nil)}}},
		}
		h := NewHydrator(api, newLibrary(t))

		var count int
		for r := range h.Stream(ctx, testParams, storagemodels.WithRetryBackoff(time.Millisecond)) {
			require.NoError(t, r.Error)
			count++
		}
		assert.Equal(t, 1, count)
		assert.Len(t, api.inputs, 2)
	})

	t.Run("StopsOnPermanentError", func(t *testing.T) {
		boom := stderrors.New("access denied")
		h := NewHydrator(&fakeQueryAPI{errs: []error{boom}}, newLibrary(t))

		var got []storagemodels.StreamResult
		for r := range h.Stream(ctx, testParams) {
			got = append(got, r)
		}
		require.Len(t, got, 1)
		assert.ErrorIs(t, got[0].Error, boom)
	})

	t.Run("ErrorHandlerContinues", func(t *testing.T) {
		boom := stderrors.New("transient")
		api := &fakeQueryAPI{
			errs:  []error{boom},
			pages: []*sdk.QueryOutput{{Items: []map[string]types.AttributeValue{item("author", nil)}}},
		}
		h := NewHydrator(api, newLibrary(t))

		var handled []error
		var count int
		for r := range h.Stream(ctx, testParams,
			storagemodels.WithRetryBackoff(time.Millisecond),
			storagemodels.WithErrorHandler(func(err error) bool {
				handled = append(handled, err)
				return true
			}),
		) {
			require.NoError(t, r.Error)
			count++
		}
		assert.Equal(t, 1, count)
		assert.Len(t, handled, 1)
	})
}

// failingQueryAPI rejects every call.
type failingQueryAPI struct {
	calls atomic.Int32
}

func (f *failingQueryAPI) Query(context.Context, *sdk.QueryInput, ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	f.calls.Add(1)
	return nil, stderrors.New("access denied")
}

func TestStreamPersistentErrorStops(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	api := &failingQueryAPI{}
	h := NewHydrator(api, newLibrary(t))

	var handled int
	var got []storagemodels.StreamResult
	for r := range h.Stream(ctx, testParams,
		storagemodels.WithMaxRetries(2),
		storagemodels.WithRetryBackoff(time.Millisecond),
		storagemodels.WithErrorHandler(func(error) bool {
			handled++
			return true
		}),
	) {
		got = append(got, r)
	}

	require.NoError(t, ctx.Err(), "stream ended on its own, not by timeout")
	require.Len(t, got, 1)
	assert.Error(t, got[0].Error)
	assert.Equal(t, int32(3), api.calls.Load())
	assert.Equal(t, 3, handled)
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(&types.ProvisionedThroughputExceededException{}))
	assert.True(t, isRetryableError(&types.RequestLimitExceeded{}))
	assert.True(t, isRetryableError(&types.InternalServerError{}))
	assert.False(t, isRetryableError(stderrors.New("nope")))
	assert.False(t, isRetryableError(&types.ConditionalCheckFailedException{}))
}
