/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package hotswap_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/hotswap"
	"github.com/suparena/hotswap/model"
	"github.com/suparena/hotswap/model/testmodels"
)

func TestSeal(t *testing.T) {
	r := hotswap.New()
	require.NoError(t, r.Register(testmodels.BookClass, testmodels.AuthorClass))

	sealed := r.Seal()
	assert.Equal(t, []string{"author", "book"}, sealed.Aliases())
	assert.Equal(t, 2, sealed.Len())

	t.Run("SnapshotIsDetached", func(t *testing.T) {
		require.NoError(t, r.Override("book", testmodels.SpecialBookClass))
		r.Flush()

		c, ok := sealed.Resolve("book")
		require.True(t, ok)
		assert.Same(t, testmodels.BookClass, c)
	})

	t.Run("Make", func(t *testing.T) {
		m, err := sealed.Make("author", model.Attributes{"name": "Le Guin"})
		require.NoError(t, err)
		assert.Equal(t, "Le Guin", m.(*testmodels.Author).Name())

		m, err = sealed.Make("missing", nil)
		assert.NoError(t, err)
		assert.Nil(t, m)
	})

	t.Run("ConcurrentReads", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				book, ok, err := hotswap.MakeAs[*testmodels.Book](sealed, "book", model.Attributes{"title": "x"})
				assert.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, "x", book.Title())
			}()
		}
		wg.Wait()
	})
}

func TestResolverInterfaces(t *testing.T) {
	var _ hotswap.Resolver = hotswap.New()
	var _ hotswap.Resolver = hotswap.New().Seal()
	var _ hotswap.Maker = hotswap.New()
	var _ hotswap.Maker = hotswap.New().Seal()
}
