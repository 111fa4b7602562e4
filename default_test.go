/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package hotswap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/hotswap"
	"github.com/suparena/hotswap/model"
	"github.com/suparena/hotswap/model/testmodels"
)

func TestDefaultRegistry(t *testing.T) {
	t.Cleanup(hotswap.Flush)

	require.NoError(t, hotswap.Register(testmodels.BookClass, testmodels.AuthorClass))
	require.NoError(t, hotswap.Override("book", testmodels.SpecialBookClass))

	m, err := hotswap.Make("book", model.Attributes{"title": "T"})
	require.NoError(t, err)
	assert.IsType(t, &testmodels.SpecialBook{}, m)

	require.NoError(t, hotswap.OverrideClass(testmodels.BookClass))
	c, ok := hotswap.Resolve("book")
	require.True(t, ok)
	assert.Same(t, testmodels.BookClass, c)
	assert.Equal(t, 2, hotswap.Default().Len())

	hotswap.Flush()
	_, ok = hotswap.Resolve("author")
	assert.False(t, ok)
}

func TestGetVersionInfo(t *testing.T) {
	info := hotswap.GetVersionInfo()
	assert.Equal(t, hotswap.Version, info.Version)
	assert.NotEmpty(t, info.GitCommit)
}
