//go:build integration

package rod_test

import (
	"testing"

	"github.com/fwojciec/lighterceptor/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_RecyclesBrowserAfterMaxPages(t *testing.T) {
	t.Parallel()

	// Create manager that recycles after 3 pages
	manager, err := rod.NewBrowserManager(rod.WithMaxPages(3))
	require.NoError(t, err)
	defer manager.Close()

	// Get first browser and record its identity
	firstBrowser := manager.Browser()
	require.NotNil(t, firstBrowser)

	// Open three pages (reaches max)
	for range 3 {
		page, err := manager.Page()
		require.NoError(t, err)
		_ = page.Close()
	}

	// Next Browser() call should recycle and return a different instance
	secondBrowser := manager.Browser()
	require.NotNil(t, secondBrowser)

	// The browsers should be different instances (recycled)
	assert.NotSame(t, firstBrowser, secondBrowser)
}

func TestBrowserManager_DoesNotRecycleBeforeMaxPages(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(5))
	require.NoError(t, err)
	defer manager.Close()

	firstBrowser := manager.Browser()
	require.NotNil(t, firstBrowser)

	// Stay below max
	for range 2 {
		page, err := manager.Page()
		require.NoError(t, err)
		_ = page.Close()
	}

	// Should still be the same browser
	sameBrowser := manager.Browser()
	assert.Same(t, firstBrowser, sameBrowser)
}

func TestBrowserManager_PageFailsAfterClose(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	require.NoError(t, manager.Close())
	require.NoError(t, manager.Close())

	_, err = manager.Page()
	assert.Error(t, err)
}
