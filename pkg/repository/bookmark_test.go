package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	ids, err := repos.Bookmark.BookmarkedIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{}, ids)

	require.NoError(t, repos.Bookmark.AddBookmark(ctx, "u1", "item-1"))
	require.NoError(t, repos.Bookmark.AddBookmark(ctx, "u1", "item-2"))
	require.NoError(t, repos.Bookmark.AddBookmark(ctx, "u1", "item-1"), "repeated bookmark is a no-op")
	require.NoError(t, repos.Bookmark.AddBookmark(ctx, "u2", "item-3"))

	ids, err = repos.Bookmark.BookmarkedIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"item-2", "item-1"}, ids)

	require.NoError(t, repos.Bookmark.RemoveBookmark(ctx, "u1", "item-2"))
	require.NoError(t, repos.Bookmark.RemoveBookmark(ctx, "u1", "missing"))
	ids, err = repos.Bookmark.BookmarkedIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"item-1"}, ids)
}
