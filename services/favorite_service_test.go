package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFavoriteDefaultsPositionToEnd(t *testing.T) {
	store := newFakeStore()
	fs := &FavoriteService{Store: store}

	first, err := fs.AddFavorite(context.Background(), "me@x.com", "a@x.com", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Position)

	second, err := fs.AddFavorite(context.Background(), "me@x.com", "b@x.com", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Position)
}

func TestAddFavoriteRejectsSelf(t *testing.T) {
	fs := &FavoriteService{Store: newFakeStore()}
	_, err := fs.AddFavorite(context.Background(), "me@x.com", "me@x.com", 0)
	assert.Error(t, err)
}

func TestGetFavoritesOrdersByPosition(t *testing.T) {
	store := newFakeStore()
	fs := &FavoriteService{Store: store}

	_, err := fs.AddFavorite(context.Background(), "me@x.com", "b@x.com", 2)
	require.NoError(t, err)
	_, err = fs.AddFavorite(context.Background(), "me@x.com", "a@x.com", 1)
	require.NoError(t, err)
	_, err = fs.AddFavorite(context.Background(), "else@x.com", "c@x.com", 1)
	require.NoError(t, err)

	favorites, err := fs.GetFavorites(context.Background(), "me@x.com")
	require.NoError(t, err)
	require.Len(t, favorites, 2)
	assert.Equal(t, "a@x.com", favorites[0].ToUserEmail)
	assert.Equal(t, "b@x.com", favorites[1].ToUserEmail)
}

func TestRemoveFavorite(t *testing.T) {
	store := newFakeStore()
	fs := &FavoriteService{Store: store}

	_, err := fs.AddFavorite(context.Background(), "me@x.com", "a@x.com", 1)
	require.NoError(t, err)
	require.NoError(t, fs.RemoveFavorite(context.Background(), "me@x.com", "a@x.com"))

	favorites, err := fs.GetFavorites(context.Background(), "me@x.com")
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestReAddFavoriteUpdatesInPlace(t *testing.T) {
	store := newFakeStore()
	fs := &FavoriteService{Store: store}

	_, err := fs.AddFavorite(context.Background(), "me@x.com", "a@x.com", 3)
	require.NoError(t, err)
	_, err = fs.AddFavorite(context.Background(), "me@x.com", "a@x.com", 1)
	require.NoError(t, err)

	favorites, err := fs.GetFavorites(context.Background(), "me@x.com")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, 1, favorites[0].Position)
}
