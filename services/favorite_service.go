package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"amora_server/models"
	"amora_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FavoriteService maintains the per-user favorites that the feed ranker
// pins to the front.
type FavoriteService struct {
	Store Store
}

// AddFavorite pins a candidate for a user. Position defaults to the end of
// the current favorites list when not given.
func (fs *FavoriteService) AddFavorite(ctx context.Context, fromEmail, toEmail string, position int) (*models.Favorite, error) {
	if fromEmail == "" || toEmail == "" || fromEmail == toEmail {
		return nil, errors.New("a favorite needs two distinct users")
	}

	if position <= 0 {
		existing, err := fs.GetFavorites(ctx, fromEmail)
		if err == nil {
			position = len(existing) + 1
		} else {
			position = 1
		}
	}

	favorite := models.Favorite{
		FromUserEmail: fromEmail,
		ToUserEmail:   toEmail,
		Position:      position,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := fs.Store.PutItem(ctx, models.FavoritesTable, favorite); err != nil {
		return nil, fmt.Errorf("failed to store favorite: %w", err)
	}
	return &favorite, nil
}

// RemoveFavorite unpins a candidate.
func (fs *FavoriteService) RemoveFavorite(ctx context.Context, fromEmail, toEmail string) error {
	key := map[string]types.AttributeValue{
		"fromUserEmail": &types.AttributeValueMemberS{Value: fromEmail},
		"toUserEmail":   &types.AttributeValueMemberS{Value: toEmail},
	}
	if err := fs.Store.DeleteItem(ctx, models.FavoritesTable, key); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// GetFavorites lists a user's favorites in position order.
func (fs *FavoriteService) GetFavorites(ctx context.Context, fromEmail string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := fs.Store.ScanWithFilter(ctx, models.FavoritesTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "fromUserEmail") == fromEmail
	}, nil, &favorites)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch favorites: %w", err)
	}

	sort.SliceStable(favorites, func(i, j int) bool {
		return favorites[i].Position < favorites[j].Position
	})
	return favorites, nil
}
