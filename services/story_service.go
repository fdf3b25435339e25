package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"amora_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// StoryTTL is how long a story stays visible.
const StoryTTL = 24 * time.Hour

var ErrNotStoryOwner = errors.New("only the author can delete a story")

// StoryService owns image stories. Records are append-only; expiry is
// applied at read time.
type StoryService struct {
	Store Store
}

// CreateStory publishes a story, projecting the author's current display
// data into the record at write time.
func (ss *StoryService) CreateStory(ctx context.Context, authorEmail, imageKey, caption string) (*models.Story, error) {
	if authorEmail == "" || imageKey == "" {
		return nil, errors.New("authorEmail and imageKey are required")
	}

	story := models.Story{
		StoryID:     uuid.NewString(),
		AuthorEmail: authorEmail,
		ImageKey:    imageKey,
		Caption:     caption,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	profiles := &UserProfileService{Store: ss.Store}
	if author, err := profiles.GetProfile(ctx, authorEmail); err == nil {
		story.AuthorName = author.Name
		story.AuthorPhoto = author.Photo
	}

	if err := ss.Store.PutItem(ctx, models.StoriesTable, story); err != nil {
		return nil, fmt.Errorf("failed to store story: %w", err)
	}
	return &story, nil
}

// GetRecentStories lists the stories still inside the visibility window,
// newest first.
func (ss *StoryService) GetRecentStories(ctx context.Context) ([]models.Story, error) {
	cutoff := time.Now().UTC().Add(-StoryTTL).Format(time.RFC3339)

	var stories []models.Story
	err := ss.Store.ScanWithFilter(ctx, models.StoriesTable, func(item map[string]types.AttributeValue) bool {
		if attr, ok := item["createdAt"]; ok {
			if v, ok := attr.(*types.AttributeValueMemberS); ok {
				return v.Value >= cutoff
			}
		}
		return false
	}, nil, &stories)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stories: %w", err)
	}

	sort.SliceStable(stories, func(i, j int) bool {
		return stories[i].CreatedAt > stories[j].CreatedAt
	})
	return stories, nil
}

// DeleteStory removes a story. Only the author (or an admin acting through
// AdminService) may delete it.
func (ss *StoryService) DeleteStory(ctx context.Context, storyID, requesterEmail string) error {
	item, err := ss.Store.GetItem(ctx, models.StoriesTable, storyKey(storyID))
	if err != nil {
		return err
	}

	var story models.Story
	if err := attributevalue.UnmarshalMap(item, &story); err != nil {
		return fmt.Errorf("failed to parse story: %w", err)
	}
	if story.AuthorEmail != requesterEmail {
		return ErrNotStoryOwner
	}

	if err := ss.Store.DeleteItem(ctx, models.StoriesTable, storyKey(storyID)); err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}
	return nil
}

func storyKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"storyId": &types.AttributeValueMemberS{Value: id},
	}
}
