package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"amora_server/logger"
	"amora_server/models"
	"amora_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// AdminService backs the moderation panel: user listing, banning, deletion
// and support-channel broadcasts.
type AdminService struct {
	Store Store
	Chats *ChatService
}

// ListUsers returns every registered profile.
func (as *AdminService) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	var users []models.UserProfile
	err := as.Store.ScanWithFilter(ctx, models.UserProfilesTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "emailId") != ""
	}, nil, &users)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SetBanned flips a user's ban flag. Banned users cannot log in and are
// excluded from the explore feed.
func (as *AdminService) SetBanned(ctx context.Context, email string, banned bool) error {
	_, err := as.Store.UpdateItem(ctx, models.UserProfilesTable,
		"SET banned = :banned",
		profileKey(email),
		map[string]types.AttributeValue{":banned": &types.AttributeValueMemberBOOL{Value: banned}}, nil)
	if err != nil {
		return fmt.Errorf("failed to update ban flag: %w", err)
	}
	return nil
}

// DeleteUser removes a user profile. Denormalized copies in proposals,
// chats and notifications are left to expire through their own flows.
func (as *AdminService) DeleteUser(ctx context.Context, email string) error {
	if err := as.Store.DeleteItem(ctx, models.UserProfilesTable, profileKey(email)); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// BroadcastMessage delivers an announcement from the admin account to every
// user through per-user support chats. The chat id derivation makes the
// provisioning idempotent: re-broadcasting reuses each existing channel.
// Delivery is best-effort per recipient; one failed user does not stop the
// rest.
func (as *AdminService) BroadcastMessage(ctx context.Context, admin models.UserProfile, content string) (int, error) {
	if admin.EmailID == "" {
		return 0, errors.New("admin identity is required")
	}
	if content == "" {
		return 0, errors.New("broadcast content is required")
	}

	users, err := as.ListUsers(ctx)
	if err != nil {
		return 0, err
	}

	delivered := 0
	now := time.Now().UTC().Format(time.RFC3339)
	for _, user := range users {
		if user.EmailID == admin.EmailID {
			continue
		}

		chat := models.Chat{
			ChatID:     utils.GenerateChatID(admin.EmailID, user.EmailID),
			User1Email: admin.EmailID,
			User1Name:  admin.Name,
			User1Photo: admin.Photo,
			User2Email: user.EmailID,
			User2Name:  user.Name,
			User2Photo: user.Photo,
			CreatedAt:  now,
			ChatType:   models.ChatTypeSupport,
		}
		if _, err := as.Chats.CreateOrUpdateChat(ctx, chat); err != nil {
			logger.Error().Err(err).Str("email", user.EmailID).Msg("broadcast: support chat provisioning failed")
			continue
		}

		_, err := as.Chats.SendMessage(ctx, models.Message{
			ChatID:      chat.ChatID,
			SenderEmail: admin.EmailID,
			SenderName:  admin.Name,
			Content:     content,
		})
		if err != nil {
			logger.Error().Err(err).Str("email", user.EmailID).Msg("broadcast: message delivery failed")
			continue
		}
		delivered++
	}
	return delivered, nil
}
