package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"amora_server/logger"
	"amora_server/models"
	"amora_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ChatService owns conversations and their messages.
type ChatService struct {
	Store    Store
	Notifier Notifier
}

// CreateOrUpdateChat writes a chat keyed by the deterministic pair id. The
// key is a pure function of the participants, so the write is idempotent.
func (s *ChatService) CreateOrUpdateChat(ctx context.Context, chat models.Chat) (*models.Chat, error) {
	if chat.User1Email == "" || chat.User2Email == "" {
		return nil, errors.New("a chat needs two participants")
	}
	if chat.ChatID == "" {
		chat.ChatID = utils.GenerateChatID(chat.User1Email, chat.User2Email)
	}
	if chat.ChatType == "" {
		chat.ChatType = models.ChatTypeRegular
	}
	if chat.CreatedAt == "" {
		chat.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := s.Store.PutItem(ctx, models.ChatsTable, chat); err != nil {
		return nil, fmt.Errorf("failed to store chat: %w", err)
	}
	return &chat, nil
}

// GetChatsForUser lists a user's chats, most recently active first. Ordering
// is applied locally since the store does not order scan results.
func (s *ChatService) GetChatsForUser(ctx context.Context, email string) ([]models.Chat, error) {
	var chats []models.Chat
	err := s.Store.ScanWithFilter(ctx, models.ChatsTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "user1Email") == email || utils.ExtractString(item, "user2Email") == email
	}, nil, &chats)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chats: %w", err)
	}

	sort.SliceStable(chats, func(i, j int) bool {
		return lastActivity(chats[i]) > lastActivity(chats[j])
	})
	return chats, nil
}

func lastActivity(c models.Chat) string {
	if c.LastMessageTimestamp != "" {
		return c.LastMessageTimestamp
	}
	return c.CreatedAt
}

// SendMessage appends a message to a chat and denormalizes the last-message
// fields onto the chat record. The append gates the caller; the last-message
// update is best-effort since the next send repairs it.
func (s *ChatService) SendMessage(ctx context.Context, message models.Message) (*models.Message, error) {
	if message.ChatID == "" || message.SenderEmail == "" {
		return nil, errors.New("chatId and senderEmail are required")
	}
	if message.Content == "" && message.ImageURL == "" {
		return nil, errors.New("a message needs text or an image")
	}

	message.MessageID = uuid.NewString()
	message.Timestamp = time.Now().UTC().Format(time.RFC3339)
	message.IsUnread = true
	if message.Type == "" {
		if message.ImageURL != "" {
			message.Type = models.MessageTypeImage
		} else {
			message.Type = models.MessageTypeText
		}
	}

	if err := s.Store.PutItem(ctx, models.MessagesTable, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	preview := message.Content
	if preview == "" {
		preview = "\U0001F4F7 Photo"
	}
	_, err := s.Store.UpdateItem(ctx, models.ChatsTable,
		"SET lastMessage = :lastMessage, lastMessageTimestamp = :ts",
		chatKey(message.ChatID),
		map[string]types.AttributeValue{
			":lastMessage": &types.AttributeValueMemberS{Value: preview},
			":ts":          &types.AttributeValueMemberS{Value: message.Timestamp},
		}, nil)
	if err != nil {
		logger.Error().Err(err).Str("chatId", message.ChatID).Msg("lastMessage update failed")
	}

	if s.Notifier != nil {
		s.Notifier.PushToChat(message.ChatID, "newMessage", message)
	}
	return &message, nil
}

// GetMessages fetches a chat's messages in ascending timestamp order. The
// sort happens locally: store-side ordering is not relied on.
func (s *ChatService) GetMessages(ctx context.Context, chatID string, limit int) ([]models.Message, error) {
	items, err := s.Store.QueryItems(ctx, models.MessagesTable,
		"#chatId = :chatId",
		map[string]types.AttributeValue{":chatId": &types.AttributeValueMemberS{Value: chatID}},
		map[string]string{"#chatId": "chatId"},
		int32(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp < messages[j].Timestamp
	})
	return messages, nil
}

// MarkMessagesAsRead clears the unread flag on the messages the given user
// received in a chat. Per-message update failures are logged and skipped.
func (s *ChatService) MarkMessagesAsRead(ctx context.Context, chatID, email string) error {
	items, err := s.Store.QueryItems(ctx, models.MessagesTable,
		"#chatId = :chatId",
		map[string]types.AttributeValue{":chatId": &types.AttributeValueMemberS{Value: chatID}},
		map[string]string{"#chatId": "chatId"},
		100)
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	for _, item := range items {
		if utils.ExtractString(item, "senderEmail") == email {
			continue
		}
		if !utils.ExtractBool(item, "isUnread") {
			continue
		}
		messageID := utils.ExtractString(item, "messageId")
		if messageID == "" {
			continue
		}

		key := map[string]types.AttributeValue{
			"chatId":    &types.AttributeValueMemberS{Value: chatID},
			"messageId": &types.AttributeValueMemberS{Value: messageID},
		}
		_, err := s.Store.UpdateItem(ctx, models.MessagesTable,
			"SET isUnread = :isUnread", key,
			map[string]types.AttributeValue{":isUnread": &types.AttributeValueMemberBOOL{Value: false}}, nil)
		if err != nil {
			logger.Error().Err(err).Str("messageId", messageID).Msg("failed to mark message as read")
		}
	}
	return nil
}

// GetChat fetches a single chat by id.
func (s *ChatService) GetChat(ctx context.Context, chatID string) (*models.Chat, error) {
	item, err := s.Store.GetItem(ctx, models.ChatsTable, chatKey(chatID))
	if err != nil {
		return nil, err
	}
	var chat models.Chat
	if err := attributevalue.UnmarshalMap(item, &chat); err != nil {
		return nil, fmt.Errorf("failed to parse chat: %w", err)
	}
	return &chat, nil
}

func chatKey(chatID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"chatId": &types.AttributeValueMemberS{Value: chatID},
	}
}
