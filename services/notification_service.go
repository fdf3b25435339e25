package services

import (
	"context"
	"fmt"
	"sort"

	"amora_server/logger"
	"amora_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// NotificationService lists and dismisses the one-shot notification records
// produced by the match workflow.
type NotificationService struct {
	Store Store
}

// GetAcceptanceNotifications lists acceptance notifications for a user,
// newest first.
func (ns *NotificationService) GetAcceptanceNotifications(ctx context.Context, email string) ([]models.MatchAcceptanceNotification, error) {
	items, err := ns.queryByRecipient(ctx, models.MatchAcceptanceNotificationsTable, email)
	if err != nil {
		return nil, err
	}

	var notifications []models.MatchAcceptanceNotification
	if err := attributevalue.UnmarshalListOfMaps(items, &notifications); err != nil {
		return nil, fmt.Errorf("failed to parse notifications: %w", err)
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].AcceptedAt > notifications[j].AcceptedAt
	})
	return notifications, nil
}

// GetRejectionNotifications lists rejection notifications for a user,
// newest first.
func (ns *NotificationService) GetRejectionNotifications(ctx context.Context, email string) ([]models.RejectionNotification, error) {
	items, err := ns.queryByRecipient(ctx, models.RejectionNotificationsTable, email)
	if err != nil {
		return nil, err
	}

	var notifications []models.RejectionNotification
	if err := attributevalue.UnmarshalListOfMaps(items, &notifications); err != nil {
		return nil, fmt.Errorf("failed to parse notifications: %w", err)
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].Timestamp > notifications[j].Timestamp
	})
	return notifications, nil
}

// MarkRead flags a notification as seen without removing it.
func (ns *NotificationService) MarkRead(ctx context.Context, tableName, notificationID string) error {
	_, err := ns.Store.UpdateItem(ctx, tableName,
		"SET #read = :read",
		notificationKey(notificationID),
		map[string]types.AttributeValue{":read": &types.AttributeValueMemberBOOL{Value: true}},
		map[string]string{"#read": "read"})
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// Dismiss deletes a notification record. Failure is logged and swallowed;
// dismissal is fire-and-forget with no retry.
func (ns *NotificationService) Dismiss(ctx context.Context, tableName, notificationID string) {
	if err := ns.Store.DeleteItem(ctx, tableName, notificationKey(notificationID)); err != nil {
		logger.Error().Err(err).Str("notificationId", notificationID).Str("table", tableName).Msg("failed to dismiss notification")
	}
}

func (ns *NotificationService) queryByRecipient(ctx context.Context, tableName, email string) ([]map[string]types.AttributeValue, error) {
	items, err := ns.Store.QueryItemsWithIndex(ctx, tableName, models.NotificationsByRecipientIndex,
		"#to = :to",
		map[string]types.AttributeValue{":to": &types.AttributeValueMemberS{Value: email}},
		map[string]string{"#to": "toUserEmail"}, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return items, nil
}
