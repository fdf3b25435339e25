package services

import (
	"context"
	"errors"
	"testing"

	"amora_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAcceptanceNotificationsNewestFirst(t *testing.T) {
	store := newFakeStore()
	store.put(models.MatchAcceptanceNotificationsTable, models.MatchAcceptanceNotification{
		NotificationID: "old", ToUserEmail: "me@x.com", AcceptedAt: "2024-01-01T00:00:00Z",
	})
	store.put(models.MatchAcceptanceNotificationsTable, models.MatchAcceptanceNotification{
		NotificationID: "new", ToUserEmail: "me@x.com", AcceptedAt: "2024-02-01T00:00:00Z",
	})
	store.put(models.MatchAcceptanceNotificationsTable, models.MatchAcceptanceNotification{
		NotificationID: "other", ToUserEmail: "else@x.com", AcceptedAt: "2024-03-01T00:00:00Z",
	})

	ns := &NotificationService{Store: store}
	notifications, err := ns.GetAcceptanceNotifications(context.Background(), "me@x.com")

	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "new", notifications[0].NotificationID)
	assert.Equal(t, "old", notifications[1].NotificationID)
}

func TestGetRejectionNotificationsNewestFirst(t *testing.T) {
	store := newFakeStore()
	store.put(models.RejectionNotificationsTable, models.RejectionNotification{
		NotificationID: "old", ToUserEmail: "me@x.com", Timestamp: "2024-01-01T00:00:00Z",
	})
	store.put(models.RejectionNotificationsTable, models.RejectionNotification{
		NotificationID: "new", ToUserEmail: "me@x.com", Timestamp: "2024-02-01T00:00:00Z",
	})

	ns := &NotificationService{Store: store}
	notifications, err := ns.GetRejectionNotifications(context.Background(), "me@x.com")

	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "new", notifications[0].NotificationID)
}

func TestMarkReadSetsFlagWithoutRemoving(t *testing.T) {
	store := newFakeStore()
	store.put(models.MatchAcceptanceNotificationsTable, models.MatchAcceptanceNotification{
		NotificationID: "n1", ToUserEmail: "me@x.com", AcceptedAt: "2024-01-01T00:00:00Z",
	})

	ns := &NotificationService{Store: store}
	require.NoError(t, ns.MarkRead(context.Background(), models.MatchAcceptanceNotificationsTable, "n1"))

	notifications, err := ns.GetAcceptanceNotifications(context.Background(), "me@x.com")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.True(t, notifications[0].Read)
}

func TestDismissRemovesRecord(t *testing.T) {
	store := newFakeStore()
	store.put(models.RejectionNotificationsTable, models.RejectionNotification{
		NotificationID: "n1", ToUserEmail: "me@x.com", Timestamp: "2024-01-01T00:00:00Z",
	})

	ns := &NotificationService{Store: store}
	ns.Dismiss(context.Background(), models.RejectionNotificationsTable, "n1")

	assert.Equal(t, 0, store.count(models.RejectionNotificationsTable))
}

func TestDismissSwallowsDeleteFailure(t *testing.T) {
	store := newFakeStore()
	store.put(models.RejectionNotificationsTable, models.RejectionNotification{
		NotificationID: "n1", ToUserEmail: "me@x.com", Timestamp: "2024-01-01T00:00:00Z",
	})
	store.failDelete[models.RejectionNotificationsTable] = errors.New("table offline")

	ns := &NotificationService{Store: store}
	ns.Dismiss(context.Background(), models.RejectionNotificationsTable, "n1")

	assert.Equal(t, 1, store.count(models.RejectionNotificationsTable))
}
