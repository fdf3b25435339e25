package services

import (
	"context"
	"testing"

	"amora_server/models"
	"amora_server/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminService(store *fakeStore) *AdminService {
	return &AdminService{Store: store, Chats: &ChatService{Store: store}}
}

func TestSetBannedExcludesUserFromLogin(t *testing.T) {
	store := newFakeStore()
	ups := &UserProfileService{Store: store}
	_, err := ups.Register(context.Background(), models.UserProfile{EmailID: "u@x.com", Age: 30}, "pw")
	require.NoError(t, err)

	as := newAdminService(store)
	require.NoError(t, as.SetBanned(context.Background(), "u@x.com", true))

	_, _, err = ups.Login(context.Background(), "u@x.com", "pw")
	assert.ErrorIs(t, err, ErrUserBanned)

	require.NoError(t, as.SetBanned(context.Background(), "u@x.com", false))
	_, _, err = ups.Login(context.Background(), "u@x.com", "pw")
	assert.NoError(t, err)
}

func TestDeleteUserRemovesProfile(t *testing.T) {
	store := newFakeStore()
	store.put(models.UserProfilesTable, models.UserProfile{EmailID: "u@x.com"})

	as := newAdminService(store)
	require.NoError(t, as.DeleteUser(context.Background(), "u@x.com"))
	assert.Equal(t, 0, store.count(models.UserProfilesTable))
}

func TestBroadcastProvisionsSupportChatsAndDelivers(t *testing.T) {
	store := newFakeStore()
	admin := models.UserProfile{EmailID: "admin@x.com", Name: "Admin", IsAdmin: true}
	store.put(models.UserProfilesTable, admin)
	store.put(models.UserProfilesTable, models.UserProfile{EmailID: "a@x.com", Name: "Ana"})
	store.put(models.UserProfilesTable, models.UserProfile{EmailID: "b@x.com", Name: "Bea"})

	as := newAdminService(store)
	delivered, err := as.BroadcastMessage(context.Background(), admin, "maintenance tonight")

	require.NoError(t, err)
	// The admin never messages itself.
	assert.Equal(t, 2, delivered)

	var chats []models.Chat
	store.all(models.ChatsTable, &chats)
	require.Len(t, chats, 2)
	for _, chat := range chats {
		assert.Equal(t, models.ChatTypeSupport, chat.ChatType)
		assert.Equal(t, utils.GenerateChatID(chat.User1Email, chat.User2Email), chat.ChatID)
		assert.Equal(t, "maintenance tonight", chat.LastMessage)
	}
	assert.Equal(t, 2, store.count(models.MessagesTable))
}

func TestBroadcastIsIdempotentOnChannels(t *testing.T) {
	store := newFakeStore()
	admin := models.UserProfile{EmailID: "admin@x.com", Name: "Admin", IsAdmin: true}
	store.put(models.UserProfilesTable, admin)
	store.put(models.UserProfilesTable, models.UserProfile{EmailID: "a@x.com", Name: "Ana"})

	as := newAdminService(store)
	_, err := as.BroadcastMessage(context.Background(), admin, "first")
	require.NoError(t, err)
	_, err = as.BroadcastMessage(context.Background(), admin, "second")
	require.NoError(t, err)

	// Re-broadcasting reuses the per-user channel instead of creating a new one.
	assert.Equal(t, 1, store.count(models.ChatsTable))
	assert.Equal(t, 2, store.count(models.MessagesTable))
}

func TestBroadcastRequiresContent(t *testing.T) {
	as := newAdminService(newFakeStore())
	_, err := as.BroadcastMessage(context.Background(), models.UserProfile{EmailID: "admin@x.com"}, "")
	assert.Error(t, err)
}
