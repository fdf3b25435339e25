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

var (
	ErrProposalNotFound     = errors.New("proposal not found")
	ErrProposalNotPending   = errors.New("proposal is no longer pending")
	ErrNotificationNotFound = errors.New("notification not found")
)

// Notifier pushes realtime events to connected clients. Nil-safe: services
// work without a socket server attached (e.g. in tests).
type Notifier interface {
	PushToUser(email, event string, payload interface{})
	PushToChat(chatID, event string, payload interface{})
}

// MatchService runs the proposal lifecycle: a proposal is Pending until it
// is accepted (deleted and replayed into an AcceptedMatch, a Chat and an
// acceptance notification) or rejected (flagged in place plus a rejection
// notification that can still be converted into a chat later).
type MatchService struct {
	Store    Store
	Notifier Notifier
}

// AcceptResult reports what the accept workflow produced.
type AcceptResult struct {
	MatchID string `json:"matchId"`
	ChatID  string `json:"chatId"`
}

// SendProposal records a directed interest signal from one user to another.
// The sender's display data is denormalized into the record at write time.
func (ms *MatchService) SendProposal(ctx context.Context, fromEmail, toEmail string) (*models.MatchProposal, error) {
	if fromEmail == "" || toEmail == "" || fromEmail == toEmail {
		return nil, errors.New("a proposal needs two distinct users")
	}

	sender, err := ms.profiles().GetProfile(ctx, fromEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sender profile: %w", err)
	}

	proposal := models.MatchProposal{
		ProposalID:    uuid.NewString(),
		FromUserEmail: sender.EmailID,
		FromUserName:  sender.Name,
		FromUserPhoto: sender.Photo,
		ToUserEmail:   toEmail,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	if err := ms.Store.PutItem(ctx, models.MatchProposalsTable, proposal); err != nil {
		return nil, fmt.Errorf("failed to store proposal: %w", err)
	}

	ms.push(toEmail, "newProposal", proposal)
	return &proposal, nil
}

// GetPendingProposals lists the non-rejected proposals addressed to a user,
// newest first. Sender photos are refreshed from the live profile so a stale
// denormalized copy never reaches the screen.
func (ms *MatchService) GetPendingProposals(ctx context.Context, email string) ([]models.MatchProposal, error) {
	items, err := ms.Store.QueryItemsWithIndex(ctx, models.MatchProposalsTable, models.MatchProposalsByRecipientIndex,
		"#to = :to",
		map[string]types.AttributeValue{":to": &types.AttributeValueMemberS{Value: email}},
		map[string]string{"#to": "toUserEmail"}, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch proposals: %w", err)
	}

	var proposals []models.MatchProposal
	if err := attributevalue.UnmarshalListOfMaps(items, &proposals); err != nil {
		return nil, fmt.Errorf("failed to parse proposals: %w", err)
	}

	pending := proposals[:0]
	for _, p := range proposals {
		if p.Rejected {
			continue
		}
		if sender, err := ms.profiles().GetProfile(ctx, p.FromUserEmail); err == nil {
			p.FromUserName = sender.Name
			p.FromUserPhoto = sender.Photo
		}
		pending = append(pending, p)
	}

	// The store does not guarantee ordering for index queries; sort locally.
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].CreatedAt > pending[j].CreatedAt
	})
	return pending, nil
}

// AcceptProposal runs the acceptance workflow as a sequence of independent
// best-effort writes. There is no cross-table transaction: a failure in the
// accepted-match, chat or notification step is logged and the workflow
// carries on, relying on the user retrying or the next full reload to
// reconcile. Only the final proposal deletion gates the caller's success,
// since the recipient's list removal is driven by it.
func (ms *MatchService) AcceptProposal(ctx context.Context, proposalID string) (*AcceptResult, error) {
	proposal, err := ms.getProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Rejected {
		return nil, ErrProposalNotPending
	}

	// The recipient's display data is not embedded in the proposal; project
	// it from the live profile at write time.
	recipientName, recipientPhoto := "", ""
	if recipient, err := ms.profiles().GetProfile(ctx, proposal.ToUserEmail); err == nil {
		recipientName, recipientPhoto = recipient.Name, recipient.Photo
	} else {
		logger.Warn().Err(err).Str("email", proposal.ToUserEmail).Msg("accept: recipient profile lookup failed")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	result := &AcceptResult{
		MatchID: uuid.NewString(),
		ChatID:  utils.GenerateChatID(proposal.FromUserEmail, proposal.ToUserEmail),
	}

	// Step 1: record the mutual acceptance.
	match := models.AcceptedMatch{
		MatchID:          result.MatchID,
		User1Email:       proposal.FromUserEmail,
		User1Name:        proposal.FromUserName,
		User1Photo:       proposal.FromUserPhoto,
		User2Email:       proposal.ToUserEmail,
		User2Name:        recipientName,
		User2Photo:       recipientPhoto,
		AcceptedAt:       now,
		MutualAcceptance: true,
	}
	if err := ms.Store.PutItem(ctx, models.AcceptedMatchesTable, match); err != nil {
		logger.Error().Err(err).Str("proposalId", proposalID).Msg("accept: acceptedMatch write failed")
	}

	// Step 2: create (or idempotently overwrite) the shared chat.
	chat := models.Chat{
		ChatID:     result.ChatID,
		User1Email: proposal.FromUserEmail,
		User1Name:  proposal.FromUserName,
		User1Photo: proposal.FromUserPhoto,
		User2Email: proposal.ToUserEmail,
		User2Name:  recipientName,
		User2Photo: recipientPhoto,
		CreatedAt:  now,
		ChatType:   models.ChatTypeRegular,
	}
	if err := ms.Store.PutItem(ctx, models.ChatsTable, chat); err != nil {
		logger.Error().Err(err).Str("chatId", result.ChatID).Msg("accept: chat write failed")
	}

	// Step 3: tell the original sender their interest was reciprocated.
	notification := models.MatchAcceptanceNotification{
		NotificationID: uuid.NewString(),
		FromUserEmail:  proposal.ToUserEmail,
		FromUserName:   recipientName,
		FromUserPhoto:  recipientPhoto,
		ToUserEmail:    proposal.FromUserEmail,
		AcceptedAt:     now,
	}
	if err := ms.Store.PutItem(ctx, models.MatchAcceptanceNotificationsTable, notification); err != nil {
		logger.Error().Err(err).Str("proposalId", proposalID).Msg("accept: notification write failed")
	} else {
		ms.push(proposal.FromUserEmail, "matchAccepted", notification)
	}

	// Step 4: remove the proposal. This is the only step whose failure
	// surfaces to the caller.
	if err := ms.Store.DeleteItem(ctx, models.MatchProposalsTable, proposalKey(proposalID)); err != nil {
		return nil, fmt.Errorf("failed to delete accepted proposal: %w", err)
	}

	return result, nil
}

// RejectProposal flags the proposal in place and notifies the sender. The
// flag update gates the caller; the notification is best-effort.
func (ms *MatchService) RejectProposal(ctx context.Context, proposalID string) error {
	proposal, err := ms.getProposal(ctx, proposalID)
	if err != nil {
		return err
	}
	if proposal.Rejected {
		return ErrProposalNotPending
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = ms.Store.UpdateItem(ctx, models.MatchProposalsTable,
		"SET rejected = :rejected, rejectedAt = :rejectedAt",
		proposalKey(proposalID),
		map[string]types.AttributeValue{
			":rejected":   &types.AttributeValueMemberBOOL{Value: true},
			":rejectedAt": &types.AttributeValueMemberS{Value: now},
		}, nil)
	if err != nil {
		return fmt.Errorf("failed to reject proposal: %w", err)
	}

	rejecterName := ""
	if recipient, err := ms.profiles().GetProfile(ctx, proposal.ToUserEmail); err == nil {
		rejecterName = recipient.Name
	}

	notification := models.RejectionNotification{
		NotificationID: uuid.NewString(),
		FromUserEmail:  proposal.ToUserEmail,
		FromUserName:   rejecterName,
		FromUserPhoto:  ms.lookupPhoto(ctx, proposal.ToUserEmail),
		ToUserEmail:    proposal.FromUserEmail,
		Timestamp:      now,
	}
	if err := ms.Store.PutItem(ctx, models.RejectionNotificationsTable, notification); err != nil {
		logger.Error().Err(err).Str("proposalId", proposalID).Msg("reject: notification write failed")
	} else {
		ms.push(proposal.FromUserEmail, "matchRejected", notification)
	}

	return nil
}

// ConvertRejectionToChat turns a rejection notification into a conversation:
// the chat keyed by the deterministic id is created, then the notification
// is removed. Same best-effort, non-transactional semantics as accept.
func (ms *MatchService) ConvertRejectionToChat(ctx context.Context, notificationID string) (*models.Chat, error) {
	item, err := ms.Store.GetItem(ctx, models.RejectionNotificationsTable, notificationKey(notificationID))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	var notification models.RejectionNotification
	if err := attributevalue.UnmarshalMap(item, &notification); err != nil {
		return nil, fmt.Errorf("failed to parse notification: %w", err)
	}

	recipientName, recipientPhoto := "", ""
	if recipient, err := ms.profiles().GetProfile(ctx, notification.ToUserEmail); err == nil {
		recipientName, recipientPhoto = recipient.Name, recipient.Photo
	}

	chat := models.Chat{
		ChatID:     utils.GenerateChatID(notification.FromUserEmail, notification.ToUserEmail),
		User1Email: notification.FromUserEmail,
		User1Name:  notification.FromUserName,
		User1Photo: notification.FromUserPhoto,
		User2Email: notification.ToUserEmail,
		User2Name:  recipientName,
		User2Photo: recipientPhoto,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		ChatType:   models.ChatTypeRegular,
	}
	if err := ms.Store.PutItem(ctx, models.ChatsTable, chat); err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	if err := ms.Store.DeleteItem(ctx, models.RejectionNotificationsTable, notificationKey(notificationID)); err != nil {
		logger.Error().Err(err).Str("notificationId", notificationID).Msg("convert: notification cleanup failed")
	}

	return &chat, nil
}

// lookupPhoto resolves a user's photo for denormalized writes, falling back
// from the live profile to the most recent story before defaulting to empty.
func (ms *MatchService) lookupPhoto(ctx context.Context, email string) string {
	if profile, err := ms.profiles().GetProfile(ctx, email); err == nil && profile.Photo != "" {
		return profile.Photo
	}

	var stories []models.Story
	err := ms.Store.ScanWithFilter(ctx, models.StoriesTable, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractString(item, "authorEmail") == email
	}, nil, &stories)
	if err == nil {
		for _, s := range stories {
			if s.AuthorPhoto != "" {
				return s.AuthorPhoto
			}
		}
	}
	return ""
}

func (ms *MatchService) getProposal(ctx context.Context, proposalID string) (*models.MatchProposal, error) {
	item, err := ms.Store.GetItem(ctx, models.MatchProposalsTable, proposalKey(proposalID))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}

	var proposal models.MatchProposal
	if err := attributevalue.UnmarshalMap(item, &proposal); err != nil {
		return nil, fmt.Errorf("failed to parse proposal: %w", err)
	}
	return &proposal, nil
}

func (ms *MatchService) profiles() *UserProfileService {
	return &UserProfileService{Store: ms.Store}
}

func (ms *MatchService) push(email, event string, payload interface{}) {
	if ms.Notifier != nil {
		ms.Notifier.PushToUser(email, event, payload)
	}
}

func proposalKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"proposalId": &types.AttributeValueMemberS{Value: id},
	}
}

func notificationKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"notificationId": &types.AttributeValueMemberS{Value: id},
	}
}
