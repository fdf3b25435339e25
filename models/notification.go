package models

// MatchAcceptanceNotification tells the original proposer their interest was
// reciprocated. Dismissal deletes the record.
type MatchAcceptanceNotification struct {
	NotificationID string `dynamodbav:"notificationId" json:"notificationId"`
	FromUserEmail  string `dynamodbav:"fromUserEmail" json:"fromUserEmail"`
	FromUserName   string `dynamodbav:"fromUserName,omitempty" json:"fromUserName"`
	FromUserPhoto  string `dynamodbav:"fromUserPhoto,omitempty" json:"fromUserPhoto"`
	ToUserEmail    string `dynamodbav:"toUserEmail" json:"toUserEmail"`
	AcceptedAt     string `dynamodbav:"acceptedAt" json:"acceptedAt"`
	Read           bool   `dynamodbav:"read" json:"read"`
}

// RejectionNotification tells the original proposer their interest was
// declined. It can later be converted into a chat by the recipient.
type RejectionNotification struct {
	NotificationID string `dynamodbav:"notificationId" json:"notificationId"`
	FromUserEmail  string `dynamodbav:"fromUserEmail" json:"fromUserEmail"`
	FromUserName   string `dynamodbav:"fromUserName,omitempty" json:"fromUserName"`
	FromUserPhoto  string `dynamodbav:"fromUserPhoto,omitempty" json:"fromUserPhoto"`
	ToUserEmail    string `dynamodbav:"toUserEmail" json:"toUserEmail"`
	Timestamp      string `dynamodbav:"timestamp" json:"timestamp"`
	Read           bool   `dynamodbav:"read" json:"read"`
}

// MatchAcceptanceNotificationsTable is the DynamoDB table name for acceptance notifications
const MatchAcceptanceNotificationsTable = "MatchAcceptanceNotifications"

// RejectionNotificationsTable is the DynamoDB table name for rejection notifications
const RejectionNotificationsTable = "RejectionNotifications"

// NotificationsByRecipientIndex is the GSI keyed by the notification recipient
const NotificationsByRecipientIndex = "toUserEmail-index"
