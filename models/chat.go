package models

// Chat is a two-party conversation. The chatId is derived from the two
// participant emails (see utils.GenerateChatID), so at most one chat record
// can exist per unordered pair and a create-if-absent write is idempotent.
type Chat struct {
	ChatID               string `dynamodbav:"chatId" json:"chatId"`
	User1Email           string `dynamodbav:"user1Email" json:"user1Email"`
	User1Name            string `dynamodbav:"user1Name,omitempty" json:"user1Name"`
	User1Photo           string `dynamodbav:"user1Photo,omitempty" json:"user1Photo"`
	User2Email           string `dynamodbav:"user2Email" json:"user2Email"`
	User2Name            string `dynamodbav:"user2Name,omitempty" json:"user2Name"`
	User2Photo           string `dynamodbav:"user2Photo,omitempty" json:"user2Photo"`
	LastMessage          string `dynamodbav:"lastMessage,omitempty" json:"lastMessage"`
	LastMessageTimestamp string `dynamodbav:"lastMessageTimestamp,omitempty" json:"lastMessageTimestamp"`
	CreatedAt            string `dynamodbav:"createdAt" json:"createdAt"`
	ChatType             string `dynamodbav:"chatType" json:"chatType"`
}

type Message struct {
	ChatID      string `dynamodbav:"chatId" json:"chatId"`
	MessageID   string `dynamodbav:"messageId" json:"messageId"`
	SenderEmail string `dynamodbav:"senderEmail" json:"senderEmail"`
	SenderName  string `dynamodbav:"senderName,omitempty" json:"senderName"`
	Content     string `dynamodbav:"content" json:"content"`
	ImageURL    string `dynamodbav:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Timestamp   string `dynamodbav:"timestamp" json:"timestamp"`
	Type        string `dynamodbav:"type" json:"type"`
	IsUnread    bool   `dynamodbav:"isUnread" json:"isUnread"`
}

// ChatsTable is the DynamoDB table name for chats
const ChatsTable = "Chats"

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"
