package models

// Chat types (regular two-party chats vs admin-initiated support channels)
const (
	ChatTypeRegular = "regular"
	ChatTypeSupport = "support"
)

// Message types
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
)

// Proposal statuses
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)
