package models

// Story is an image post visible to everyone for 24 hours.
type Story struct {
	StoryID     string `dynamodbav:"storyId" json:"storyId"`
	AuthorEmail string `dynamodbav:"authorEmail" json:"authorEmail"`
	AuthorName  string `dynamodbav:"authorName,omitempty" json:"authorName"`
	AuthorPhoto string `dynamodbav:"authorPhoto,omitempty" json:"authorPhoto"`
	ImageKey    string `dynamodbav:"imageKey" json:"imageKey"`
	Caption     string `dynamodbav:"caption,omitempty" json:"caption"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
}

// StoriesTable is the DynamoDB table name for stories
const StoriesTable = "Stories"
