package models

// Favorite pins a candidate to the front of the owner's explore feed.
// Position preserves the order favorites were added in.
type Favorite struct {
	FromUserEmail string `dynamodbav:"fromUserEmail" json:"fromUserEmail"`
	ToUserEmail   string `dynamodbav:"toUserEmail" json:"toUserEmail"`
	Position      int    `dynamodbav:"position" json:"position"`
	CreatedAt     string `dynamodbav:"createdAt,omitempty" json:"createdAt"`
}

// FavoritesTable is the DynamoDB table name for favorites
const FavoritesTable = "Favorites"
