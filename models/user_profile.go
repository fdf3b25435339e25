package models

// UserProfile defines the structure for user profiles
type UserProfile struct {
	EmailID     string   `dynamodbav:"emailId" json:"emailId"`
	Password    string   `dynamodbav:"password,omitempty" json:"-"`
	Name        string   `dynamodbav:"name,omitempty" json:"name"`
	Age         int      `dynamodbav:"age,omitempty" json:"age"`
	BirthDate   string   `dynamodbav:"birthDate,omitempty" json:"birthDate,omitempty"`
	City        string   `dynamodbav:"city,omitempty" json:"city"`
	Description string   `dynamodbav:"description,omitempty" json:"description"`
	Interests   []string `dynamodbav:"interests,omitempty" json:"interests"`
	Photo       string   `dynamodbav:"photo,omitempty" json:"photo"`
	IsAdmin     bool     `dynamodbav:"isAdmin,omitempty" json:"isAdmin,omitempty"`
	Banned      bool     `dynamodbav:"banned,omitempty" json:"banned,omitempty"`
	CreatedAt   string   `dynamodbav:"createdAt,omitempty" json:"createdAt"`
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"
