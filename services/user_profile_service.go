package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"amora_server/config"
	"amora_server/models"
	"amora_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("a profile already exists for this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserBanned         = errors.New("this account has been suspended")
)

type UserProfileService struct {
	Store Store
}

// Register creates a new user profile with a hashed password. The email is
// the profile key, so a duplicate registration is refused up front.
func (ups *UserProfileService) Register(ctx context.Context, profile models.UserProfile, password string) (*models.UserProfile, error) {
	if profile.EmailID == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	_, err := ups.Store.GetItem(ctx, models.UserProfilesTable, profileKey(profile.EmailID))
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, ErrItemNotFound) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile.Password = string(hashed)
	profile.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	// Admin status comes from configuration, never from the request body.
	profile.IsAdmin = config.AppConfig != nil && config.AppConfig.AdminEmail != "" &&
		profile.EmailID == config.AppConfig.AdminEmail
	profile.Banned = false
	if profile.Age == 0 {
		profile.Age = utils.AgeFromBirthDate(profile.BirthDate, time.Now())
	}

	if err := ups.Store.PutItem(ctx, models.UserProfilesTable, profile); err != nil {
		return nil, fmt.Errorf("failed to store profile: %w", err)
	}
	return &profile, nil
}

// Login verifies credentials and issues a session token.
func (ups *UserProfileService) Login(ctx context.Context, email, password string) (string, *models.UserProfile, error) {
	profile, err := ups.GetProfile(ctx, email)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if profile.Banned {
		return "", nil, ErrUserBanned
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(profile.EmailID, profile.IsAdmin)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, profile, nil
}

// GetProfile retrieves a user profile by email
func (ups *UserProfileService) GetProfile(ctx context.Context, email string) (*models.UserProfile, error) {
	item, err := ups.Store.GetItem(ctx, models.UserProfilesTable, profileKey(email))
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	if profile.Age == 0 {
		profile.Age = utils.AgeFromBirthDate(profile.BirthDate, time.Now())
	}
	return &profile, nil
}

// UpdateProfile applies a field-by-field update to an existing profile.
// Only the owning user hits this path; admin moderation goes through
// AdminService.
func (ups *UserProfileService) UpdateProfile(ctx context.Context, email string, updates map[string]interface{}) (*models.UserProfile, error) {
	if len(updates) == 0 {
		return ups.GetProfile(ctx, email)
	}

	// The profile key and password never change through this path.
	delete(updates, "emailId")
	delete(updates, "password")

	updateExpression := "SET"
	expressionAttributeValues := make(map[string]types.AttributeValue)
	expressionAttributeNames := make(map[string]string)

	for k, v := range updates {
		placeholder := ":" + k
		attributeName := "#" + k
		updateExpression += " " + attributeName + " = " + placeholder + ","

		av, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal update for '%s': %w", k, err)
		}
		expressionAttributeValues[placeholder] = av
		expressionAttributeNames[attributeName] = k
	}
	updateExpression = updateExpression[:len(updateExpression)-1]

	updatedItem, err := ups.Store.UpdateItem(ctx, models.UserProfilesTable, updateExpression, profileKey(email), expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, err
	}

	var updatedProfile models.UserProfile
	if err := attributevalue.UnmarshalMap(updatedItem, &updatedProfile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated profile: %w", err)
	}
	return &updatedProfile, nil
}

func profileKey(email string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"emailId": &types.AttributeValueMemberS{Value: email},
	}
}
