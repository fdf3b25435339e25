package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"amora_server/models"
)

// fakeStore is an in-memory Store for workflow tests. It understands the
// subset of key conditions and update expressions the services actually use.
type fakeStore struct {
	mu     sync.Mutex
	tables map[string][]map[string]types.AttributeValue
	keys   map[string][]string

	failPut    map[string]error
	failUpdate map[string]error
	failDelete map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tables: map[string][]map[string]types.AttributeValue{},
		keys: map[string][]string{
			models.UserProfilesTable:                 {"emailId"},
			models.MatchProposalsTable:               {"proposalId"},
			models.AcceptedMatchesTable:              {"matchId"},
			models.ChatsTable:                        {"chatId"},
			models.MessagesTable:                     {"chatId", "messageId"},
			models.MatchAcceptanceNotificationsTable: {"notificationId"},
			models.RejectionNotificationsTable:       {"notificationId"},
			models.FavoritesTable:                    {"fromUserEmail", "toUserEmail"},
			models.StoriesTable:                      {"storyId"},
		},
		failPut:    map[string]error{},
		failUpdate: map[string]error{},
		failDelete: map[string]error{},
	}
}

func (fs *fakeStore) put(tableName string, item interface{}) {
	if err := fs.PutItem(context.Background(), tableName, item); err != nil {
		panic(err)
	}
}

func (fs *fakeStore) count(tableName string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.tables[tableName])
}

func (fs *fakeStore) all(tableName string, result interface{}) {
	fs.mu.Lock()
	items := append([]map[string]types.AttributeValue(nil), fs.tables[tableName]...)
	fs.mu.Unlock()
	if err := attributevalue.UnmarshalListOfMaps(items, result); err != nil {
		panic(err)
	}
}

func (fs *fakeStore) PutItem(ctx context.Context, tableName string, item interface{}) error {
	if err := fs.failPut[tableName]; err != nil {
		return err
	}

	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	keyAttrs := fs.keys[tableName]
	rows := fs.tables[tableName]
	for i, row := range rows {
		if matchesKeyAttrs(row, marshaled, keyAttrs) {
			rows[i] = marshaled
			return nil
		}
	}
	fs.tables[tableName] = append(rows, marshaled)
	return nil
}

func (fs *fakeStore) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for _, row := range fs.tables[tableName] {
		if matchesKey(row, key) {
			return row, nil
		}
	}
	return nil, ErrItemNotFound
}

func (fs *fakeStore) UpdateItem(ctx context.Context, tableName string, updateExpression string, key map[string]types.AttributeValue, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error) {
	if err := fs.failUpdate[tableName]; err != nil {
		return nil, err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	for _, row := range fs.tables[tableName] {
		if !matchesKey(row, key) {
			continue
		}
		if err := applySet(row, updateExpression, expressionAttributeValues, expressionAttributeNames); err != nil {
			return nil, err
		}
		return row, nil
	}
	return nil, fmt.Errorf("no item for key in table '%s'", tableName)
}

func (fs *fakeStore) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	if err := fs.failDelete[tableName]; err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	rows := fs.tables[tableName]
	for i, row := range rows {
		if matchesKey(row, key) {
			fs.tables[tableName] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (fs *fakeStore) QueryItems(ctx context.Context, tableName string, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	return fs.query(tableName, keyConditionExpression, expressionAttributeValues, expressionAttributeNames)
}

func (fs *fakeStore) QueryItemsWithIndex(ctx context.Context, tableName string, indexName string, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	return fs.query(tableName, keyConditionExpression, expressionAttributeValues, expressionAttributeNames)
}

func (fs *fakeStore) ScanWithFilter(ctx context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, excludeFields map[string]string, result interface{}) error {
	fs.mu.Lock()
	var filtered []map[string]types.AttributeValue
	for _, row := range fs.tables[tableName] {
		excluded := false
		for field, value := range excludeFields {
			if s, ok := row[field].(*types.AttributeValueMemberS); ok && s.Value == value {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		if filterFunc == nil || filterFunc(row) {
			filtered = append(filtered, row)
		}
	}
	fs.mu.Unlock()

	return attributevalue.UnmarshalListOfMaps(filtered, result)
}

func (fs *fakeStore) BatchWriteItems(ctx context.Context, tableName string, writeRequests []types.WriteRequest) error {
	for _, req := range writeRequests {
		if req.PutRequest != nil {
			fs.mu.Lock()
			fs.tables[tableName] = append(fs.tables[tableName], req.PutRequest.Item)
			fs.mu.Unlock()
		}
		if req.DeleteRequest != nil {
			if err := fs.DeleteItem(ctx, tableName, req.DeleteRequest.Key); err != nil {
				return err
			}
		}
	}
	return nil
}

// query supports single equality conditions of the form "field = :ph" with
// optional "#name" aliasing, which is all the services issue.
func (fs *fakeStore) query(tableName, keyCondition string, values map[string]types.AttributeValue, names map[string]string) ([]map[string]types.AttributeValue, error) {
	parts := strings.SplitN(keyCondition, "=", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("unsupported key condition: %s", keyCondition)
	}
	field := strings.TrimSpace(parts[0])
	if strings.HasPrefix(field, "#") {
		field = names[field]
	}
	want, ok := values[strings.TrimSpace(parts[1])].(*types.AttributeValueMemberS)
	if !ok {
		return nil, fmt.Errorf("unsupported key value in condition: %s", keyCondition)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	var matched []map[string]types.AttributeValue
	for _, row := range fs.tables[tableName] {
		if s, ok := row[field].(*types.AttributeValueMemberS); ok && s.Value == want.Value {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

func applySet(row map[string]types.AttributeValue, expr string, values map[string]types.AttributeValue, names map[string]string) error {
	expr = strings.TrimSpace(expr)
	if !strings.HasPrefix(expr, "SET ") {
		return fmt.Errorf("unsupported update expression: %s", expr)
	}
	for _, assignment := range strings.Split(strings.TrimPrefix(expr, "SET "), ",") {
		parts := strings.SplitN(assignment, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("unsupported assignment: %s", assignment)
		}
		attr := strings.TrimSpace(parts[0])
		if strings.HasPrefix(attr, "#") {
			attr = names[attr]
		}
		value, ok := values[strings.TrimSpace(parts[1])]
		if !ok {
			return fmt.Errorf("missing value for assignment: %s", assignment)
		}
		row[attr] = value
	}
	return nil
}

func matchesKey(row, key map[string]types.AttributeValue) bool {
	for attr, want := range key {
		s, ok := want.(*types.AttributeValueMemberS)
		if !ok {
			return false
		}
		have, ok := row[attr].(*types.AttributeValueMemberS)
		if !ok || have.Value != s.Value {
			return false
		}
	}
	return true
}

func matchesKeyAttrs(row, candidate map[string]types.AttributeValue, keyAttrs []string) bool {
	if len(keyAttrs) == 0 {
		return false
	}
	for _, attr := range keyAttrs {
		a, okA := row[attr].(*types.AttributeValueMemberS)
		b, okB := candidate[attr].(*types.AttributeValueMemberS)
		if !okA || !okB || a.Value != b.Value {
			return false
		}
	}
	return true
}
