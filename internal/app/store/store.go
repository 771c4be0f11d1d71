package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"confidentialclaus/internal/app/user"
	"confidentialclaus/internal/pkg/logx"
)

// DynamoAPI is the subset of the DynamoDB client the store depends on.
// Tests substitute a fake implementation.
type DynamoAPI interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// UserStore is the single owner of the username → user record mapping.
// It performs no authorization; callers decide access before invoking it.
type UserStore struct {
	ddb       DynamoAPI
	tableName string
}

// New constructs a UserStore over the given DynamoDB API and table.
func New(ddb DynamoAPI, tableName string) *UserStore {
	return &UserStore{ddb: ddb, tableName: tableName}
}

// key builds the primary-key attribute map for a username.
func (s *UserStore) key(username string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"username": &types.AttributeValueMemberS{Value: username},
	}
}

// GetUser returns the single record stored under username.
// Zero matches yield ErrUserNotFound. More than one match means the table
// key invariant is broken and yields ErrCorruptRecord instead of silently
// picking a record.
func (s *UserStore) GetUser(ctx context.Context, username string) (*user.User, error) {
	out, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("#pk = :v"),
		ExpressionAttributeNames: map[string]string{
			"#pk": "username",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: username},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("querying user %s: %w", username, err)
	}

	switch {
	case out.Count == 0:
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	case out.Count > 1:
		logx.Error(ErrCorruptRecord, "User table key invariant violated", "username", username, "count", out.Count)
		return nil, fmt.Errorf("%w: %s", ErrCorruptRecord, username)
	}

	var u user.User
	if err := attributevalue.UnmarshalMap(out.Items[0], &u); err != nil {
		return nil, fmt.Errorf("unmarshaling user %s: %w", username, err)
	}
	return &u, nil
}

// GetAllUsers returns the full roster, transparently following store-level
// pagination until the scan is exhausted.
func (s *UserStore) GetAllUsers(ctx context.Context) ([]user.User, error) {
	var users []user.User
	var exclusiveStartKey map[string]types.AttributeValue

	for {
		out, err := s.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.tableName),
			ExclusiveStartKey: exclusiveStartKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scanning users: %w", err)
		}

		for _, item := range out.Items {
			var u user.User
			if err := attributevalue.UnmarshalMap(item, &u); err != nil {
				return nil, fmt.Errorf("unmarshaling scanned user: %w", err)
			}
			users = append(users, u)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		exclusiveStartKey = out.LastEvaluatedKey
	}

	return users, nil
}

// CreateUser writes the initial record for a new user as one conditional put:
// the supplied fields plus an empty notes list, guarded on the username not
// already existing. A lost race or duplicate create yields ErrUserExists.
func (s *UserStore) CreateUser(ctx context.Context, newUser user.NewUser) error {
	record := user.User{
		NewUser: newUser,
		Notes:   []user.Note{},
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("marshaling new user %s: %w", newUser.Username, err)
	}

	_, err = s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{
			"#pk": "username",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("%w: %s", ErrUserExists, newUser.Username)
		}
		return fmt.Errorf("creating user %s: %w", newUser.Username, err)
	}
	return nil
}

// UpdateUser compiles the sparse update and issues a single conditional
// write. A compiled no-op skips the mutation entirely. Updating an
// unregistered username yields ErrUserNotFound rather than upserting.
func (s *UserStore) UpdateUser(ctx context.Context, username string, update user.Update) error {
	compiled, ok, err := CompileUpdate(update.Document())
	if err != nil {
		return fmt.Errorf("compiling update for %s: %w", username, err)
	}
	if !ok {
		logx.Debug("Update compiled to a no-op, skipping write", "username", username)
		return nil
	}

	names := compiled.Names
	names["#pk"] = "username"

	_, err = s.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       s.key(username),
		UpdateExpression:          aws.String(compiled.Expression),
		ConditionExpression:       aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: compiled.Values,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}
		return fmt.Errorf("updating user %s: %w", username, err)
	}
	return nil
}

// AddNote appends a note to the user's notes list. Records written before the
// notes attribute existed make list_append fail; the store falls back to
// creating the list as a singleton rather than surfacing an error.
func (s *UserStore) AddNote(ctx context.Context, username string, note user.Note) error {
	appended, err := attributevalue.Marshal([]user.Note{note})
	if err != nil {
		return fmt.Errorf("marshaling note for %s: %w", username, err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.tableName),
		Key:                 s.key(username),
		UpdateExpression:    aws.String("SET #notes = list_append(#notes, :v)"),
		ConditionExpression: aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{
			"#notes": "notes",
			"#pk":    "username",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": appended,
		},
	}

	_, err = s.ddb.UpdateItem(ctx, input)
	if err == nil {
		return nil
	}
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	if !isValidationError(err) {
		return fmt.Errorf("appending note for %s: %w", username, err)
	}

	// The notes attribute is missing on this record; repair it as a singleton list.
	logx.Warn("notes list missing, creating as singleton", "username", username)
	input.UpdateExpression = aws.String("SET #notes = :v")
	if _, err := s.ddb.UpdateItem(ctx, input); err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}
		return fmt.Errorf("creating notes list for %s: %w", username, err)
	}
	return nil
}

// DeleteNote removes the note with the given id. The removal targets the
// note's position but is guarded by a condition that the note at that
// position still carries the expected id, so a concurrent deletion that
// shifts positions fails the write instead of removing the wrong note.
func (s *UserStore) DeleteNote(ctx context.Context, username string, noteID string) error {
	u, err := s.GetUser(ctx, username)
	if err != nil {
		return err
	}

	deleteIndex := -1
	for i, note := range u.Notes {
		if note.ID == noteID {
			deleteIndex = i
			break
		}
	}
	if deleteIndex < 0 {
		return fmt.Errorf("%w: %s", ErrNoteNotFound, noteID)
	}

	_, err = s.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.tableName),
		Key:                 s.key(username),
		UpdateExpression:    aws.String(fmt.Sprintf("REMOVE #notes[%d]", deleteIndex)),
		ConditionExpression: aws.String(fmt.Sprintf("#notes[%d].id = :v", deleteIndex)),
		ExpressionAttributeNames: map[string]string{
			"#notes": "notes",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: noteID},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("%w: %s", ErrNoteNotFound, noteID)
		}
		return fmt.Errorf("deleting note %s for %s: %w", noteID, username, err)
	}
	return nil
}

// AssignUser points the giver's assignment at the receiver. The receiver
// must exist (ErrUserNotFound otherwise) and must not be the giver.
func (s *UserStore) AssignUser(ctx context.Context, giverUsername, receiverUsername string) error {
	if giverUsername == receiverUsername {
		return fmt.Errorf("%w: %s", ErrSelfAssignment, giverUsername)
	}

	if _, err := s.GetUser(ctx, receiverUsername); err != nil {
		return err
	}

	_, err := s.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.tableName),
		Key:                 s.key(giverUsername),
		UpdateExpression:    aws.String("SET #assigned = :v"),
		ConditionExpression: aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{
			"#assigned": "assignedUser",
			"#pk":       "username",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: receiverUsername},
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, giverUsername)
		}
		return fmt.Errorf("assigning %s to %s: %w", receiverUsername, giverUsername, err)
	}
	return nil
}

// isConditionalCheckFailed reports whether the error is a DynamoDB
// conditional-write rejection.
func isConditionalCheckFailed(err error) bool {
	var condErr *types.ConditionalCheckFailedException
	return errors.As(err, &condErr)
}

// isValidationError reports whether the error is a DynamoDB expression
// validation failure, which is what list_append returns when the target
// list attribute does not exist on the record.
func isValidationError(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ValidationException"
}
