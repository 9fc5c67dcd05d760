package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/raushankrgupta/virtual-closet/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName is the collection holding one history document per user
const CollectionName = "history"

// MongoStore keeps history in MongoDB, one document per user keyed by user id
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore wraps a collection handle
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// Read loads the user's document. A missing document, or one whose history
// field is absent or not an array, reads as an empty history.
func (s *MongoStore) Read(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}

	var doc bson.M
	err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []models.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return Normalize(doc[Field]), nil
}

// AppendOrCreate pushes entry onto the user's array. When no document exists
// yet it is created with a one-element array. If that create loses a race with
// a concurrent first append, the push is tried once more. A document whose
// history field is not an array has the field replaced by a one-element array.
func (s *MongoStore) AppendOrCreate(ctx context.Context, userID string, entry models.HistoryEntry) (AppendResult, error) {
	if userID == "" {
		return AppendResult{Outcome: Failed, Reason: ErrMissingUser.Error()}, ErrMissingUser
	}

	updated, err := s.push(ctx, userID, entry)
	if isNotArray(err) {
		return s.replaceField(ctx, userID, entry)
	}
	if err != nil {
		return failed(err)
	}
	if updated {
		return AppendResult{Outcome: Updated}, nil
	}

	_, err = s.coll.InsertOne(ctx, bson.D{
		{Key: "_id", Value: userID},
		{Key: Field, Value: bson.A{entryDocument(entry)}},
	})
	if err == nil {
		return AppendResult{Outcome: Created}, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return failed(err)
	}

	updated, err = s.push(ctx, userID, entry)
	if err != nil {
		return failed(err)
	}
	if !updated {
		return failed(errors.New("history document vanished during append"))
	}
	return AppendResult{Outcome: Updated}, nil
}

func (s *MongoStore) push(ctx context.Context, userID string, entry models.HistoryEntry) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{Field: entryDocument(entry)}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// replaceField overwrites a non-array history field. If another writer
// repaired the field first, the push is retried instead.
func (s *MongoStore) replaceField(ctx context.Context, userID string, entry models.HistoryEntry) (AppendResult, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": userID, Field: bson.M{"$not": bson.M{"$type": "array"}}},
		bson.M{"$set": bson.M{Field: bson.A{entryDocument(entry)}}},
	)
	if err != nil {
		return failed(err)
	}
	if res.MatchedCount > 0 {
		return AppendResult{Outcome: Updated}, nil
	}

	updated, err := s.push(ctx, userID, entry)
	if err != nil {
		return failed(err)
	}
	if !updated {
		return failed(errors.New("history document vanished during append"))
	}
	return AppendResult{Outcome: Updated}, nil
}

// isNotArray reports the write error MongoDB returns for $push on a field
// holding a scalar or null
func isNotArray(err error) bool {
	var we mongo.WriteException
	if !errors.As(err, &we) {
		return false
	}
	for _, e := range we.WriteErrors {
		if (e.Code == 2 || e.Code == 14) && strings.Contains(e.Message, "must be an array") {
			return true
		}
	}
	return false
}

func entryDocument(e models.HistoryEntry) bson.D {
	return bson.D{
		{Key: "prompt", Value: e.Prompt},
		{Key: "text", Value: e.Text},
		{Key: "createdAt", Value: e.CreatedAt},
	}
}

func failed(err error) (AppendResult, error) {
	err = fmt.Errorf("failed to append history: %w", err)
	return AppendResult{Outcome: Failed, Reason: err.Error()}, err
}
