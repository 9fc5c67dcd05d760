// Package profile stores the user profile document written on every sign-in.
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/raushankrgupta/virtual-closet/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the collection holding one profile document per user
const CollectionName = "users"

var (
	// ErrNotFound is returned by Get when the user has never signed in
	ErrNotFound = errors.New("profile not found")
	// ErrMissingUID is returned by Upsert for a profile without a user id
	ErrMissingUID = errors.New("profile: uid is required")
)

// MongoStore persists profiles keyed by user id
type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoStore wraps a collection handle
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll, now: time.Now}
}

// Upsert merges p into the stored profile. createdAt is only written when the
// document is first created; updatedAt is refreshed every time.
func (s *MongoStore) Upsert(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	if p.UID == "" {
		return models.UserProfile{}, ErrMissingUID
	}
	now := s.now().UTC().Truncate(time.Millisecond)

	update := bson.M{
		"$set": bson.M{
			"uid":         p.UID,
			"email":       p.Email,
			"displayName": p.DisplayName,
			"photoURL":    p.PhotoURL,
			"provider":    p.Provider,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.UserProfile
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": p.UID}, update, opts).Decode(&stored)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return stored, nil
}

// Get loads a profile by user id
func (s *MongoStore) Get(ctx context.Context, uid string) (models.UserProfile, error) {
	var p models.UserProfile
	err := s.coll.FindOne(ctx, bson.M{"_id": uid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	return p, nil
}
