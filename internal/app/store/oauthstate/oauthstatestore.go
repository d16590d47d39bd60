// internal/app/store/oauthstate/oauthstatestore.go
package oauthstate

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// stateTTL is how long a state token stays valid. OAuth round trips
// finish in seconds; ten minutes is generous.
const stateTTL = 10 * time.Minute

// State represents an OAuth state token record. Locale and ReturnTo are
// carried through the round trip so the callback can land the admin
// back where they started.
type State struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	State     string             `bson:"state"`
	Locale    string             `bson:"locale,omitempty"`
	ReturnTo  string             `bson:"return_to,omitempty"`
	ExpiresAt time.Time          `bson:"expires_at"`
	CreatedAt time.Time          `bson:"created_at"`
}

// Store provides access to the oauth_states collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new OAuth state store.
func New(db *mongo.Database) *Store {
	return &Store{
		c: db.Collection("oauth_states"),
	}
}

// Create stores a new OAuth state token.
func (s *Store) Create(ctx context.Context, state, locale, returnTo string) error {
	now := time.Now()
	doc := State{
		ID:        primitive.NewObjectID(),
		State:     state,
		Locale:    locale,
		ReturnTo:  returnTo,
		ExpiresAt: now.Add(stateTTL),
		CreatedAt: now,
	}

	_, err := s.c.InsertOne(ctx, doc)
	return err
}

// Consume checks a state token, deletes it (single use), and returns
// the stored record. Returns (nil, false) for unknown or expired
// states.
func (s *Store) Consume(ctx context.Context, state string) (*State, bool) {
	filter := bson.M{
		"state":      state,
		"expires_at": bson.M{"$gt": time.Now()},
	}

	var doc State
	if err := s.c.FindOneAndDelete(ctx, filter).Decode(&doc); err != nil {
		return nil, false
	}
	return &doc, true
}
