// internal/app/store/contacts/contactstore.go
package contactstore

import (
	"context"
	"time"

	"github.com/bnomad/website/internal/app/store/storeutil"
	"github.com/bnomad/website/internal/app/system/normalize"
	"github.com/bnomad/website/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the contacts collection. Submissions are
// append-only; there is deliberately no update or delete here.
type Store struct {
	c *mongo.Collection
}

// New creates a new contact store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contacts")}
}

// Create records a contact form submission.
func (s *Store) Create(ctx context.Context, sub models.ContactSubmission) (models.ContactSubmission, error) {
	sub.ID = primitive.NewObjectID()
	sub.Name = normalize.Name(sub.Name)
	sub.Email = normalize.Email(sub.Email)
	sub.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		return models.ContactSubmission{}, err
	}
	return sub, nil
}

// ListAll returns all submissions newest-first.
func (s *Store) ListAll(ctx context.Context) ([]models.ContactSubmission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var subs []models.ContactSubmission
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// ListPage returns one page of submissions newest-first. page is
// 1-based.
func (s *Store) ListPage(ctx context.Context, limit, page int64) ([]models.ContactSubmission, error) {
	opts := storeutil.Paginate(limit, page).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var subs []models.ContactSubmission
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// Count returns the number of submissions.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
