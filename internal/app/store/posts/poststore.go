// internal/app/store/posts/poststore.go
package poststore

import (
	"context"
	"errors"
	"time"

	"github.com/bnomad/website/internal/app/system/normalize"
	"github.com/bnomad/website/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateSlug is returned when a post with the same slug exists.
	ErrDuplicateSlug = errors.New("a post with this slug already exists")
	errBadCategory   = errors.New("invalid category")
	errEmptySlug     = errors.New("slug is required")
)

// Store provides access to the posts collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new post store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("posts")}
}

// ListPublished returns published posts sorted newest-first by publish
// date. A limit of 0 means no limit.
func (s *Store) ListPublished(ctx context.Context, limit int64) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return s.find(ctx, bson.M{"published": true}, opts)
}

// ListFeatured returns published posts flagged as featured, newest-first.
func (s *Store) ListFeatured(ctx context.Context, limit int64) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return s.find(ctx, bson.M{"published": true, "featured": true}, opts)
}

// ListByCategory returns published posts in a category, newest-first.
func (s *Store) ListByCategory(ctx context.Context, category string, limit int64) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	filter := bson.M{"published": true, "category": normalize.Category(category)}
	return s.find(ctx, filter, opts)
}

// ListAll returns every post, drafts included, sorted newest-first by
// creation date. For the admin panel.
func (s *Store) ListAll(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return s.find(ctx, bson.M{}, opts)
}

// GetBySlug returns the post with the given slug, published or not.
// Returns (nil, nil) when no such post exists; callers decide whether
// that is a 404.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var p models.Post
	err := s.c.FindOne(ctx, bson.M{"slug": normalize.Slug(slug)}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID loads a post by ObjectID. Returns mongo.ErrNoDocuments if not
// found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateInput holds the fields for creating a new post.
type CreateInput struct {
	Title      models.Translated
	Slug       string
	Content    models.Translated
	Excerpt    models.Translated
	Category   string
	Tags       []string
	CoverImage string
	Featured   bool
	Published  bool
}

// Create inserts a new post. The author snapshot is captured from the
// signed-in admin and never updated afterward. PublishedAt is stamped
// only when the post is created already published.
func (s *Store) Create(ctx context.Context, in CreateInput, authorName, authorEmail string) (models.Post, error) {
	p := models.Post{
		ID:         primitive.NewObjectID(),
		Title:      in.Title,
		Slug:       normalize.Slug(in.Slug),
		Content:    in.Content,
		Excerpt:    in.Excerpt,
		Author:     models.Author{Name: authorName, Email: authorEmail},
		Category:   normalize.Category(in.Category),
		Tags:       in.Tags,
		CoverImage: in.CoverImage,
		Featured:   in.Featured,
		Published:  in.Published,
	}

	if p.Slug == "" {
		return models.Post{}, errEmptySlug
	}
	if !models.IsValidCategory(p.Category) {
		return models.Post{}, errBadCategory
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Published {
		p.PublishedAt = &now
	}

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Post{}, ErrDuplicateSlug
		}
		return models.Post{}, err
	}
	return p, nil
}

// UpdateInput holds the optional fields for updating a post.
// All fields are pointers; nil means "don't update this field".
type UpdateInput struct {
	Title      *models.Translated
	Slug       *string
	Content    *models.Translated
	Excerpt    *models.Translated
	Category   *string
	Tags       *[]string
	CoverImage *string
	Featured   *bool
	Published  *bool
}

// Update updates a post using optional fields. Only non-nil fields are
// written, and updated_at is always refreshed.
//
// PublishedAt follows a set-once rule: when the update publishes a post
// whose published_at is still null, it is backfilled to now. It is
// never cleared or moved afterward, so unpublish/republish keeps the
// original date.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}

	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Slug != nil {
		slug := normalize.Slug(*in.Slug)
		if slug == "" {
			return errEmptySlug
		}
		set["slug"] = slug
	}
	if in.Content != nil {
		set["content"] = *in.Content
	}
	if in.Excerpt != nil {
		set["excerpt"] = *in.Excerpt
	}
	if in.Category != nil {
		category := normalize.Category(*in.Category)
		if !models.IsValidCategory(category) {
			return errBadCategory
		}
		set["category"] = category
	}
	if in.Tags != nil {
		set["tags"] = *in.Tags
	}
	if in.CoverImage != nil {
		set["cover_image"] = *in.CoverImage
	}
	if in.Featured != nil {
		set["featured"] = *in.Featured
	}
	if in.Published != nil {
		set["published"] = *in.Published
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateSlug
		}
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	// Backfill published_at on first publish only.
	if in.Published != nil && *in.Published {
		now := time.Now().UTC()
		_, err = s.c.UpdateOne(ctx,
			bson.M{"_id": id, "published_at": nil},
			bson.M{"$set": bson.M{"published_at": &now}})
		if err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes a post by ID. Deleting a post that does not exist is
// not an error.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Count returns the number of posts matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

func (s *Store) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Post, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
