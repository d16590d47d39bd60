// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Author is a denormalized snapshot of the admin who created a post.
// It is captured at creation time and never updated afterward, even if
// the account's profile changes later.
type Author struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// Post represents a blog post with bilingual content.
//
// PublishedAt is set exactly once: the first time Published transitions
// to true. Unpublishing and republishing never resets it.
type Post struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title      Translated         `bson:"title" json:"title"`
	Slug       string             `bson:"slug" json:"slug"` // URL-safe, globally unique
	Content    Translated         `bson:"content" json:"content"` // markdown
	Excerpt    Translated         `bson:"excerpt" json:"excerpt"`
	Author     Author             `bson:"author" json:"author"`
	Category   string             `bson:"category" json:"category"`
	Tags       []string           `bson:"tags" json:"tags"`
	CoverImage string             `bson:"cover_image,omitempty" json:"cover_image,omitempty"`
	Featured   bool               `bson:"featured" json:"featured"`
	Published  bool               `bson:"published" json:"published"`

	PublishedAt *time.Time `bson:"published_at" json:"published_at"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// Post categories
const (
	CategoryJourney     = "journey"
	CategoryInsights    = "insights"
	CategoryReflections = "reflections"
	CategoryReports     = "reports"
)

// AllCategories returns all valid post categories.
func AllCategories() []string {
	return []string{
		CategoryJourney,
		CategoryInsights,
		CategoryReflections,
		CategoryReports,
	}
}

// IsValidCategory checks if a category is valid.
func IsValidCategory(category string) bool {
	for _, c := range AllCategories() {
		if c == category {
			return true
		}
	}
	return false
}
