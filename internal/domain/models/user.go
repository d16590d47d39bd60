// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an admin account. The trust model is flat: any active
// account has full admin capability, so there is no role field.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"` // stored lowercase, unique
	DisplayName string             `bson:"display_name" json:"display_name"`

	// PasswordHash is a bcrypt hash. It is nil for accounts that sign in
	// only through Google.
	PasswordHash *string `bson:"password_hash,omitempty" json:"-"`

	EmailVerified bool   `bson:"email_verified" json:"email_verified"`
	Status        string `bson:"status,omitempty" json:"status,omitempty"` // active, disabled

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// User statuses
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)
