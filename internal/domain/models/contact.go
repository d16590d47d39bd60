// internal/domain/models/contact.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactSubmission is a message sent through the public contact form.
// Submissions are append-only: no update or delete operation exists, and
// they are visible only to signed-in admins.
type ContactSubmission struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name    string             `bson:"name" json:"name"`
	Email   string             `bson:"email" json:"email"`
	Subject string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Message string             `bson:"message" json:"message"`
	Lang    string             `bson:"lang" json:"lang"` // locale the form was submitted in

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
