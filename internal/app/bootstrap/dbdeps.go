// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/bnomad/website/internal/app/system/mailer"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// This struct is created in ConnectDB and passed to subsequent lifecycle
// hooks: EnsureSchema, Startup, BuildHandler, and Shutdown.
type DBDeps struct {
	// MongoDB client and database
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// FileStorage for media uploads (post cover images, page photos)
	FileStorage storage.Store

	// Mailer for contact form notifications. Nil when mail is not
	// configured; a nil Mailer drops mail silently.
	Mailer *mailer.Mailer
}
