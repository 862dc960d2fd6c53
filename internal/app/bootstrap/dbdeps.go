// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shuzaifak/crowd/internal/app/banking"
	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/app/store/mongostore"
)

// DBDeps holds the storage dependencies for the app. Handlers only ever see
// the Store interface; the concrete mongo handles exist for schema setup.
type DBDeps struct {
	Store   store.Store    // the active backend behind the shared contract
	Backend store.Backend  // which implementation Store is
	Codec   *banking.Codec // banking field encryption, shared with the store

	// Mongo handles, set only when the mongo backend is selected.
	// EnsureSchema uses them for indexes, collection validators, and the
	// catalog seed; Close on the store disconnects the client.
	MongoStore    *mongostore.Store
	MongoDatabase *mongo.Database
}
