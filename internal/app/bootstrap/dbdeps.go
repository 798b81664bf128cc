// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and storage dependencies for the application.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	FileStorage   storage.Store
}
