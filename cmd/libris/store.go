package libris

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jkarvo/libris/internal/catalog"
)

// openStore connects the configured store. The returned cleanup is
// safe to call even after a partial failure.
func openStore(ctx context.Context, inMemory bool) (catalog.Store, func(), error) {
	if inMemory {
		return catalog.NewMemStore(), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, func() {}, fmt.Errorf("connecting to MongoDB: %w", err)
	}
	cleanup := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}

	store := catalog.NewMongoStore(client.Database(cfg.MongoDatabase))
	if err := store.EnsureIndexes(connectCtx); err != nil {
		cleanup()
		return nil, func() {}, err
	}

	return store, cleanup, nil
}
