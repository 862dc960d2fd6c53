// internal/app/store/mongostore/mongostore.go
//
// MongoDB implementation of the store contract. Unlike the file backend,
// mutations are expressed as field-level update operators ($set, $push,
// $pull, $inc), so two concurrent updates that touch different fields of the
// same document both survive. Uniqueness rules (active email, one
// installation per user and app) are enforced by indexes; see EnsureSchema.
package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/shuzaifak/crowd/internal/app/banking"
	"github.com/shuzaifak/crowd/internal/app/store"
)

// Collection names.
const (
	colUsers        = "users"
	colEvents       = "events"
	colOrders       = "orders"
	colBankAccounts = "bank_accounts"
	colPayouts      = "payouts"
	colApps         = "apps"
	colUserApps     = "user_apps"
)

// Store is the MongoDB-backed implementation of store.Store.
type Store struct {
	db       *mongo.Database
	codec    *banking.Codec
	settings store.Settings
}

var _ store.Store = (*Store)(nil)

// New wraps an already connected database handle. The store takes ownership
// of the underlying client; Close disconnects it.
func New(db *mongo.Database, codec *banking.Codec, settings store.Settings) (*Store, error) {
	if db == nil {
		return nil, errors.New("mongostore: database handle is required")
	}
	if codec == nil {
		return nil, errors.New("mongostore: banking codec is required")
	}
	return &Store{db: db, codec: codec, settings: settings}, nil
}

func (s *Store) users() *mongo.Collection        { return s.db.Collection(colUsers) }
func (s *Store) events() *mongo.Collection       { return s.db.Collection(colEvents) }
func (s *Store) orders() *mongo.Collection       { return s.db.Collection(colOrders) }
func (s *Store) bankAccounts() *mongo.Collection { return s.db.Collection(colBankAccounts) }
func (s *Store) payouts() *mongo.Collection      { return s.db.Collection(colPayouts) }
func (s *Store) apps() *mongo.Collection         { return s.db.Collection(colApps) }
func (s *Store) userApps() *mongo.Collection     { return s.db.Collection(colUserApps) }

// Ping round-trips to the primary.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		return store.Wrap("ping", s.db.Name(), err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.db.Client().Disconnect(ctx); err != nil {
		return store.Wrap("close", s.db.Name(), err)
	}
	return nil
}

// findOne decodes a single document. A missing document is (nil, nil), per
// the store contract for lookups.
func findOne[T any](ctx context.Context, c *mongo.Collection, filter bson.M) (*T, error) {
	var out T
	err := c.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, store.Wrap("find", c.Name(), err)
	}
	return &out, nil
}

// findAll runs a filtered find and decodes every match. The result is never
// nil.
func findAll[T any](ctx context.Context, c *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, store.Wrap("find", c.Name(), err)
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, store.Wrap("decode", c.Name(), err)
	}
	return out, nil
}

// findOneAndUpdate applies update to the first document matching filter and
// decodes the post-update document. A missing target is store.ErrNotFound,
// per the contract for mutations.
func findOneAndUpdate[T any](ctx context.Context, c *mongo.Collection, filter, update bson.M) (T, error) {
	var out T
	err := c.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, store.ErrNotFound
	}
	if err != nil {
		return out, store.Wrap("update", c.Name(), err)
	}
	return out, nil
}

func isNotFound(err error) bool { return errors.Is(err, store.ErrNotFound) }

// sortNewest orders by creation time, newest first, with the id as a stable
// tiebreak.
func sortNewest() *options.FindOptions {
	return options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
}
