package storage

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/molgraph/pkg/errors"
)

// MongoOptions configures a MongoStore.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
	// Timeout bounds connect and each operation. Zero uses 5s.
	Timeout time.Duration
}

// MongoStore stores records in a MongoDB collection with a unique index on
// the content hash.
type MongoStore struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoStore connects, pings and ensures the hash index.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.URI == "" {
		return nil, errors.New(errors.ErrCodeConfigLoad, "mongo: uri is required")
	}
	if opts.Database == "" || opts.Collection == "" {
		return nil, errors.New(errors.ErrCodeConfigLoad, "mongo: database and collection are required")
	}
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}

	cctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(opts.URI).SetServerSelectionTimeout(opts.Timeout))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "mongo connect")
	}
	if err := client.Ping(cctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "mongo ping")
	}

	coll := client.Database(opts.Database).Collection(opts.Collection)
	_, err = coll.Indexes().CreateOne(cctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "hash", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("hash_unique"),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "mongo index")
	}

	return &MongoStore{client: client, coll: coll, timeout: opts.Timeout}, nil
}

// Save inserts rec. On a duplicate hash the existing record is returned.
func (s *MongoStore) Save(ctx context.Context, rec *Record) (*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if existing, err := s.findOne(ctx, bson.M{"hash": rec.Hash}); err == nil {
		return existing, nil
	} else if !errors.Is(err, errors.ErrCodeNotFound) {
		return nil, err
	}

	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// lost a race with a concurrent insert of the same molecule
			return s.findOne(ctx, bson.M{"hash": rec.Hash})
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "mongo insert")
	}
	return rec, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, filter).Decode(&rec)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New(errors.ErrCodeNotFound, "molecule not found")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "mongo find")
	}
	return &rec, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
