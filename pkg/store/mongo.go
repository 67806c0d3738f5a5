package store

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ekalosak/graph3d/pkg/errors"
)

// MongoStore persists scenes in a MongoDB collection, upserted by name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoOptions configures the MongoDB backend.
type MongoOptions struct {
	// URI is the connection string. Empty means mongodb://localhost:27017.
	URI string
	// Database is the database name. Empty means "graph3d".
	Database string
	// Collection is the collection name. Empty means "scenes".
	Collection string
}

// NewMongoStore connects and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.URI == "" {
		opts.URI = "mongodb://localhost:27017"
	}
	if opts.Database == "" {
		opts.Database = "graph3d"
	}
	if opts.Collection == "" {
		opts.Collection = "scenes"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to %s", opts.URI)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping %s", opts.URI)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

// Save implements [Store]: insert or replace by scene name.
func (s *MongoStore) Save(ctx context.Context, doc *SceneDoc) error {
	existing := s.coll.FindOne(ctx, bson.M{"name": doc.Name})
	var prev SceneDoc
	if err := existing.Decode(&prev); err == nil {
		doc.ID = prev.ID
		doc.CreatedAt = prev.CreatedAt
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"name": doc.Name}, doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save scene %q", doc.Name)
	}
	return nil
}

// Load implements [Store].
func (s *MongoStore) Load(ctx context.Context, name string) (*SceneDoc, error) {
	var doc SceneDoc
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New(errors.ErrCodeSceneNotFound, "no scene named %q", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load scene %q", name)
	}
	return &doc, nil
}

// List implements [Store].
func (s *MongoStore) List(ctx context.Context) ([]SceneInfo, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list scenes")
	}
	defer cur.Close(ctx)

	var infos []SceneInfo
	for cur.Next(ctx) {
		var doc SceneDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "decode scene")
		}
		infos = append(infos, SceneInfo{
			Name:      doc.Name,
			Kind:      doc.Kind,
			NodeCount: len(doc.Nodes),
			EdgeCount: len(doc.Edges),
			UpdatedAt: doc.UpdatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list scenes")
	}
	return infos, nil
}

// Delete implements [Store].
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete scene %q", name)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeSceneNotFound, "no scene named %q", name)
	}
	return nil
}

// Close implements [Store].
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
