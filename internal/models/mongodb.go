package models

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB bundles the collection handles every store works against.
type DB struct {
	Client     *mongo.Client
	Database   *mongo.Database
	Users      *mongo.Collection
	Categories *mongo.Collection
	Vendors    *mongo.Collection
	Products   *mongo.Collection
	CartItems  *mongo.Collection
	Orders     *mongo.Collection
}

func OpenDB(ctx context.Context, uri, name string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, errors.Wrap(err, "ping mongodb")
	}

	database := client.Database(name)
	return &DB{
		Client:     client,
		Database:   database,
		Users:      database.Collection("users"),
		Categories: database.Collection("categories"),
		Vendors:    database.Collection("vendors"),
		Products:   database.Collection("products"),
		CartItems:  database.Collection("cart_items"),
		Orders:     database.Collection("orders"),
	}, nil
}

func (db *DB) Close(ctx context.Context) error {
	return db.Client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the stores rely on. It is idempotent and
// runs on every startup, before any data is seeded.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	_, err := db.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Wrap(err, "create users email index")
	}

	_, err = db.Products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "vertical", Value: 1}, {Key: "category_slug", Value: 1}},
	})
	if err != nil {
		return errors.Wrap(err, "create products vertical index")
	}

	// Unique on (user_id, product_id) so the add-to-cart upsert can never
	// leave two rows for the same product in one cart.
	_, err = db.CartItems.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "product_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Wrap(err, "create cart items index")
	}

	_, err = db.Orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return errors.Wrap(err, "create orders index")
}

// InTransaction runs fn inside a single session transaction. Writes issued
// through the session context commit together or not at all.
func (db *DB) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := db.Client.StartSession()
	if err != nil {
		return errors.Wrap(err, "start session")
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// Health reports database reachability and the collection names it can see.
func (db *DB) Health(ctx context.Context) (string, []string) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.Client.Ping(pingCtx, nil); err != nil {
		return "not connected", nil
	}

	names, err := db.Database.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return "connected", nil
	}
	if len(names) > 10 {
		names = names[:10]
	}
	return "connected", names
}
