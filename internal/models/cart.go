package models

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CartModel struct {
	C *mongo.Collection
}

// Add accumulates quantity onto an existing (user, product) item or inserts a
// fresh one carrying the product's current title/price/image/vertical. The
// upsert is a single document operation, so two concurrent adds cannot race
// into two rows: one creates, the other increments.
func (m *CartModel) Add(ctx context.Context, userID primitive.ObjectID, p *Product, quantity int) (*CartItem, error) {
	now := time.Now().UTC()
	filter := bson.M{"user_id": userID, "product_id": p.ID}
	update := bson.M{
		"$inc": bson.M{"quantity": quantity},
		"$set": bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"title":      p.Title,
			"price":      p.Price,
			"image":      p.Image,
			"vertical":   p.Vertical,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var item CartItem
	if err := m.C.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item); err != nil {
		return nil, errors.Wrap(err, "upsert cart item")
	}
	return &item, nil
}

// Remove deletes one item, scoped to its owner. An item id belonging to a
// different user is indistinguishable from an unknown id.
func (m *CartModel) Remove(ctx context.Context, userID, itemID primitive.ObjectID) error {
	res, err := m.C.DeleteOne(ctx, bson.M{"_id": itemID, "user_id": userID})
	if err != nil {
		return errors.Wrap(err, "delete cart item")
	}
	if res.DeletedCount == 0 {
		return ErrNoRecord
	}
	return nil
}

func (m *CartModel) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]CartItem, error) {
	cur, err := m.C.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, errors.Wrap(err, "find cart items")
	}

	items := []CartItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, errors.Wrap(err, "decode cart items")
	}
	return items, nil
}

func (m *CartModel) ClearForUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := m.C.DeleteMany(ctx, bson.M{"user_id": userID})
	return errors.Wrap(err, "clear cart")
}
