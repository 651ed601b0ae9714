package models

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderModel is append-only: orders are inserted once at checkout and never
// mutated afterwards.
type OrderModel struct {
	C *mongo.Collection
}

func (m *OrderModel) Insert(ctx context.Context, o *Order) error {
	_, err := m.C.InsertOne(ctx, o)
	return errors.Wrap(err, "insert order")
}

func (m *OrderModel) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := m.C.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find orders")
	}

	orders := []Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, errors.Wrap(err, "decode orders")
	}
	return orders, nil
}
