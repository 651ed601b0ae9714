// Package checkout implements the order-placement workflow: load the
// caller's cart, reject if empty, compute the total, snapshot the items into
// an immutable order, then persist the order and clear the cart as one
// transactional unit.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hypercommerce/internal/models"
)

var ErrEmptyCart = errors.New("checkout: cart is empty")

type Service struct {
	Cart   models.CartStore
	Orders models.OrderStore
	Tx     models.TxRunner
}

func NewService(cart models.CartStore, orders models.OrderStore, tx models.TxRunner) *Service {
	return &Service{Cart: cart, Orders: orders, Tx: tx}
}

// PlaceOrder runs one checkout for userID. Pricing is "as added to cart":
// items are copied from the cart documents, never re-fetched from the
// catalog. The order insert and the cart clear share a transaction, so a
// failure at any point leaves the cart exactly as it was and no order
// behind.
func (s *Service) PlaceOrder(ctx context.Context, userID primitive.ObjectID, address, paymentMethod string) (*models.Order, error) {
	items, err := s.Cart.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	var total float64
	snapshot := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
		snapshot = append(snapshot, models.OrderItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Image:     item.Image,
			Quantity:  item.Quantity,
			Vertical:  item.Vertical,
		})
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		Items:         snapshot,
		Total:         round2(total),
		Address:       address,
		PaymentMethod: paymentMethod,
		Status:        models.OrderStatusPlaced,
		OrderNumber:   newOrderNumber(now),
		CreatedAt:     now,
	}

	err = s.Tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.Orders.Insert(ctx, order); err != nil {
			return err
		}
		return s.Cart.ClearForUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// newOrderNumber keeps the user-visible second-granularity timestamp but
// appends a random suffix, so two orders placed within the same second still
// get distinct numbers.
func newOrderNumber(t time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", t.UTC().Format("20060102150405"), uuid.NewString()[:8])
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
