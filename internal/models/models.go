package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Verticals is the fixed set of storefront verticals. Every category,
// vendor and product belongs to exactly one of them.
var Verticals = []string{"grocery", "food", "shopping"}

func ValidVertical(v string) bool {
	for _, known := range Verticals {
		if v == known {
			return true
		}
	}
	return false
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Slug      string             `bson:"slug" json:"slug"`
	Vertical  string             `bson:"vertical" json:"vertical"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type Vendor struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Vertical    string             `bson:"vertical" json:"vertical"`
	Rating      float64            `bson:"rating" json:"rating"`
	DeliveryETA string             `bson:"delivery_eta" json:"delivery_eta"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	Image        string             `bson:"image" json:"image"`
	Vertical     string             `bson:"vertical" json:"vertical"`
	Category     string             `bson:"category" json:"category"`
	CategorySlug string             `bson:"category_slug" json:"category_slug"`
	Vendor       string             `bson:"vendor" json:"vendor"`
	InStock      bool               `bson:"in_stock" json:"in_stock"`
	Rating       float64            `bson:"rating" json:"rating"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// CartItem denormalizes title/price/image/vertical from the product at the
// moment it is added, so later catalog edits do not touch carts.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Title     string             `bson:"title" json:"title"`
	Price     float64            `bson:"price" json:"price"`
	Image     string             `bson:"image" json:"image"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Vertical  string             `bson:"vertical" json:"vertical"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// OrderItem is a frozen value copy of a cart item. Orders never reference
// live product or cart documents.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Title     string             `bson:"title" json:"title"`
	Price     float64            `bson:"price" json:"price"`
	Image     string             `bson:"image" json:"image"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Vertical  string             `bson:"vertical" json:"vertical"`
}

const OrderStatusPlaced = "placed"

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Total         float64            `bson:"total" json:"total"`
	Address       string             `bson:"address" json:"address"`
	PaymentMethod string             `bson:"payment_method" json:"payment_method"`
	Status        string             `bson:"status" json:"status"`
	OrderNumber   string             `bson:"order_number" json:"order_number"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// VerticalPreview is the per-vertical slice of the catalog served on the
// home screen.
type VerticalPreview struct {
	Categories []Category `json:"categories"`
	Vendors    []Vendor   `json:"vendors"`
	Products   []Product  `json:"products"`
}

type UserStore interface {
	Insert(ctx context.Context, name, email, password string) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	Get(ctx context.Context, id primitive.ObjectID) (*User, error)
}

type CatalogStore interface {
	Home(ctx context.Context) (map[string]VerticalPreview, error)
	Products(ctx context.Context, vertical, categorySlug, search string) ([]Product, error)
	Product(ctx context.Context, id primitive.ObjectID) (*Product, error)
}

type CartStore interface {
	Add(ctx context.Context, userID primitive.ObjectID, p *Product, quantity int) (*CartItem, error)
	Remove(ctx context.Context, userID, itemID primitive.ObjectID) error
	ListForUser(ctx context.Context, userID primitive.ObjectID) ([]CartItem, error)
	ClearForUser(ctx context.Context, userID primitive.ObjectID) error
}

type OrderStore interface {
	Insert(ctx context.Context, o *Order) error
	ListForUser(ctx context.Context, userID primitive.ObjectID) ([]Order, error)
}

// TxRunner executes fn so that every store write made through ctx either
// commits as a unit or leaves no trace.
type TxRunner interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
