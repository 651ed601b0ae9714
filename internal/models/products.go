package models

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CatalogModel serves the read-only browse surface: home previews, filtered
// listings and single-product lookups. Nothing here mutates the catalog.
type CatalogModel struct {
	Categories   *mongo.Collection
	Vendors      *mongo.Collection
	ProductsColl *mongo.Collection
}

const (
	homeCategoryLimit = 6
	homeVendorLimit   = 4
	homeProductLimit  = 10
	listProductLimit  = 100
)

func (m *CatalogModel) Home(ctx context.Context) (map[string]VerticalPreview, error) {
	data := make(map[string]VerticalPreview, len(Verticals))

	for _, vertical := range Verticals {
		filter := bson.M{"vertical": vertical}
		preview := VerticalPreview{
			Categories: []Category{},
			Vendors:    []Vendor{},
			Products:   []Product{},
		}

		cur, err := m.Categories.Find(ctx, filter, options.Find().SetLimit(homeCategoryLimit))
		if err != nil {
			return nil, errors.Wrap(err, "find categories")
		}
		if err := cur.All(ctx, &preview.Categories); err != nil {
			return nil, errors.Wrap(err, "decode categories")
		}

		cur, err = m.Vendors.Find(ctx, filter, options.Find().SetLimit(homeVendorLimit))
		if err != nil {
			return nil, errors.Wrap(err, "find vendors")
		}
		if err := cur.All(ctx, &preview.Vendors); err != nil {
			return nil, errors.Wrap(err, "decode vendors")
		}

		cur, err = m.ProductsColl.Find(ctx, filter, options.Find().SetLimit(homeProductLimit))
		if err != nil {
			return nil, errors.Wrap(err, "find products")
		}
		if err := cur.All(ctx, &preview.Products); err != nil {
			return nil, errors.Wrap(err, "decode products")
		}

		data[vertical] = preview
	}
	return data, nil
}

func (m *CatalogModel) Products(ctx context.Context, vertical, categorySlug, search string) ([]Product, error) {
	filter := bson.M{"vertical": vertical}
	if categorySlug != "" {
		filter["category_slug"] = categorySlug
	}
	if search != "" {
		filter["title"] = bson.M{"$regex": search, "$options": "i"}
	}

	cur, err := m.ProductsColl.Find(ctx, filter, options.Find().SetLimit(listProductLimit))
	if err != nil {
		return nil, errors.Wrap(err, "find products")
	}

	products := []Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

func (m *CatalogModel) Product(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	var p Product
	err := m.ProductsColl.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoRecord
		}
		return nil, errors.Wrap(err, "find product")
	}
	return &p, nil
}
