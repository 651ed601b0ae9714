package models

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Slugify lowercases s, replaces every non-alphanumeric run with a single
// hyphen and trims the ends.
func Slugify(s string) string {
	var b strings.Builder
	for _, ch := range strings.ToLower(s) {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			b.WriteRune(ch)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}

var deliveryETAs = []string{"10-20 min", "20-30 min", "30-40 min", "2-4 days"}

// Seed provisions the catalog: per vertical, six categories, four vendors and
// ten products. It is idempotent — a non-empty products collection means a
// previous run already seeded and the whole step is skipped.
func (db *DB) Seed(ctx context.Context) error {
	count, err := db.Products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return errors.Wrap(err, "count products")
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()

	for _, vertical := range Verticals {
		title := titleCaser.String(vertical)

		categories := []Category{}
		for _, name := range []string{
			title + " Essentials",
			"Top Picks in " + title,
			"Best Sellers " + title,
			"New in " + title,
			"Popular " + title,
			"Budget " + title,
		} {
			categories = append(categories, Category{
				Name:      name,
				Slug:      Slugify(name),
				Vertical:  vertical,
				CreatedAt: now,
			})
		}
		docs := make([]interface{}, len(categories))
		for i, c := range categories {
			docs[i] = c
		}
		if _, err := db.Categories.InsertMany(ctx, docs); err != nil {
			return errors.Wrap(err, "seed categories")
		}

		vendors := []Vendor{}
		for _, name := range []string{
			title + " Hub",
			title + " Express",
			title + " Mart",
			title + " Bazaar",
		} {
			vendors = append(vendors, Vendor{
				Name:        name,
				Slug:        Slugify(name),
				Vertical:    vertical,
				Rating:      round1(3.8 + rand.Float64()*1.2),
				DeliveryETA: deliveryETAs[rand.Intn(len(deliveryETAs))],
				CreatedAt:   now,
			})
		}
		docs = make([]interface{}, len(vendors))
		for i, v := range vendors {
			docs[i] = v
		}
		if _, err := db.Vendors.InsertMany(ctx, docs); err != nil {
			return errors.Wrap(err, "seed vendors")
		}

		docs = make([]interface{}, 0, 10)
		for i := 1; i <= 10; i++ {
			cat := categories[rand.Intn(len(categories))]
			ven := vendors[rand.Intn(len(vendors))]
			docs = append(docs, Product{
				Title:        fmt.Sprintf("%s Item %d", title, i),
				Description:  fmt.Sprintf("High-quality %s product #%d", vertical, i),
				Price:        round2(2.0 + rand.Float64()*197.0),
				Image:        fmt.Sprintf("https://picsum.photos/seed/%s-%d/400/300", vertical, i),
				Vertical:     vertical,
				Category:     cat.Name,
				CategorySlug: cat.Slug,
				Vendor:       ven.Name,
				InStock:      true,
				Rating:       round1(3.5 + rand.Float64()*1.5),
				CreatedAt:    now,
			})
		}
		if _, err := db.Products.InsertMany(ctx, docs); err != nil {
			return errors.Wrap(err, "seed products")
		}
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
