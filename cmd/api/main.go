package main

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"hypercommerce/internal/checkout"
	"hypercommerce/internal/models"
	"hypercommerce/internal/token"
)

type config struct {
	Addr         string        `envconfig:"ADDR" default:":8000"`
	DatabaseURL  string        `envconfig:"DATABASE_URL" required:"true"`
	DatabaseName string        `envconfig:"DATABASE_NAME" default:"hypercommerce"`
	TokenSecret  string        `envconfig:"TOKEN_SECRET" required:"true"`
	TokenTTL     time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
}

type application struct {
	log      *logrus.Logger
	db       *models.DB
	users    models.UserStore
	catalog  models.CatalogStore
	cart     models.CartStore
	orders   models.OrderStore
	checkout *checkout.Service
	tokens   *token.Manager
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	_ = godotenv.Load()

	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		log.WithError(err).Fatal("read configuration")
	}

	ctx := context.Background()
	db, err := models.OpenDB(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	defer db.Close(ctx)
	log.Info("connected to database")

	// Provisioning runs to completion before the server accepts a single
	// request: indexes always, seed data only on an empty catalog.
	if err := db.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Fatal("ensure indexes")
	}
	if err := db.Seed(ctx); err != nil {
		log.WithError(err).Fatal("seed catalog")
	}

	cart := &models.CartModel{C: db.CartItems}
	orders := &models.OrderModel{C: db.Orders}

	app := &application{
		log:      log,
		db:       db,
		users:    &models.UserModel{C: db.Users},
		catalog:  &models.CatalogModel{Categories: db.Categories, Vendors: db.Vendors, ProductsColl: db.Products},
		cart:     cart,
		orders:   orders,
		checkout: checkout.NewService(cart, orders, db),
		tokens:   token.NewManager(cfg.TokenSecret, cfg.TokenTTL),
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      app.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	log.WithField("addr", cfg.Addr).Info("starting server")
	log.Fatal(srv.ListenAndServe())
}
