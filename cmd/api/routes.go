package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/rs/cors"
)

func (app *application) routes() http.Handler {
	mux := pat.New()

	mux.Get("/", http.HandlerFunc(app.root))
	mux.Get("/verticals", http.HandlerFunc(app.verticals))
	mux.Get("/home", http.HandlerFunc(app.home))
	mux.Get("/products", http.HandlerFunc(app.listProducts))
	mux.Get("/test", http.HandlerFunc(app.healthcheck))

	mux.Post("/auth/register", http.HandlerFunc(app.register))
	mux.Post("/auth/login", http.HandlerFunc(app.login))

	mux.Get("/cart", app.requireAuth(app.listCart))
	mux.Post("/cart", app.requireAuth(app.addToCart))
	mux.Del("/cart/:id", app.requireAuth(app.removeCartItem))

	mux.Post("/orders", app.requireAuth(app.placeOrder))
	mux.Get("/orders", app.requireAuth(app.listOrders))

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return app.logRequest(app.recoverPanic(c.Handler(mux)))
}
