package main

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hypercommerce/internal/checkout"
	"hypercommerce/internal/models"
)

// --- BASIC ---

func (app *application) root(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, http.StatusOK, envelope{"message": "Hyper Commerce backend running"})
}

func (app *application) verticals(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, http.StatusOK, envelope{"verticals": models.Verticals})
}

func (app *application) healthcheck(w http.ResponseWriter, r *http.Request) {
	resp := envelope{
		"backend":     "running",
		"database":    "not connected",
		"collections": []string{},
	}
	if app.db != nil {
		status, collections := app.db.Health(r.Context())
		resp["database"] = status
		if collections != nil {
			resp["collections"] = collections
		}
	}
	app.writeJSON(w, http.StatusOK, resp)
}

// --- AUTH HANDLERS ---

type registerPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) register(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if err := app.readJSON(w, r, &payload); err != nil {
		app.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" || payload.Password == "" || !strings.Contains(payload.Email, "@") {
		app.errorResponse(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	user, err := app.users.Insert(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			app.errorResponse(w, http.StatusConflict, "email already registered")
			return
		}
		app.serverError(w, err)
		return
	}

	tok, err := app.tokens.Issue(user.ID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusCreated, envelope{"token": tok, "user": user})
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := app.readJSON(w, r, &payload); err != nil {
		app.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := app.users.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			app.errorResponse(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		app.serverError(w, err)
		return
	}

	tok, err := app.tokens.Issue(user.ID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"token": tok, "user": user})
}

// --- CATALOG HANDLERS ---

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	data, err := app.catalog.Home(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, data)
}

func (app *application) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	vertical := q.Get("vertical")
	if !models.ValidVertical(vertical) {
		app.errorResponse(w, http.StatusBadRequest, "invalid vertical")
		return
	}

	products, err := app.catalog.Products(r.Context(), vertical, q.Get("category_slug"), q.Get("q"))
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"items": products})
}

// --- CART HANDLERS ---

func (app *application) listCart(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)

	items, err := app.cart.ListForUser(r.Context(), user.ID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"items": items})
}

type cartItemPayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (app *application) addToCart(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)

	var payload cartItemPayload
	if err := app.readJSON(w, r, &payload); err != nil {
		app.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Quantity < 1 {
		app.errorResponse(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}

	productID, err := primitive.ObjectIDFromHex(payload.ProductID)
	if err != nil {
		app.errorResponse(w, http.StatusNotFound, "product not found")
		return
	}

	product, err := app.catalog.Product(r.Context(), productID)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.errorResponse(w, http.StatusNotFound, "product not found")
			return
		}
		app.serverError(w, err)
		return
	}

	item, err := app.cart.Add(r.Context(), user.ID, product, payload.Quantity)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"id": item.ID})
}

func (app *application) removeCartItem(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)

	itemID, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":id"))
	if err != nil {
		app.errorResponse(w, http.StatusNotFound, "item not found")
		return
	}

	if err := app.cart.Remove(r.Context(), user.ID, itemID); err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.errorResponse(w, http.StatusNotFound, "item not found")
			return
		}
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"ok": true})
}

// --- ORDER HANDLERS ---

type placeOrderPayload struct {
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
}

func (app *application) placeOrder(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)

	var payload placeOrderPayload
	if err := app.readJSON(w, r, &payload); err != nil {
		app.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Address == "" || payload.PaymentMethod == "" {
		app.errorResponse(w, http.StatusBadRequest, "address and payment_method are required")
		return
	}

	order, err := app.checkout.PlaceOrder(r.Context(), user.ID, payload.Address, payload.PaymentMethod)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			app.errorResponse(w, http.StatusBadRequest, "cart is empty")
			return
		}
		app.serverError(w, err)
		return
	}

	app.writeJSON(w, http.StatusCreated, envelope{
		"id":           order.ID,
		"order_number": order.OrderNumber,
		"total":        order.Total,
	})
}

func (app *application) listOrders(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)

	orders, err := app.orders.ListForUser(r.Context(), user.ID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"orders": orders})
}
