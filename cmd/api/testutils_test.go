package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hypercommerce/internal/checkout"
	"hypercommerce/internal/models"
	"hypercommerce/internal/token"
)

// In-memory stores mirroring the Mongo store contracts, so handler tests run
// against the full middleware/router stack without a database.

type stubUsers struct {
	users     []*models.User
	passwords map[primitive.ObjectID]string
}

func newStubUsers() *stubUsers {
	return &stubUsers{passwords: make(map[primitive.ObjectID]string)}
}

func (s *stubUsers) Insert(ctx context.Context, name, email, password string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return nil, models.ErrDuplicateEmail
		}
	}
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	s.users = append(s.users, user)
	s.passwords[user.ID] = password
	return user, nil
}

func (s *stubUsers) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email && s.passwords[u.ID] == password {
			return u, nil
		}
	}
	return nil, models.ErrInvalidCredentials
}

func (s *stubUsers) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, models.ErrNoRecord
}

type stubCatalog struct {
	products []models.Product
}

func (s *stubCatalog) Home(ctx context.Context) (map[string]models.VerticalPreview, error) {
	data := make(map[string]models.VerticalPreview)
	for _, v := range models.Verticals {
		preview := models.VerticalPreview{Categories: []models.Category{}, Vendors: []models.Vendor{}, Products: []models.Product{}}
		for _, p := range s.products {
			if p.Vertical == v {
				preview.Products = append(preview.Products, p)
			}
		}
		data[v] = preview
	}
	return data, nil
}

func (s *stubCatalog) Products(ctx context.Context, vertical, categorySlug, search string) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range s.products {
		if p.Vertical == vertical && (categorySlug == "" || p.CategorySlug == categorySlug) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubCatalog) Product(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, models.ErrNoRecord
}

type stubCart struct {
	items []models.CartItem
}

func (s *stubCart) Add(ctx context.Context, userID primitive.ObjectID, p *models.Product, quantity int) (*models.CartItem, error) {
	now := time.Now().UTC()
	for i := range s.items {
		if s.items[i].UserID == userID && s.items[i].ProductID == p.ID {
			s.items[i].Quantity += quantity
			s.items[i].UpdatedAt = now
			return &s.items[i], nil
		}
	}
	item := models.CartItem{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  quantity,
		Vertical:  p.Vertical,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.items = append(s.items, item)
	return &item, nil
}

func (s *stubCart) Remove(ctx context.Context, userID, itemID primitive.ObjectID) error {
	for i := range s.items {
		if s.items[i].ID == itemID && s.items[i].UserID == userID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return models.ErrNoRecord
}

func (s *stubCart) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	out := []models.CartItem{}
	for _, item := range s.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubCart) ClearForUser(ctx context.Context, userID primitive.ObjectID) error {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return nil
}

type stubOrders struct {
	orders []models.Order
}

func (s *stubOrders) Insert(ctx context.Context, o *models.Order) error {
	s.orders = append(s.orders, *o)
	return nil
}

func (s *stubOrders) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	out := []models.Order{}
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].UserID == userID {
			out = append(out, s.orders[i])
		}
	}
	return out, nil
}

type passTx struct{}

func (passTx) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type testApp struct {
	*application
	userStore *stubUsers
	catalog   *stubCatalog
	cartStore *stubCart
	orders    *stubOrders
}

func newTestApplication(t *testing.T) *testApp {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	users := newStubUsers()
	catalog := &stubCatalog{}
	cart := &stubCart{}
	orders := &stubOrders{}

	app := &application{
		log:      log,
		users:    users,
		catalog:  catalog,
		cart:     cart,
		orders:   orders,
		checkout: checkout.NewService(cart, orders, passTx{}),
		tokens:   token.NewManager("test-secret", time.Hour),
	}
	return &testApp{
		application: app,
		userStore:   users,
		catalog:     catalog,
		cartStore:   cart,
		orders:      orders,
	}
}

func (ta *testApp) addProduct(title, vertical string, price float64) models.Product {
	p := models.Product{
		ID:       primitive.NewObjectID(),
		Title:    title,
		Price:    price,
		Vertical: vertical,
		InStock:  true,
	}
	ta.catalog.products = append(ta.catalog.products, p)
	return p
}

// registerUser drives the real registration endpoint and returns the issued
// bearer token.
func (ta *testApp) registerUser(t *testing.T, name, email string) string {
	t.Helper()

	rec := ta.request(t, http.MethodPost, "/auth/register", "", envelope{
		"name": name, "email": email, "password": "pa55word",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

// rawRequest builds a request with a verbatim Authorization header value,
// for exercising the gate's parsing rules.
func (ta *testApp) rawRequest(t *testing.T, method, path, authHeader string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req, httptest.NewRecorder()
}

func (ta *testApp) issueTokenFor(t *testing.T, userID primitive.ObjectID) string {
	t.Helper()

	tok, err := ta.tokens.Issue(userID)
	require.NoError(t, err)
	return tok
}

func (ta *testApp) cartItems(t *testing.T, bearer string) []models.CartItem {
	t.Helper()

	rec := ta.request(t, http.MethodGet, "/cart", bearer, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []models.CartItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Items
}

func (ta *testApp) request(t *testing.T, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	ta.routes().ServeHTTP(rec, req)
	return rec
}
