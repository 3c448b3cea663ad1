package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookstore-backend/internal/app"
	"bookstore-backend/internal/config"
	"bookstore-backend/internal/httpapi"
	"bookstore-backend/internal/repository/memory"
	"bookstore-backend/internal/upload"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestServer(t *testing.T, health func(context.Context) error) *testServer {
	t.Helper()
	repos := memory.NewSet()
	cfg := config.Config{JWTSecret: "test-secret", JWTTTL: time.Hour}
	svc := app.NewServices(repos, cfg, zap.NewNop())
	require.NoError(t, svc.Auth.EnsureAdmin(context.Background(), "admin", "s3cret"))

	uploads, err := upload.NewStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	router := httpapi.NewRouter(httpapi.Config{
		CORSOrigins: []string{"http://localhost:5173"},
		Health:      health,
	}, svc, uploads, zap.NewNop())
	return &testServer{t: t, router: router}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) json(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	return s.do(req)
}

func (s *testServer) login() {
	s.t.Helper()
	rec := s.json(http.MethodPost, "/api/auth/admin", map[string]string{"username": "admin", "password": "s3cret"})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	decode(s.t, rec, &res)
	require.NotEmpty(s.t, res.Token)
	s.token = res.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func TestCart_AddSameProductTwice(t *testing.T) {
	s := newTestServer(t, nil)
	body := map[string]any{"productId": "b1", "title": "X", "newPrice": 10, "quantity": 1}

	require.Equal(t, http.StatusOK, s.json(http.MethodPost, "/api/cart/u1", body).Code)
	rec := s.json(http.MethodPost, "/api/cart/u1", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var cart struct {
		UserID string `json:"userId"`
		Items  []struct {
			ProductID string  `json:"productId"`
			Price     float64 `json:"price"`
			Quantity  int     `json:"quantity"`
		} `json:"items"`
	}
	decode(t, rec, &cart)
	assert.Equal(t, "u1", cart.UserID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 10.0, cart.Items[0].Price)

	rec = s.json(http.MethodPut, "/api/cart/u1/items/nope", map[string]int{"quantity": 3})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBooks_SearchVersusList(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.json(http.MethodGet, "/api/books/search?query=", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.json(http.MethodGet, "/api/books/search?query=zzz", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.json(http.MethodGet, "/api/books?query=zzz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.json(http.MethodGet, "/api/books/not-an-id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, nil)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/books"},
		{http.MethodGet, "/api/orders"},
		{http.MethodPatch, "/api/orders/abc/status"},
		{http.MethodGet, "/api/dashboard"},
		{http.MethodGet, "/api/dashboard/best-sellers"},
		{http.MethodPut, "/api/dashboard/last-seen"},
	}
	for _, r := range routes {
		rec := s.json(r.method, r.path, map[string]any{})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", r.method, r.path)
	}

	s.token = "garbage"
	rec := s.json(http.MethodGet, "/api/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.json(http.MethodPost, "/api/auth/admin", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func multipartBook(t *testing.T, fields map[string]string, cover []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if cover != nil {
		part, err := w.CreateFormFile("coverImage", "cover.png")
		require.NoError(t, err)
		_, err = part.Write(cover)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestBooks_CreateMultipartWithCover(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()

	body, contentType := multipartBook(t, map[string]string{
		"title":       "Dune",
		"description": "Spice",
		"category":    "scifi",
		"newPrice":    "19.99",
		"trending":    "true",
	}, pngBytes)
	req := httptest.NewRequest(http.MethodPost, "/api/books", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+s.token)
	rec := s.do(req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var book struct {
		ID         string  `json:"_id"`
		Title      string  `json:"title"`
		NewPrice   float64 `json:"newPrice"`
		Stock      int     `json:"stock"`
		Trending   bool    `json:"trending"`
		CoverImage string  `json:"coverImage"`
	}
	decode(t, rec, &book)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, 19.99, book.NewPrice)
	assert.Equal(t, 100, book.Stock)
	assert.True(t, book.Trending)
	require.True(t, strings.HasPrefix(book.CoverImage, "/uploads/"), book.CoverImage)

	rec = s.do(httptest.NewRequest(http.MethodGet, book.CoverImage, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pngBytes, rec.Body.Bytes())

	rec = s.json(http.MethodGet, "/api/books/"+book.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func (s *testServer) form(method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	return s.do(req)
}

func TestBooks_FormBlankFieldsAreAbsent(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()

	body, contentType := multipartBook(t, map[string]string{
		"title":       "Dune",
		"description": "Spice",
		"category":    "scifi",
		"newPrice":    "19.99",
		"oldPrice":    "",
		"stock":       "",
		"trending":    "",
		"coverImage":  "",
	}, nil)
	rec := s.form(http.MethodPost, "/api/books", contentType, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var book struct {
		ID    string `json:"_id"`
		Stock int    `json:"stock"`
	}
	decode(t, rec, &book)
	assert.Equal(t, 100, book.Stock)

	rec = s.form(http.MethodPost, "/api/books", "application/x-www-form-urlencoded",
		strings.NewReader("title=Emma&description=Novel&category=classic&newPrice=9&stock="))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &book)
	assert.Equal(t, 100, book.Stock)

	rec = s.form(http.MethodPut, "/api/books/"+book.ID, "application/x-www-form-urlencoded",
		strings.NewReader("stock=0&title="))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		Title string `json:"title"`
		Stock int    `json:"stock"`
	}
	decode(t, rec, &updated)
	assert.Equal(t, "Emma", updated.Title)
	assert.Equal(t, 0, updated.Stock)

	rec = s.form(http.MethodPost, "/api/books", "application/x-www-form-urlencoded",
		strings.NewReader("title=Emma&description=Novel&category=classic&newPrice=cheap&stock=many"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var res struct {
		Details map[string]string `json:"details"`
	}
	decode(t, rec, &res)
	assert.Equal(t, "must be a number", res.Details["newPrice"])
	assert.Equal(t, "must be an integer", res.Details["stock"])
}

func TestBooks_UpdateMultipartReplacesCover(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()

	rec := s.json(http.MethodPost, "/api/books", map[string]any{
		"title": "Dune", "description": "Spice", "category": "scifi", "newPrice": 19.99,
		"coverImage": "https://example.com/old.png",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var book struct {
		ID         string `json:"_id"`
		Title      string `json:"title"`
		CoverImage string `json:"coverImage"`
	}
	decode(t, rec, &book)

	body, contentType := multipartBook(t, map[string]string{
		"title":      "Dune Messiah",
		"coverImage": "https://example.com/ignored.png",
	}, pngBytes)
	rec = s.form(http.MethodPut, "/api/books/"+book.ID, contentType, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &book)
	assert.Equal(t, "Dune Messiah", book.Title)
	assert.True(t, strings.HasPrefix(book.CoverImage, "/uploads/"), book.CoverImage)
}

func TestBooks_CreateRejectsBadInput(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()

	body, contentType := multipartBook(t, map[string]string{
		"title": "Dune", "description": "Spice", "category": "scifi", "newPrice": "19.99",
	}, []byte("plain text, not an image"))
	req := httptest.NewRequest(http.MethodPost, "/api/books", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+s.token)
	assert.Equal(t, http.StatusBadRequest, s.do(req).Code)

	rec := s.json(http.MethodPost, "/api/books", map[string]any{"title": "Dune"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var res struct {
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	}
	decode(t, rec, &res)
	assert.Contains(t, res.Details, "newPrice")
}

func TestOrdersFlow(t *testing.T) {
	s := newTestServer(t, nil)
	s.login()

	rec := s.json(http.MethodPost, "/api/books", map[string]any{
		"title": "Dune", "description": "Spice", "category": "scifi", "newPrice": 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var book struct {
		ID string `json:"_id"`
	}
	decode(t, rec, &book)

	rec = s.json(http.MethodGet, "/api/orders/email/ada@example.com", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.json(http.MethodPost, "/api/orders", map[string]any{
		"name":       "Ada",
		"email":      "ada@example.com",
		"address":    map[string]string{"city": "London", "country": "UK"},
		"items":      []map[string]any{{"productId": book.ID, "quantity": 4, "price": 10}},
		"totalPrice": 40,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order struct {
		ID     string `json:"_id"`
		Status string `json:"status"`
	}
	decode(t, rec, &order)
	assert.Equal(t, "pending", order.Status)

	rec = s.json(http.MethodGet, "/api/books/"+book.ID, nil)
	var stocked struct {
		Stock int `json:"stock"`
	}
	decode(t, rec, &stocked)
	assert.Equal(t, 96, stocked.Stock)

	rec = s.json(http.MethodGet, "/api/orders/email/ada@example.com", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []struct {
		Items []struct {
			Product *struct {
				Title string `json:"title"`
			} `json:"product"`
		} `json:"items"`
	}
	decode(t, rec, &orders)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].Items[0].Product)
	assert.Equal(t, "Dune", orders[0].Items[0].Product.Title)

	rec = s.json(http.MethodPatch, "/api/orders/"+order.ID+"/status", map[string]string{"shippingStatus": "shipped"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"shippingStatus":"shipped"`)

	rec = s.json(http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ov map[string]any
	decode(t, rec, &ov)
	assert.EqualValues(t, 1, ov["totalOrders"])
	assert.EqualValues(t, 40, ov["totalSales"])

	rec = s.json(http.MethodPut, "/api/dashboard/last-seen", map[string]int{"count": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.json(http.MethodGet, "/api/dashboard/last-seen", nil)
	assert.JSONEq(t, `{"count":1}`, rec.Body.String())
}

func TestMissingResourcesReturn404(t *testing.T) {
	s := newTestServer(t, nil)
	id := "64b7f0c2a1b2c3d4e5f60718"

	for _, path := range []string{
		"/api/reviews/" + id,
		"/api/address/u1/" + id,
		"/api/payment-method/u1/" + id,
	} {
		rec := s.json(http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
	assert.Equal(t, http.StatusNotFound, s.json(http.MethodGet, "/api/account/nobody", nil).Code)
}

func TestReviewValidationDetails(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.json(http.MethodPost, "/api/reviews", map[string]any{"bookId": "b1", "userId": "u1", "rating": 9})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var res struct {
		Details map[string]string `json:"details"`
	}
	decode(t, rec, &res)
	assert.Contains(t, res.Details, "rating")

	rec = s.json(http.MethodPost, "/api/reviews", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, func(context.Context) error { return nil })
	assert.Equal(t, http.StatusOK, s.json(http.MethodGet, "/healthz", nil).Code)

	s = newTestServer(t, func(context.Context) error { return errors.New("mongo down") })
	assert.Equal(t, http.StatusServiceUnavailable, s.json(http.MethodGet, "/healthz", nil).Code)
}
