package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reviewapi/internal/http/middleware"
	"reviewapi/internal/model"
	"reviewapi/internal/service"
	serviceMocks "reviewapi/internal/service/mocks"
	"reviewapi/internal/storage"
)

var (
	adminPrincipal    = &model.Principal{ID: uuid.NewString(), Email: "admin@example.com", Role: model.RoleAdmin}
	consumerPrincipal = &model.Principal{ID: uuid.NewString(), Email: "con@example.com", Role: model.RoleConsumer}
	retailerPrincipal = &model.Principal{ID: uuid.NewString(), Email: "ret@example.com", Role: model.RoleRetailer}
)

// newApp returns an app with the global error handler and, when p is set,
// a middleware that authenticates every request as p.
func newApp(p *model.Principal) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	if p != nil {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals(middleware.PrincipalLocalKey, p)
			return c.Next()
		})
	}
	return app
}

func jsonRequest(method, target string, body any) *http.Request {
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func imageRequest(method, target, field string) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile(field, "pic.png")
	part.Write([]byte("\x89PNG\r\n\x1a\n"))
	writer.Close()

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	return req
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var res errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return res
}

func wrapKind(kind error, msg string) error {
	return fmt.Errorf("%s: %w", msg, kind)
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	var cacheErr error
	app := fiber.New()
	app.Get("/health", HealthCheck(
		DatabaseProbe(db),
		Probe{Name: "cache", Check: func(context.Context) error { return cacheErr }},
	))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body healthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, healthResponse{
			Status: "healthy",
			Checks: map[string]string{"database": "ok", "cache": "ok"},
		}, body)
	})

	t.Run("database down", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
		assert.Equal(t, "database unavailable", body.Error.Message)
	})

	t.Run("cache down", func(t *testing.T) {
		dbMock.ExpectPing()
		cacheErr = errors.New("connection refused")

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "cache unavailable", decodeError(t, resp).Error.Message)
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", wrapKind(service.ErrValidation, "title is required"), http.StatusBadRequest, "VALIDATION_FAILED", "title is required: validation failed"},
		{"unauthorized", service.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED", service.ErrUnauthorized.Error()},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "FORBIDDEN", service.ErrForbidden.Error()},
		{"not found", service.ErrNotFound, http.StatusNotFound, "NOT_FOUND", service.ErrNotFound.Error()},
		{"conflict", service.ErrConflict, http.StatusConflict, "CONFLICT", service.ErrConflict.Error()},
		{"too large", service.ErrTooLarge, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", service.ErrTooLarge.Error()},
		{"unsupported media", service.ErrUnsupportedMedia, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", service.ErrUnsupportedMedia.Error()},
		{"bad request", badRequest("INVALID_ID", "invalid id format"), http.StatusBadRequest, "INVALID_ID", "invalid id format"},
		{"internal", errors.New("pq: connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(nil)
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tt.err) })

			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			res := decodeError(t, resp)
			assert.Equal(t, tt.wantCode, res.Error.Code)
			assert.Equal(t, tt.wantMsg, res.Error.Message)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"unauthorized keeps message", fiber.NewError(fiber.StatusUnauthorized, "token has been revoked"), http.StatusUnauthorized, "UNAUTHORIZED", "token has been revoked"},
		{"forbidden keeps message", fiber.NewError(fiber.StatusForbidden, "forbidden: admin only"), http.StatusForbidden, "FORBIDDEN", "forbidden: admin only"},
		{"too large", fiber.ErrRequestEntityTooLarge, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "request body too large"},
		{"rate limited", fiber.ErrTooManyRequests, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "too many requests"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(nil)
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			res := decodeError(t, resp)
			assert.Equal(t, tt.wantCode, res.Error.Code)
			assert.Equal(t, tt.wantMsg, res.Error.Message)
		})
	}
}

func TestServeUpload(t *testing.T) {
	mockSvc := new(serviceMocks.MockFileService)
	app := newApp(nil)
	app.Get("/uploads/*", ServeUpload(mockSvc))

	t.Run("success", func(t *testing.T) {
		data := []byte("\x89PNG\r\n\x1a\n")
		mockSvc.On("Open", mock.Anything, "products/abc.png").
			Return(io.NopCloser(bytes.NewReader(data)), storage.ObjectAttrs{Key: "products/abc.png", Size: int64(len(data)), ContentType: "image/png"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/uploads/products/abc.png", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
		assert.Equal(t, "nosniff", resp.Header.Get(fiber.HeaderXContentTypeOptions))
		got, _ := io.ReadAll(resp.Body)
		assert.Equal(t, data, got)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Open", mock.Anything, "reviews/missing.png").
			Return(nil, storage.ObjectAttrs{}, wrapKind(service.ErrNotFound, "file")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/uploads/reviews/missing.png", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestPresignUpload(t *testing.T) {
	mockSvc := new(serviceMocks.MockFileService)
	app := newApp(consumerPrincipal)
	app.Get("/presign", PresignUpload(mockSvc))

	t.Run("success", func(t *testing.T) {
		link := &service.PresignedLink{URL: "https://store/products/a.png?sig=x"}
		mockSvc.On("Presign", mock.Anything, "/uploads/products/a.png").Return(link, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/presign?path=/uploads/products/a.png", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got service.PresignedLink
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, link.URL, got.URL)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not an upload path", func(t *testing.T) {
		mockSvc.On("Presign", mock.Anything, "/etc/passwd").Return(nil, wrapKind(service.ErrValidation, "bad path")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/presign?path=/etc/passwd", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

type routeMocks struct {
	auth        *serviceMocks.MockAuthService
	consumers   *serviceMocks.MockConsumerService
	retailers   *serviceMocks.MockRetailerService
	products    *serviceMocks.MockProductService
	reviews     *serviceMocks.MockReviewService
	collections *serviceMocks.MockCollectionService
	files       *serviceMocks.MockFileService
}

func newRoutedApp() (*fiber.App, *routeMocks) {
	m := &routeMocks{
		auth:        new(serviceMocks.MockAuthService),
		consumers:   new(serviceMocks.MockConsumerService),
		retailers:   new(serviceMocks.MockRetailerService),
		products:    new(serviceMocks.MockProductService),
		reviews:     new(serviceMocks.MockReviewService),
		collections: new(serviceMocks.MockCollectionService),
		files:       new(serviceMocks.MockFileService),
	}
	m.auth.On("Authenticate", mock.Anything, "admin-token").Return(adminPrincipal, nil).Maybe()
	m.auth.On("Authenticate", mock.Anything, "consumer-token").Return(consumerPrincipal, nil).Maybe()
	m.auth.On("Authenticate", mock.Anything, "retailer-token").Return(retailerPrincipal, nil).Maybe()
	m.auth.On("Authenticate", mock.Anything, "revoked-token").Return(nil, wrapKind(service.ErrUnauthorized, "token has been revoked")).Maybe()

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterRoutes(app, Dependencies{
		Auth:        m.auth,
		Consumers:   m.consumers,
		Retailers:   m.retailers,
		Products:    m.products,
		Reviews:     m.reviews,
		Collections: m.collections,
		Files:       m.files,
	})
	return app, m
}

func withToken(req *http.Request, token string) *http.Request {
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	return req
}

func TestRouting(t *testing.T) {
	app, m := newRoutedApp()

	t.Run("not found route", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/non-existent", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/health", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("public product listing", func(t *testing.T) {
		page := &service.Page[model.Product]{Items: []model.Product{{ID: uuid.NewString()}}}
		m.products.On("List", mock.Anything, 2, 5, "phone").Return(page, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/products?page=2&size=5&search=phone", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		m.products.AssertExpectations(t)
	})

	t.Run("isLiked is not captured by :id", func(t *testing.T) {
		pid, uid := uuid.NewString(), uuid.NewString()
		m.products.On("IsLiked", mock.Anything, pid, uid).Return(true, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/products/isLiked?product_id="+pid+"&user_id="+uid, nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, true, body["liked"])
		m.products.AssertExpectations(t)
	})

	t.Run("review paginated is not captured by :id", func(t *testing.T) {
		page := &service.Page[model.Review]{Items: []model.Review{}}
		m.reviews.On("List", mock.Anything, 0, 0, service.ReviewFilter{Sentiment: "happy"}).Return(page, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/reviews/paginated?sentiment=happy", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		m.reviews.AssertExpectations(t)
	})

	t.Run("missing token", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/api/products", `{"title":"x"}`))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		res := decodeError(t, resp)
		assert.Equal(t, "UNAUTHORIZED", res.Error.Code)
		assert.Equal(t, "missing or malformed bearer token", res.Error.Message)
	})

	t.Run("revoked token", func(t *testing.T) {
		resp, _ := app.Test(withToken(httptest.NewRequest(http.MethodGet, "/api/auth/current-user", nil), "revoked-token"))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("consumer cannot create products", func(t *testing.T) {
		resp, _ := app.Test(withToken(jsonRequest(http.MethodPost, "/api/products", `{"title":"x"}`), "consumer-token"))

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		res := decodeError(t, resp)
		assert.Equal(t, "FORBIDDEN", res.Error.Code)
		assert.Equal(t, "forbidden: retailer or admin only", res.Error.Message)
	})

	t.Run("retailer creates product", func(t *testing.T) {
		created := &model.Product{ID: uuid.NewString(), Title: "x", RetailerAuthID: retailerPrincipal.ID}
		m.products.On("Create", mock.Anything, retailerPrincipal, mock.AnythingOfType("service.CreateProductInput")).Return(created, nil).Once()

		resp, _ := app.Test(withToken(jsonRequest(http.MethodPost, "/api/products", `{"title":"x"}`), "retailer-token"))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		m.products.AssertExpectations(t)
	})

	t.Run("admin area rejects retailer", func(t *testing.T) {
		resp, _ := app.Test(withToken(httptest.NewRequest(http.MethodGet, "/api/admin/consumers", nil), "retailer-token"))

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "forbidden: admin only", decodeError(t, resp).Error.Message)
	})

	t.Run("admin lists consumers", func(t *testing.T) {
		m.consumers.On("FindAll", mock.Anything).Return([]model.Consumer{{ID: uuid.NewString()}}, nil).Once()

		resp, _ := app.Test(withToken(httptest.NewRequest(http.MethodGet, "/api/admin/consumers", nil), "admin-token"))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		m.consumers.AssertExpectations(t)
	})

	t.Run("retailer delete is admin only", func(t *testing.T) {
		resp, _ := app.Test(withToken(httptest.NewRequest(http.MethodDelete, "/api/retailers/"+retailerPrincipal.ID, nil), "retailer-token"))

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("collections reject retailers", func(t *testing.T) {
		resp, _ := app.Test(withToken(httptest.NewRequest(http.MethodGet, "/api/collections/"+retailerPrincipal.ID+"/reviews", nil), "retailer-token"))

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("public review like check", func(t *testing.T) {
		rid, uid := uuid.NewString(), uuid.NewString()
		m.reviews.On("IsLikedBy", mock.Anything, rid, uid).Return(false, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/reviews/"+rid+"/islikedby/"+uid, nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		m.reviews.AssertExpectations(t)
	})

	t.Run("uploads", func(t *testing.T) {
		m.files.On("Open", mock.Anything, "profile-pictures/a.jpg").
			Return(io.NopCloser(strings.NewReader("jpeg")), storage.ObjectAttrs{ContentType: "image/jpeg", Size: 4}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/uploads/profile-pictures/a.jpg", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/jpeg", resp.Header.Get(fiber.HeaderContentType))
		m.files.AssertExpectations(t)
	})
}
