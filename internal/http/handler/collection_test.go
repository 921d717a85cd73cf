package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reviewapi/internal/model"
	"reviewapi/internal/service"
	serviceMocks "reviewapi/internal/service/mocks"
)

func TestCollectionHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockCollectionService)
	app := newApp(consumerPrincipal)
	app.Post("/review/save", SaveReview(mockSvc))
	app.Post("/review/unsave", UnsaveReview(mockSvc))
	app.Post("/product/save", SaveProduct(mockSvc))
	app.Post("/product/unsave", UnsaveProduct(mockSvc))
	app.Get("/:consumerAuthId/reviews", SavedReviews(mockSvc))
	app.Get("/:consumerAuthId/products", SavedProducts(mockSvc))

	t.Run("save review for caller", func(t *testing.T) {
		rid := uuid.NewString()
		col := &model.Collection{ConsumerAuthID: consumerPrincipal.ID, SavedReviews: []string{rid}, SavedProducts: []string{}}
		mockSvc.On("SaveReview", mock.Anything, consumerPrincipal, "", rid).Return(col, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/review/save", map[string]string{"review_id": rid}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got model.Collection
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, []string{rid}, got.SavedReviews)
		mockSvc.AssertExpectations(t)
	})

	t.Run("save missing review", func(t *testing.T) {
		rid := uuid.NewString()
		mockSvc.On("SaveReview", mock.Anything, consumerPrincipal, "", rid).Return(nil, wrapKind(service.ErrNotFound, "review")).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/review/save", map[string]string{"review_id": rid}))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unsave review of another consumer", func(t *testing.T) {
		rid, other := uuid.NewString(), uuid.NewString()
		mockSvc.On("UnsaveReview", mock.Anything, consumerPrincipal, other, rid).
			Return(nil, wrapKind(service.ErrForbidden, "cannot access another consumer's collection")).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/review/unsave", map[string]string{"review_id": rid, "consumer_auth_id": other}))

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("save and unsave product", func(t *testing.T) {
		pid := uuid.NewString()
		mockSvc.On("SaveProduct", mock.Anything, consumerPrincipal, "", pid).Return(&model.Collection{SavedProducts: []string{pid}}, nil).Once()
		mockSvc.On("UnsaveProduct", mock.Anything, consumerPrincipal, "", pid).Return(&model.Collection{SavedProducts: []string{}}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/product/save", map[string]string{"product_id": pid}))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = app.Test(jsonRequest(http.MethodPost, "/product/unsave", map[string]string{"product_id": pid}))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("product id required", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/product/save", `{}`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, resp).Error.Code)
	})

	t.Run("saved reviews page", func(t *testing.T) {
		page := &service.Page[model.Review]{
			Items:      []model.Review{{ID: uuid.NewString()}},
			Pagination: service.Pagination{Page: 1, Size: 10, TotalItems: 1, TotalPages: 1},
		}
		mockSvc.On("SavedReviews", mock.Anything, consumerPrincipal, consumerPrincipal.ID, 1, 10).Return(page, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/"+consumerPrincipal.ID+"/reviews?page=1&size=10", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("saved products invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/me/products", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})
}
