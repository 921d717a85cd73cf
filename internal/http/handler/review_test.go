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

func TestCreateReview(t *testing.T) {
	mockSvc := new(serviceMocks.MockReviewService)
	app := newApp(consumerPrincipal)
	app.Post("/reviews", CreateReview(mockSvc))

	t.Run("created", func(t *testing.T) {
		want := service.CreateReviewInput{Title: "Great", Sentiments: []string{"happy", "calm"}, ProductName: "Phone"}
		mockSvc.On("Create", mock.Anything, consumerPrincipal, want).
			Return(&model.Review{ID: uuid.NewString(), Title: "Great", AuthorID: consumerPrincipal.ID}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/reviews", `{"title":"Great","sentiments":"happy, calm,","product_name":"Phone"}`))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("title required", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/reviews", `{"description":"meh"}`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "title is required", decodeError(t, resp).Error.Message)
	})
}

func TestListReviews(t *testing.T) {
	mockSvc := new(serviceMocks.MockReviewService)
	app := newApp(nil)
	app.Get("/reviews/paginated", ListReviews(mockSvc))

	filter := service.ReviewFilter{Search: "great", Sentiment: "happy", ProductName: "phone"}
	page := &service.Page[model.Review]{
		Items:      []model.Review{{ID: uuid.NewString()}},
		Pagination: service.Pagination{Page: 2, Size: 1, TotalItems: 3, TotalPages: 3},
	}
	mockSvc.On("List", mock.Anything, 2, 1, filter).Return(page, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/reviews/paginated?page=2&size=1&search=great&sentiment=happy&product_name=phone", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got service.Page[model.Review]
	json.NewDecoder(resp.Body).Decode(&got)
	assert.Equal(t, page.Pagination, got.Pagination)
	mockSvc.AssertExpectations(t)
}

func TestListReviewsByAuthor(t *testing.T) {
	mockSvc := new(serviceMocks.MockReviewService)
	app := newApp(nil)
	app.Get("/reviews/author/:authorId", ListReviewsByAuthor(mockSvc))

	author := uuid.NewString()
	mockSvc.On("ListByAuthor", mock.Anything, author).Return([]model.Review{{AuthorID: author}, {AuthorID: author}}, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/reviews/author/"+author, nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got []model.Review
	json.NewDecoder(resp.Body).Decode(&got)
	assert.Len(t, got, 2)
	mockSvc.AssertExpectations(t)
}

func TestUpdateReview(t *testing.T) {
	mockSvc := new(serviceMocks.MockReviewService)
	app := newApp(consumerPrincipal)
	app.Put("/reviews/:id", UpdateReview(mockSvc))

	t.Run("sentiments replaced", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Update", mock.Anything, consumerPrincipal, id, mock.MatchedBy(func(u model.ReviewUpdate) bool {
			return u.Title == nil && u.Sentiments != nil && len(*u.Sentiments) == 2
		})).Return(&model.Review{ID: id}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/reviews/"+id, `{"sentiments":["a","b"]}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("someone else's review", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Update", mock.Anything, consumerPrincipal, id, mock.Anything).Return(nil, wrapKind(service.ErrForbidden, "not yours")).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/reviews/"+id, `{"title":"x"}`))

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteReview(t *testing.T) {
	mockSvc := new(serviceMocks.MockReviewService)
	app := newApp(consumerPrincipal)
	app.Delete("/reviews/:id", DeleteReview(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Delete", mock.Anything, consumerPrincipal, id).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/reviews/"+id, nil))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Delete", mock.Anything, consumerPrincipal, id).Return(wrapKind(service.ErrNotFound, "review")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/reviews/"+id, nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUploadReviewImage(t *testing.T) {
	mockSvc := new(serviceMocks.MockReviewService)
	app := newApp(consumerPrincipal)
	app.Post("/reviews/:id/image", UploadReviewImage(mockSvc))

	id := uuid.NewString()
	mockSvc.On("UploadImage", mock.Anything, consumerPrincipal, id, mock.Anything).
		Return(nil, wrapKind(service.ErrTooLarge, "image exceeds limit")).Once()

	resp, _ := app.Test(imageRequest(http.MethodPost, "/reviews/"+id+"/image", "image"))

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", decodeError(t, resp).Error.Code)
	mockSvc.AssertExpectations(t)
}

func TestLikeReview(t *testing.T) {
	mockSvc := new(serviceMocks.MockReviewService)
	app := newApp(adminPrincipal)
	app.Post("/reviews/:id/like", LikeReview(mockSvc))
	app.Post("/reviews/:id/unlike", UnlikeReview(mockSvc))

	t.Run("like as caller without body", func(t *testing.T) {
		id := uuid.NewString()
		mockSvc.On("Like", mock.Anything, adminPrincipal, id, "").
			Return(&model.Review{ID: id, Likes: 1, LikedBy: []string{adminPrincipal.ID}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/reviews/"+id+"/like", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got model.Review
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, 1, got.Likes)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unlike on behalf of a user", func(t *testing.T) {
		id, user := uuid.NewString(), uuid.NewString()
		mockSvc.On("Unlike", mock.Anything, adminPrincipal, id, user).Return(&model.Review{ID: id}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/reviews/"+id+"/unlike", map[string]string{"user_id": user}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid user id", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/reviews/"+uuid.NewString()+"/like", map[string]string{"user_id": "bob"}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "user_id must be a valid id", decodeError(t, resp).Error.Message)
	})
}
