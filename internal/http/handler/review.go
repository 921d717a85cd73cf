package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/http/middleware"
	"reviewapi/internal/model"
	"reviewapi/internal/service"
)

type createReviewRequest struct {
	Title          string     `json:"title" validate:"required,max=200"`
	Description    string     `json:"description"`
	Sentiments     stringList `json:"sentiments" swaggertype:"array,string"`
	ProductName    string     `json:"product_name"`
	ProductImage   string     `json:"product_image"`
	AuthorID       string     `json:"author_id" validate:"omitempty,uuid"`
	AuthorLocation string     `json:"author_location"`
}

type updateReviewRequest struct {
	Title          *string     `json:"title" validate:"omitempty,max=200"`
	Description    *string     `json:"description"`
	Sentiments     *stringList `json:"sentiments" swaggertype:"array,string"`
	ProductName    *string     `json:"product_name"`
	ProductImage   *string     `json:"product_image"`
	AuthorLocation *string     `json:"author_location"`
}

type likeReviewRequest struct {
	UserID string `json:"user_id" validate:"omitempty,uuid"`
}

// CreateReview posts a review as the caller.
//
// @Summary Create review
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body createReviewRequest true "Review"
// @Success 201 {object} model.Review
// @Router /api/reviews [post]
func CreateReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createReviewRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		out, err := svc.Create(c.UserContext(), middleware.PrincipalFrom(c), service.CreateReviewInput{
			Title:          req.Title,
			Description:    req.Description,
			Sentiments:     req.Sentiments,
			ProductName:    req.ProductName,
			ProductImage:   req.ProductImage,
			AuthorID:       req.AuthorID,
			AuthorLocation: req.AuthorLocation,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// ListReviews pages through reviews, newest first.
//
// @Summary Paginated reviews
// @Tags reviews
// @Produce json
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Param search query string false "Title, description or product name contains"
// @Param sentiment query string false "Exact sentiment"
// @Param product_name query string false "Product name contains"
// @Success 200 {object} service.Page[model.Review]
// @Router /api/reviews/paginated [get]
func ListReviews(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, size, err := pageParams(c)
		if err != nil {
			return respondError(c, err)
		}
		out, err := svc.List(c.UserContext(), page, size, service.ReviewFilter{
			Search:      c.Query("search"),
			Sentiment:   c.Query("sentiment"),
			ProductName: c.Query("product_name"),
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// ListReviewsByAuthor returns every review of an author.
//
// @Summary Reviews by author
// @Tags reviews
// @Produce json
// @Param authorId path string true "Author user ID"
// @Success 200 {array} model.Review
// @Router /api/reviews/author/{authorId} [get]
func ListReviewsByAuthor(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorID, err := uuidParam(c, "authorId")
		if err != nil {
			return respondError(c, err)
		}
		out, err := svc.ListByAuthor(c.UserContext(), authorID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// GetReview returns one review.
//
// @Summary Get review
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} model.Review
// @Failure 404 {object} errorPayload
// @Router /api/reviews/{id} [get]
func GetReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuidParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		out, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// UpdateReview applies a partial update.
//
// @Summary Update review
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param body body updateReviewRequest true "Fields to change"
// @Success 200 {object} model.Review
// @Router /api/reviews/{id} [put]
func UpdateReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuidParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req updateReviewRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		u := model.ReviewUpdate{
			Title:          req.Title,
			Description:    req.Description,
			ProductName:    req.ProductName,
			ProductImage:   req.ProductImage,
			AuthorLocation: req.AuthorLocation,
		}
		if req.Sentiments != nil {
			s := []string(*req.Sentiments)
			u.Sentiments = &s
		}
		out, err := svc.Update(c.UserContext(), middleware.PrincipalFrom(c), id, u)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// DeleteReview removes a review and its image.
//
// @Summary Delete review
// @Tags reviews
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 204
// @Router /api/reviews/{id} [delete]
func DeleteReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuidParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		if err := svc.Delete(c.UserContext(), middleware.PrincipalFrom(c), id); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// UploadReviewImage stores the review image (multipart field "image").
//
// @Summary Upload review image
// @Tags reviews
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Review ID"
// @Param image formData file true "Image"
// @Success 200 {object} model.Review
// @Router /api/reviews/{id}/image [post]
func UploadReviewImage(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuidParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		up, done, err := readUpload(c, "image")
		if err != nil {
			return respondError(c, err)
		}
		defer done()

		out, err := svc.UploadImage(c.UserContext(), middleware.PrincipalFrom(c), id, up)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// LikeReview likes a review and returns it.
//
// @Summary Like review
// @Tags reviews
// @Security BearerAuth
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} model.Review
// @Router /api/reviews/{id}/like [post]
func LikeReview(svc service.ReviewService) fiber.Handler {
	return reviewLike(svc.Like)
}

// UnlikeReview withdraws a like and returns the review.
//
// @Summary Unlike review
// @Tags reviews
// @Security BearerAuth
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} model.Review
// @Router /api/reviews/{id}/unlike [post]
func UnlikeReview(svc service.ReviewService) fiber.Handler {
	return reviewLike(svc.Unlike)
}

type reviewLikeFunc func(ctx context.Context, actor *model.Principal, id, userID string) (*model.Review, error)

func reviewLike(apply reviewLikeFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuidParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req likeReviewRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		out, err := apply(c.UserContext(), middleware.PrincipalFrom(c), id, req.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// IsReviewLikedBy reports whether the user likes the review. Unknown reviews report false.
//
// @Summary Is review liked by user
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]bool
// @Router /api/reviews/{id}/islikedby/{userId} [get]
func IsReviewLikedBy(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuidParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		userID, err := uuidParam(c, "userId")
		if err != nil {
			return respondError(c, err)
		}
		liked, err := svc.IsLikedBy(c.UserContext(), id, userID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"liked": liked})
	}
}
