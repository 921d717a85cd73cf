package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/http/middleware"
	"reviewapi/internal/model"
	"reviewapi/internal/service"
)

type saveReviewRequest struct {
	ConsumerAuthID string `json:"consumer_auth_id" validate:"omitempty,uuid"`
	ReviewID       string `json:"review_id" validate:"required,uuid"`
}

type saveProductRequest struct {
	ConsumerAuthID string `json:"consumer_auth_id" validate:"omitempty,uuid"`
	ProductID      string `json:"product_id" validate:"required,uuid"`
}

type collectionFunc func(ctx context.Context, actor *model.Principal, consumerAuthID, itemID string) (*model.Collection, error)

// SaveReview adds a review to a consumer's collection. Saving twice is a no-op.
//
// @Summary Save review
// @Tags collections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body saveReviewRequest true "Review to save"
// @Success 200 {object} model.Collection
// @Router /api/collections/review/save [post]
func SaveReview(svc service.CollectionService) fiber.Handler {
	return reviewCollection(svc.SaveReview)
}

// UnsaveReview removes a review from a consumer's collection.
//
// @Summary Unsave review
// @Tags collections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body saveReviewRequest true "Review to remove"
// @Success 200 {object} model.Collection
// @Router /api/collections/review/unsave [post]
func UnsaveReview(svc service.CollectionService) fiber.Handler {
	return reviewCollection(svc.UnsaveReview)
}

// SaveProduct adds a product to a consumer's collection.
//
// @Summary Save product
// @Tags collections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body saveProductRequest true "Product to save"
// @Success 200 {object} model.Collection
// @Router /api/collections/product/save [post]
func SaveProduct(svc service.CollectionService) fiber.Handler {
	return productCollection(svc.SaveProduct)
}

// UnsaveProduct removes a product from a consumer's collection.
//
// @Summary Unsave product
// @Tags collections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body saveProductRequest true "Product to remove"
// @Success 200 {object} model.Collection
// @Router /api/collections/product/unsave [post]
func UnsaveProduct(svc service.CollectionService) fiber.Handler {
	return productCollection(svc.UnsaveProduct)
}

func reviewCollection(apply collectionFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req saveReviewRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		out, err := apply(c.UserContext(), middleware.PrincipalFrom(c), req.ConsumerAuthID, req.ReviewID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

func productCollection(apply collectionFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req saveProductRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		out, err := apply(c.UserContext(), middleware.PrincipalFrom(c), req.ConsumerAuthID, req.ProductID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// SavedReviews pages through the reviews a consumer saved.
//
// @Summary Saved reviews
// @Tags collections
// @Security BearerAuth
// @Produce json
// @Param consumerAuthId path string true "Consumer auth ID"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {object} service.Page[model.Review]
// @Router /api/collections/{consumerAuthId}/reviews [get]
func SavedReviews(svc service.CollectionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authID, err := uuidParam(c, "consumerAuthId")
		if err != nil {
			return respondError(c, err)
		}
		page, size, err := pageParams(c)
		if err != nil {
			return respondError(c, err)
		}
		out, err := svc.SavedReviews(c.UserContext(), middleware.PrincipalFrom(c), authID, page, size)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// SavedProducts pages through the products a consumer saved.
//
// @Summary Saved products
// @Tags collections
// @Security BearerAuth
// @Produce json
// @Param consumerAuthId path string true "Consumer auth ID"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {object} service.Page[model.Product]
// @Router /api/collections/{consumerAuthId}/products [get]
func SavedProducts(svc service.CollectionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authID, err := uuidParam(c, "consumerAuthId")
		if err != nil {
			return respondError(c, err)
		}
		page, size, err := pageParams(c)
		if err != nil {
			return respondError(c, err)
		}
		out, err := svc.SavedProducts(c.UserContext(), middleware.PrincipalFrom(c), authID, page, size)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}
