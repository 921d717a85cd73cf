package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"reviewapi/internal/http/middleware"
	"reviewapi/internal/model"
	"reviewapi/internal/service"
)

type createProductRequest struct {
	Title           string     `json:"title" validate:"required,max=200"`
	Description     string     `json:"description"`
	RetailerAuthID  string     `json:"retailer_auth_id" validate:"omitempty,uuid"`
	RetailerName    string     `json:"retailer_name"`
	RetailerIcon    string     `json:"retailer_icon"`
	TargetSentiment stringList `json:"target_sentiment" swaggertype:"array,string"`
}

type updateProductRequest struct {
	Title           *string     `json:"title" validate:"omitempty,max=200"`
	Description     *string     `json:"description"`
	RetailerName    *string     `json:"retailer_name"`
	RetailerIcon    *string     `json:"retailer_icon"`
	TargetSentiment *stringList `json:"target_sentiment" swaggertype:"array,string"`
}

type likeProductRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	UserID    string `json:"user_id" validate:"omitempty,uuid"`
}

// CreateProduct lists a new product.
//
// @Summary Create product
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body createProductRequest true "Product"
// @Success 201 {object} model.Product
// @Router /api/products [post]
func CreateProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createProductRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		out, err := svc.Create(c.UserContext(), middleware.PrincipalFrom(c), service.CreateProductInput{
			Title:           req.Title,
			Description:     req.Description,
			RetailerAuthID:  req.RetailerAuthID,
			RetailerName:    req.RetailerName,
			RetailerIcon:    req.RetailerIcon,
			TargetSentiment: req.TargetSentiment,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// ListProducts pages through products, optionally searching titles.
//
// @Summary List products
// @Tags products
// @Produce json
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Param search query string false "Title contains"
// @Success 200 {object} service.Page[model.Product]
// @Router /api/products [get]
func ListProducts(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, size, err := pageParams(c)
		if err != nil {
			return respondError(c, err)
		}
		out, err := svc.List(c.UserContext(), page, size, c.Query("search"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// ListProductsByRetailer pages through the products of one retailer.
//
// @Summary Products by retailer
// @Tags products
// @Produce json
// @Param authorId path string true "Retailer user ID"
// @Success 200 {object} service.Page[model.Product]
// @Router /api/products/author/{authorId} [get]
func ListProductsByRetailer(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authID, err := uuidParam(c, "authorId")
		if err != nil {
			return respondError(c, err)
		}
		page, size, err := pageParams(c)
		if err != nil {
			return respondError(c, err)
		}
		out, err := svc.ListByRetailer(c.UserContext(), authID, page, size)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// GetProduct returns one product.
//
// @Summary Get product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} errorPayload
// @Router /api/products/{id} [get]
func GetProduct(svc service.ProductService) fiber.Handler {
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

// UpdateProduct applies a partial update.
//
// @Summary Update product
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param body body updateProductRequest true "Fields to change"
// @Success 200 {object} model.Product
// @Router /api/products/{id} [put]
func UpdateProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuidParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req updateProductRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		u := model.ProductUpdate{
			Title:        req.Title,
			Description:  req.Description,
			RetailerName: req.RetailerName,
			RetailerIcon: req.RetailerIcon,
		}
		if req.TargetSentiment != nil {
			ts := []string(*req.TargetSentiment)
			u.TargetSentiment = &ts
		}
		out, err := svc.Update(c.UserContext(), middleware.PrincipalFrom(c), id, u)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// DeleteProduct removes a product and its image.
//
// @Summary Delete product
// @Tags products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204
// @Router /api/products/{id} [delete]
func DeleteProduct(svc service.ProductService) fiber.Handler {
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

// UploadProductImage stores the product image (multipart field "image").
//
// @Summary Upload product image
// @Tags products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Param image formData file true "Image"
// @Success 200 {object} model.Product
// @Failure 413 {object} errorPayload
// @Failure 415 {object} errorPayload
// @Router /api/products/{id}/image [post]
func UploadProductImage(svc service.ProductService) fiber.Handler {
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

// LikeProduct records a like from the caller (or user_id, for admins).
//
// @Summary Like product
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body likeProductRequest true "Like"
// @Success 200 {object} service.ProductLike
// @Router /api/products/like [post]
func LikeProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req likeProductRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		out, err := svc.Like(c.UserContext(), middleware.PrincipalFrom(c), req.ProductID, req.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// UnlikeProduct withdraws a like.
//
// @Summary Unlike product
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body likeProductRequest true "Like"
// @Success 200 {object} service.ProductLike
// @Router /api/products/unlike [post]
func UnlikeProduct(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req likeProductRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		out, err := svc.Unlike(c.UserContext(), middleware.PrincipalFrom(c), req.ProductID, req.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// IsProductLiked reports whether user_id likes product_id.
//
// @Summary Is product liked
// @Tags products
// @Produce json
// @Param product_id query string true "Product ID"
// @Param user_id query string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/products/isLiked [get]
func IsProductLiked(svc service.ProductService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, userID := c.Query("product_id"), c.Query("user_id")
		if _, err := uuid.Parse(productID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid product_id")
		}
		if _, err := uuid.Parse(userID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid user_id")
		}
		liked, err := svc.IsLiked(c.UserContext(), productID, userID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"product_id": productID, "user_id": userID, "liked": liked})
	}
}
