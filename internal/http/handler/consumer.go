package handler

import (
	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/http/middleware"
	"reviewapi/internal/model"
	"reviewapi/internal/service"
)

type createConsumerRequest struct {
	AuthID         string `json:"auth_id" validate:"omitempty,uuid"`
	FullName       string `json:"full_name" validate:"required"`
	Username       string `json:"username" validate:"required,max=64"`
	PhoneNumber    string `json:"phone_number"`
	DOB            string `json:"dob"`
	Gender         string `json:"gender"`
	Country        string `json:"country"`
	ProfilePicture string `json:"profile_picture"`
}

// CreateConsumer creates a profile for the caller, or for auth_id when the caller is an admin.
//
// @Summary Create consumer profile
// @Tags consumers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body createConsumerRequest true "Consumer"
// @Success 201 {object} model.Consumer
// @Router /api/consumers [post]
func CreateConsumer(svc service.ConsumerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createConsumerRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		out, err := svc.Create(c.UserContext(), middleware.PrincipalFrom(c), service.CreateConsumerInput{
			AuthID:         req.AuthID,
			FullName:       req.FullName,
			Username:       req.Username,
			PhoneNumber:    req.PhoneNumber,
			DOB:            req.DOB,
			Gender:         req.Gender,
			Country:        req.Country,
			ProfilePicture: req.ProfilePicture,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// ListConsumers returns every consumer profile.
//
// @Summary List consumers
// @Tags consumers
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Consumer
// @Router /api/consumers [get]
func ListConsumers(svc service.ConsumerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.FindAll(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// PaginatedConsumers pages through consumers, optionally filtered by search.
//
// @Summary Paginated consumers
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Param search query string false "Username or full name"
// @Success 200 {object} service.Page[model.Consumer]
// @Router /api/admin/paginated_consumers [get]
func PaginatedConsumers(svc service.ConsumerService) fiber.Handler {
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

// GetConsumer returns a consumer by profile id.
//
// @Summary Get consumer
// @Tags consumers
// @Security BearerAuth
// @Produce json
// @Param id path string true "Consumer ID"
// @Success 200 {object} model.Consumer
// @Failure 404 {object} errorPayload
// @Router /api/consumers/{id} [get]
func GetConsumer(svc service.ConsumerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuidParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		out, err := svc.GetByID(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// GetConsumerByAuthID returns a consumer by user id.
func GetConsumerByAuthID(svc service.ConsumerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authID, err := uuidParam(c, "authId")
		if err != nil {
			return respondError(c, err)
		}
		out, err := svc.GetByAuthID(c.UserContext(), authID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// GetConsumerByUsername returns a consumer by username.
func GetConsumerByUsername(svc service.ConsumerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.GetByUsername(c.UserContext(), c.Params("username"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// UpdateConsumer applies a partial update to a consumer profile.
//
// @Summary Update consumer
// @Tags consumers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Consumer ID"
// @Param body body model.ConsumerUpdate true "Fields to change"
// @Success 200 {object} model.Consumer
// @Router /api/consumers/{id} [put]
func UpdateConsumer(svc service.ConsumerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuidParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req model.ConsumerUpdate
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		out, err := svc.Update(c.UserContext(), middleware.PrincipalFrom(c), id, req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// UpdateConsumerProfilePicture replaces the profile picture of the consumer with the given user id.
//
// @Summary Upload consumer profile picture
// @Tags consumers
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "User ID"
// @Param image formData file true "Image"
// @Success 200 {object} model.Consumer
// @Failure 415 {object} errorPayload
// @Router /api/admin/consumers/auth/{id}/profile-picture [put]
func UpdateConsumerProfilePicture(svc service.ConsumerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authID, err := uuidParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		up, done, err := readUpload(c, "image")
		if err != nil {
			return respondError(c, err)
		}
		defer done()

		out, err := svc.UpdateProfilePicture(c.UserContext(), middleware.PrincipalFrom(c), authID, up)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// DeleteConsumer deletes the consumer account with the given user id.
//
// @Summary Delete consumer
// @Tags consumers
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Router /api/consumers/{id} [delete]
func DeleteConsumer(svc service.ConsumerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authID, err := uuidParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		if err := svc.Delete(c.UserContext(), middleware.PrincipalFrom(c), authID); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
