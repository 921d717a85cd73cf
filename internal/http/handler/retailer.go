package handler

import (
	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/http/middleware"
	"reviewapi/internal/model"
	"reviewapi/internal/service"
)

type createRetailerRequest struct {
	AuthID              string `json:"auth_id" validate:"omitempty,uuid"`
	OwnerName           string `json:"owner_name" validate:"required"`
	OrganizationName    string `json:"organization_name" validate:"required"`
	Username            string `json:"username" validate:"required,max=64"`
	PhoneNumber         string `json:"phone_number"`
	DateOfEstablishment string `json:"date_of_establishment"`
	Country             string `json:"country"`
	ProfilePicture      string `json:"profile_picture"`
}

// CreateRetailer creates a retailer profile; admins may pass auth_id.
//
// @Summary Create retailer profile
// @Tags retailers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body createRetailerRequest true "Retailer"
// @Success 201 {object} model.Retailer
// @Router /api/admin/retailers [post]
func CreateRetailer(svc service.RetailerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createRetailerRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		out, err := svc.Create(c.UserContext(), middleware.PrincipalFrom(c), service.CreateRetailerInput{
			AuthID:              req.AuthID,
			OwnerName:           req.OwnerName,
			OrganizationName:    req.OrganizationName,
			Username:            req.Username,
			PhoneNumber:         req.PhoneNumber,
			DateOfEstablishment: req.DateOfEstablishment,
			Country:             req.Country,
			ProfilePicture:      req.ProfilePicture,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// ListRetailers returns every retailer profile.
//
// @Summary List retailers
// @Tags retailers
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Retailer
// @Router /api/admin/retailers [get]
func ListRetailers(svc service.RetailerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.FindAll(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// PaginatedRetailers pages through retailers, optionally filtered by search.
//
// @Summary Paginated retailers
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Param search query string false "Username or organization name"
// @Success 200 {object} service.Page[model.Retailer]
// @Router /api/admin/paginated_retailers [get]
func PaginatedRetailers(svc service.RetailerService) fiber.Handler {
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

// GetRetailer returns a retailer by profile id.
//
// @Summary Get retailer
// @Tags retailers
// @Security BearerAuth
// @Produce json
// @Param id path string true "Retailer ID"
// @Success 200 {object} model.Retailer
// @Failure 404 {object} errorPayload
// @Router /api/retailers/{id} [get]
func GetRetailer(svc service.RetailerService) fiber.Handler {
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

// GetRetailerByAuthID returns a retailer by user id.
func GetRetailerByAuthID(svc service.RetailerService) fiber.Handler {
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

// GetRetailerByUsername returns a retailer by username.
func GetRetailerByUsername(svc service.RetailerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.GetByUsername(c.UserContext(), c.Params("username"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// UpdateRetailer applies a partial update to a retailer profile.
//
// @Summary Update retailer
// @Tags retailers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Retailer ID"
// @Param body body model.RetailerUpdate true "Fields to change"
// @Success 200 {object} model.Retailer
// @Router /api/retailers/{id} [put]
func UpdateRetailer(svc service.RetailerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuidParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req model.RetailerUpdate
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

// UpdateRetailerProfilePicture replaces the profile picture of the retailer with the given user id.
//
// @Summary Upload retailer profile picture
// @Tags retailers
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "User ID"
// @Param image formData file true "Image"
// @Success 200 {object} model.Retailer
// @Failure 415 {object} errorPayload
// @Router /api/retailers/auth/{id}/profile-picture [put]
func UpdateRetailerProfilePicture(svc service.RetailerService) fiber.Handler {
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

// DeleteRetailer deletes the retailer account with the given user id.
//
// @Summary Delete retailer
// @Tags retailers
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Router /api/retailers/{id} [delete]
func DeleteRetailer(svc service.RetailerService) fiber.Handler {
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
