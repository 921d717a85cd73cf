package handler

import (
	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/http/middleware"
	"reviewapi/internal/service"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerConsumerRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	FullName       string `json:"full_name" validate:"required"`
	Username       string `json:"username" validate:"required,max=64"`
	PhoneNumber    string `json:"phone_number" validate:"required"`
	DOB            string `json:"dob" validate:"required"`
	Gender         string `json:"gender" validate:"required"`
	Country        string `json:"country" validate:"required"`
	ProfilePicture string `json:"profile_picture"`
}

type registerRetailerRequest struct {
	Email               string `json:"email" validate:"required,email"`
	Password            string `json:"password" validate:"required,min=6"`
	OwnerName           string `json:"owner_name" validate:"required"`
	OrganizationName    string `json:"organization_name" validate:"required"`
	Username            string `json:"username" validate:"required,max=64"`
	PhoneNumber         string `json:"phone_number" validate:"required"`
	DateOfEstablishment string `json:"date_of_establishment"`
	Country             string `json:"country"`
	ProfilePicture      string `json:"profile_picture"`
}

// Login exchanges credentials for a token.
//
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} service.AuthResult
// @Failure 401 {object} errorPayload
// @Router /api/auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		res, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// RegisterConsumer signs up a consumer account.
//
// @Summary Register consumer
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerConsumerRequest true "Consumer"
// @Success 201 {object} service.AuthResult
// @Failure 409 {object} errorPayload
// @Router /api/auth/register/consumer [post]
func RegisterConsumer(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerConsumerRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		res, err := svc.RegisterConsumer(c.UserContext(), service.RegisterConsumerInput{
			Email:          req.Email,
			Password:       req.Password,
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
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// RegisterRetailer signs up a retailer account.
//
// @Summary Register retailer
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRetailerRequest true "Retailer"
// @Success 201 {object} service.AuthResult
// @Failure 409 {object} errorPayload
// @Router /api/auth/register/retailer [post]
func RegisterRetailer(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRetailerRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}
		res, err := svc.RegisterRetailer(c.UserContext(), service.RegisterRetailerInput{
			Email:               req.Email,
			Password:            req.Password,
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
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// Logout revokes the presented token.
//
// @Summary Log out
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /api/auth/logout [post]
func Logout(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Logout(c.UserContext(), middleware.TokenFrom(c)); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "logged out"})
	}
}

// CurrentUser returns the caller's account.
//
// @Summary Current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.Principal
// @Router /api/auth/current-user [get]
func CurrentUser(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := middleware.PrincipalFrom(c)
		if p == nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		u, err := svc.CurrentUser(c.UserContext(), p.ID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(u)
	}
}
