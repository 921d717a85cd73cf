package handler

import (
	"github.com/gofiber/fiber/v2"

	"reviewapi/internal/service"
)

// ServeUpload streams a stored image back to the client.
//
// @Summary Fetch uploaded file
// @Tags uploads
// @Produce octet-stream
// @Param path path string true "Object key, e.g. products/<id>.png"
// @Success 200 {file} binary
// @Failure 404 {object} errorPayload
// @Router /uploads/{path} [get]
func ServeUpload(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, info, err := svc.Open(c.UserContext(), c.Params("*"))
		if err != nil {
			return respondError(c, err)
		}

		ct := info.ContentType
		if ct == "" {
			ct = fiber.MIMEOctetStream
		}
		c.Set(fiber.HeaderContentType, ct)
		c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
		c.Set(fiber.HeaderXContentTypeOptions, "nosniff")

		size := int(info.Size)
		if size <= 0 {
			size = -1
		}
		// fasthttp closes rc once the body has been written.
		return c.SendStream(rc, size)
	}
}

// PresignUpload returns a short-lived direct download link for an uploaded file.
//
// @Summary Presigned upload link
// @Tags uploads
// @Security BearerAuth
// @Produce json
// @Param path query string true "Public path, e.g. /uploads/products/<id>.png"
// @Success 200 {object} service.PresignedLink
// @Failure 400 {object} errorPayload
// @Router /api/uploads/presign [get]
func PresignUpload(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		link, err := svc.Presign(c.UserContext(), c.Query("path"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(link)
	}
}
