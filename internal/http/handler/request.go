package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"reviewapi/internal/service"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind decodes a JSON body into dst and validates it. An empty body leaves dst untouched.
func bind(c *fiber.Ctx, dst any) error {
	if len(bytes.TrimSpace(c.Body())) > 0 {
		if err := c.BodyParser(dst); err != nil {
			return badRequest("INVALID_BODY", "invalid request body")
		}
	}
	if err := validate.Struct(dst); err != nil {
		return badRequest("VALIDATION_FAILED", validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "uuid":
		return fe.Field() + " must be a valid id"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// uuidParam returns the named path parameter if it is a valid UUID.
func uuidParam(c *fiber.Ctx, name string) (string, error) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", badRequest("INVALID_ID", "invalid id format")
	}
	return id, nil
}

// pageParams reads page and size; missing values take the service defaults.
func pageParams(c *fiber.Ctx) (page, size int, err error) {
	if page, err = intQuery(c, "page"); err != nil {
		return 0, 0, badRequest("INVALID_PAGE", "invalid page")
	}
	if size, err = intQuery(c, "size"); err != nil {
		return 0, 0, badRequest("INVALID_SIZE", "invalid size")
	}
	return page, size, nil
}

func intQuery(c *fiber.Ctx, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// readUpload opens the multipart image field. The caller must call the returned closer.
func readUpload(c *fiber.Ctx, field string) (service.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return service.Upload{}, nil, badRequest("FILE_REQUIRED", field+" file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return service.Upload{}, nil, badRequest("FILE_OPEN_ERROR", "cannot open uploaded file")
	}
	return service.Upload{Reader: f, Filename: fh.Filename, Size: fh.Size}, func() { _ = f.Close() }, nil
}

// stringList accepts a JSON array, a JSON-array string or a comma separated string.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	if len(b) > 0 && b[0] == '[' {
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*l = service.CleanList(items)
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*l = service.ParseList(raw)
	return nil
}
