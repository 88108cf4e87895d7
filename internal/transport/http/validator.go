package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

// validationMiddleware parses and validates JSON bodies for the routes that
// take one, storing the result in c.Locals("validatedBody").
func validationMiddleware(c *fiber.Ctx) error {
	method := c.Method()
	if method == fiber.MethodGet || method == fiber.MethodDelete || method == fiber.MethodOptions {
		return c.Next()
	}

	path := c.Path()
	var requestType any

	switch {
	case strings.HasSuffix(path, "/matches") && method == fiber.MethodPost:
		requestType = &CreateMatchRequest{}
	case strings.HasSuffix(path, "/moves") && method == fiber.MethodPost:
		requestType = &MoveRequest{}
	case strings.HasSuffix(path, "/players") && method == fiber.MethodPut:
		requestType = &PlayersRequest{}
	default:
		return c.Next()
	}

	// An empty create body means manual vs manual
	if len(c.Body()) > 0 {
		if err := c.BodyParser(requestType); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid request body",
				Code:    ErrInvalidRequest,
				Details: err.Error(),
			})
		}
	}

	if errs := validate.Struct(requestType); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation failed",
			Code:    ErrInvalidRequest,
			Details: describeValidation(errs),
		})
	}

	c.Locals("validatedBody", requestType)
	return c.Next()
}

func describeValidation(errs error) string {
	verrs, ok := errs.(validator.ValidationErrors)
	if !ok {
		return errs.Error()
	}

	var details strings.Builder
	for _, err := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			fmt.Fprintf(&details, "%s is required", field)
		case "oneof":
			fmt.Fprintf(&details, "%s must be one of [%s]", field, err.Param())
		case "min":
			if err.Type().Kind() == reflect.String {
				fmt.Fprintf(&details, "%s must be at least %s characters", field, err.Param())
			} else {
				fmt.Fprintf(&details, "%s must be at least %s", field, err.Param())
			}
		case "max":
			if err.Type().Kind() == reflect.String {
				fmt.Fprintf(&details, "%s must be at most %s characters", field, err.Param())
			} else {
				fmt.Fprintf(&details, "%s must be at most %s", field, err.Param())
			}
		default:
			fmt.Fprintf(&details, "%s failed %s validation", field, err.Tag())
		}
	}
	return details.String()
}

// validatedBody returns the request parsed by validationMiddleware.
func validatedBody[T any](c *fiber.Ctx) (*T, bool) {
	body, ok := c.Locals("validatedBody").(*T)
	return body, ok && body != nil
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
