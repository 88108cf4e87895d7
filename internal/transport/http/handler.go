// Package http serves hosted Reversi matches over a JSON API.
package http

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/multiplayer"
)

// Config tunes the Fiber app.
type Config struct {
	RateLimit int         // Requests per second per client IP under /api/v1
	AccessLog io.Writer   // Request log destination; nil disables it
	Logger    *log.Logger // Error log; nil discards
}

// DefaultConfig returns the default API configuration.
func DefaultConfig() Config {
	return Config{RateLimit: 10}
}

type HTTPHandler struct {
	coord  *multiplayer.Coordinator
	logger *log.Logger
}

func NewHTTPHandler(coord *multiplayer.Coordinator, logger *log.Logger) *HTTPHandler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &HTTPHandler{coord: coord, logger: logger}
}

func NewFiberApp(coord *multiplayer.Coordinator, cfg Config) *fiber.App {
	h := NewHTTPHandler(coord, cfg.Logger)

	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          35 * time.Second,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	if cfg.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${status} ${method} ${path} ${latency}\n",
			Output: cfg.AccessLog,
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")

	maxReq := cfg.RateLimit
	if maxReq <= 0 {
		maxReq = DefaultConfig().RateLimit
	}
	api.Use(limiter.New(limiter.Config{
		Max:        maxReq,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			// Check X-Forwarded-For first, then RemoteIP
			if xff := c.Get("X-Forwarded-For"); xff != "" {
				if idx := strings.Index(xff, ","); idx != -1 {
					return strings.TrimSpace(xff[:idx])
				}
				return xff
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    ErrRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
	}))

	api.Use(contentTypeValidator)
	api.Use(validationMiddleware)

	api.Post("/matches", h.CreateMatch)
	api.Post("/matches/import", h.ImportMatch)
	api.Get("/matches/:matchId", h.GetMatch)
	api.Delete("/matches/:matchId", h.DeleteMatch)
	api.Post("/matches/:matchId/moves", h.MakeMove)
	api.Put("/matches/:matchId/players", h.SetPlayer)
	api.Get("/matches/:matchId/wait", h.WaitMatch)
	api.Get("/matches/:matchId/save", h.SaveMatch)

	return app
}

// contentTypeValidator ensures JSON routes receive application/json.
// The import route takes the plain-text save format instead.
func contentTypeValidator(c *fiber.Ctx) error {
	method := c.Method()
	if method != fiber.MethodPost && method != fiber.MethodPut {
		return c.Next()
	}
	if strings.HasSuffix(c.Path(), "/import") {
		return c.Next()
	}

	contentType := c.Get(fiber.HeaderContentType)
	if contentType != "" && !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(ErrorResponse{
			Error:   "unsupported media type",
			Code:    ErrInvalidContent,
			Details: "Content-Type must be application/json",
		})
	}
	return c.Next()
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := ErrorResponse{
		Error: "internal server error",
		Code:  ErrInternalError,
	}

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = ErrNotFound
		case fiber.StatusBadRequest:
			response.Code = ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = ErrRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// errorStatus maps domain errors onto HTTP status codes and error codes.
func errorStatus(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, multiplayer.ErrNotFound):
		return fiber.StatusNotFound, ErrorResponse{Error: "match not found", Code: ErrNotFound}
	case errors.Is(err, reversi.ErrIllegalPlacement):
		return fiber.StatusBadRequest, ErrorResponse{Error: "illegal placement", Code: ErrIllegalPlacement, Details: err.Error()}
	case errors.Is(err, reversi.ErrGameOver):
		return fiber.StatusConflict, ErrorResponse{Error: "game is over", Code: ErrGameOver}
	case errors.Is(err, multiplayer.ErrNotYourTurn):
		return fiber.StatusConflict, ErrorResponse{Error: "not your turn", Code: ErrNotYourTurn}
	case errors.Is(err, multiplayer.ErrComputerSide):
		return fiber.StatusConflict, ErrorResponse{Error: "side is computer-controlled", Code: ErrComputerSide}
	case errors.Is(err, reversi.ErrParse):
		return fiber.StatusBadRequest, ErrorResponse{Error: "malformed game state", Code: ErrParseError, Details: err.Error()}
	default:
		return fiber.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: ErrInternalError}
	}
}

func (h *HTTPHandler) fail(c *fiber.Ctx, err error) error {
	status, resp := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		h.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "err", err)
	}
	return c.Status(status).JSON(resp)
}

// Health check endpoint
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Unix(),
		"matches": h.coord.Count(),
	})
}
