package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/multiplayer"
)

// CreateMatch hosts a new match in the opening position
func (h *HTTPHandler) CreateMatch(c *fiber.Ctx) error {
	req, ok := validatedBody[CreateMatchRequest](c)
	if !ok {
		return validationBypass(c)
	}

	dark, _ := reversi.ParsePlayerType(orManual(req.Dark))
	light, _ := reversi.ParsePlayerType(orManual(req.Light))

	v, err := h.coord.Create(dark, light)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(buildMatchResponse(v))
}

// ImportMatch hosts a match decoded from the plain-text save format
func (h *HTTPHandler) ImportMatch(c *fiber.Ctx) error {
	g, err := reversi.Unmarshal(c.Body())
	if err != nil {
		return h.fail(c, err)
	}

	v, err := h.coord.Import(g)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(buildMatchResponse(v))
}

// GetMatch returns the current match state
func (h *HTTPHandler) GetMatch(c *fiber.Ctx) error {
	id, ok := matchID(c)
	if !ok {
		return invalidMatchID(c)
	}

	v, err := h.coord.Get(id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(buildMatchResponse(v))
}

// DeleteMatch removes a match
func (h *HTTPHandler) DeleteMatch(c *fiber.Ctx) error {
	id, ok := matchID(c)
	if !ok {
		return invalidMatchID(c)
	}

	if err := h.coord.Delete(id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MakeMove places a disk for a manual side
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	id, ok := matchID(c)
	if !ok {
		return invalidMatchID(c)
	}
	req, ok := validatedBody[MoveRequest](c)
	if !ok {
		return validationBypass(c)
	}

	side, _ := reversi.ParseDisk(req.Side)
	v, move, err := h.coord.Place(id, side, reversi.C(*req.X, *req.Y))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(MoveResponse{
		Match: buildMatchResponse(v),
		Move:  buildMoveInfo(move),
	})
}

// SetPlayer switches a side between manual and computer control
func (h *HTTPHandler) SetPlayer(c *fiber.Ctx) error {
	id, ok := matchID(c)
	if !ok {
		return invalidMatchID(c)
	}
	req, ok := validatedBody[PlayersRequest](c)
	if !ok {
		return validationBypass(c)
	}

	side, _ := reversi.ParseDisk(req.Side)
	player, _ := reversi.ParsePlayerType(req.Player)

	v, err := h.coord.SetPlayer(id, side, player)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(buildMatchResponse(v))
}

// WaitMatch long-polls until the match version exceeds ?version=N
func (h *HTTPHandler) WaitMatch(c *fiber.Ctx) error {
	id, ok := matchID(c)
	if !ok {
		return invalidMatchID(c)
	}

	version, err := strconv.ParseUint(c.Query("version", "0"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid version",
			Code:    ErrInvalidRequest,
			Details: "version must be a non-negative integer",
		})
	}

	v, err := h.coord.Wait(c.Context(), id, version)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(buildMatchResponse(v))
}

// SaveMatch returns the match in the plain-text save format
func (h *HTTPHandler) SaveMatch(c *fiber.Ctx) error {
	id, ok := matchID(c)
	if !ok {
		return invalidMatchID(c)
	}

	data, err := h.coord.Export(id)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Send(data)
}

func matchID(c *fiber.Ctx) (multiplayer.MatchID, bool) {
	id := c.Params("matchId")
	return multiplayer.MatchID(id), isValidUUID(id)
}

func invalidMatchID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid match ID format",
		Code:    ErrInvalidRequest,
		Details: "match ID must be a valid UUID",
	})
}

func validationBypass(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: "validation data missing",
		Code:  ErrInternalError,
	})
}

func orManual(s string) string {
	if s == "" {
		return reversi.Manual.String()
	}
	return s
}
