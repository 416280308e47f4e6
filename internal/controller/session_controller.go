package controller

import (
	"errors"

	"github.com/benbeisheim/chessrules/internal/engine"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type SessionController struct {
	gameService *service.GameService
}

func NewSessionController(gameService *service.GameService) *SessionController {
	return &SessionController{gameService: gameService}
}

type createRequest struct {
	FEN string `json:"fen"`
}

type positionRequest struct {
	FEN string `json:"fen"`
}

// Register mounts the session routes on r.
func (sc *SessionController) Register(r fiber.Router) {
	r.Get("/", sc.ListSessions)
	r.Post("/", sc.CreateSession)
	r.Get("/:id", sc.GetState)
	r.Delete("/:id", sc.DeleteSession)
	r.Get("/:id/pieces/:square", sc.GetPiece)
	r.Get("/:id/moves/:square", sc.GetLegalMoves)
	r.Post("/:id/moves", sc.MakeMove)
	r.Get("/:id/position", sc.ExportPosition)
	r.Put("/:id/position", sc.LoadPosition)
	r.Post("/:id/reset", sc.Reset)
	r.Get("/:id/status", sc.GetStatus)
}

func (sc *SessionController) CreateSession(c *fiber.Ctx) error {
	var req createRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err)
		}
	}

	id, state, err := sc.gameService.CreateSession(req.FEN)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    id,
		"state": state,
	})
}

func (sc *SessionController) ListSessions(c *fiber.Ctx) error {
	sessions, err := sc.gameService.ListSessions()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"sessions": sessions,
	})
}

func (sc *SessionController) GetState(c *fiber.Ctx) error {
	state, err := sc.gameService.GetState(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (sc *SessionController) DeleteSession(c *fiber.Ctx) error {
	if err := sc.gameService.DeleteSession(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (sc *SessionController) GetPiece(c *fiber.Ctx) error {
	square := c.Params("square")
	piece, err := sc.gameService.GetPiece(c.Params("id"), square)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"square": square,
		"piece":  piece,
	})
}

func (sc *SessionController) GetLegalMoves(c *fiber.Ctx) error {
	square := c.Params("square")
	dests, err := sc.gameService.LegalDestinations(c.Params("id"), square)
	if err != nil {
		return respondError(c, err)
	}
	if dests == nil {
		dests = []model.Square{}
	}
	return c.JSON(fiber.Map{
		"square":       square,
		"destinations": dests,
	})
}

func (sc *SessionController) MakeMove(c *fiber.Ctx) error {
	var in service.MoveInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}

	move, state, err := sc.gameService.HandleMove(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"move":  move,
		"state": state,
	})
}

func (sc *SessionController) ExportPosition(c *fiber.Ctx) error {
	placement, fen, err := sc.gameService.ExportPosition(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"placement": placement,
		"fen":       fen,
	})
}

func (sc *SessionController) LoadPosition(c *fiber.Ctx) error {
	var req positionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	state, err := sc.gameService.LoadPosition(c.Params("id"), req.FEN)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (sc *SessionController) Reset(c *fiber.Ctx) error {
	state, err := sc.gameService.Reset(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (sc *SessionController) GetStatus(c *fiber.Ctx) error {
	report, err := sc.gameService.Status(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// statusFor maps service and engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrBadInput),
		errors.Is(err, engine.ErrMalformedSquare),
		errors.Is(err, model.ErrMalformedUCI),
		errors.Is(err, model.ErrInvalidFEN):
		return fiber.StatusBadRequest
	case errors.Is(err, engine.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{
			"error": "internal error",
		})
	}

	body := fiber.Map{"error": err.Error()}
	var rej *engine.RejectedError
	if errors.As(err, &rej) {
		body["reason"] = rej.Reason.Error()
	}
	return c.Status(status).JSON(body)
}
