package flights

import (
	"errors"

	"adherence-sync/core/database"
	"adherence-sync/core/logger"
	"adherence-sync/core/reconcile"
	"adherence-sync/feature/flights/schema"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for flight loads.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the flights routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/loads/:source", h.HandleLoad)
	app.Get("/flights/fields", h.HandleFields)
}

// HandleLoad loads the JSON batch in the request body under the source in the path.
func (h *Handler) HandleLoad(c *fiber.Ctx) error {
	source := c.Params("source")
	l := logger.WithSource(logger.WithRayID(h.service.logger, c), source)

	summary, err := h.service.LoadPayload(c.UserContext(), source, c.Body())
	if err != nil {
		status := statusFor(err)
		if status >= fiber.StatusInternalServerError {
			l.Error("Load failed", zap.Error(err))
		} else {
			l.Warn("Load rejected", zap.Error(err))
		}
		return c.Status(status).JSON(errorBody(err))
	}

	return c.Status(fiber.StatusCreated).JSON(summary)
}

// HandleFields lists the fields of a flight record available to condition builders.
func (h *Handler) HandleFields(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"fields": h.service.Fields()})
}

func statusFor(err error) int {
	var verr *schema.ValidationError
	var uerr *reconcile.UniquenessViolation
	switch {
	case errors.As(err, &verr):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &uerr):
		return fiber.StatusConflict
	case errors.Is(err, database.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, ErrMissingSource), errors.Is(err, ErrInvalidPayload):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func errorBody(err error) fiber.Map {
	body := fiber.Map{"error": err.Error()}
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		body["record"] = verr.Index
		body["field"] = verr.Field
		body["expected"] = verr.Expected
	}
	return body
}
