package health

import (
	"github.com/gofiber/fiber/v2"
)

// Handler handles the health endpoint.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the health route. It must be registered before
// any /members/:handle route.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/members/health", h.HandleHealth)
}

// HandleHealth reports dependency health.
// @Summary Check Health
// @Description Pings the database, verifies the schema and checks the photo bucket.
// @Tags health
// @Produce json
// @Success 200 {object} Report "Healthy"
// @Failure 503 {object} Report "Unhealthy"
// @Router /members/health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	report := h.service.Check(c.UserContext())
	if !report.Healthy() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}
