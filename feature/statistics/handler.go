package statistics

import (
	"member-api/core/apperror"
	"member-api/core/logger"
	"member-api/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Scopes accepted on machine tokens for statistics writes.
var (
	createScopes = []string{"create:user_stats", "all:user_stats"}
	updateScopes = []string{"update:user_stats", "all:user_stats"}
)

// Handler handles HTTP requests for member statistics.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the statistics routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/members")
	group.Get("/stats/distribution", h.HandleGetDistribution)

	group.Get("/:handle/stats", h.HandleGetMemberStats)
	group.Post("/:handle/stats", auth.RequireIdentity(), auth.RequireScopes(createScopes...), h.HandleCreateMemberStats)
	group.Patch("/:handle/stats", auth.RequireIdentity(), auth.RequireScopes(updateScopes...), h.HandleUpdateMemberStats)

	group.Get("/:handle/stats/history", h.HandleGetHistoryStats)
	group.Post("/:handle/stats/history", auth.RequireIdentity(), auth.RequireScopes(createScopes...), h.HandleCreateHistoryStats)
	group.Patch("/:handle/stats/history", auth.RequireIdentity(), auth.RequireScopes(updateScopes...), h.HandleUpdateHistoryStats)
}

// HandleGetDistribution returns the aggregated rating distribution.
// @Summary Get Rating Distribution
// @Description Sum the rating distribution of every track and sub track containing the given values.
// @Tags statistics
// @Produce json
// @Param track query string false "Track filter"
// @Param subTrack query string false "Sub track filter"
// @Param fields query string false "Comma separated fields to return"
// @Success 200 {object} map[string]any "Distribution"
// @Failure 400 {object} apperror.Body "Bad Request"
// @Failure 404 {object} apperror.Body "Not Found"
// @Router /members/stats/distribution [get]
func (h *Handler) HandleGetDistribution(c *fiber.Ctx) error {
	doc, err := h.service.GetDistribution(c.UserContext(), c.Query("track"), c.Query("subTrack"), c.Query("fields"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(doc)
}

// HandleGetMemberStats returns member statistics.
// @Summary Get Member Statistics
// @Description Get the statistics of a member, one document per readable group.
// @Tags statistics
// @Produce json
// @Param handle path string true "Member handle"
// @Param groupIds query string false "Comma separated group ids"
// @Param fields query string false "Comma separated fields to return"
// @Success 200 {array} map[string]any "Statistics"
// @Failure 400 {object} apperror.Body "Bad Request"
// @Failure 404 {object} apperror.Body "Not Found"
// @Router /members/{handle}/stats [get]
func (h *Handler) HandleGetMemberStats(c *fiber.Ctx) error {
	docs, err := h.service.GetMemberStats(c.UserContext(), auth.FromCtx(c), c.Params("handle"), c.Query("groupIds"), c.Query("fields"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(docs)
}

// HandleCreateMemberStats creates member statistics.
// @Summary Create Member Statistics
// @Description Create the statistics record of a member. A groupId makes the record private to that group.
// @Tags statistics
// @Accept json
// @Produce json
// @Param handle path string true "Member handle"
// @Param payload body MemberStatsPayload true "Statistics"
// @Success 201 {object} map[string]any "Statistics"
// @Failure 400 {object} apperror.Body "Bad Request"
// @Failure 403 {object} apperror.Body "Forbidden"
// @Failure 404 {object} apperror.Body "Not Found"
// @Security BearerAuth
// @Router /members/{handle}/stats [post]
func (h *Handler) HandleCreateMemberStats(c *fiber.Ctx) error {
	doc, err := h.service.CreateMemberStats(c.UserContext(), auth.FromCtx(c), c.Params("handle"), c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// HandleUpdateMemberStats reconciles member statistics.
// @Summary Update Member Statistics
// @Description Update statistics blocks in place. Item lists in the payload replace the stored items: items with an id are updated, items without one are inserted and missing ones are deleted.
// @Tags statistics
// @Accept json
// @Produce json
// @Param handle path string true "Member handle"
// @Param payload body MemberStatsPayload true "Statistics"
// @Success 200 {object} map[string]any "Statistics"
// @Failure 400 {object} apperror.Body "Bad Request"
// @Failure 403 {object} apperror.Body "Forbidden"
// @Failure 404 {object} apperror.Body "Not Found"
// @Security BearerAuth
// @Router /members/{handle}/stats [patch]
func (h *Handler) HandleUpdateMemberStats(c *fiber.Ctx) error {
	doc, err := h.service.UpdateMemberStats(c.UserContext(), auth.FromCtx(c), c.Params("handle"), c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(doc)
}

// HandleGetHistoryStats returns member rating history.
// @Summary Get Member History Statistics
// @Description Get the rating history of a member, one document per readable group.
// @Tags statistics
// @Produce json
// @Param handle path string true "Member handle"
// @Param groupIds query string false "Comma separated group ids"
// @Param fields query string false "Comma separated fields to return"
// @Success 200 {array} map[string]any "History"
// @Failure 400 {object} apperror.Body "Bad Request"
// @Failure 404 {object} apperror.Body "Not Found"
// @Router /members/{handle}/stats/history [get]
func (h *Handler) HandleGetHistoryStats(c *fiber.Ctx) error {
	docs, err := h.service.GetHistoryStats(c.UserContext(), auth.FromCtx(c), c.Params("handle"), c.Query("groupIds"), c.Query("fields"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(docs)
}

// HandleCreateHistoryStats creates member rating history.
// @Summary Create Member History Statistics
// @Tags statistics
// @Accept json
// @Produce json
// @Param handle path string true "Member handle"
// @Param payload body HistoryPayload true "History"
// @Success 201 {object} map[string]any "History"
// @Failure 400 {object} apperror.Body "Bad Request"
// @Failure 403 {object} apperror.Body "Forbidden"
// @Failure 404 {object} apperror.Body "Not Found"
// @Security BearerAuth
// @Router /members/{handle}/stats/history [post]
func (h *Handler) HandleCreateHistoryStats(c *fiber.Ctx) error {
	doc, err := h.service.CreateHistoryStats(c.UserContext(), auth.FromCtx(c), c.Params("handle"), c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// HandleUpdateHistoryStats reconciles member rating history.
// @Summary Update Member History Statistics
// @Tags statistics
// @Accept json
// @Produce json
// @Param handle path string true "Member handle"
// @Param payload body HistoryPayload true "History"
// @Success 200 {object} map[string]any "History"
// @Failure 400 {object} apperror.Body "Bad Request"
// @Failure 403 {object} apperror.Body "Forbidden"
// @Failure 404 {object} apperror.Body "Not Found"
// @Security BearerAuth
// @Router /members/{handle}/stats/history [patch]
func (h *Handler) HandleUpdateHistoryStats(c *fiber.Ctx) error {
	doc, err := h.service.UpdateHistoryStats(c.UserContext(), auth.FromCtx(c), c.Params("handle"), c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(doc)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if !apperror.Is(err, apperror.KindNotFound) && !apperror.Is(err, apperror.KindBadRequest) &&
		!apperror.Is(err, apperror.KindForbidden) {
		logger.WithRayID(h.service.logger, c).Error("Statistics request failed", zap.Error(err))
	}
	return apperror.Respond(c, err)
}
