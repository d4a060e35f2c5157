package skills

import (
	"member-api/core/apperror"
	"member-api/core/logger"
	"member-api/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var (
	createScopes = []string{"create:user_profiles", "all:user_profiles"}
	updateScopes = []string{"update:user_profiles", "all:user_profiles"}
)

// Handler handles HTTP requests for member skills.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the skills routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/members")
	group.Get("/:handle/skills", h.HandleGetSkills)
	group.Post("/:handle/skills", auth.RequireIdentity(), auth.RequireScopes(createScopes...), h.HandleCreateSkill)
	group.Patch("/:handle/skills", auth.RequireIdentity(), auth.RequireScopes(updateScopes...), h.HandleUpdateSkill)
}

// HandleGetSkills lists member skills.
// @Summary Get Member Skills
// @Tags skills
// @Produce json
// @Param handle path string true "Member handle"
// @Success 200 {array} SkillDocument "Skills"
// @Failure 404 {object} apperror.Body "Not Found"
// @Router /members/{handle}/skills [get]
func (h *Handler) HandleGetSkills(c *fiber.Ctx) error {
	docs, err := h.service.GetMemberSkills(c.UserContext(), c.Params("handle"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(docs)
}

// HandleCreateSkill adds a member skill.
// @Summary Create Member Skill
// @Tags skills
// @Accept json
// @Produce json
// @Param handle path string true "Member handle"
// @Param payload body SkillPayload true "Skill"
// @Success 200 {array} SkillDocument "Skills"
// @Failure 400 {object} apperror.Body "Bad Request"
// @Failure 403 {object} apperror.Body "Forbidden"
// @Failure 404 {object} apperror.Body "Not Found"
// @Security BearerAuth
// @Router /members/{handle}/skills [post]
func (h *Handler) HandleCreateSkill(c *fiber.Ctx) error {
	docs, err := h.service.CreateMemberSkill(c.UserContext(), auth.FromCtx(c), c.Params("handle"), c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(docs)
}

// HandleUpdateSkill updates a member skill.
// @Summary Update Member Skill
// @Tags skills
// @Accept json
// @Produce json
// @Param handle path string true "Member handle"
// @Param payload body SkillPayload true "Skill"
// @Success 200 {array} SkillDocument "Skills"
// @Failure 400 {object} apperror.Body "Bad Request"
// @Failure 403 {object} apperror.Body "Forbidden"
// @Failure 404 {object} apperror.Body "Not Found"
// @Security BearerAuth
// @Router /members/{handle}/skills [patch]
func (h *Handler) HandleUpdateSkill(c *fiber.Ctx) error {
	docs, err := h.service.UpdateMemberSkill(c.UserContext(), auth.FromCtx(c), c.Params("handle"), c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(docs)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if !apperror.Is(err, apperror.KindNotFound) && !apperror.Is(err, apperror.KindBadRequest) &&
		!apperror.Is(err, apperror.KindForbidden) {
		logger.WithRayID(h.service.logger, c).Error("Skills request failed", zap.Error(err))
	}
	return apperror.Respond(c, err)
}
