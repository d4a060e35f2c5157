package member

import (
	"member-api/core/apperror"
	"member-api/core/logger"
	"member-api/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Scopes accepted on machine tokens for member writes.
var writeScopes = []string{"update:user_profiles", "all:user_profiles"}

// Handler handles HTTP requests for member profiles.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the member routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/members")
	group.Get("/:handle", h.HandleGetMember)
	group.Post("/:handle/photo", auth.RequireIdentity(), auth.RequireScopes(writeScopes...), h.HandleUploadPhoto)
}

// HandleGetMember returns a member profile.
// @Summary Get Member
// @Description Get a member profile by handle. Secure fields are hidden unless the caller manages the member.
// @Tags members
// @Produce json
// @Param handle path string true "Member handle"
// @Param fields query string false "Comma separated fields to return"
// @Success 200 {object} map[string]any "Member"
// @Failure 400 {object} apperror.Body "Bad Request"
// @Failure 404 {object} apperror.Body "Not Found"
// @Router /members/{handle} [get]
func (h *Handler) HandleGetMember(c *fiber.Ctx) error {
	doc, err := h.service.GetMember(c.UserContext(), auth.FromCtx(c), c.Params("handle"), c.Query("fields"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(doc)
}

// HandleUploadPhoto uploads a member photo.
// @Summary Upload Member Photo
// @Description Upload a JPEG, PNG or GIF photo for a member.
// @Tags members
// @Accept multipart/form-data
// @Produce json
// @Param handle path string true "Member handle"
// @Param photo formData file true "Photo file"
// @Success 200 {object} map[string]string "Photo URL"
// @Failure 400 {object} apperror.Body "Bad Request"
// @Failure 403 {object} apperror.Body "Forbidden"
// @Failure 404 {object} apperror.Body "Not Found"
// @Security BearerAuth
// @Router /members/{handle}/photo [post]
func (h *Handler) HandleUploadPhoto(c *fiber.Ctx) error {
	header, err := c.FormFile("photo")
	if err != nil {
		return h.fail(c, apperror.BadRequest("photo is required"))
	}
	file, err := header.Open()
	if err != nil {
		return h.fail(c, apperror.BadRequest("photo could not be read"))
	}
	defer file.Close()

	url, err := h.service.UploadPhoto(c.UserContext(), auth.FromCtx(c), c.Params("handle"), Photo{
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"photoURL": url})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if !apperror.Is(err, apperror.KindNotFound) && !apperror.Is(err, apperror.KindBadRequest) &&
		!apperror.Is(err, apperror.KindForbidden) {
		logger.WithRayID(h.service.logger, c).Error("Member request failed", zap.Error(err))
	}
	return apperror.Respond(c, err)
}
