package handlers

import (
	"errors"
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pastevault/backend/internal/dto"
	"github.com/pastevault/backend/internal/middleware"
	"github.com/pastevault/backend/internal/services"
)

// ProfileHandler maps the profile service outcomes onto HTTP. It owns no
// business rules: it parses requests, extracts the actor, and translates
// errors to status codes.
type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// UpdateProfile handles PUT /api/users/:id/profile (multipart form). The form
// may send either "bio" or its legacy alias "tagline"; bio wins when both are
// present.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	actor, targetID, err := actorAndTarget(c)
	if err != nil {
		return nil
	}

	bio := c.FormValue("bio")
	if bio == "" {
		bio = c.FormValue("tagline")
	}

	in := services.UpdateProfileInput{
		Bio:      formPtr(bio),
		Website:  formPtr(c.FormValue("website")),
		Location: formPtr(c.FormValue("location")),
	}

	if file, err := c.FormFile("avatar"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to read uploaded file",
			})
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to read uploaded file",
			})
		}
		in.Avatar = &services.AvatarUpload{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	view, err := h.profiles.UpdateProfile(c.Context(), actor, targetID, in)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(view)
}

// GetProfileForEdit handles GET /api/users/:id/profile-edit.
func (h *ProfileHandler) GetProfileForEdit(c *fiber.Ctx) error {
	actor, targetID, err := actorAndTarget(c)
	if err != nil {
		return nil
	}

	view, err := h.profiles.GetProfileForEdit(c.Context(), actor, targetID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(view)
}

// ChangePassword handles PUT /api/users/:id/password.
func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	actor, targetID, err := actorAndTarget(c)
	if err != nil {
		return nil
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Current and new password are required",
		})
	}

	if err := h.profiles.ChangePassword(c.Context(), actor, targetID, req.CurrentPassword, req.NewPassword); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// GetNotificationPreferences handles GET /api/users/:id/preferences.
func (h *ProfileHandler) GetNotificationPreferences(c *fiber.Ctx) error {
	actor, targetID, err := actorAndTarget(c)
	if err != nil {
		return nil
	}

	prefs, err := h.profiles.GetNotificationPreferences(c.Context(), actor, targetID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(prefs)
}

// UpdateNotificationPreferences handles PUT /api/users/:id/notification-preferences.
func (h *ProfileHandler) UpdateNotificationPreferences(c *fiber.Ctx) error {
	actor, targetID, err := actorAndTarget(c)
	if err != nil {
		return nil
	}

	var patch services.NotificationPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	prefs, err := h.profiles.UpdateNotificationPreferences(c.Context(), actor, targetID, patch)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(prefs)
}

// GetPrivacySettings handles GET /api/users/:id/privacy-settings.
func (h *ProfileHandler) GetPrivacySettings(c *fiber.Ctx) error {
	actor, targetID, err := actorAndTarget(c)
	if err != nil {
		return nil
	}

	settings, err := h.profiles.GetPrivacySettings(c.Context(), actor, targetID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(settings)
}

// UpdatePrivacySettings handles PATCH /api/users/:id/privacy-settings.
func (h *ProfileHandler) UpdatePrivacySettings(c *fiber.Ctx) error {
	actor, targetID, err := actorAndTarget(c)
	if err != nil {
		return nil
	}

	var patch services.PrivacyPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	settings, err := h.profiles.UpdatePrivacySettings(c.Context(), actor, targetID, patch)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(settings)
}

// formPtr maps an empty form value to nil so the column is cleared as NULL
// rather than stored as an empty string.
func formPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// errHandled signals that the helper already wrote the response.
var errHandled = errors.New("response written")

func actorAndTarget(c *fiber.Ctx) (services.Actor, uuid.UUID, error) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
		return services.Actor{}, uuid.Nil, errHandled
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
		return services.Actor{}, uuid.Nil, errHandled
	}
	return actor, targetID, nil
}

func mapServiceError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	var fileTypeErr *services.InvalidFileTypeError

	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Forbidden",
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "User not found",
		})
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: validationErr.Reason,
		})
	case errors.As(err, &fileTypeErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: fileTypeErr.Reason,
		})
	case errors.Is(err, services.ErrStorageFailure):
		slog.Error("storage failure", "method", c.Method(), "path", c.Path(), "error", err.Error())
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Storage temporarily unavailable",
		})
	default:
		slog.Error("unhandled service error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}
