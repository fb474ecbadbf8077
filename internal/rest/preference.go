package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"smartMarket/domain"
	"smartMarket/internal/middleware"
	"smartMarket/pkg/logger"
)

type (
	PreferenceHandler struct {
		validate *validator.Validate
		prefs    PreferenceService
	}

	PreferenceService interface {
		Profile(ctx context.Context, userKey string) domain.PreferenceProfile
		RecordInteraction(ctx context.Context, userKey string, ev domain.Interaction) (domain.PreferenceProfile, error)
		ResetPreferences(ctx context.Context, userKey string) (domain.PreferenceProfile, error)
	}

	InteractionRequest struct {
		Type      string `json:"type" validate:"required,oneof=view purchase category_click"`
		ProductID uint64 `json:"product_id" validate:"required_unless=Type category_click"`
		Category  string `json:"category" validate:"required_if=Type category_click"`
	}
)

func NewPreferenceHandler(prefs PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		validate: validator.New(),
		prefs:    prefs,
	}
}

// POST /api/v1/preferences/interactions
func (h *PreferenceHandler) RecordInteraction(c echo.Context) error {
	userKey := middleware.UserKey(c)

	var req InteractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	event := domain.Interaction{
		Type:       domain.InteractionType(req.Type),
		ProductID:  req.ProductID,
		Category:   req.Category,
		OccurredAt: time.Now(),
	}

	profile, err := h.prefs.RecordInteraction(c.Request().Context(), userKey, event)
	if err != nil {
		logger.Error("Failed to record interaction", "user_key", userKey, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(profile))
}

// GET /api/v1/preferences
func (h *PreferenceHandler) GetProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.prefs.Profile(c.Request().Context(), middleware.UserKey(c))))
}

// DELETE /api/v1/preferences
func (h *PreferenceHandler) Reset(c echo.Context) error {
	profile, err := h.prefs.ResetPreferences(c.Request().Context(), middleware.UserKey(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(profile))
}
