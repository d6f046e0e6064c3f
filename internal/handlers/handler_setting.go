package handlers

import (
	"net/http"

	portssvc "github.com/centsible/centsible_backend/internal/core/ports/services"
	"github.com/centsible/centsible_backend/internal/dto"
	"github.com/centsible/centsible_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settingHandler handles HTTP requests related to user settings.
type settingHandler struct {
	settingService portssvc.SettingSvcFacade
}

// registerSettingRoutes registers routes related to settings.
func registerSettingRoutes(rg *gin.RouterGroup, settingService portssvc.SettingSvcFacade) {
	h := &settingHandler{settingService: settingService}

	settings := rg.Group("/settings")
	{
		settings.GET("", h.listSettings)
		settings.GET("/:key", h.getSetting)
		settings.PUT("/:key", h.putSetting)
	}
}

// listSettings godoc
// @Summary List effective settings
// @Description Returns every known setting: defaults overlaid with the user's writes
// @Tags settings
// @Produce  json
// @Success 200 {object} dto.SettingsResponse
// @Security BearerAuth
// @Router /settings [get]
func (h *settingHandler) listSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	settings, err := h.settingService.ListSettings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list settings")
		return
	}

	c.JSON(http.StatusOK, dto.SettingsResponse{Settings: settings})
}

// getSetting godoc
// @Summary Get one setting
// @Description Returns the stored value, or the default if the user never wrote the key
// @Tags settings
// @Produce  json
// @Param   key path string true "Setting key"
// @Success 200 {object} dto.SettingResponse
// @Failure 404 {object} map[string]string "Unknown setting key"
// @Security BearerAuth
// @Router /settings/{key} [get]
func (h *settingHandler) getSetting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	key := c.Param("key")
	value, err := h.settingService.GetSetting(c.Request.Context(), userID, key)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve setting")
		return
	}

	c.JSON(http.StatusOK, dto.SettingResponse{Key: key, Value: value})
}

// putSetting godoc
// @Summary Write one setting
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   key path string true "Setting key"
// @Param   setting body dto.PutSettingRequest true "New value"
// @Success 200 {object} dto.SettingResponse
// @Failure 400 {object} map[string]string "Unknown key or invalid value"
// @Security BearerAuth
// @Router /settings/{key} [put]
func (h *settingHandler) putSetting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PutSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	key := c.Param("key")
	if err := h.settingService.PutSetting(c.Request.Context(), userID, key, req.Value); err != nil {
		respondError(c, logger, err, "Failed to write setting")
		return
	}

	c.JSON(http.StatusOK, dto.SettingResponse{Key: key, Value: req.Value})
}
