package handlers

import (
	"net/http"

	portssvc "github.com/centsible/centsible_backend/internal/core/ports/services"
	"github.com/centsible/centsible_backend/internal/dto"
	"github.com/centsible/centsible_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// recurringHandler handles HTTP requests related to recurring rules.
type recurringHandler struct {
	recurringService portssvc.RecurringSvcFacade
}

// registerRecurringRoutes registers routes related to recurring rules.
func registerRecurringRoutes(rg *gin.RouterGroup, recurringService portssvc.RecurringSvcFacade) {
	h := &recurringHandler{recurringService: recurringService}

	rules := rg.Group("/recurring-rules")
	{
		rules.POST("", h.createRule)
		rules.GET("", h.listRules)
		rules.GET("/:id", h.getRule)
		rules.PUT("/:id", h.updateRule)
		rules.DELETE("/:id", h.deleteRule)
	}
}

// createRule godoc
// @Summary Create a recurring rule
// @Description Creates a bill or subscription rule; the recurrence engine posts its transactions
// @Tags recurring
// @Accept  json
// @Produce  json
// @Param   rule body dto.CreateRecurringRuleRequest true "Rule details"
// @Success 201 {object} dto.RecurringRuleResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account or category not found"
// @Security BearerAuth
// @Router /recurring-rules [post]
func (h *recurringHandler) createRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRecurringRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rule, err := h.recurringService.CreateRule(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create recurring rule")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRecurringRuleResponse(rule))
}

// listRules godoc
// @Summary List recurring rules
// @Description Lists the user's rules, soonest due first
// @Tags recurring
// @Produce  json
// @Success 200 {array} dto.RecurringRuleResponse
// @Security BearerAuth
// @Router /recurring-rules [get]
func (h *recurringHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rules, err := h.recurringService.ListRules(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list recurring rules")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRecurringRuleResponse(rules))
}

// getRule godoc
// @Summary Get a recurring rule by ID
// @Tags recurring
// @Produce  json
// @Param   id path string true "Rule ID"
// @Success 200 {object} dto.RecurringRuleResponse
// @Failure 404 {object} map[string]string "Rule not found"
// @Security BearerAuth
// @Router /recurring-rules/{id} [get]
func (h *recurringHandler) getRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rule, err := h.recurringService.GetRule(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve recurring rule")
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringRuleResponse(rule))
}

// updateRule godoc
// @Summary Update a recurring rule
// @Description Edits the user-facing fields of a rule; the due date cannot be set here
// @Tags recurring
// @Accept  json
// @Produce  json
// @Param   id path string true "Rule ID"
// @Param   rule body dto.UpdateRecurringRuleRequest true "Fields to update"
// @Success 200 {object} dto.RecurringRuleResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Rule not found"
// @Security BearerAuth
// @Router /recurring-rules/{id} [put]
func (h *recurringHandler) updateRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateRecurringRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rule, err := h.recurringService.UpdateRule(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update recurring rule")
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringRuleResponse(rule))
}

// deleteRule godoc
// @Summary Delete a recurring rule
// @Description Removes a rule; transactions it already posted are kept
// @Tags recurring
// @Produce  json
// @Param   id path string true "Rule ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Rule not found"
// @Security BearerAuth
// @Router /recurring-rules/{id} [delete]
func (h *recurringHandler) deleteRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.recurringService.DeleteRule(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete recurring rule")
		return
	}

	c.Status(http.StatusNoContent)
}
