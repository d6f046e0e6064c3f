package handlers

import (
	"net/http"

	portssvc "github.com/centsible/centsible_backend/internal/core/ports/services"
	"github.com/centsible/centsible_backend/internal/dto"
	"github.com/centsible/centsible_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// budgetHandler handles HTTP requests related to budgets.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

// registerBudgetRoutes registers routes related to budgets.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := &budgetHandler{budgetService: budgetService}

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/:id", h.getBudget)
		budgets.PUT("/:id", h.updateBudget)
		budgets.DELETE("/:id", h.deleteBudget)
		budgets.POST("/:id/categories", h.addBudgetCategory)
	}

	links := rg.Group("/budget-categories")
	{
		links.PUT("/:id", h.updateBudgetCategory)
		links.DELETE("/:id", h.removeBudgetCategory)
	}
}

// createBudget godoc
// @Summary Open a budget period
// @Description Creates the budget envelope for a month; one per (month, year)
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.CreateBudgetRequest true "Budget period"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Period already budgeted"
// @Security BearerAuth
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create budget")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBudgetResponse(budget))
}

// listBudgets godoc
// @Summary List budgets
// @Description Lists the user's budgets, newest period first
// @Tags budgets
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.BudgetResponse
// @Security BearerAuth
// @Router /budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list budgets")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBudgetResponse(budgets))
}

// getBudget godoc
// @Summary Get a budget with its category links
// @Tags budgets
// @Produce  json
// @Param   id path string true "Budget ID"
// @Success 200 {object} dto.BudgetDetailResponse
// @Failure 404 {object} map[string]string "Budget not found"
// @Security BearerAuth
// @Router /budgets/{id} [get]
func (h *budgetHandler) getBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, links, err := h.budgetService.GetBudget(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetDetailResponse(budget, links))
}

// updateBudget godoc
// @Summary Update a budget note
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   id path string true "Budget ID"
// @Param   budget body dto.UpdateBudgetRequest true "Fields to update"
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} map[string]string "Budget not found"
// @Security BearerAuth
// @Router /budgets/{id} [put]
func (h *budgetHandler) updateBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// deleteBudget godoc
// @Summary Delete a budget
// @Description Removes a budget; its category links cascade away
// @Tags budgets
// @Produce  json
// @Param   id path string true "Budget ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Budget not found"
// @Security BearerAuth
// @Router /budgets/{id} [delete]
func (h *budgetHandler) deleteBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete budget")
		return
	}

	c.Status(http.StatusNoContent)
}

// addBudgetCategory godoc
// @Summary Add a category to a budget
// @Description Links an expense category into the budget with a planned amount
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   id path string true "Budget ID"
// @Param   link body dto.AddBudgetCategoryRequest true "Category link"
// @Success 201 {object} dto.BudgetCategoryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Budget or category not found"
// @Failure 409 {object} map[string]string "Category already budgeted"
// @Security BearerAuth
// @Router /budgets/{id}/categories [post]
func (h *budgetHandler) addBudgetCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AddBudgetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	link, err := h.budgetService.AddBudgetCategory(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to add category to budget")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBudgetCategoryResponse(link))
}

// updateBudgetCategory godoc
// @Summary Update a budget category link
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   id path string true "Budget category link ID"
// @Param   link body dto.UpdateBudgetCategoryRequest true "Fields to update"
// @Success 200 {object} dto.BudgetCategoryResponse
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /budget-categories/{id} [put]
func (h *budgetHandler) updateBudgetCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateBudgetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	link, err := h.budgetService.UpdateBudgetCategory(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update budget category")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetCategoryResponse(link))
}

// removeBudgetCategory godoc
// @Summary Remove a category from a budget
// @Tags budgets
// @Produce  json
// @Param   id path string true "Budget category link ID"
// @Success 204 "Removed"
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /budget-categories/{id} [delete]
func (h *budgetHandler) removeBudgetCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.budgetService.RemoveBudgetCategory(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to remove budget category")
		return
	}

	c.Status(http.StatusNoContent)
}
