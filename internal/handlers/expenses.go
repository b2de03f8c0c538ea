package handlers

import (
	"net/http"
	"strconv"

	"expense_tracker/internal/models"
	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateExpenseRequest is the payload for POST /expenses.
type CreateExpenseRequest struct {
	Title       string  `json:"title" example:"Sandwich"`
	Amount      float64 `json:"amount" example:"50.5"`
	Category    string  `json:"category" example:"Food"`
	Date        string  `json:"date" example:"2024-06-01"`
	Description *string `json:"description,omitempty" example:"Lunch"`
}

// UpdateExpenseRequest is the payload for PUT /expenses/{id}. Omitted fields are kept.
type UpdateExpenseRequest struct {
	Title       *string  `json:"title,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// ownerAndID reads the caller and the :id path param, writing the error response itself.
func (h *Handler) ownerAndID(c *gin.Context) (int64, int64, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return 0, 0, false
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, 0, false
	}
	return userID, id, true
}

// @Summary      Create expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        body  body      CreateExpenseRequest  true  "expense"
// @Success      201   {object}  models.Expense
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /expenses [post]
// @Security     BearerAuth
func (h *Handler) createExpense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}
	var input CreateExpenseRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	e, err := h.services.Expenses.Create(c.Request.Context(), userID, service.ExpenseInput{
		Title:       input.Title,
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        input.Date,
		Description: input.Description,
	})
	if err != nil {
		h.writeError(c, "expense_create_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// @Summary      List expenses
// @Description  Newest first. 'from' and 'to' are inclusive dates.
// @Tags         expenses
// @Produce      json
// @Param        from      query  string  false  "Start date (YYYY-MM-DD or RFC3339)"  example(2024-06-01)
// @Param        to        query  string  false  "End date (YYYY-MM-DD or RFC3339)"    example(2024-06-30)
// @Param        category  query  string  false  "Exact category"
// @Success      200  {array}   models.Expense
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /expenses [get]
// @Security     BearerAuth
func (h *Handler) listExpenses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}
	f, msg, err := expenseFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	list, err := h.services.Expenses.List(c.Request.Context(), userID, f)
	if err != nil {
		h.writeError(c, "expense_list_failed", err, "user_id", userID, "from", f.From, "to", f.To)
		return
	}
	if list == nil {
		list = []models.Expense{}
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Spending summary
// @Tags         expenses
// @Produce      json
// @Param        from  query  string  false  "Start date"
// @Param        to    query  string  false  "End date"
// @Success      200  {object}  models.Summary
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /expenses/summary [get]
// @Security     BearerAuth
func (h *Handler) expenseSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}
	f, msg, err := expenseFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	sum, err := h.services.Expenses.Summary(c.Request.Context(), userID, f)
	if err != nil {
		h.writeError(c, "expense_summary_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// @Summary      Get expense
// @Tags         expenses
// @Produce      json
// @Param        id   path      int  true  "Expense ID"
// @Success      200  {object}  models.Expense
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /expenses/{id} [get]
// @Security     BearerAuth
func (h *Handler) getExpense(c *gin.Context) {
	userID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}
	e, err := h.services.Expenses.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.writeError(c, "expense_get_failed", err, "user_id", userID, "id", id)
		return
	}
	c.JSON(http.StatusOK, e)
}

// @Summary      Update expense
// @Description  Merges the supplied fields into the stored expense.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "Expense ID"
// @Param        body  body      UpdateExpenseRequest  true  "fields to change"
// @Success      200   {object}  models.Expense
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /expenses/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateExpense(c *gin.Context) {
	userID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}
	var input UpdateExpenseRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	e, err := h.services.Expenses.Update(c.Request.Context(), userID, id, service.ExpensePatch{
		Title:       input.Title,
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        input.Date,
		Description: input.Description,
	})
	if err != nil {
		h.writeError(c, "expense_update_failed", err, "user_id", userID, "id", id)
		return
	}
	c.JSON(http.StatusOK, e)
}

// @Summary      Delete expense
// @Tags         expenses
// @Param        id   path  int  true  "Expense ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /expenses/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteExpense(c *gin.Context) {
	userID, id, ok := h.ownerAndID(c)
	if !ok {
		return
	}
	if err := h.services.Expenses.Delete(c.Request.Context(), userID, id); err != nil {
		h.writeError(c, "expense_delete_failed", err, "user_id", userID, "id", id)
		return
	}
	c.Status(http.StatusNoContent)
}
