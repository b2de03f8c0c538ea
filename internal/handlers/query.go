package handlers

import (
	"fmt"
	"time"

	"expense_tracker/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' date; use YYYY-MM-DD or RFC3339"
	errToInvalid   = "invalid 'to' date; use YYYY-MM-DD or RFC3339"

	layoutDate = "2006-01-02"
)

// parseQueryDate accepts YYYY-MM-DD or RFC3339 and returns the UTC calendar date.
func parseQueryDate(s string) (string, error) {
	if t, err := time.Parse(layoutDate, s); err == nil {
		return t.Format(layoutDate), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(layoutDate), nil
	}
	return "", fmt.Errorf(
		"invalid date %q, expected YYYY-MM-DD (e.g. 2024-06-01) or RFC3339 (e.g. 2024-06-01T15:04:05Z)", s)
}

// expenseFilterFromQuery reads ?from, ?to and ?category. The message is client-safe.
func expenseFilterFromQuery(c *gin.Context) (models.ExpenseFilter, string, error) {
	f := models.ExpenseFilter{Category: c.Query("category")}

	var err error
	if qs := c.Query("from"); qs != "" {
		if f.From, err = parseQueryDate(qs); err != nil {
			return f, errFromInvalid, err
		}
	}
	if qs := c.Query("to"); qs != "" {
		if f.To, err = parseQueryDate(qs); err != nil {
			return f, errToInvalid, err
		}
	}
	return f, "", nil
}
