package models

import "time"

// Expense is a single spending record owned by one user.
type Expense struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	Title       string    `json:"title"`
	AmountCents int64     `json:"-"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ExpenseFilter narrows list and summary queries. Zero values mean "no bound".
type ExpenseFilter struct {
	From     string // inclusive, YYYY-MM-DD
	To       string // inclusive, YYYY-MM-DD
	Category string
}

// CategoryTotal is one row of a spending summary.
type CategoryTotal struct {
	Category   string  `json:"category"`
	TotalCents int64   `json:"-"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
}

// Summary aggregates a user's spending per category.
type Summary struct {
	From       string          `json:"from,omitempty"`
	To         string          `json:"to,omitempty"`
	Categories []CategoryTotal `json:"categories"`
	Total      float64         `json:"total"`
	Count      int             `json:"count"`
}
