package service

import (
	"context"
	"strings"
	"time"

	"expense_tracker/internal/models"
	"expense_tracker/internal/repository"
)

const (
	dateLayout = "2006-01-02"

	// decimal(10,2) upper bound
	maxAmount = 100_000_000

	msgExpenseNotFound  = "Expense not found"
	msgExpenseFields    = "title, amount, category and date are required"
	msgInvalidAmount    = "amount must be greater than 0 and less than 100000000"
	msgInvalidDate      = "date must be YYYY-MM-DD"
	msgInvalidDateRange = "'from' must be <= 'to'"
)

// ExpenseInput is the payload for creating an expense.
type ExpenseInput struct {
	Title       string
	Amount      float64
	Category    string
	Date        string
	Description *string
}

// ExpensePatch holds the fields to change; nil keeps the stored value.
type ExpensePatch struct {
	Title       *string
	Amount      *float64
	Category    *string
	Date        *string
	Description *string
}

type ExpenseService struct {
	repo repository.Expenses
	now  func() time.Time
}

func NewExpenseService(repo repository.Expenses) *ExpenseService {
	return &ExpenseService{repo: repo, now: time.Now}
}

func (s *ExpenseService) Create(ctx context.Context, userID int64, in ExpenseInput) (models.Expense, error) {
	e := models.Expense{
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Amount:      in.Amount,
		Category:    strings.TrimSpace(in.Category),
		Date:        strings.TrimSpace(in.Date),
		Description: in.Description,
	}
	if err := validateExpense(&e); err != nil {
		return models.Expense{}, err
	}

	now := s.now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now

	id, err := s.repo.Create(ctx, e)
	if err != nil {
		return models.Expense{}, err
	}
	e.ID = id
	return e, nil
}

func (s *ExpenseService) Get(ctx context.Context, userID, id int64) (models.Expense, error) {
	e, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return models.Expense{}, err
	}
	if e == nil {
		return models.Expense{}, newError(ErrNotFound, msgExpenseNotFound, nil)
	}
	return *e, nil
}

func (s *ExpenseService) List(ctx context.Context, userID int64, f models.ExpenseFilter) ([]models.Expense, error) {
	f, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, userID, f)
}

// Update merges p into the stored expense and saves the result.
func (s *ExpenseService) Update(ctx context.Context, userID, id int64, p ExpensePatch) (models.Expense, error) {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return models.Expense{}, err
	}

	e := current
	if p.Title != nil {
		e.Title = strings.TrimSpace(*p.Title)
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = strings.TrimSpace(*p.Category)
	}
	if p.Date != nil {
		e.Date = strings.TrimSpace(*p.Date)
	}
	if p.Description != nil {
		e.Description = p.Description
	}
	if err := validateExpense(&e); err != nil {
		return models.Expense{}, err
	}
	e.UpdatedAt = s.now().UTC()

	ok, err := s.repo.Update(ctx, e)
	if err != nil {
		return models.Expense{}, err
	}
	if !ok {
		// deleted between read and write
		return models.Expense{}, newError(ErrNotFound, msgExpenseNotFound, nil)
	}
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id int64) error {
	ok, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return newError(ErrNotFound, msgExpenseNotFound, nil)
	}
	return nil
}

// Summary totals the user's spending per category within the filter's date range.
func (s *ExpenseService) Summary(ctx context.Context, userID int64, f models.ExpenseFilter) (models.Summary, error) {
	f, err := normalizeFilter(f)
	if err != nil {
		return models.Summary{}, err
	}
	f.Category = ""

	totals, err := s.repo.TotalsByCategory(ctx, userID, f)
	if err != nil {
		return models.Summary{}, err
	}

	sum := models.Summary{From: f.From, To: f.To, Categories: totals}
	if sum.Categories == nil {
		sum.Categories = []models.CategoryTotal{}
	}
	var cents int64
	for _, ct := range totals {
		cents += ct.TotalCents
		sum.Count += ct.Count
	}
	sum.Total = models.CentsToAmount(cents)
	return sum, nil
}

// validateExpense checks required fields and fills AmountCents.
func validateExpense(e *models.Expense) error {
	if e.Title == "" || e.Category == "" || e.Date == "" {
		return newError(ErrValidation, msgExpenseFields, nil)
	}
	if e.Amount <= 0 || e.Amount >= maxAmount {
		return newError(ErrValidation, msgInvalidAmount, nil)
	}
	if _, err := time.Parse(dateLayout, e.Date); err != nil {
		return newError(ErrValidation, msgInvalidDate, err)
	}
	e.AmountCents = models.AmountToCents(e.Amount)
	e.Amount = models.CentsToAmount(e.AmountCents)
	if e.AmountCents <= 0 {
		return newError(ErrValidation, msgInvalidAmount, nil)
	}
	return nil
}

// normalizeFilter trims the filter and validates the date range.
func normalizeFilter(f models.ExpenseFilter) (models.ExpenseFilter, error) {
	f.From = strings.TrimSpace(f.From)
	f.To = strings.TrimSpace(f.To)
	f.Category = strings.TrimSpace(f.Category)

	for _, d := range []string{f.From, f.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return f, newError(ErrValidation, msgInvalidDate, err)
		}
	}
	// YYYY-MM-DD sorts lexically
	if f.From != "" && f.To != "" && f.From > f.To {
		return f, newError(ErrValidation, msgInvalidDateRange, nil)
	}
	return f, nil
}
