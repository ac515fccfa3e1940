package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"spendwise/internal/cache"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/model"
	"spendwise/internal/repository"
)

const aggregateCacheTTL = 5 * time.Minute

// ExpenseInput carries the validated fields of a create or update. Date
// is optional; creation defaults it to now.
type ExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        *time.Time
}

// ExpenseService exposes the owner-scoped expense operations. The owner
// is always the authenticated identity, passed explicitly; nothing here
// trusts an owner field from a request body.
type ExpenseService interface {
	Create(ctx context.Context, ownerID uint, in ExpenseInput) (*model.Expense, error)
	List(ctx context.Context, ownerID uint) ([]model.Expense, error)
	Filter(ctx context.Context, ownerID uint, filter repository.ExpenseFilter) ([]model.Expense, error)
	Update(ctx context.Context, ownerID uint, id uuid.UUID, in ExpenseInput) (*model.Expense, error)
	Delete(ctx context.Context, ownerID uint, id uuid.UUID) error
	CategorySummary(ctx context.Context, ownerID uint) ([]model.CategoryTotal, error)
	Total(ctx context.Context, ownerID uint) (decimal.Decimal, error)
}

type expenseService struct {
	expenses repository.ExpenseRepository
	cache    *cache.Client
}

// NewExpenseService builds an ExpenseService with repository and cache.
func NewExpenseService(expenses repository.ExpenseRepository, cache *cache.Client) ExpenseService {
	return &expenseService{expenses: expenses, cache: cache}
}

func (s *expenseService) totalKey(ownerID uint) string {
	return fmt.Sprintf("expense_total:%d", ownerID)
}

func (s *expenseService) summaryKey(ownerID uint) string {
	return fmt.Sprintf("category_summary:%d", ownerID)
}

// invalidate drops the owner's cached aggregates after any mutation.
func (s *expenseService) invalidate(ctx context.Context, ownerID uint) {
	_ = s.cache.Delete(ctx, s.totalKey(ownerID), s.summaryKey(ownerID))
}

func (s *expenseService) Create(ctx context.Context, ownerID uint, in ExpenseInput) (*model.Expense, error) {
	expense := &model.Expense{
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
		OwnerID:     ownerID,
	}
	if in.Date != nil {
		expense.Date = *in.Date
	}

	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	s.invalidate(ctx, ownerID)
	return expense, nil
}

func (s *expenseService) List(ctx context.Context, ownerID uint) ([]model.Expense, error) {
	return s.expenses.ListByOwner(ctx, ownerID)
}

func (s *expenseService) Filter(ctx context.Context, ownerID uint, filter repository.ExpenseFilter) ([]model.Expense, error) {
	return s.expenses.FilterByOwner(ctx, ownerID, filter)
}

// Update rewrites the expense through a single owner-conditioned
// statement. A vanished row and a foreign row are both ErrExpenseNotFound.
func (s *expenseService) Update(ctx context.Context, ownerID uint, id uuid.UUID, in ExpenseInput) (*model.Expense, error) {
	changes := map[string]interface{}{
		"description": in.Description,
		"amount":      in.Amount,
		"category":    in.Category,
	}
	if in.Date != nil {
		changes["date"] = *in.Date
	}

	affected, err := s.expenses.UpdateOwned(ctx, ownerID, id, changes)
	if err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	if affected == 0 {
		return nil, apperrors.ErrExpenseNotFound
	}
	s.invalidate(ctx, ownerID)

	return s.expenses.FindOwned(ctx, ownerID, id)
}

func (s *expenseService) Delete(ctx context.Context, ownerID uint, id uuid.UUID) error {
	affected, err := s.expenses.DeleteOwned(ctx, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	s.invalidate(ctx, ownerID)
	return nil
}

func (s *expenseService) CategorySummary(ctx context.Context, ownerID uint) ([]model.CategoryTotal, error) {
	if data, _ := s.cache.Get(ctx, s.summaryKey(ownerID)); data != nil {
		var cached []model.CategoryTotal
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	totals, err := s.expenses.CategorySummary(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if totals == nil {
		totals = []model.CategoryTotal{}
	}

	if payload, err := json.Marshal(totals); err == nil {
		_ = s.cache.Set(ctx, s.summaryKey(ownerID), payload, aggregateCacheTTL)
	}
	return totals, nil
}

func (s *expenseService) Total(ctx context.Context, ownerID uint) (decimal.Decimal, error) {
	if data, _ := s.cache.Get(ctx, s.totalKey(ownerID)); data != nil {
		var cached decimal.Decimal
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	total, err := s.expenses.TotalByOwner(ctx, ownerID)
	if err != nil {
		return decimal.Zero, err
	}

	if payload, err := json.Marshal(total); err == nil {
		_ = s.cache.Set(ctx, s.totalKey(ownerID), payload, aggregateCacheTTL)
	}
	return total, nil
}
