package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"spendwise/internal/model"
)

// ExpenseFilter holds the optional list filters. Zero-valued fields add
// no predicate; set fields are ANDed onto the owner condition.
type ExpenseFilter struct {
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

// ExpenseRepository defines expense persistence operations. Every method
// takes the owner explicitly and folds `owner_id = ?` into the statement
// itself, so no query can see or touch another user's rows and mutations
// carry their authorization check in the same single statement.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	FindOwned(ctx context.Context, ownerID uint, id uuid.UUID) (*model.Expense, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Expense, error)
	FilterByOwner(ctx context.Context, ownerID uint, filter ExpenseFilter) ([]model.Expense, error)
	UpdateOwned(ctx context.Context, ownerID uint, id uuid.UUID, changes map[string]interface{}) (int64, error)
	DeleteOwned(ctx context.Context, ownerID uint, id uuid.UUID) (int64, error)
	CategorySummary(ctx context.Context, ownerID uint) ([]model.CategoryTotal, error)
	TotalByOwner(ctx context.Context, ownerID uint) (decimal.Decimal, error)
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository.
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

// Create persists a new expense. OwnerID must already be set by the caller.
func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

// FindOwned fetches one expense by id, constrained to the owner.
func (r *expenseRepository) FindOwned(ctx context.Context, ownerID uint, id uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

// ListByOwner returns all of the owner's expenses, most recent first.
func (r *expenseRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Expense, error) {
	var expenses []model.Expense
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// FilterByOwner returns the owner's expenses matching the conjunction of
// the set filters. Values are always bound as parameters, never
// concatenated into the query text. Date bounds are inclusive.
func (r *expenseRepository) FilterByOwner(ctx context.Context, ownerID uint, filter ExpenseFilter) ([]model.Expense, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.StartDate != nil {
		q = q.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("date <= ?", *filter.EndDate)
	}

	var expenses []model.Expense
	if err := q.Order("created_at DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// UpdateOwned applies changes to the expense in one conditioned UPDATE
// and reports the number of matched rows. Zero means the id does not
// exist or belongs to someone else; the caller cannot tell which.
func (r *expenseRepository) UpdateOwned(ctx context.Context, ownerID uint, id uuid.UUID, changes map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(changes)
	return res.RowsAffected, res.Error
}

// DeleteOwned removes the expense in one conditioned DELETE, with the
// same matched-rows contract as UpdateOwned.
func (r *expenseRepository) DeleteOwned(ctx context.Context, ownerID uint, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Expense{})
	return res.RowsAffected, res.Error
}

// CategorySummary sums the owner's spending per category, largest first.
func (r *expenseRepository) CategorySummary(ctx context.Context, ownerID uint) ([]model.CategoryTotal, error) {
	var totals []model.CategoryTotal
	if err := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Select("category, SUM(amount) AS total").
		Where("owner_id = ?", ownerID).
		Group("category").
		Order("total DESC").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

// TotalByOwner sums the owner's spending. COALESCE keeps the empty
// account at zero instead of NULL.
func (r *expenseRepository) TotalByOwner(ctx context.Context, ownerID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("owner_id = ?", ownerID).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
