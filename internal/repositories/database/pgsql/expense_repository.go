package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/centavo-app/centavo-backend/internal/apperrors"
	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const expenseColumns = `expense_id, project_id, category_id, payment_method_id, created_by_user_id, obligation_id,
	original_amount, original_currency, exchange_rate, converted_amount,
	title, description, expense_date, receipt_number, notes, is_template,
	alt_currency, alt_exchange_rate, alt_amount,
	created_at, updated_at, is_deleted, deleted_at, deleted_by_user_id`

// expenseSortColumns whitelists sortable columns; anything else falls back
// to expense_date.
var expenseSortColumns = map[string]string{
	"expenseDate":     "expense_date",
	"createdAt":       "created_at",
	"convertedAmount": "converted_amount",
}

type PgxExpenseRepository struct {
	db *pgxpool.Pool
}

func newPgxExpenseRepository(db *pgxpool.Pool) portsrepo.ExpenseRepository {
	return &PgxExpenseRepository{db: db}
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(
		&e.ExpenseID,
		&e.ProjectID,
		&e.CategoryID,
		&e.PaymentMethodID,
		&e.CreatedByUserID,
		&e.ObligationID,
		&e.OriginalAmount,
		&e.OriginalCurrency,
		&e.ExchangeRate,
		&e.ConvertedAmount,
		&e.Title,
		&e.Description,
		&e.ExpenseDate,
		&e.ReceiptNumber,
		&e.Notes,
		&e.IsTemplate,
		&e.AltCurrency,
		&e.AltExchangeRate,
		&e.AltAmount,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.IsDeleted,
		&e.DeletedAt,
		&e.DeletedByUserID,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		INSERT INTO expenses (expense_id, project_id, category_id, payment_method_id, created_by_user_id, obligation_id,
			original_amount, original_currency, exchange_rate, converted_amount,
			title, description, expense_date, receipt_number, notes, is_template,
			alt_currency, alt_exchange_rate, alt_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.db.Exec(ctx, query,
		expense.ExpenseID, expense.ProjectID, expense.CategoryID, expense.PaymentMethodID, expense.CreatedByUserID, expense.ObligationID,
		expense.OriginalAmount, expense.OriginalCurrency, expense.ExchangeRate, expense.ConvertedAmount,
		expense.Title, expense.Description, expense.ExpenseDate, expense.ReceiptNumber, expense.Notes, expense.IsTemplate,
		expense.AltCurrency, expense.AltExchangeRate, expense.AltAmount, expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, projectID, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE project_id = $1 AND expense_id = $2 AND is_deleted = FALSE;`
	expense, err := scanExpense(r.db.QueryRow(ctx, query, projectID, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	return expense, nil
}

func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, projectID string, filter portsrepo.ExpenseListFilter) ([]domain.Expense, int, error) {
	query := `SELECT ` + expenseColumns + `, COUNT(*) OVER () AS total_count
		FROM expenses
		WHERE project_id = $1 AND is_deleted = FALSE AND is_template = $2`
	args := []any{projectID, filter.TemplatesOnly}

	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.ObligationID != "" {
		args = append(args, filter.ObligationID)
		query += fmt.Sprintf(" AND obligation_id = $%d", len(args))
	}

	sortColumn, ok := expenseSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "expense_date"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d;", sortColumn, direction, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses of project %s: %w", projectID, err)
	}
	defer rows.Close()

	return collectExpensesWithTotal(rows)
}

func (r *PgxExpenseRepository) ListExpensesByPaymentMethod(ctx context.Context, paymentMethodID string, limit, offset int) ([]domain.Expense, int, error) {
	query := `SELECT ` + expenseColumns + `, COUNT(*) OVER () AS total_count
		FROM expenses
		WHERE payment_method_id = $1 AND is_deleted = FALSE AND is_template = FALSE
		ORDER BY expense_date DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, paymentMethodID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses by payment method %s: %w", paymentMethodID, err)
	}
	defer rows.Close()

	return collectExpensesWithTotal(rows)
}

func collectExpensesWithTotal(rows pgx.Rows) ([]domain.Expense, int, error) {
	var expenses []domain.Expense
	total := 0
	for rows.Next() {
		var e domain.Expense
		err := rows.Scan(
			&e.ExpenseID, &e.ProjectID, &e.CategoryID, &e.PaymentMethodID, &e.CreatedByUserID, &e.ObligationID,
			&e.OriginalAmount, &e.OriginalCurrency, &e.ExchangeRate, &e.ConvertedAmount,
			&e.Title, &e.Description, &e.ExpenseDate, &e.ReceiptNumber, &e.Notes, &e.IsTemplate,
			&e.AltCurrency, &e.AltExchangeRate, &e.AltAmount,
			&e.CreatedAt, &e.UpdatedAt, &e.IsDeleted, &e.DeletedAt, &e.DeletedByUserID,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed while iterating expense rows: %w", err)
	}
	return expenses, total, nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		UPDATE expenses
		SET category_id = $3, payment_method_id = $4, obligation_id = $5,
			original_amount = $6, original_currency = $7, exchange_rate = $8, converted_amount = $9,
			title = $10, description = $11, expense_date = $12, receipt_number = $13, notes = $14, is_template = $15,
			alt_currency = $16, alt_exchange_rate = $17, alt_amount = $18, updated_at = $19
		WHERE project_id = $1 AND expense_id = $2 AND is_deleted = FALSE;
	`
	tag, err := r.db.Exec(ctx, query,
		expense.ProjectID, expense.ExpenseID,
		expense.CategoryID, expense.PaymentMethodID, expense.ObligationID,
		expense.OriginalAmount, expense.OriginalCurrency, expense.ExchangeRate, expense.ConvertedAmount,
		expense.Title, expense.Description, expense.ExpenseDate, expense.ReceiptNumber, expense.Notes, expense.IsTemplate,
		expense.AltCurrency, expense.AltExchangeRate, expense.AltAmount, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", expense.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxExpenseRepository) MarkExpenseDeleted(ctx context.Context, projectID, expenseID string, deletedBy string, now time.Time) error {
	query := `
		UPDATE expenses
		SET is_deleted = TRUE, deleted_at = $3, deleted_by_user_id = $4, updated_at = $3
		WHERE project_id = $1 AND expense_id = $2 AND is_deleted = FALSE;
	`
	tag, err := r.db.Exec(ctx, query, projectID, expenseID, now, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark expense %s deleted: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxExpenseRepository) CountExpensesForUserSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM expenses
		WHERE created_by_user_id = $1 AND created_at >= $2 AND is_deleted = FALSE AND is_template = FALSE;
	`
	if err := r.db.QueryRow(ctx, query, userID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count expenses for user %s: %w", userID, err)
	}
	return count, nil
}

func (r *PgxExpenseRepository) SumConvertedByCategory(ctx context.Context, projectID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT category_id, COALESCE(SUM(converted_amount), 0)
		FROM expenses
		WHERE project_id = $1 AND is_deleted = FALSE AND is_template = FALSE
		GROUP BY category_id;
	`
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses by category: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var categoryID string
		var sum decimal.Decimal
		if err := rows.Scan(&categoryID, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan category sum: %w", err)
		}
		sums[categoryID] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating category sums: %w", err)
	}
	return sums, nil
}

func (r *PgxExpenseRepository) SumConvertedForProject(ctx context.Context, projectID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `
		SELECT COALESCE(SUM(converted_amount), 0)
		FROM expenses
		WHERE project_id = $1 AND is_deleted = FALSE AND is_template = FALSE;
	`
	if err := r.db.QueryRow(ctx, query, projectID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to aggregate project expenses: %w", err)
	}
	return sum, nil
}
