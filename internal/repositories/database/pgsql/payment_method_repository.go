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
)

const paymentMethodColumns = `payment_method_id, owner_user_id, name, type, currency_code, bank_name,
	account_number, description, created_at, updated_at, is_deleted, deleted_at, deleted_by_user_id`

type PgxPaymentMethodRepository struct {
	db *pgxpool.Pool
}

func newPgxPaymentMethodRepository(db *pgxpool.Pool) portsrepo.PaymentMethodRepository {
	return &PgxPaymentMethodRepository{db: db}
}

var _ portsrepo.PaymentMethodRepository = (*PgxPaymentMethodRepository)(nil)

func scanPaymentMethod(row pgx.Row) (*domain.PaymentMethod, error) {
	var pm domain.PaymentMethod
	err := row.Scan(
		&pm.PaymentMethodID,
		&pm.OwnerUserID,
		&pm.Name,
		&pm.Type,
		&pm.CurrencyCode,
		&pm.BankName,
		&pm.AccountNumber,
		&pm.Description,
		&pm.CreatedAt,
		&pm.UpdatedAt,
		&pm.IsDeleted,
		&pm.DeletedAt,
		&pm.DeletedByUserID,
	)
	if err != nil {
		return nil, err
	}
	return &pm, nil
}

func (r *PgxPaymentMethodRepository) SavePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (payment_method_id, owner_user_id, name, type, currency_code, bank_name, account_number, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		pm.PaymentMethodID,
		pm.OwnerUserID,
		pm.Name,
		pm.Type,
		pm.CurrencyCode,
		pm.BankName,
		pm.AccountNumber,
		pm.Description,
		pm.CreatedAt,
		pm.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save payment method: %w", err)
	}
	return nil
}

func (r *PgxPaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE payment_method_id = $1 AND is_deleted = FALSE;`
	pm, err := scanPaymentMethod(r.db.QueryRow(ctx, query, paymentMethodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment method %s: %w", paymentMethodID, err)
	}
	return pm, nil
}

func (r *PgxPaymentMethodRepository) ListPaymentMethods(ctx context.Context, ownerUserID string) ([]domain.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE owner_user_id = $1 AND is_deleted = FALSE ORDER BY name;`
	rows, err := r.db.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	defer rows.Close()

	var pms []domain.PaymentMethod
	for rows.Next() {
		pm, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment method row: %w", err)
		}
		pms = append(pms, *pm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating payment method rows: %w", err)
	}
	return pms, nil
}

func (r *PgxPaymentMethodRepository) UpdatePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error {
	query := `
		UPDATE payment_methods
		SET name = $2, type = $3, bank_name = $4, account_number = $5, description = $6, updated_at = $7
		WHERE payment_method_id = $1 AND is_deleted = FALSE;
	`
	tag, err := r.db.Exec(ctx, query,
		pm.PaymentMethodID,
		pm.Name,
		pm.Type,
		pm.BankName,
		pm.AccountNumber,
		pm.Description,
		pm.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment method %s: %w", pm.PaymentMethodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPaymentMethodRepository) MarkPaymentMethodDeleted(ctx context.Context, paymentMethodID string, deletedBy string, now time.Time) error {
	query := `
		UPDATE payment_methods
		SET is_deleted = TRUE, deleted_at = $2, deleted_by_user_id = $3, updated_at = $2
		WHERE payment_method_id = $1 AND is_deleted = FALSE;
	`
	tag, err := r.db.Exec(ctx, query, paymentMethodID, now, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark payment method %s deleted: %w", paymentMethodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPaymentMethodRepository) CountPaymentMethods(ctx context.Context, ownerUserID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM payment_methods WHERE owner_user_id = $1 AND is_deleted = FALSE;`
	if err := r.db.QueryRow(ctx, query, ownerUserID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count payment methods: %w", err)
	}
	return count, nil
}
