package repositories

import (
	"context"
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ObligationRepository persists obligations. Balance fields are never stored;
// PaidAmounts aggregates linked, non-deleted expenses on demand.
type ObligationRepository interface {
	SaveObligation(ctx context.Context, obligation domain.Obligation) error
	FindObligationByID(ctx context.Context, projectID, obligationID string) (*domain.Obligation, error)
	ListObligations(ctx context.Context, projectID string, sortBy string, sortDesc bool, limit, offset int) ([]domain.Obligation, int, error)
	UpdateObligation(ctx context.Context, obligation domain.Obligation) error
	MarkObligationDeleted(ctx context.Context, projectID, obligationID string, deletedBy string, now time.Time) error

	// PaidAmounts returns SUM(converted_amount) of non-deleted,
	// non-template expenses per obligation. Obligations without payments
	// are absent from the map.
	PaidAmounts(ctx context.Context, obligationIDs []string) (map[string]decimal.Decimal, error)
}
