package repositories

import (
	"context"
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
)

// PaymentMethodRepository persists user-owned payment methods.
type PaymentMethodRepository interface {
	SavePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error
	FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, ownerUserID string) ([]domain.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error
	MarkPaymentMethodDeleted(ctx context.Context, paymentMethodID string, deletedBy string, now time.Time) error
	CountPaymentMethods(ctx context.Context, ownerUserID string) (int, error)
}
