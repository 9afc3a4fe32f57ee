package repositories

import (
	"context"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
)

// CurrencyRepository persists the ISO 4217 catalogue.
type CurrencyRepository interface {
	SaveCurrency(ctx context.Context, currency domain.Currency) error
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error)
}
