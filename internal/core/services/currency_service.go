package services

import (
	"context"
	"fmt"
	"time"

	"github.com/centavo-app/centavo-backend/internal/apperrors"
	"github.com/centavo-app/centavo-backend/internal/core/domain"
	portsrepo "github.com/centavo-app/centavo-backend/internal/core/ports/repositories"
	portssvc "github.com/centavo-app/centavo-backend/internal/core/ports/services"
	"github.com/centavo-app/centavo-backend/internal/dto"
)

// currencyService implements CurrencySvcFacade. The catalogue is seeded via
// migrations; adding to it is an admin operation.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepository
	userRepo     portsrepo.UserRepository
}

// NewCurrencyService creates a new instance of currencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepository, userRepo portsrepo.UserRepository) portssvc.CurrencySvcFacade {
	return &currencyService{
		currencyRepo: currencyRepo,
		userRepo:     userRepo,
	}
}

// CreateCurrency adds a currency to the catalogue. Admin only.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, callerID string) (*domain.Currency, error) {
	caller, err := s.userRepo.FindUserByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load caller: %w", err)
	}
	if !caller.IsAdmin {
		return nil, apperrors.ErrForbidden
	}

	currency := domain.Currency{
		CurrencyCode:  req.CurrencyCode,
		Name:          req.Name,
		Symbol:        req.Symbol,
		DecimalPlaces: req.DecimalPlaces,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}
	return &currency, nil
}

// GetCurrencyByCode returns a catalogue entry.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
}

// ListCurrencies returns the catalogue, optionally only active entries.
func (s *currencyService) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}
