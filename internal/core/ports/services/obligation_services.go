package services

import (
	"context"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	"github.com/centavo-app/centavo-backend/internal/dto"
)

// ObligationSvcFacade manages obligations. Every read enriches obligations
// with the derived balance fields; nothing derived is ever stored.
type ObligationSvcFacade interface {
	CreateObligation(ctx context.Context, projectID string, req dto.CreateObligationRequest, callerID string) (*domain.ObligationWithBalance, error)
	GetObligation(ctx context.Context, projectID, obligationID, callerID string) (*domain.ObligationWithBalance, error)
	ListObligations(ctx context.Context, projectID string, params dto.ListObligationsParams, callerID string) ([]domain.ObligationWithBalance, int, error)
	UpdateObligation(ctx context.Context, projectID, obligationID string, req dto.UpdateObligationRequest, callerID string) (*domain.ObligationWithBalance, error)
	DeleteObligation(ctx context.Context, projectID, obligationID, callerID string) error
}
