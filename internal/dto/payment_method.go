package dto

import (
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
)

// CreatePaymentMethodRequest defines data for creating a payment method.
type CreatePaymentMethodRequest struct {
	Name          string                   `json:"name" binding:"required,max=120"`
	Type          domain.PaymentMethodType `json:"type" binding:"required,oneof=bank cash card"`
	CurrencyCode  string                   `json:"currencyCode" binding:"required,iso4217"`
	BankName      string                   `json:"bankName"`
	AccountNumber string                   `json:"accountNumber" binding:"max=34"`
	Description   string                   `json:"description"`
}

// UpdatePaymentMethodRequest defines the mutable payment method fields. The
// currency is immutable after creation.
type UpdatePaymentMethodRequest struct {
	Name          string                   `json:"name" binding:"required,max=120"`
	Type          domain.PaymentMethodType `json:"type" binding:"required,oneof=bank cash card"`
	BankName      *string                  `json:"bankName"`
	AccountNumber *string                  `json:"accountNumber" binding:"omitempty,max=34"`
	Description   *string                  `json:"description"`
}

// PaymentMethodResponse defines the data returned for a payment method.
type PaymentMethodResponse struct {
	PaymentMethodID string                   `json:"paymentMethodID"`
	Name            string                   `json:"name"`
	Type            domain.PaymentMethodType `json:"type"`
	CurrencyCode    string                   `json:"currencyCode"`
	BankName        string                   `json:"bankName,omitempty"`
	AccountNumber   string                   `json:"accountNumber,omitempty"`
	Description     string                   `json:"description,omitempty"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

// ToPaymentMethodResponse converts domain.PaymentMethod to DTO.
func ToPaymentMethodResponse(pm *domain.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		PaymentMethodID: pm.PaymentMethodID,
		Name:            pm.Name,
		Type:            pm.Type,
		CurrencyCode:    pm.CurrencyCode,
		BankName:        pm.BankName,
		AccountNumber:   pm.AccountNumber,
		Description:     pm.Description,
		CreatedAt:       pm.CreatedAt,
		UpdatedAt:       pm.UpdatedAt,
	}
}

// ToListPaymentMethodResponse converts a slice of domain.PaymentMethod to DTOs.
func ToListPaymentMethodResponse(pms []domain.PaymentMethod) []PaymentMethodResponse {
	res := make([]PaymentMethodResponse, len(pms))
	for i, pm := range pms {
		res[i] = ToPaymentMethodResponse(&pm)
	}
	return res
}
