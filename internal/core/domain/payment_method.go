package domain

// PaymentMethodType classifies how an expense was paid.
type PaymentMethodType string

const (
	PaymentMethodBank PaymentMethodType = "bank"
	PaymentMethodCash PaymentMethodType = "cash"
	PaymentMethodCard PaymentMethodType = "card"
)

// PaymentMethod is a user-owned payment instrument, usable across all of the
// user's projects.
type PaymentMethod struct {
	PaymentMethodID string            `json:"paymentMethodID"`
	OwnerUserID     string            `json:"ownerUserID"`
	Name            string            `json:"name"`
	Type            PaymentMethodType `json:"type"`
	CurrencyCode    string            `json:"currencyCode"`
	BankName        string            `json:"bankName"`
	AccountNumber   string            `json:"accountNumber"` // last digits or masked form only
	Description     string            `json:"description"`
	AuditFields
	SoftDeleteFields
}
