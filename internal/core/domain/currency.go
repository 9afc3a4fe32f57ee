package domain

import "time"

// Currency is an entry of the ISO 4217 catalogue.
type Currency struct {
	CurrencyCode  string    `json:"currencyCode"` // natural PK, e.g. "USD"
	Name          string    `json:"name"`
	Symbol        string    `json:"symbol"`
	DecimalPlaces int       `json:"decimalPlaces"` // 0 for CRC/JPY, 2 for USD/EUR
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}
