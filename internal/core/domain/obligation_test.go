package domain_test

import (
	"testing"
	"time"

	"github.com/centavo-app/centavo-backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(t time.Time) *time.Time { return &t }

func TestComputeObligationStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	yesterday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	longPast := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		total   decimal.Decimal
		paid    decimal.Decimal
		dueDate *time.Time
		want    domain.ObligationStatus
	}{
		{"no payments, no due date", dec("1000"), dec("0"), nil, domain.ObligationOpen},
		{"no payments, future due date", dec("1000"), dec("0"), datePtr(tomorrow), domain.ObligationOpen},
		{"no payments, due today", dec("1000"), dec("0"), datePtr(today), domain.ObligationOpen},
		{"partial payment, no due date", dec("1000"), dec("250"), nil, domain.ObligationPartiallyPaid},
		{"partial payment, future due date", dec("1000"), dec("250"), datePtr(tomorrow), domain.ObligationPartiallyPaid},
		{"fully paid", dec("1000"), dec("1000"), nil, domain.ObligationPaid},
		{"overpaid", dec("1000"), dec("1200"), nil, domain.ObligationPaid},
		// paid dominates a past due date
		{"paid despite past due date", dec("1000"), dec("1000"), datePtr(longPast), domain.ObligationPaid},
		{"overpaid despite past due date", dec("1000"), dec("1500"), datePtr(yesterday), domain.ObligationPaid},
		// a past due date dominates partial payment
		{"unpaid past due date", dec("500"), dec("0"), datePtr(yesterday), domain.ObligationOverdue},
		{"partially paid past due date", dec("1000"), dec("999.99"), datePtr(yesterday), domain.ObligationOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ComputeObligationStatus(tt.total, tt.paid, tt.dueDate, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithBalance_PartialPayments(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	ob := domain.Obligation{
		ObligationID: "ob-1",
		TotalAmount:  dec("1000.00"),
	}

	// Two linked payments of 300.00 and 250.00.
	enriched := ob.WithBalance(dec("300.00").Add(dec("250.00")), now)

	require.True(t, enriched.PaidAmount.Equal(dec("550.00")), "paidAmount = %s", enriched.PaidAmount)
	require.True(t, enriched.RemainingAmount.Equal(dec("450.00")), "remainingAmount = %s", enriched.RemainingAmount)
	assert.Equal(t, domain.ObligationPartiallyPaid, enriched.Status)

	// A third payment of 450.00 settles the obligation exactly.
	enriched = ob.WithBalance(dec("550.00").Add(dec("450.00")), now)

	require.True(t, enriched.PaidAmount.Equal(dec("1000.00")))
	require.True(t, enriched.RemainingAmount.Equal(dec("0.00")))
	assert.Equal(t, domain.ObligationPaid, enriched.Status)
}

func TestWithBalance_OverdueUnpaid(t *testing.T) {
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	ob := domain.Obligation{
		ObligationID: "ob-2",
		TotalAmount:  dec("500.00"),
		DueDate:      &yesterday,
	}

	enriched := ob.WithBalance(decimal.Zero, now)

	assert.Equal(t, domain.ObligationOverdue, enriched.Status)
	assert.True(t, enriched.RemainingAmount.Equal(dec("500.00")))
}

func TestWithBalance_OverpaymentReportsNegativeRemaining(t *testing.T) {
	now := time.Now()
	ob := domain.Obligation{TotalAmount: dec("100.00")}

	enriched := ob.WithBalance(dec("130.00"), now)

	assert.Equal(t, domain.ObligationPaid, enriched.Status)
	assert.True(t, enriched.RemainingAmount.Equal(dec("-30.00")), "remaining = %s", enriched.RemainingAmount)
}
