package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ObligationStatus is derived at read time from the obligation's total amount,
// the sum of payments linked to it and its due date. It is never persisted.
type ObligationStatus string

const (
	ObligationOpen          ObligationStatus = "open"
	ObligationPartiallyPaid ObligationStatus = "partially_paid"
	ObligationPaid          ObligationStatus = "paid"
	ObligationOverdue       ObligationStatus = "overdue"
)

// Obligation represents a debt tracked within a project, paid down over time
// via expenses that reference it through their ObligationID.
type Obligation struct {
	ObligationID    string          `json:"obligationID"`
	ProjectID       string          `json:"projectID"`
	CreatedByUserID string          `json:"createdByUserID"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	TotalAmount     decimal.Decimal `json:"totalAmount"` // always > 0, enforced at the boundary
	CurrencyCode    string          `json:"currencyCode"`
	DueDate         *time.Time      `json:"dueDate,omitempty"` // calendar date, no time component
	AuditFields
	SoftDeleteFields
}

// ObligationWithBalance is an Obligation enriched with the computed payment
// progress. PaidAmount is the sum of ConvertedAmount over all non-deleted
// expenses linked to the obligation.
type ObligationWithBalance struct {
	Obligation
	PaidAmount      decimal.Decimal  `json:"paidAmount"`
	RemainingAmount decimal.Decimal  `json:"remainingAmount"`
	Status          ObligationStatus `json:"status"`
}

// ComputeObligationStatus derives the lifecycle status of an obligation.
// Evaluation order matters:
//  1. paid dominates everything, including a past due date;
//  2. a past due date dominates partial payment;
//  3. any payment at all means partially_paid;
//  4. otherwise the obligation is open.
//
// The due date is a calendar date: it only counts as past once the day itself
// is over, so a due date of today is not overdue.
func ComputeObligationStatus(totalAmount, paidAmount decimal.Decimal, dueDate *time.Time, now time.Time) ObligationStatus {
	if paidAmount.GreaterThanOrEqual(totalAmount) {
		return ObligationPaid
	}
	if dueDate != nil && dueDate.Before(dateOf(now)) {
		return ObligationOverdue
	}
	if paidAmount.GreaterThan(decimal.Zero) {
		return ObligationPartiallyPaid
	}
	return ObligationOpen
}

// WithBalance computes the derived balance fields for an obligation.
// RemainingAmount is not clamped: overpayment shows up as a negative value.
func (o Obligation) WithBalance(paidAmount decimal.Decimal, now time.Time) ObligationWithBalance {
	return ObligationWithBalance{
		Obligation:      o,
		PaidAmount:      paidAmount,
		RemainingAmount: o.TotalAmount.Sub(paidAmount),
		Status:          ComputeObligationStatus(o.TotalAmount, paidAmount, o.DueDate, now),
	}
}

// dateOf truncates an instant to its calendar date in UTC.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
