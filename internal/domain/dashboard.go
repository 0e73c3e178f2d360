package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// DefaultExchangeRate is the base USD exchange rate used when none is configured
var DefaultExchangeRate = decimal.RequireFromString("35.50")

// MetricsSnapshot contains the cash register figures for the current day
type MetricsSnapshot struct {
	// Cash summary
	DailyRevenue    decimal.Decimal `json:"dailyRevenue"`
	InvoicesToday   int             `json:"invoicesToday"`
	PaidInvoices    int             `json:"paidInvoices"`
	PendingInvoices int             `json:"pendingInvoices"`
	PendingAmount   decimal.Decimal `json:"pendingAmount"`
	VoidedInvoices  int             `json:"voidedInvoices"`
	VoidedAmount    decimal.Decimal `json:"voidedAmount"`
	RevenueGrowth   decimal.Decimal `json:"revenueGrowth"`

	// Payment methods
	CashAmount     decimal.Decimal `json:"cashAmount"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	TransferAmount decimal.Decimal `json:"transferAmount"`

	// Register control
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Expenses       decimal.Decimal `json:"expenses"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
}

// BalanceDifference returns currentBalance - (openingBalance + dailyRevenue - expenses).
// It is derived on every call so it always reflects the current field values.
func (s *MetricsSnapshot) BalanceDifference() decimal.Decimal {
	expected := s.OpeningBalance.Add(s.DailyRevenue).Sub(s.Expenses)
	return s.CurrentBalance.Sub(expected)
}

// DefaultSnapshot returns the fixed register snapshot for the day
func DefaultSnapshot() *MetricsSnapshot {
	return &MetricsSnapshot{
		DailyRevenue:    decimal.RequireFromString("2850.75"),
		InvoicesToday:   42,
		PaidInvoices:    38,
		PendingInvoices: 4,
		PendingAmount:   decimal.RequireFromString("420.50"),
		VoidedInvoices:  2,
		VoidedAmount:    decimal.RequireFromString("150.25"),
		RevenueGrowth:   decimal.RequireFromString("12.5"),

		CashAmount:     decimal.RequireFromString("1850.25"),
		DebitAmount:    decimal.RequireFromString("650.50"),
		CreditAmount:   decimal.RequireFromString("250.00"),
		TransferAmount: decimal.RequireFromString("100.00"),

		OpeningBalance: decimal.RequireFromString("500.00"),
		Expenses:       decimal.RequireFromString("125.75"),
		CurrentBalance: decimal.RequireFromString("3225.00"),
		ExchangeRate:   DefaultExchangeRate,
	}
}

// HourlySales is the sales total for one hour bucket of the day
type HourlySales struct {
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// SnapshotSource supplies the data a dashboard view is populated with on activation
type SnapshotSource interface {
	LoadSnapshot(ctx context.Context) (*MetricsSnapshot, error)
	LoadInvoices(ctx context.Context) ([]InvoiceRecord, error)
	LoadHourlySales(ctx context.Context) ([]HourlySales, error)
}
