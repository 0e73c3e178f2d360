package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusVoided  InvoiceStatus = "voided"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodDebit    PaymentMethod = "debit"
	PaymentMethodCredit   PaymentMethod = "credit"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// statusLabels maps wire names and the cashier-facing Spanish labels to a status
var statusLabels = map[string]InvoiceStatus{
	"paid":      InvoiceStatusPaid,
	"pagada":    InvoiceStatusPaid,
	"pending":   InvoiceStatusPending,
	"pendiente": InvoiceStatusPending,
	"voided":    InvoiceStatusVoided,
	"anulada":   InvoiceStatusVoided,
}

var methodLabels = map[string]PaymentMethod{
	"cash":          PaymentMethodCash,
	"efectivo":      PaymentMethodCash,
	"debit":         PaymentMethodDebit,
	"débito":        PaymentMethodDebit,
	"debito":        PaymentMethodDebit,
	"credit":        PaymentMethodCredit,
	"crédito":       PaymentMethodCredit,
	"credito":       PaymentMethodCredit,
	"transfer":      PaymentMethodTransfer,
	"transferencia": PaymentMethodTransfer,
}

// ParseInvoiceStatus resolves a status label. Unrecognized input is kept
// verbatim so classification can fall back to its neutral severity.
func ParseInvoiceStatus(s string) InvoiceStatus {
	if status, ok := statusLabels[strings.ToLower(strings.TrimSpace(s))]; ok {
		return status
	}
	return InvoiceStatus(s)
}

// ParsePaymentMethod resolves a payment method label, keeping unknown input verbatim
func ParsePaymentMethod(s string) PaymentMethod {
	if method, ok := methodLabels[strings.ToLower(strings.TrimSpace(s))]; ok {
		return method
	}
	return PaymentMethod(s)
}

// InvoiceRecord is a single invoice issued today
type InvoiceRecord struct {
	Number        string          `json:"number"`
	Client        string          `json:"client"`
	Time          string          `json:"time"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Status        InvoiceStatus   `json:"status"`
}

// DefaultInvoices returns today's fixed invoice list in display order
func DefaultInvoices() []InvoiceRecord {
	return []InvoiceRecord{
		{Number: "FAC-001-2401", Client: "CONSUMIDOR FINAL", Time: "08:15 AM", Amount: decimal.RequireFromString("45.50"), PaymentMethod: PaymentMethodCash, Status: InvoiceStatusPaid},
		{Number: "FAC-002-2401", Client: "EMPRESA XYZ C.A.", Time: "09:30 AM", Amount: decimal.RequireFromString("320.75"), PaymentMethod: PaymentMethodTransfer, Status: InvoiceStatusPaid},
		{Number: "FAC-003-2401", Client: "CONSUMIDOR FINAL", Time: "10:45 AM", Amount: decimal.RequireFromString("85.00"), PaymentMethod: PaymentMethodDebit, Status: InvoiceStatusPaid},
		{Number: "FAC-004-2401", Client: "JUAN PÉREZ", Time: "11:20 AM", Amount: decimal.RequireFromString("150.25"), PaymentMethod: PaymentMethodCredit, Status: InvoiceStatusPaid},
		{Number: "FAC-005-2401", Client: "MARÍA GONZÁLEZ", Time: "12:30 PM", Amount: decimal.RequireFromString("65.80"), PaymentMethod: PaymentMethodCash, Status: InvoiceStatusVoided},
		{Number: "FAC-006-2401", Client: "CONSUMIDOR FINAL", Time: "14:15 PM", Amount: decimal.RequireFromString("420.00"), PaymentMethod: PaymentMethodCash, Status: InvoiceStatusPaid},
		{Number: "FAC-007-2401", Client: "CARLOS RODRÍGUEZ", Time: "15:40 PM", Amount: decimal.RequireFromString("95.50"), PaymentMethod: PaymentMethodDebit, Status: InvoiceStatusPending},
		{Number: "FAC-008-2401", Client: "CONSUMIDOR FINAL", Time: "16:20 PM", Amount: decimal.RequireFromString("28.75"), PaymentMethod: PaymentMethodCash, Status: InvoiceStatusPaid},
	}
}
