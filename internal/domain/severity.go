package domain

// Severity is the display classification consumed by the widget layer for styling
type Severity string

const (
	SeveritySuccess   Severity = "success"
	SeverityInfo      Severity = "info"
	SeverityWarning   Severity = "warning"
	SeverityDanger    Severity = "danger"
	SeverityHelp      Severity = "help"
	SeveritySecondary Severity = "secondary"
)

// ClassifyInvoiceStatus maps an invoice status to its tag severity.
// Unknown statuses fall back to info.
func ClassifyInvoiceStatus(status InvoiceStatus) Severity {
	switch status {
	case InvoiceStatusPaid:
		return SeveritySuccess
	case InvoiceStatusPending:
		return SeverityWarning
	case InvoiceStatusVoided:
		return SeverityDanger
	default:
		return SeverityInfo
	}
}

// ClassifyPaymentMethod maps a payment method to its tag severity.
// Unknown methods fall back to secondary.
func ClassifyPaymentMethod(method PaymentMethod) Severity {
	switch method {
	case PaymentMethodCash:
		return SeveritySuccess
	case PaymentMethodDebit:
		return SeverityInfo
	case PaymentMethodCredit:
		return SeverityWarning
	case PaymentMethodTransfer:
		return SeverityHelp
	default:
		return SeveritySecondary
	}
}
