package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBalanceDifference_DefaultSnapshot(t *testing.T) {
	s := DefaultSnapshot()

	// 3225.00 - (500.00 + 2850.75 - 125.75) = 0
	got := s.BalanceDifference()
	if !got.Equal(decimal.Zero) {
		t.Errorf("BalanceDifference() = %s, want 0", got.StringFixed(2))
	}
}

func TestBalanceDifference_RecomputedAfterMutation(t *testing.T) {
	s := DefaultSnapshot()
	s.Expenses = decimal.RequireFromString("100.75")

	// expected balance rises by 25, so the register is 25 short
	got := s.BalanceDifference()
	if got.StringFixed(2) != "-25.00" {
		t.Errorf("BalanceDifference() = %s, want -25.00", got.StringFixed(2))
	}
}

func TestDefaultInvoices_OrderAndLength(t *testing.T) {
	invoices := DefaultInvoices()
	if len(invoices) != 8 {
		t.Fatalf("len(DefaultInvoices()) = %d, want 8", len(invoices))
	}

	for i, inv := range invoices {
		want := "FAC-00" + string(rune('1'+i)) + "-2401"
		if inv.Number != want {
			t.Errorf("invoice %d number = %s, want %s", i, inv.Number, want)
		}
	}

	if invoices[4].Status != InvoiceStatusVoided {
		t.Errorf("invoice 5 status = %s, want voided", invoices[4].Status)
	}
	if invoices[6].Status != InvoiceStatusPending {
		t.Errorf("invoice 7 status = %s, want pending", invoices[6].Status)
	}
}

func TestParseInvoiceStatus_UnknownKeptVerbatim(t *testing.T) {
	if got := ParseInvoiceStatus("Reembolsada"); got != InvoiceStatus("Reembolsada") {
		t.Errorf("ParseInvoiceStatus kept %q, want verbatim", got)
	}
	if got := ParseInvoiceStatus(" PAGADA "); got != InvoiceStatusPaid {
		t.Errorf("ParseInvoiceStatus(PAGADA) = %q, want paid", got)
	}
}

func TestAccountClone(t *testing.T) {
	var nilAccount *Account
	if nilAccount.Clone() != nil {
		t.Error("Clone of nil account should be nil")
	}

	a := &Account{Login: "auth0|1", Authorities: []string{"ROLE_USER"}}
	c := a.Clone()
	c.Authorities[0] = "ROLE_ADMIN"
	if a.Authorities[0] != "ROLE_USER" {
		t.Error("Clone should not share authorities slice")
	}
}
