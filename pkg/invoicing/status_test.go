package invoicing

import (
	"testing"
	"time"

	"quickbill/models"
)

func TestDeriveDisplayStatus(t *testing.T) {
	today := time.Date(2025, time.March, 10, 14, 30, 0, 0, time.Local)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	cases := []struct {
		name    string
		status  string
		dueDate time.Time
		want    string
	}{
		{"pending past due becomes overdue", StatusPending, yesterday, StatusOverdue},
		{"draft past due becomes overdue", StatusDraft, yesterday, StatusOverdue},
		{"paid ignores past due date", StatusPaid, yesterday, StatusPaid},
		{"pending due today stays pending", StatusPending, today, StatusPending},
		{"pending due tomorrow stays pending", StatusPending, tomorrow, StatusPending},
		{"draft due tomorrow stays draft", StatusDraft, tomorrow, StatusDraft},
		{"due late yesterday still overdue despite time of day", StatusPending,
			time.Date(2025, time.March, 9, 23, 59, 59, 0, time.Local), StatusOverdue},
	}
	for _, tc := range cases {
		if got := DeriveDisplayStatus(tc.status, tc.dueDate, today); got != tc.want {
			t.Fatalf("%s: expected %s got %s", tc.name, tc.want, got)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	if got := NormalizeStatus(StatusOverdue); got != StatusPending {
		t.Fatalf("legacy overdue must re-save as pending, got %s", got)
	}
	for _, s := range []string{StatusDraft, StatusPending, StatusPaid} {
		if got := NormalizeStatus(s); got != s {
			t.Fatalf("expected %s unchanged, got %s", s, got)
		}
	}
}

func TestNormalizePaymentMethod(t *testing.T) {
	cases := []struct {
		name     string
		status   string
		incoming string
		prior    string
		want     string
	}{
		{"paid keeps incoming", StatusPaid, "Online", "-", "Online"},
		{"paid falls back to prior", StatusPaid, "", "UPI", "UPI"},
		{"paid with nothing gets none", StatusPaid, "", "", PaymentMethodNone},
		{"pending forces none even when supplied", StatusPending, "Cash", "Cash", PaymentMethodNone},
		{"draft forces none", StatusDraft, "Bank Transfer", "", PaymentMethodNone},
		{"unpaying clears the prior method", StatusPending, "", "Online", PaymentMethodNone},
	}
	for _, tc := range cases {
		if got := NormalizePaymentMethod(tc.status, tc.incoming, tc.prior); got != tc.want {
			t.Fatalf("%s: expected %q got %q", tc.name, tc.want, got)
		}
	}
}

func TestTotal(t *testing.T) {
	items := []models.InvoiceItem{
		{Description: "Design", Quantity: 2, Rate: 150},
		{Description: "Hosting", Quantity: 1, Rate: 49.5},
	}
	if got := Total(items); got != 349.5 {
		t.Fatalf("expected 349.5 got %v", got)
	}
}

func TestTotalMalformedItemsContributeZero(t *testing.T) {
	items := []models.InvoiceItem{
		{Description: "ok", Quantity: 3, Rate: 10},
		{Description: "missing numbers"},
		{Description: "negative quantity", Quantity: -1, Rate: 100},
	}
	if got := Total(items); got != 30 {
		t.Fatalf("expected 30 got %v", got)
	}
	if got := Total(nil); got != 0 {
		t.Fatalf("expected 0 for no items, got %v", got)
	}
}
