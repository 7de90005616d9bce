package invoicing

import "time"

// Invoice statuses. Draft, pending and paid are legal write values. Overdue
// exists only as a read-time derived value, plus legacy rows imported before
// the derivation rule; it is never a legal write value.
const (
	StatusDraft   = "draft"
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

// PaymentMethodNone marks an invoice without a recorded payment.
const PaymentMethodNone = "-"

var paymentMethods = map[string]bool{
	PaymentMethodNone: true,
	"Online":          true,
	"Cash":            true,
	"Bank Transfer":   true,
	"UPI":             true,
}

// IsValidStatus reports whether s is acceptable as an incoming status. The
// legacy overdue value is accepted on input and normalized before storage.
func IsValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPending, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// IsValidPaymentMethod reports whether m is one of the known payment methods.
func IsValidPaymentMethod(m string) bool {
	return paymentMethods[m]
}

// NormalizeStatus maps a stored or incoming status to a legal write value.
// Legacy overdue rows re-save as pending; everything else is unchanged.
func NormalizeStatus(s string) string {
	if s == StatusOverdue {
		return StatusPending
	}
	return s
}

// DeriveDisplayStatus computes the at-query-time status without touching
// storage. Paid always wins; an unpaid invoice whose due date has passed
// displays as overdue. The comparison is date-only on both sides.
func DeriveDisplayStatus(status string, dueDate, today time.Time) string {
	if status == StatusPaid {
		return StatusPaid
	}
	if dateOnly(dueDate).Before(dateOnly(today)) {
		return StatusOverdue
	}
	return status
}

// NormalizePaymentMethod enforces that only paid invoices carry a payment
// method. For a paid invoice the incoming value wins when supplied, falling
// back to the prior value; any other status forces "-" regardless of input.
func NormalizePaymentMethod(status, incoming, prior string) string {
	if status != StatusPaid {
		return PaymentMethodNone
	}
	if incoming != "" {
		return incoming
	}
	if prior != "" {
		return prior
	}
	return PaymentMethodNone
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
