package core

const (
	StatusPaid    PaymentStatus = "PAID"
	StatusUnpaid  PaymentStatus = "UNPAID"
	StatusPartial PaymentStatus = "PARTIAL"
)

// PaymentStatus is the amount-based classification of an entry.
type PaymentStatus string

// Reconcile applies a new paid amount to e and re-derives IsPaid from it.
// This is the only place IsPaid is computed; stores persist what it returns.
func Reconcile(e WorkEntry, paidAmount int64) WorkEntry {
	e.PaidAmount = paidAmount
	e.IsPaid = paidAmount >= e.Salary
	return e
}

// Normalize re-derives IsPaid from the amounts already on e.
func Normalize(e WorkEntry) WorkEntry {
	return Reconcile(e, e.PaidAmount)
}

// MarkPaid settles the entry in full.
func MarkPaid(e WorkEntry) WorkEntry {
	return Reconcile(e, e.Salary)
}

// MarkUnpaid clears every payment made toward the entry.
func MarkUnpaid(e WorkEntry) WorkEntry {
	return Reconcile(e, 0)
}

// StatusOf classifies e. A fully covered salary is PAID even when nothing was
// paid (zero salary), so the three statuses never overlap.
func StatusOf(e WorkEntry) PaymentStatus {
	switch {
	case e.PaidAmount >= e.Salary:
		return StatusPaid
	case e.PaidAmount == 0:
		return StatusUnpaid
	default:
		return StatusPartial
	}
}

// ValidatePayment rejects negative paid amounts.
func ValidatePayment(paidAmount int64) error {
	if paidAmount < 0 {
		return NewValidationError(MsgNegativePayment)
	}
	return nil
}
