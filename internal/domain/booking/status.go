package booking

// ===============================
// Payment Status
// ===============================

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Finalized reports whether a payment has left pending. Transitions are
// pending->paid or pending->failed, exactly once; a finalized payment never
// changes again.
func Finalized(s PaymentStatus) bool {
	return s == PaymentPaid || s == PaymentFailed
}
