package constants

// Booking lifecycle statuses.
const (
	BookingPending   = "pending"
	BookingApproved  = "approved"
	BookingRejected  = "rejected"
	BookingConfirmed = "confirmed"
	BookingCheckedIn = "checked-in"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Payment reconciliation statuses.
const (
	PaymentPending  = "pending"
	PaymentApproved = "approved"
	PaymentRejected = "rejected"
	PaymentRefunded = "refunded"
)

var BookingStatuses = []string{
	BookingPending,
	BookingApproved,
	BookingRejected,
	BookingConfirmed,
	BookingCheckedIn,
	BookingCompleted,
	BookingCancelled,
}

var PaymentStatuses = []string{
	PaymentPending,
	PaymentApproved,
	PaymentRejected,
	PaymentRefunded,
}

// BookingTransitions maps each status to the statuses it may move to.
// "cancelled" is additionally reachable from any status (administrative
// escape hatch), handled in the manager rather than listed per row.
var BookingTransitions = map[string]map[string]bool{
	BookingPending:   {BookingApproved: true, BookingRejected: true},
	BookingApproved:  {BookingConfirmed: true, BookingCheckedIn: true},
	BookingConfirmed: {BookingCheckedIn: true},
	BookingCheckedIn: {BookingCompleted: true},
	BookingRejected:  {},
	BookingCompleted: {},
	BookingCancelled: {},
}

const (
	DATA_INPUT_IS_NOT_NUMBER = "input is not a number"
	INVALID_REQUEST_BODY     = "invalid request body"
	VALIDATION_FAILED        = "validation failed"
)
