package helper

import (
	"haven_manager/constants"
	"haven_manager/utils"
)

func IsBookingStatus(s string) bool {
	return utils.IsValidValueOfConstant(s, constants.BookingStatuses)
}

func IsPaymentStatus(s string) bool {
	return utils.IsValidValueOfConstant(s, constants.PaymentStatuses)
}

// CanTransition reports whether a booking may move from one status to another.
// Cancellation is always reachable (administrative escape hatch).
func CanTransition(from, to string) bool {
	if to == constants.BookingCancelled {
		return true
	}
	allowed, ok := constants.BookingTransitions[from]
	if !ok {
		return false
	}
	return allowed[to]
}
