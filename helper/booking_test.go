package helper_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"haven_manager/constants"
	"haven_manager/helper"
	"haven_manager/model"
	"haven_manager/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingForcesPendingStatus(t *testing.T) {
	_, bookings, _, _, dispatcher := newManagers(t)

	booking, err := bookings.Create(context.Background(), bookingInput("BK1"))
	require.NoError(t, err)

	assert.Equal(t, constants.BookingPending, booking.Status)
	assert.Equal(t, "BK1", booking.BookingID)
	assert.Equal(t, 2000.0, booking.RemainingBalance)
	assert.NotZero(t, booking.ID)
	assert.NotZero(t, booking.CreatedAt)
	assert.Equal(t, []notify.Kind{notify.BookingReceived}, dispatcher.kinds())
}

func TestCreateBookingRemainingBalanceDefault(t *testing.T) {
	_, bookings, _, _, _ := newManagers(t)

	input := bookingInput("BK1")
	input.RemainingBalance = nil

	booking, err := bookings.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, booking.RemainingBalance) // 3000 - 1000
}

func TestCreateBookingDuplicateCode(t *testing.T) {
	db, bookings, _, _, _ := newManagers(t)

	first, err := bookings.Create(context.Background(), bookingInput("BK1"))
	require.NoError(t, err)

	dup := bookingInput("BK1")
	dup.GuestFirstName = "Berto"
	_, err = bookings.Create(context.Background(), dup)
	assert.ErrorIs(t, err, helper.ErrConflict)

	// The first row is untouched.
	var stored model.Booking
	require.NoError(t, db.First(&stored, first.ID).Error)
	assert.Equal(t, "Ana", stored.GuestFirstName)

	var count int64
	db.Model(&model.Booking{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateBookingUploadFailureAborts(t *testing.T) {
	db, bookings, _, uploader, _ := newManagers(t)
	uploader.fail = true

	input := bookingInput("BK1")
	input.IDDocument = str("aWQtZG9j")

	_, err := bookings.Create(context.Background(), input)
	assert.ErrorIs(t, err, helper.ErrUpstream)

	var count int64
	db.Model(&model.Booking{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestCreateBookingAdditionalGuests(t *testing.T) {
	_, bookings, _, _, _ := newManagers(t)

	input := bookingInput("BK1")
	input.AdditionalGuests = []model.AdditionalGuestInput{
		{Name: "Liza Cruz", Age: intPtr(28), IDDocument: str("aWQ=")},
		{Name: "Paolo Cruz"},
	}

	booking, err := bookings.Create(context.Background(), input)
	require.NoError(t, err)

	var guests []model.AdditionalGuest
	require.NoError(t, json.Unmarshal(booking.AdditionalGuests, &guests))
	require.Len(t, guests, 2)
	assert.Equal(t, "Liza Cruz", guests[0].Name)
	require.NotNil(t, guests[0].IDDocumentURL)
	assert.Contains(t, *guests[0].IDDocumentURL, "bookings/ids")
	assert.Nil(t, guests[1].IDDocumentURL)
}

func TestCreateBookingBadDate(t *testing.T) {
	_, bookings, _, _, _ := newManagers(t)

	input := bookingInput("BK1")
	input.CheckInDate = "01/02/2025"

	_, err := bookings.Create(context.Background(), input)
	var verr *helper.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	db, bookings, _, _, _ := newManagers(t)

	booking, err := bookings.Create(context.Background(), bookingInput("BK1"))
	require.NoError(t, err)

	_, err = bookings.UpdateStatus(context.Background(), booking.ID, "paused", nil)
	assert.ErrorIs(t, err, helper.ErrInvalidStatus)

	var stored model.Booking
	require.NoError(t, db.First(&stored, booking.ID).Error)
	assert.Equal(t, constants.BookingPending, stored.Status)
}

func TestUpdateStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{constants.BookingPending, constants.BookingApproved, true},
		{constants.BookingPending, constants.BookingRejected, true},
		{constants.BookingPending, constants.BookingCheckedIn, false},
		{constants.BookingPending, constants.BookingCompleted, false},
		{constants.BookingApproved, constants.BookingConfirmed, true},
		{constants.BookingApproved, constants.BookingCheckedIn, true},
		{constants.BookingApproved, constants.BookingPending, false},
		{constants.BookingConfirmed, constants.BookingCheckedIn, true},
		{constants.BookingConfirmed, constants.BookingCompleted, false},
		{constants.BookingCheckedIn, constants.BookingCompleted, true},
		{constants.BookingCompleted, constants.BookingApproved, false},
		// cancellation is reachable from anywhere
		{constants.BookingPending, constants.BookingCancelled, true},
		{constants.BookingConfirmed, constants.BookingCancelled, true},
		{constants.BookingCheckedIn, constants.BookingCancelled, true},
		{constants.BookingCompleted, constants.BookingCancelled, true},
	}

	for _, tc := range cases {
		t.Run(tc.from+"->"+tc.to, func(t *testing.T) {
			db, bookings, _, _, _ := newManagers(t)
			booking, err := bookings.Create(context.Background(), bookingInput("BK1"))
			require.NoError(t, err)
			require.NoError(t, db.Model(booking).Update("status", tc.from).Error)

			reason := str("late payment")
			updated, err := bookings.UpdateStatus(context.Background(), booking.ID, tc.to, reason)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.to, updated.Status)
			} else {
				assert.ErrorIs(t, err, helper.ErrInvalidTransition)
			}
		})
	}
}

func TestUpdateStatusRejectedRequiresReason(t *testing.T) {
	db, bookings, _, _, _ := newManagers(t)

	booking, err := bookings.Create(context.Background(), bookingInput("BK1"))
	require.NoError(t, err)

	_, err = bookings.UpdateStatus(context.Background(), booking.ID, constants.BookingRejected, nil)
	var verr *helper.ValidationError
	assert.ErrorAs(t, err, &verr)

	updated, err := bookings.UpdateStatus(context.Background(), booking.ID, constants.BookingRejected, str("no payment proof"))
	require.NoError(t, err)
	require.NotNil(t, updated.RejectionReason)
	assert.Equal(t, "no payment proof", *updated.RejectionReason)

	var stored model.Booking
	require.NoError(t, db.First(&stored, booking.ID).Error)
	require.NotNil(t, stored.RejectionReason)
	assert.Equal(t, "no payment proof", *stored.RejectionReason)
}

func TestUpdateStatusMissingBooking(t *testing.T) {
	_, bookings, _, _, _ := newManagers(t)

	_, err := bookings.UpdateStatus(context.Background(), 999, constants.BookingApproved, nil)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestUpdateStatusNotifications(t *testing.T) {
	_, bookings, payments, _, dispatcher := newManagers(t)

	booking, err := bookings.Create(context.Background(), bookingInput("BK1"))
	require.NoError(t, err)

	_, err = bookings.UpdateStatus(context.Background(), booking.ID, constants.BookingApproved, nil)
	require.NoError(t, err)

	_, err = payments.Create(context.Background(), model.CreateBookingPaymentInput{
		BookingRef:    booking.ID,
		PaymentMethod: "bank-transfer",
		TotalAmount:   3500,
		DownPayment:   1500,
	})
	require.NoError(t, err)

	_, err = bookings.UpdateStatus(context.Background(), booking.ID, constants.BookingCheckedIn, nil)
	require.NoError(t, err)
	_, err = bookings.UpdateStatus(context.Background(), booking.ID, constants.BookingCompleted, nil)
	require.NoError(t, err)

	kinds := dispatcher.kinds()
	assert.Equal(t, []notify.Kind{
		notify.BookingReceived,
		notify.BookingApproved,
		notify.BookingCheckedIn,
		notify.BookingCompleted,
	}, kinds)

	// The check-in mail re-reads payment context rather than booking totals.
	checkIn := dispatcher.events[2]
	assert.Equal(t, "bank-transfer", checkIn.PaymentMethod)
	assert.Equal(t, 3500.0, checkIn.TotalAmount)
	assert.Equal(t, 2000.0, checkIn.RemainingBalance)
	assert.Equal(t, "a@x.com", checkIn.To)
}

func TestDeleteBooking(t *testing.T) {
	db, bookings, _, _, _ := newManagers(t)

	booking, err := bookings.Create(context.Background(), bookingInput("BK1"))
	require.NoError(t, err)

	deleted, err := bookings.Delete(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "BK1", deleted.BookingID)

	var count int64
	db.Model(&model.Booking{}).Count(&count)
	assert.EqualValues(t, 0, count)

	_, err = bookings.Delete(context.Background(), booking.ID)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestDeleteBookingRemovesPayments(t *testing.T) {
	db, bookings, payments, _, _ := newManagers(t)

	booking, err := bookings.Create(context.Background(), bookingInput("BK1"))
	require.NoError(t, err)

	payment, err := payments.Create(context.Background(), model.CreateBookingPaymentInput{
		BookingRef:    booking.ID,
		PaymentMethod: "gcash",
		TotalAmount:   1000,
		DownPayment:   400,
	})
	require.NoError(t, err)

	_, err = bookings.Delete(context.Background(), booking.ID)
	require.NoError(t, err)

	// No orphan payment rows survive the parent delete.
	var count int64
	db.Model(&model.BookingPayment{}).Count(&count)
	assert.EqualValues(t, 0, count)

	_, err = payments.Get(context.Background(), payment.ID)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestListBookingsByStatus(t *testing.T) {
	_, bookings, _, _, _ := newManagers(t)

	b1, err := bookings.Create(context.Background(), bookingInput("BK1"))
	require.NoError(t, err)
	_, err = bookings.Create(context.Background(), bookingInput("BK2"))
	require.NoError(t, err)

	_, err = bookings.UpdateStatus(context.Background(), b1.ID, constants.BookingApproved, nil)
	require.NoError(t, err)

	all, err := bookings.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	approved, err := bookings.List(context.Background(), constants.BookingApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "BK1", approved[0].BookingID)
}

func TestGetBookingResolvesHavenImages(t *testing.T) {
	db, bookings, _, _, _ := newManagers(t)

	haven := model.Haven{Name: "Haven 1", Slug: "haven-1"}
	require.NoError(t, db.Create(&haven).Error)
	require.NoError(t, db.Create(&model.HavenImage{HavenID: haven.ID, URL: "https://cdn.example.com/h1.png"}).Error)

	booking, err := bookings.Create(context.Background(), bookingInput("BK1"))
	require.NoError(t, err)

	got, images, err := bookings.Get(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "BK1", got.BookingID)
	require.Len(t, images, 1)
	assert.Equal(t, "https://cdn.example.com/h1.png", images[0].URL)

	_, _, err = bookings.Get(context.Background(), 999)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestListForUserWindows(t *testing.T) {
	db, bookings, _, _, _ := newManagers(t)
	userID := uint(7)

	mk := func(code string, offsetDays int, status string) {
		input := bookingInput(code)
		input.UserID = &userID
		input.CheckInDate = time.Now().AddDate(0, 0, offsetDays).Format("2006-01-02")
		input.CheckOutDate = time.Now().AddDate(0, 0, offsetDays+1).Format("2006-01-02")
		b, err := bookings.Create(context.Background(), input)
		require.NoError(t, err)
		if status != constants.BookingPending {
			require.NoError(t, db.Model(b).Update("status", status).Error)
		}
	}

	mk("FUTURE", 5, constants.BookingApproved)
	mk("PAST", -10, constants.BookingCompleted)
	mk("GONE", 3, constants.BookingCancelled)

	upcoming, err := bookings.ListForUser(context.Background(), userID, "upcoming")
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "FUTURE", upcoming[0].BookingID)

	past, err := bookings.ListForUser(context.Background(), userID, "past")
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.Equal(t, "PAST", past[0].BookingID)

	cancelled, err := bookings.ListForUser(context.Background(), userID, "cancelled")
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, "GONE", cancelled[0].BookingID)

	all, err := bookings.ListForUser(context.Background(), userID, "all")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = bookings.ListForUser(context.Background(), userID, "bogus")
	var verr *helper.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestListForHaven(t *testing.T) {
	db, bookings, _, _, _ := newManagers(t)

	haven := model.Haven{Name: "Haven 1", Slug: "haven-1"}
	require.NoError(t, db.Create(&haven).Error)

	active, err := bookings.Create(context.Background(), bookingInput("BK1"))
	require.NoError(t, err)
	gone, err := bookings.Create(context.Background(), bookingInput("BK2"))
	require.NoError(t, err)
	require.NoError(t, db.Model(gone).Update("status", constants.BookingCancelled).Error)

	list, err := bookings.ListForHaven(context.Background(), haven.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.BookingID, list[0].BookingID)

	_, err = bookings.ListForHaven(context.Background(), 999)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestAutoCompletePastCheckouts(t *testing.T) {
	db, bookings, _, _, _ := newManagers(t)

	stale, err := bookings.Create(context.Background(), bookingInput("STALE"))
	require.NoError(t, err)
	require.NoError(t, db.Model(stale).Updates(map[string]any{
		"status":         constants.BookingCheckedIn,
		"check_out_date": time.Now().AddDate(0, 0, -2),
	}).Error)

	fresh, err := bookings.Create(context.Background(), bookingInput("FRESH"))
	require.NoError(t, err)

	bookings.AutoComplete(context.Background())

	var stored model.Booking
	require.NoError(t, db.First(&stored, stale.ID).Error)
	assert.Equal(t, constants.BookingCompleted, stored.Status)

	var storedFresh model.Booking
	require.NoError(t, db.First(&storedFresh, fresh.ID).Error)
	assert.Equal(t, constants.BookingPending, storedFresh.Status)
}

func intPtr(v int) *int { return &v }
