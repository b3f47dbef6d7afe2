package helper_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"haven_manager/database"
	"haven_manager/helper"
	"haven_manager/model"
	"haven_manager/notify"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// fakeUploader stands in for cloudinary: deterministic URLs, optional failure.
type fakeUploader struct {
	fail    bool
	uploads int
}

func (f *fakeUploader) Upload(_ context.Context, _, folder string) (helper.UploadResult, error) {
	if f.fail {
		return helper.UploadResult{}, fmt.Errorf("%w: simulated outage", helper.ErrUpstream)
	}
	f.uploads++
	return helper.UploadResult{
		ID:  fmt.Sprintf("public-%d", f.uploads),
		URL: fmt.Sprintf("https://cdn.example.com/%s/%d.png", folder, f.uploads),
	}, nil
}

func (f *fakeUploader) Delete(context.Context, string) (bool, error) {
	if f.fail {
		return false, fmt.Errorf("%w: simulated outage", helper.ErrUpstream)
	}
	return true, nil
}

// recordDispatcher captures dispatched events for assertions.
type recordDispatcher struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recordDispatcher) Dispatch(e notify.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordDispatcher) kinds() []notify.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]notify.Kind, 0, len(r.events))
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func newManagers(t *testing.T) (*gorm.DB, *helper.BookingManager, *helper.PaymentManager, *fakeUploader, *recordDispatcher) {
	db := setupTestDB(t)
	uploader := &fakeUploader{}
	dispatcher := &recordDispatcher{}
	bookings := helper.NewBookingManager(db, uploader, dispatcher)
	payments := helper.NewPaymentManager(db, uploader, dispatcher)
	return db, bookings, payments, uploader, dispatcher
}

func bookingInput(code string) model.CreateBookingInput {
	return model.CreateBookingInput{
		BookingID:        code,
		GuestFirstName:   "Ana",
		GuestLastName:    "Cruz",
		GuestEmail:       "a@x.com",
		GuestPhone:       "0900",
		RoomName:         "Haven 1",
		CheckInDate:      "2025-02-01",
		CheckOutDate:     "2025-02-02",
		Adults:           2,
		PaymentMethod:    "gcash",
		RoomRate:         3000,
		TotalAmount:      3000,
		DownPayment:      1000,
		RemainingBalance: f64(2000),
	}
}

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }
