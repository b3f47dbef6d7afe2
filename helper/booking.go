package helper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"haven_manager/constants"
	"haven_manager/model"
	"haven_manager/notify"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// BookingManager owns booking creation and the status state machine.
type BookingManager struct {
	db     *gorm.DB
	images ImageUploader
	notify notify.Dispatcher
}

func NewBookingManager(db *gorm.DB, images ImageUploader, dispatcher notify.Dispatcher) *BookingManager {
	return &BookingManager{db: db, images: images, notify: dispatcher}
}

func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, Validation(fmt.Sprintf("%s must be YYYY-MM-DD", field))
	}
	return d, nil
}

func (m *BookingManager) Create(ctx context.Context, input model.CreateBookingInput) (*model.Booking, error) {
	checkIn, err := parseDate("check_in_date", input.CheckInDate)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseDate("check_out_date", input.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if checkOut.Before(checkIn) {
		return nil, Validation("check_out_date must not precede check_in_date")
	}

	var existing int64
	if err := m.db.WithContext(ctx).Model(&model.Booking{}).
		Where("booking_id = ?", input.BookingID).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: booking_id %s", ErrConflict, input.BookingID)
	}

	var booking model.Booking
	copier.Copy(&booking, &input)
	booking.CheckInDate = checkIn
	booking.CheckOutDate = checkOut
	booking.Status = constants.BookingPending // caller input never decides the initial status
	if input.RemainingBalance != nil {
		booking.RemainingBalance = *input.RemainingBalance
	} else {
		booking.RemainingBalance = input.TotalAmount - input.DownPayment
	}

	// Every upload must succeed before the row is written; the booking may
	// never reference an image that failed to upload.
	if input.IDDocument != nil {
		res, err := m.images.Upload(ctx, *input.IDDocument, "bookings/ids")
		if err != nil {
			return nil, err
		}
		booking.IDDocumentURL = &res.URL
	}
	if input.PaymentProof != nil {
		res, err := m.images.Upload(ctx, *input.PaymentProof, "bookings/proofs")
		if err != nil {
			return nil, err
		}
		booking.PaymentProofURL = &res.URL
	}
	if len(input.AdditionalGuests) > 0 {
		guests := make([]model.AdditionalGuest, 0, len(input.AdditionalGuests))
		for _, g := range input.AdditionalGuests {
			guest := model.AdditionalGuest{Name: g.Name, Age: g.Age, Gender: g.Gender}
			if g.IDDocument != nil {
				res, err := m.images.Upload(ctx, *g.IDDocument, "bookings/ids")
				if err != nil {
					return nil, err
				}
				guest.IDDocumentURL = &res.URL
			}
			guests = append(guests, guest)
		}
		raw, err := json.Marshal(guests)
		if err != nil {
			return nil, err
		}
		booking.AdditionalGuests = raw
	}
	if len(input.AddOns) > 0 {
		addons := make([]model.AddOn, 0, len(input.AddOns))
		for _, a := range input.AddOns {
			addons = append(addons, model.AddOn{Name: a.Name, Price: a.Price, Quantity: a.Quantity})
		}
		raw, err := json.Marshal(addons)
		if err != nil {
			return nil, err
		}
		booking.AddOns = raw
	}

	if err := m.db.WithContext(ctx).Create(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: booking_id %s", ErrConflict, input.BookingID)
		}
		return nil, err
	}

	m.notify.Dispatch(notify.Event{
		Kind:        notify.BookingReceived,
		To:          booking.GuestEmail,
		GuestName:   booking.GuestFirstName,
		BookingCode: booking.BookingID,
		RoomName:    booking.RoomName,
		CheckIn:     booking.CheckInDate.Format(dateLayout),
		CheckOut:    booking.CheckOutDate.Format(dateLayout),
	})

	return &booking, nil
}

// Get returns the booking plus the matching haven's image collection,
// resolved by room name for display purposes.
func (m *BookingManager) Get(ctx context.Context, id uint) (*model.Booking, []model.HavenImage, error) {
	var booking model.Booking
	if err := m.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var images []model.HavenImage
	var haven model.Haven
	if err := m.db.WithContext(ctx).Preload("Images").
		Where("name = ?", booking.RoomName).First(&haven).Error; err == nil {
		images = haven.Images
	}
	return &booking, images, nil
}

func (m *BookingManager) List(ctx context.Context, status string) ([]model.Booking, error) {
	query := m.db.WithContext(ctx).Model(&model.Booking{}).Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var bookings []model.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (m *BookingManager) UpdateStatus(ctx context.Context, id uint, status string, reason *string) (*model.Booking, error) {
	if !IsBookingStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var booking model.Booking
	if err := m.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !CanTransition(booking.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, status)
	}
	if status == constants.BookingRejected && (reason == nil || *reason == "") {
		return nil, Validation("rejection_reason is required when rejecting")
	}

	updates := map[string]any{"status": status}
	if reason != nil {
		updates["rejection_reason"] = *reason
	}
	if err := m.db.WithContext(ctx).Model(&booking).Updates(updates).Error; err != nil {
		return nil, err
	}
	booking.Status = status
	if reason != nil {
		booking.RejectionReason = reason
	}

	switch status {
	case constants.BookingApproved:
		m.notify.Dispatch(m.eventFor(notify.BookingApproved, booking))
	case constants.BookingCheckedIn:
		// The welcome mail carries payment figures that are not on the bare
		// status-update row, so re-read the payment context.
		m.notify.Dispatch(m.checkInEvent(ctx, booking))
	case constants.BookingCompleted:
		m.notify.Dispatch(m.eventFor(notify.BookingCompleted, booking))
	}

	return &booking, nil
}

func (m *BookingManager) eventFor(kind notify.Kind, booking model.Booking) notify.Event {
	return notify.Event{
		Kind:             kind,
		To:               booking.GuestEmail,
		GuestName:        booking.GuestFirstName,
		BookingCode:      booking.BookingID,
		RoomName:         booking.RoomName,
		CheckIn:          booking.CheckInDate.Format(dateLayout),
		CheckOut:         booking.CheckOutDate.Format(dateLayout),
		PaymentMethod:    booking.PaymentMethod,
		TotalAmount:      booking.TotalAmount,
		DownPayment:      booking.DownPayment,
		RemainingBalance: booking.RemainingBalance,
	}
}

func (m *BookingManager) checkInEvent(ctx context.Context, booking model.Booking) notify.Event {
	event := m.eventFor(notify.BookingCheckedIn, booking)
	var payment model.BookingPayment
	err := m.db.WithContext(ctx).
		Where("booking_id = ?", booking.ID).
		Order("created_at desc").First(&payment).Error
	if err == nil {
		event.PaymentMethod = payment.PaymentMethod
		event.TotalAmount = payment.TotalAmount
		event.DownPayment = payment.DownPayment
		event.RemainingBalance = payment.RemainingBalance
	}
	return event
}

func (m *BookingManager) Delete(ctx context.Context, id uint) (*model.Booking, error) {
	var booking model.Booking
	if err := m.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Payments cannot outlive their booking.
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", booking.ID).Delete(&model.BookingPayment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListForUser filters a user's bookings into display windows.
func (m *BookingManager) ListForUser(ctx context.Context, userID uint, window string) ([]model.Booking, error) {
	query := m.db.WithContext(ctx).Model(&model.Booking{}).
		Where("user_id = ?", userID).Order("check_in_date asc")

	today := time.Now().Truncate(24 * time.Hour)
	switch window {
	case "upcoming":
		query = query.Where("check_in_date >= ? AND status NOT IN ?",
			today, []string{constants.BookingCancelled, constants.BookingRejected})
	case "past":
		query = query.Where("check_out_date < ? OR status = ?", today, constants.BookingCompleted)
	case "cancelled":
		query = query.Where("status = ?", constants.BookingCancelled)
	case "", "all":
	default:
		return nil, Validation("status must be one of upcoming, past, cancelled, all")
	}

	var bookings []model.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListForHaven returns a haven's active bookings (cancelled and rejected
// ones are noise for the availability view).
func (m *BookingManager) ListForHaven(ctx context.Context, havenID uint) ([]model.Booking, error) {
	var haven model.Haven
	if err := m.db.WithContext(ctx).First(&haven, havenID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var bookings []model.Booking
	err := m.db.WithContext(ctx).
		Where("room_name = ? AND status NOT IN ?",
			haven.Name, []string{constants.BookingCancelled, constants.BookingRejected}).
		Order("check_in_date asc").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// AutoComplete moves checked-in bookings whose checkout date has passed to
// completed. Run periodically by the scheduler.
func (m *BookingManager) AutoComplete(ctx context.Context) {
	var bookings []model.Booking
	err := m.db.WithContext(ctx).
		Where("status = ? AND check_out_date < ?", constants.BookingCheckedIn, time.Now()).
		Find(&bookings).Error
	if err != nil {
		log.Printf("auto-complete scan failed: %v", err)
		return
	}
	for _, b := range bookings {
		if _, err := m.UpdateStatus(ctx, b.ID, constants.BookingCompleted, nil); err != nil {
			log.Printf("auto-complete booking %s failed: %v", b.BookingID, err)
		}
	}
}
