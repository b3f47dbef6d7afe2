package helper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"haven_manager/constants"
	"haven_manager/model"
	"haven_manager/notify"

	"gorm.io/gorm"
)

// PaymentManager owns the booking_payment lifecycle and the invariant that
// approving or rejecting a payment mirrors onto the parent booking.
type PaymentManager struct {
	db     *gorm.DB
	images ImageUploader
	notify notify.Dispatcher
}

func NewPaymentManager(db *gorm.DB, images ImageUploader, dispatcher notify.Dispatcher) *PaymentManager {
	return &PaymentManager{db: db, images: images, notify: dispatcher}
}

func (m *PaymentManager) Create(ctx context.Context, input model.CreateBookingPaymentInput) (*model.BookingPayment, error) {
	var booking model.Booking
	if err := m.db.WithContext(ctx).First(&booking, input.BookingRef).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %d", ErrNotFound, input.BookingRef)
		}
		return nil, err
	}

	payment := model.BookingPayment{
		BookingRef:    input.BookingRef,
		PaymentMethod: input.PaymentMethod,
		RoomRate:      input.RoomRate,
		AddOnsTotal:   input.AddOnsTotal,
		TotalAmount:   input.TotalAmount,
		DownPayment:   input.DownPayment,
		PaymentStatus: constants.PaymentPending,
	}
	if input.RemainingBalance != nil {
		payment.RemainingBalance = *input.RemainingBalance
	} else {
		payment.RemainingBalance = input.TotalAmount - input.DownPayment
	}

	if input.PaymentProof != nil {
		res, err := m.images.Upload(ctx, *input.PaymentProof, "payments/proofs")
		if err != nil {
			return nil, err
		}
		payment.PaymentProofURL = &res.URL
	}

	if err := m.db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// Update applies a sparse patch inside one transaction. When the resulting
// payment_status is approved or rejected, the parent booking's status is set
// to the same value in the same transaction; the two must never observably
// diverge.
func (m *PaymentManager) Update(ctx context.Context, id uint, input model.UpdateBookingPaymentInput) (*model.BookingPaymentDetail, error) {
	if input.PaymentStatus != nil && !IsPaymentStatus(*input.PaymentStatus) {
		return nil, Validation(fmt.Sprintf("payment_status must be one of %s",
			strings.Join(constants.PaymentStatuses, ", ")))
	}

	// The proof upload happens before the transaction opens; an uploaded but
	// uncommitted artifact is an acceptable orphan.
	var proofURL *string
	if input.PaymentProof != nil {
		res, err := m.images.Upload(ctx, *input.PaymentProof, "payments/proofs")
		if err != nil {
			return nil, err
		}
		proofURL = &res.URL
	}

	updates := map[string]any{}
	if input.PaymentStatus != nil {
		updates["payment_status"] = *input.PaymentStatus
	}
	if input.RejectionReason != nil {
		updates["rejection_reason"] = *input.RejectionReason
	}
	if input.ReviewedBy != nil {
		updates["reviewed_by"] = *input.ReviewedBy
	}
	if input.PaymentMethod != nil {
		updates["payment_method"] = *input.PaymentMethod
	}
	if proofURL != nil {
		updates["payment_proof_url"] = *proofURL
	}
	if input.RoomRate != nil {
		updates["room_rate"] = *input.RoomRate
	}
	if input.AddOnsTotal != nil {
		updates["add_ons_total"] = *input.AddOnsTotal
	}
	if input.TotalAmount != nil {
		updates["total_amount"] = *input.TotalAmount
	}
	if input.DownPayment != nil {
		updates["down_payment"] = *input.DownPayment
	}
	if input.RemainingBalance != nil {
		updates["remaining_balance"] = *input.RemainingBalance
	}
	if len(updates) == 0 {
		return nil, Validation("no fields to update")
	}
	if input.ReviewedBy != nil || input.PaymentStatus != nil {
		updates["reviewed_at"] = time.Now()
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment model.BookingPayment
		if err := tx.First(&payment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: payment %d", ErrNotFound, id)
			}
			return err
		}

		if err := tx.Model(&payment).Updates(updates).Error; err != nil {
			return err
		}

		if input.PaymentStatus != nil &&
			(*input.PaymentStatus == constants.PaymentApproved || *input.PaymentStatus == constants.PaymentRejected) {
			mirror := map[string]any{"status": *input.PaymentStatus}
			if *input.PaymentStatus == constants.PaymentRejected {
				if input.RejectionReason != nil {
					mirror["rejection_reason"] = *input.RejectionReason
				}
			} else {
				mirror["rejection_reason"] = nil
			}
			res := tx.Model(&model.Booking{}).Where("id = ?", payment.BookingRef).Updates(mirror)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Missing parent rolls back the payment write too.
				return fmt.Errorf("%w: booking %d", ErrNotFound, payment.BookingRef)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	detail, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.PaymentStatus != nil && *input.PaymentStatus == constants.PaymentApproved {
		m.notify.Dispatch(notify.Event{
			Kind:             notify.PaymentConfirmed,
			To:               detail.GuestEmail,
			GuestName:        detail.GuestFirstName,
			BookingCode:      detail.BookingCode,
			PaymentMethod:    detail.PaymentMethod,
			TotalAmount:      detail.TotalAmount,
			DownPayment:      detail.DownPayment,
			RemainingBalance: detail.RemainingBalance,
		})
	}

	return detail, nil
}

func (m *PaymentManager) joined(ctx context.Context) *gorm.DB {
	return m.db.WithContext(ctx).Table("booking_payments").
		Select("booking_payments.*, bookings.booking_id AS booking_code, " +
			"bookings.guest_first_name, bookings.guest_last_name, " +
			"bookings.guest_email, bookings.guest_phone").
		Joins("JOIN bookings ON bookings.id = booking_payments.booking_id")
}

func (m *PaymentManager) Get(ctx context.Context, id uint) (*model.BookingPaymentDetail, error) {
	var detail model.BookingPaymentDetail
	err := m.joined(ctx).Where("booking_payments.id = ?", id).Take(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &detail, nil
}

func (m *PaymentManager) List(ctx context.Context, status, q string) ([]model.BookingPaymentDetail, error) {
	query := m.joined(ctx).Order("booking_payments.created_at desc")
	if status != "" {
		query = query.Where("booking_payments.payment_status = ?", status)
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(bookings.booking_id) LIKE ? OR LOWER(bookings.guest_first_name) LIKE ? "+
				"OR LOWER(bookings.guest_last_name) LIKE ? OR LOWER(bookings.guest_email) LIKE ?",
			like, like, like, like)
	}
	var details []model.BookingPaymentDetail
	if err := query.Find(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

func (m *PaymentManager) Delete(ctx context.Context, id uint) (*model.BookingPayment, error) {
	var payment model.BookingPayment
	if err := m.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := m.db.WithContext(ctx).Delete(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}
