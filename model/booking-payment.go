package model

import "time"

type BookingPayment struct {
	DTO
	BookingRef uint `gorm:"column:booking_id;not null;index" json:"booking_id"`

	PaymentMethod    string  `json:"payment_method"`
	PaymentProofURL  *string `json:"payment_proof_url,omitempty"`
	RoomRate         float64 `json:"room_rate"`
	AddOnsTotal      float64 `json:"add_ons_total"`
	TotalAmount      float64 `json:"total_amount"`
	DownPayment      float64 `json:"down_payment"`
	RemainingBalance float64 `json:"remaining_balance"`

	PaymentStatus   string     `gorm:"size:20;default:pending" json:"payment_status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ReviewedBy      *string    `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`

	Booking Booking `gorm:"foreignKey:BookingRef;constraint:OnDelete:CASCADE" json:"-"`
}

// BookingPaymentDetail is the joined read shape: the payment plus the parent
// booking's code and the main guest's contact fields.
type BookingPaymentDetail struct {
	BookingPayment
	BookingCode    string `gorm:"column:booking_code" json:"booking_code"`
	GuestFirstName string `gorm:"column:guest_first_name" json:"guest_first_name"`
	GuestLastName  string `gorm:"column:guest_last_name" json:"guest_last_name"`
	GuestEmail     string `gorm:"column:guest_email" json:"guest_email"`
	GuestPhone     string `gorm:"column:guest_phone" json:"guest_phone"`
}

type CreateBookingPaymentInput struct {
	BookingRef       uint     `json:"booking_id" validate:"required,gt=0"`
	PaymentMethod    string   `json:"payment_method" validate:"required"`
	PaymentProof     *string  `json:"payment_proof,omitempty"` // base64 payload
	RoomRate         float64  `json:"room_rate" validate:"gte=0"`
	AddOnsTotal      float64  `json:"add_ons_total" validate:"gte=0"`
	TotalAmount      float64  `json:"total_amount" validate:"gte=0"`
	DownPayment      float64  `json:"down_payment" validate:"gte=0"`
	RemainingBalance *float64 `json:"remaining_balance,omitempty"`
}

// UpdateBookingPaymentInput is a sparse patch; nil means "leave unchanged".
// ID is only consulted when the request path carries no payment id.
type UpdateBookingPaymentInput struct {
	ID               *uint    `json:"id,omitempty"`
	PaymentStatus    *string  `json:"payment_status,omitempty"`
	RejectionReason  *string  `json:"rejection_reason,omitempty"`
	ReviewedBy       *string  `json:"reviewed_by,omitempty"`
	PaymentMethod    *string  `json:"payment_method,omitempty"`
	PaymentProof     *string  `json:"payment_proof,omitempty"` // base64 payload
	RoomRate         *float64 `json:"room_rate,omitempty"`
	AddOnsTotal      *float64 `json:"add_ons_total,omitempty"`
	TotalAmount      *float64 `json:"total_amount,omitempty"`
	DownPayment      *float64 `json:"down_payment,omitempty"`
	RemainingBalance *float64 `json:"remaining_balance,omitempty"`
}
