package model

import (
	"time"

	"gorm.io/datatypes"
)

type Booking struct {
	DTO
	BookingID string `gorm:"uniqueIndex;size:64;not null" json:"booking_id"`
	UserID    *uint  `json:"user_id,omitempty"` // null for guest checkout

	// Guest snapshot, captured at booking time and never synced with a profile.
	GuestFirstName  string  `gorm:"not null" json:"guest_first_name"`
	GuestLastName   string  `gorm:"not null" json:"guest_last_name"`
	GuestAge        *int    `json:"guest_age,omitempty"`
	GuestGender     *string `json:"guest_gender,omitempty"`
	GuestEmail      string  `gorm:"not null" json:"guest_email"`
	GuestPhone      string  `gorm:"not null" json:"guest_phone"`
	GuestSocialLink *string `json:"guest_social_link,omitempty"`
	IDDocumentURL   *string `json:"id_document_url,omitempty"`
	PaymentProofURL *string `json:"payment_proof_url,omitempty"`

	AdditionalGuests datatypes.JSON `json:"additional_guests,omitempty"`

	RoomName     string    `gorm:"not null" json:"room_name"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckInTime  string    `gorm:"size:16" json:"check_in_time"`
	CheckOutDate time.Time `json:"check_out_date"`
	CheckOutTime string    `gorm:"size:16" json:"check_out_time"`
	Adults       int       `gorm:"default:1" json:"adults"`
	Children     int       `gorm:"default:0" json:"children"`
	Infants      int       `gorm:"default:0" json:"infants"`

	PaymentMethod    string         `json:"payment_method"`
	RoomRate         float64        `json:"room_rate"`
	SecurityDeposit  float64        `json:"security_deposit"`
	AddOnsTotal      float64        `json:"add_ons_total"`
	TotalAmount      float64        `json:"total_amount"`
	DownPayment      float64        `json:"down_payment"`
	RemainingBalance float64        `json:"remaining_balance"`
	AddOns           datatypes.JSON `json:"add_ons,omitempty"`

	Status          string  `gorm:"size:20;default:pending" json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

// AdditionalGuest is the element shape stored inside Booking.AdditionalGuests.
type AdditionalGuest struct {
	Name          string  `json:"name"`
	Age           *int    `json:"age,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	IDDocumentURL *string `json:"id_document_url,omitempty"`
}

// AddOn is the element shape stored inside Booking.AddOns.
type AddOn struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type AdditionalGuestInput struct {
	Name       string  `json:"name" validate:"required"`
	Age        *int    `json:"age,omitempty"`
	Gender     *string `json:"gender,omitempty"`
	IDDocument *string `json:"id_document,omitempty"` // base64 payload
}

type AddOnInput struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=1"`
}

type CreateBookingInput struct {
	BookingID       string  `json:"booking_id" validate:"required"`
	UserID          *uint   `json:"user_id,omitempty"`
	GuestFirstName  string  `json:"guest_first_name" validate:"required"`
	GuestLastName   string  `json:"guest_last_name" validate:"required"`
	GuestAge        *int    `json:"guest_age,omitempty"`
	GuestGender     *string `json:"guest_gender,omitempty"`
	GuestEmail      string  `json:"guest_email" validate:"required,email"`
	GuestPhone      string  `json:"guest_phone" validate:"required"`
	GuestSocialLink *string `json:"guest_social_link,omitempty"`

	IDDocument       *string                `json:"id_document,omitempty"`   // base64 payload
	PaymentProof     *string                `json:"payment_proof,omitempty"` // base64 payload
	AdditionalGuests []AdditionalGuestInput `json:"additional_guests,omitempty" validate:"dive"`

	RoomName     string `json:"room_name" validate:"required"`
	CheckInDate  string `json:"check_in_date" validate:"required"`
	CheckInTime  string `json:"check_in_time,omitempty"`
	CheckOutDate string `json:"check_out_date" validate:"required"`
	CheckOutTime string `json:"check_out_time,omitempty"`
	Adults       int    `json:"adults" validate:"gte=1"`
	Children     int    `json:"children" validate:"gte=0"`
	Infants      int    `json:"infants" validate:"gte=0"`

	PaymentMethod    string       `json:"payment_method" validate:"required"`
	RoomRate         float64      `json:"room_rate" validate:"gte=0"`
	SecurityDeposit  float64      `json:"security_deposit" validate:"gte=0"`
	AddOnsTotal      float64      `json:"add_ons_total" validate:"gte=0"`
	TotalAmount      float64      `json:"total_amount" validate:"gte=0"`
	DownPayment      float64      `json:"down_payment" validate:"gte=0"`
	RemainingBalance *float64     `json:"remaining_balance,omitempty"`
	AddOns           []AddOnInput `json:"add_ons,omitempty" validate:"dive"`
}

type UpdateBookingStatusInput struct {
	ID              uint    `json:"id" validate:"required,gt=0"`
	Status          string  `json:"status" validate:"required"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}
