package notify

type Kind string

const (
	BookingReceived  Kind = "booking_received"
	BookingApproved  Kind = "booking_approved"
	BookingCheckedIn Kind = "booking_checked_in"
	BookingCompleted Kind = "booking_completed"
	PaymentConfirmed Kind = "payment_confirmed"
)

// Event carries everything a mail template needs so the worker never
// touches the database.
type Event struct {
	Kind             Kind
	To               string
	GuestName        string
	BookingCode      string
	RoomName         string
	CheckIn          string
	CheckOut         string
	PaymentMethod    string
	TotalAmount      float64
	DownPayment      float64
	RemainingBalance float64
}

// Dispatcher is the fire-and-forget boundary: Dispatch must return
// immediately and delivery failures must never reach the caller.
type Dispatcher interface {
	Dispatch(e Event)
}

// Nop discards every event. Used where notifications are disabled.
type Nop struct{}

func (Nop) Dispatch(Event) {}
