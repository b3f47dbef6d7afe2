package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"strconv"
	"sync"

	"haven_manager/config"

	qrcode "github.com/skip2/go-qrcode"
	"gopkg.in/gomail.v2"
)

var subjects = map[Kind]string{
	BookingReceived:  "Booking received - %s",
	BookingApproved:  "Booking approved - %s",
	BookingCheckedIn: "Welcome! You're checked in - %s",
	BookingCompleted: "Thank you for staying with us - %s",
	PaymentConfirmed: "Payment confirmed - %s",
}

var bodies = map[Kind]*template.Template{
	BookingReceived: template.Must(template.New("received").Parse(`
<p>Hi {{.GuestName}},</p>
<p>We received your booking <b>{{.BookingCode}}</b> for {{.RoomName}}
({{.CheckIn}} to {{.CheckOut}}). It is pending approval and we will get
back to you shortly.</p>`)),
	BookingApproved: template.Must(template.New("approved").Parse(`
<p>Hi {{.GuestName}},</p>
<p>Your booking <b>{{.BookingCode}}</b> for {{.RoomName}}
({{.CheckIn}} to {{.CheckOut}}) has been approved.</p>
<p>Total: {{printf "%.2f" .TotalAmount}} &middot; Paid: {{printf "%.2f" .DownPayment}}
&middot; Balance: {{printf "%.2f" .RemainingBalance}} ({{.PaymentMethod}})</p>
<p>Show the QR code below at check-in.</p>
<img src="cid:checkin_qr" alt="check-in code"/>`)),
	BookingCheckedIn: template.Must(template.New("checkedin").Parse(`
<p>Hi {{.GuestName}},</p>
<p>You're checked in to {{.RoomName}}. Checkout is on {{.CheckOut}}.
Remaining balance: {{printf "%.2f" .RemainingBalance}}.</p>`)),
	BookingCompleted: template.Must(template.New("completed").Parse(`
<p>Hi {{.GuestName}},</p>
<p>Thanks for staying at {{.RoomName}}! Booking {{.BookingCode}} is now complete.
Total settled: {{printf "%.2f" .TotalAmount}}.</p>
<p>We hope to host you again.</p>`)),
	PaymentConfirmed: template.Must(template.New("payment").Parse(`
<p>Hi {{.GuestName}},</p>
<p>Your payment of {{printf "%.2f" .DownPayment}} for booking
<b>{{.BookingCode}}</b> has been reviewed and approved.
Remaining balance: {{printf "%.2f" .RemainingBalance}}.</p>
<img src="cid:checkin_qr" alt="check-in code"/>`)),
}

// Mailer queues events on a channel and delivers them from a single worker
// goroutine. Send errors are logged and dropped.
type Mailer struct {
	queue chan Event
	done  chan struct{}
	send  func(Event) error

	mu     sync.Mutex
	closed bool
}

func NewMailer() *Mailer {
	m := &Mailer{
		queue: make(chan Event, 64),
		done:  make(chan struct{}),
	}
	m.send = m.sendSMTP
	go m.run()
	return m
}

// NewMailerWithSender swaps the SMTP delivery for a custom sender. Used by
// tests and alternative transports.
func NewMailerWithSender(send func(Event) error) *Mailer {
	m := &Mailer{
		queue: make(chan Event, 64),
		done:  make(chan struct{}),
		send:  send,
	}
	go m.run()
	return m
}

func (m *Mailer) run() {
	defer close(m.done)
	for e := range m.queue {
		if err := m.send(e); err != nil {
			log.Printf("notify: %s to %s failed: %v", e.Kind, e.To, err)
		}
	}
}

func (m *Mailer) Dispatch(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		log.Printf("notify: mailer closed, dropping %s for %s", e.Kind, e.To)
		return
	}
	select {
	case m.queue <- e:
	default:
		log.Printf("notify: queue full, dropping %s for %s", e.Kind, e.To)
	}
}

// Close stops accepting events and waits for the worker to drain the queue.
// Dispatch calls after Close are dropped, never a panic.
func (m *Mailer) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.queue)
	m.mu.Unlock()
	<-m.done
}

func (m *Mailer) sendSMTP(e Event) error {
	tmpl, ok := bodies[e.Kind]
	if !ok {
		return fmt.Errorf("no template for event %s", e.Kind)
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, e); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.Config("SMTP_FROM"))
	msg.SetHeader("To", e.To)
	msg.SetHeader("Subject", fmt.Sprintf(subjects[e.Kind], e.BookingCode))
	msg.SetBody("text/html", body.String())

	if e.Kind == BookingApproved || e.Kind == PaymentConfirmed {
		if qr, err := qrcode.Encode(e.BookingCode, qrcode.Medium, 400); err == nil {
			msg.Embed("checkin_qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(qr)
				return err
			}), gomail.SetHeader(map[string][]string{
				"Content-Type":        {"image/png"},
				"Content-ID":          {"<checkin_qr>"},
				"Content-Disposition": {"inline"},
			}))
		} else {
			log.Printf("notify: qr for %s failed: %v", e.BookingCode, err)
		}
	}

	port, _ := strconv.Atoi(config.ConfigDefault("SMTP_PORT", "587"))
	d := gomail.NewDialer(
		config.Config("SMTP_HOST"),
		port,
		config.Config("SMTP_USERNAME"),
		config.Config("SMTP_PASSWORD"),
	)
	return d.DialAndSend(msg)
}
