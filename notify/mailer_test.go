package notify_test

import (
	"errors"
	"sync"
	"testing"

	"haven_manager/notify"

	"github.com/stretchr/testify/assert"
)

func TestMailerDeliversQueuedEvents(t *testing.T) {
	var mu sync.Mutex
	var got []notify.Event
	m := notify.NewMailerWithSender(func(e notify.Event) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e)
		return nil
	})

	m.Dispatch(notify.Event{Kind: notify.BookingReceived, To: "a@x.com", BookingCode: "BK1"})
	m.Dispatch(notify.Event{Kind: notify.BookingApproved, To: "a@x.com", BookingCode: "BK1"})
	m.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, got, 2)
	assert.Equal(t, notify.BookingReceived, got[0].Kind)
	assert.Equal(t, notify.BookingApproved, got[1].Kind)
}

func TestMailerCloseDrainsQueue(t *testing.T) {
	var mu sync.Mutex
	count := 0
	m := notify.NewMailerWithSender(func(notify.Event) error {
		mu.Lock()
		defer mu.Unlock()
		count++
		return nil
	})

	for i := 0; i < 10; i++ {
		m.Dispatch(notify.Event{Kind: notify.BookingCompleted, To: "b@x.com"})
	}
	m.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, count)
}

func TestMailerSendFailureIsSwallowed(t *testing.T) {
	m := notify.NewMailerWithSender(func(notify.Event) error {
		return errors.New("smtp down")
	})

	// Dispatch must not panic or surface the error; Close must still return.
	m.Dispatch(notify.Event{Kind: notify.PaymentConfirmed, To: "c@x.com"})
	m.Close()
}

func TestMailerDispatchAfterCloseIsDropped(t *testing.T) {
	var mu sync.Mutex
	count := 0
	m := notify.NewMailerWithSender(func(notify.Event) error {
		mu.Lock()
		defer mu.Unlock()
		count++
		return nil
	})
	m.Close()

	// Must drop silently, never panic on the closed queue.
	m.Dispatch(notify.Event{Kind: notify.BookingReceived, To: "d@x.com"})
	m.Close() // idempotent

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, count)
}

func TestNopDispatcherDiscards(t *testing.T) {
	var d notify.Dispatcher = notify.Nop{}
	d.Dispatch(notify.Event{Kind: notify.BookingReceived})
}
