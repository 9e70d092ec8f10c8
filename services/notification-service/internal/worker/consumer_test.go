package worker

import (
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/services/notification-service/internal/events"
)

type captureNotifier struct {
	subjects []string
	messages []string
}

func (c *captureNotifier) Notify(subject, message string) error {
	c.subjects = append(c.subjects, subject)
	c.messages = append(c.messages, message)
	return nil
}

func delivery(t *testing.T, key string, payload any) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return amqp.Delivery{RoutingKey: key, Body: body}
}

func newTestConsumer(n *captureNotifier) *Consumer {
	return NewConsumer(Config{ServiceName: "test"}, n, zap.NewNop())
}

func TestBookingCreatedNotification(t *testing.T) {
	n := &captureNotifier{}
	c := newTestConsumer(n)

	start := time.Date(2025, 11, 26, 10, 0, 0, 0, time.UTC)
	err := c.handleDelivery(delivery(t, events.RKBookingCreated, events.BookingChanged{
		BookingID: "b1",
		UserID:    "u1",
		RoomID:    "room-a",
		Start:     start.Unix(),
		End:       start.Add(time.Hour).Unix(),
	}))
	require.NoError(t, err)
	require.Len(t, n.subjects, 1)
	assert.Equal(t, "Booking confirmed", n.subjects[0])
	assert.Contains(t, n.messages[0], "room-a")
}

func TestBookingCancelledNotification(t *testing.T) {
	n := &captureNotifier{}
	c := newTestConsumer(n)

	err := c.handleDelivery(delivery(t, events.RKBookingCancelled, events.BookingCancelled{
		BookingID: "b1",
		UserID:    "u1",
		RoomID:    "room-a",
	}))
	require.NoError(t, err)
	require.Len(t, n.subjects, 1)
	assert.Equal(t, "Booking cancelled", n.subjects[0])
}

func TestUnknownRoutingKeyIsSkipped(t *testing.T) {
	n := &captureNotifier{}
	c := newTestConsumer(n)

	err := c.handleDelivery(amqp.Delivery{RoutingKey: "payment.paid", Body: []byte("{}")})
	require.NoError(t, err)
	assert.Empty(t, n.subjects)
}

func TestMalformedPayloadErrors(t *testing.T) {
	n := &captureNotifier{}
	c := newTestConsumer(n)

	err := c.handleDelivery(amqp.Delivery{RoutingKey: events.RKBookingCreated, Body: []byte("not json")})
	assert.Error(t, err)
	assert.Empty(t, n.subjects)
}
