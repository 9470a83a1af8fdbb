package notify

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/trovelabs/storefront-api.git/internal/kafkax"
	"github.com/trovelabs/storefront-api.git/internal/orders"
)

// Notifier hands a formatted order message to the downstream chat channel.
type Notifier interface {
	Notify(ctx context.Context, orderID, phone, message string) error
}

// KafkaNotifier publishes the message onto the notification topic; the
// notifier binary consumes it and performs the handoff.
type KafkaNotifier struct {
	Producer *kafkax.Producer
	Service  string
}

func (n *KafkaNotifier) Notify(ctx context.Context, orderID, phone, message string) error {
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderNotification,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      n.Service,
		CorrelationID: orderID,
		Payload: kafkax.MustMarshal(orders.OrderNotificationPayload{
			OrderID: orderID,
			Phone:   phone,
			Message: message,
		}),
	}
	n.Producer.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderNotification)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
	return nil
}

// LogNotifier is the broker-less fallback: it logs the handoff link instead
// of publishing.
type LogNotifier struct {
	WhatsAppNum string
}

func (n *LogNotifier) Notify(ctx context.Context, orderID, phone, message string) error {
	log.Printf("notify: order %s handoff %s", orderID, HandoffURL(n.WhatsAppNum, message))
	return nil
}
