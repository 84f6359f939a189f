package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectDelay = 5 * time.Second

// StartMailConsumer drains the mail queue until the context is cancelled.
// Delivery is simulated by appending each mail to logs/mail.log. Lost broker
// connections are retried with a fixed delay.
func StartMailConsumer(ctx context.Context, url string) {
	for {
		if err := consume(ctx, url); err != nil {
			log.Printf("mail consumer: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func consume(ctx context.Context, url string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(MailQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	deliveries, err := ch.Consume(MailQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	log.Printf("mail consumer: listening on %s", MailQueue)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			if err := handleDelivery(d.Body); err != nil {
				log.Printf("mail consumer: %v", err)
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}
}

func handleDelivery(body []byte) error {
	var event EmailRequestedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	return writeMailLog(event)
}

// writeMailLog appends the mail to logs/mail.log, standing in for a real
// mail gateway.
func writeMailLog(event EmailRequestedEvent) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "mail.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open mail log: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s [%s] to=%s username=%s\n",
		event.OccurredAt.Format(time.RFC3339), event.Type, event.Recipient, event.Username)
	if err != nil {
		return fmt.Errorf("write mail log: %w", err)
	}
	return nil
}
