package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/promopilot/promopilot-api/internal/queue"
)

// MailPublisher pushes outbound mail requests onto RabbitMQ. It dials per
// publish, so it holds no state across broker restarts.
type MailPublisher struct {
	url string
}

func NewMailPublisher(url string) *MailPublisher {
	return &MailPublisher{url: url}
}

// SendWelcome queues a welcome mail for a freshly registered account.
func (p *MailPublisher) SendWelcome(email, username string) error {
	event := queue.EmailRequestedEvent{
		Type:       queue.EmailTypeWelcome,
		Recipient:  email,
		Username:   username,
		OccurredAt: time.Now().UTC(),
	}
	return p.publish(event)
}

func (p *MailPublisher) publish(event queue.EmailRequestedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(queue.MailQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = ch.PublishWithContext(ctx, "", queue.MailQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}
