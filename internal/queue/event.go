package queue

import "time"

// MailQueue is the durable queue outbound mail requests travel on.
const MailQueue = "mail.outbound"

// EmailTypeWelcome marks the mail sent after registration.
const EmailTypeWelcome = "welcome"

// EmailRequestedEvent is the payload published for each outbound mail.
type EmailRequestedEvent struct {
	Type       string    `json:"type"`
	Recipient  string    `json:"recipient"`
	Username   string    `json:"username"`
	OccurredAt time.Time `json:"occurred_at"`
}
