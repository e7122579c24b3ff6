package domain

import "time"

// InboundMessage is one message received through the provider webhook. These
// live only in memory; a process restart loses the history, which is
// acceptable because the panel is informational only.
type InboundMessage struct {
	From       string    `json:"from"`
	Text       string    `json:"text"`
	ReceivedAt time.Time `json:"received_at"`
}

// MessageInbox is a bounded buffer of recent inbound messages.
type MessageInbox interface {
	Append(msg InboundMessage)
	Messages() []InboundMessage
}
