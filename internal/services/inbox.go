package services

import (
	"sync"

	"leadcapture/internal/domain"
)

// messageInbox is a capacity-bounded ring buffer of inbound webhook messages,
// owned by a single long-lived instance wired in at startup. It is
// deliberately non-durable: a restart loses history, which is fine for an
// informational panel.
type messageInbox struct {
	mu       sync.Mutex
	buf      []domain.InboundMessage
	next     int
	size     int
	capacity int
}

func NewMessageInbox(capacity int) domain.MessageInbox {
	if capacity <= 0 {
		capacity = 1
	}
	return &messageInbox{
		buf:      make([]domain.InboundMessage, capacity),
		capacity: capacity,
	}
}

// Append records a message, evicting the oldest once the buffer is full.
func (m *messageInbox) Append(msg domain.InboundMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buf[m.next] = msg
	m.next = (m.next + 1) % m.capacity
	if m.size < m.capacity {
		m.size++
	}
}

// Messages returns the buffered messages, oldest first.
func (m *messageInbox) Messages() []domain.InboundMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.InboundMessage, 0, m.size)
	start := m.next - m.size
	if start < 0 {
		start += m.capacity
	}
	for i := 0; i < m.size; i++ {
		out = append(out, m.buf[(start+i)%m.capacity])
	}
	return out
}
