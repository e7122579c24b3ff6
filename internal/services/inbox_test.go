package services

import (
	"fmt"
	"testing"
	"time"

	"leadcapture/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageInbox_AppendAndRead(t *testing.T) {
	inbox := NewMessageInbox(4)
	assert.Empty(t, inbox.Messages())

	now := time.Now()
	inbox.Append(domain.InboundMessage{From: "915551", Text: "hi", ReceivedAt: now})
	inbox.Append(domain.InboundMessage{From: "915552", Text: "hello", ReceivedAt: now})

	msgs := inbox.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "915551", msgs[0].From)
	assert.Equal(t, "915552", msgs[1].From)
}

func TestMessageInbox_EvictsOldestAtCapacity(t *testing.T) {
	inbox := NewMessageInbox(3)
	for i := 1; i <= 5; i++ {
		inbox.Append(domain.InboundMessage{From: fmt.Sprintf("u%d", i)})
	}

	msgs := inbox.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "u3", msgs[0].From)
	assert.Equal(t, "u4", msgs[1].From)
	assert.Equal(t, "u5", msgs[2].From)
}

func TestMessageInbox_ZeroCapacityClamped(t *testing.T) {
	inbox := NewMessageInbox(0)
	inbox.Append(domain.InboundMessage{From: "a"})
	inbox.Append(domain.InboundMessage{From: "b"})
	msgs := inbox.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "b", msgs[0].From)
}
