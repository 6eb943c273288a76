package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/personal-ledger-service/internal/models/events"
)

type fakeWriter struct {
	messages []kafka.Message
	deadline bool
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	_, f.deadline = ctx.Deadline()
	f.messages = append(f.messages, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublishEncodesEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w, timeout: time.Second}

	event := events.LedgerEntryChanged{
		Type:          events.TypeEntryCreated,
		TransactionID: "entry-1",
		UserID:        "alice",
		Kind:          "income",
		Amount:        decimal.RequireFromString("1000.00"),
		OccurredAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), "ledger_entry_events", "alice", event))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "ledger_entry_events", msg.Topic)
	assert.Equal(t, []byte("alice"), msg.Key)
	assert.True(t, w.deadline, "publish must be time bounded")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "transaction.created", decoded["type"])
	assert.Equal(t, "entry-1", decoded["transaction_id"])
	assert.Equal(t, "1000", decoded["amount"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishReturnsWriterError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := &Publisher{writer: w, timeout: time.Second}

	err := p.Publish(context.Background(), "topic", "key", map[string]string{"a": "b"})
	assert.EqualError(t, err, "leader not available")
}

func TestPublishRejectsUnencodableEvent(t *testing.T) {
	p := &Publisher{writer: &fakeWriter{}, timeout: time.Second}
	err := p.Publish(context.Background(), "topic", "key", make(chan int))
	assert.ErrorContains(t, err, "encode event")
}
