package outbox_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderflow/internal/core/domain/model/outbox"
)

func TestNewMessage(t *testing.T) {
	now := time.Now().UTC()

	msg, err := outbox.NewMessage(outbox.KindSettlement, []byte(`{"fee":2.8}`), now)
	require.NoError(t, err)

	assert.NoError(t, msg.ID().Validate())
	assert.Equal(t, outbox.KindSettlement, msg.Kind())
	assert.Equal(t, 0, msg.Attempts())
	assert.True(t, msg.IsDue(now))
	assert.Nil(t, msg.DispatchedAt())
}

func TestNewMessageRejectsBadInput(t *testing.T) {
	now := time.Now().UTC()

	_, err := outbox.NewMessage(outbox.Kind("bogus"), []byte(`{}`), now)
	assert.Error(t, err)

	_, err = outbox.NewMessage(outbox.KindNotification, nil, now)
	assert.Error(t, err)
}

func TestMarkDispatched(t *testing.T) {
	now := time.Now().UTC()
	msg, err := outbox.NewMessage(outbox.KindNotification, []byte(`{}`), now)
	require.NoError(t, err)

	msg.MarkDispatched(now)

	assert.Equal(t, 1, msg.Attempts())
	require.NotNil(t, msg.DispatchedAt())
	assert.False(t, msg.IsDue(now.Add(time.Hour)))
}

func TestMarkFailedBacksOffAndExhausts(t *testing.T) {
	now := time.Now().UTC()
	msg, err := outbox.NewMessage(outbox.KindSettlement, []byte(`{}`), now)
	require.NoError(t, err)

	msg.MarkFailed(now)
	assert.Equal(t, 1, msg.Attempts())
	assert.False(t, msg.IsDue(now))
	assert.True(t, msg.IsDue(now.Add(31*time.Second)))

	msg.MarkFailed(now)
	assert.True(t, msg.IsDue(now.Add(61*time.Second)))

	for !msg.Exhausted() {
		msg.MarkFailed(now)
	}
	assert.Equal(t, msg.MaxAttempts(), msg.Attempts())
	assert.False(t, msg.IsDue(now.Add(24*time.Hour)))
}
