package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestNotifier_NilRedisIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.False(t, n.Enabled())
	assert.NoError(t, n.PublishUser(context.Background(), "1", "test payload"))
	assert.NoError(t, n.PublishBroadcast(context.Background(), "test payload"))
	assert.NoError(t, n.StartPatternSubscriber(context.Background(), func(string, string) {
		t.Fatal("no messages expected")
	}))
}

func TestUserChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		userID   string
		expected string
	}{
		{"1", "notifications:user:1"},
		{"5f0c9a7e-8e1b-4c55-9a57-1b1f3f7e2d10", "notifications:user:5f0c9a7e-8e1b-4c55-9a57-1b1f3f7e2d10"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, UserChannel(tt.userID))
		id, ok := parseUserChannel(tt.expected)
		assert.True(t, ok)
		assert.Equal(t, tt.userID, id)
	}

	_, ok := parseUserChannel("notifications:user:")
	assert.False(t, ok)
	_, ok = parseUserChannel("chat:conv:1")
	assert.False(t, ok)
}

func TestNotifier_PatternSubscriberReceivesUserMessages(t *testing.T) {
	rdb := newTestRedis(t)
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type message struct{ channel, payload string }
	received := make(chan message, 4)
	require.NoError(t, n.StartPatternSubscriber(ctx, func(channel, payload string) {
		received <- message{channel, payload}
	}))

	require.NoError(t, n.PublishUser(context.Background(), "42", `{"type":"notification_created"}`))

	select {
	case msg := <-received:
		assert.Equal(t, "notifications:user:42", msg.channel)
		assert.Equal(t, `{"type":"notification_created"}`, msg.payload)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for published message")
	}
}

func TestHub_StartWiringDeliversToRecipient(t *testing.T) {
	rdb := newTestRedis(t)
	n := NewNotifier(rdb)
	hub := NewHub()
	defer func() { _ = hub.Shutdown(context.Background()) }()

	recipient, err := hub.Register("3", nil)
	require.NoError(t, err)
	bystander, err := hub.Register("4", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.StartWiring(ctx, n))

	require.NoError(t, n.PublishUser(context.Background(), "3", "for maya"))
	select {
	case payload := <-recipient.Send:
		assert.Equal(t, "for maya", string(payload))
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
	}
	assert.Empty(t, bystander.Send)

	require.NoError(t, n.PublishBroadcast(context.Background(), "everyone"))
	assert.Eventually(t, func() bool { return len(bystander.Send) == 1 }, time.Second, 10*time.Millisecond)
}
