package events

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPublisher_PublishesToChannel(t *testing.T) {
	mr := miniredis.RunT(t)

	publisher, err := NewRedisPublisher(fmt.Sprintf("redis://%s", mr.Addr()))
	require.NoError(t, err)
	defer publisher.Close()

	// Subscribe with an independent client before publishing.
	sub := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer sub.Close()

	ctx := context.Background()
	pubsub := sub.Subscribe(ctx, Channel)
	defer pubsub.Close()
	_, err = pubsub.Receive(ctx)
	require.NoError(t, err)

	event := Event{
		Type:             TypeRecommendationCreated,
		RecommendationID: 7,
		UserID:           1,
		WeaponID:         42,
	}
	require.NoError(t, publisher.Publish(event))

	msg, err := pubsub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, Channel, msg.Channel)

	var got Event
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	assert.Equal(t, event, got)
}

func TestNewRedisPublisher_BadURL(t *testing.T) {
	_, err := NewRedisPublisher("not-a-url")
	assert.Error(t, err)
}

func TestNewRedisPublisher_Unreachable(t *testing.T) {
	_, err := NewRedisPublisher("redis://127.0.0.1:1")
	assert.Error(t, err)
}
