package kafka_test

import (
	"context"
	"testing"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:   "booking-1",
		Value: map[string]any{"status": "pending"},
	}

	out, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("booking-1"), out.Key)
	assert.JSONEq(t, `{"status":"pending"}`, string(out.Value))
}

func TestMessage_ToKafkaMessage_Unmarshalable(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestNew_WithoutBrokersDropsMessages(t *testing.T) {
	client := kafka.New(&config.Config{}, mocks.NewOtel())

	err := client.SendMessages(context.Background(), "hotel.bookings", kafka.Message{Key: "k", Value: "v"})
	assert.NoError(t, err)
	assert.NoError(t, client.Close())
}
