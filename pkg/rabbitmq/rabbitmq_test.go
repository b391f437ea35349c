package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishProductEvent_WithoutChannel(t *testing.T) {
	client := &Client{queue: "product_events"}

	err := client.PublishProductEvent("product.created", []byte(`{}`))

	assert.EqualError(t, err, "RabbitMQ channel is not available")
}

func TestClose_WithoutConnection(t *testing.T) {
	assert.NoError(t, (&Client{}).Close())
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(Config{URL: "not-a-url", Queue: "product_events"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to RabbitMQ")
}
