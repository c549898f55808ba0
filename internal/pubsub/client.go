package pubsub

import (
	"context"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a PubSubClient for the given GCP project. Topic handles are
// cached per topic name so repeated publishes reuse the same batcher.
func New(projectID string) PubSubClient {
	gcpClient, err := pubsub.NewClient(context.Background(), projectID)
	if err != nil {
		log.Fatalf("Failed to create pubsub client: %v", err)
	}
	return &client{
		client: gcpClient,
		topics: make(map[string]*pubsub.Topic),
		teardown: func() {
			gcpClient.Close()
		},
	}
}

func (c *client) topic(name string) *pubsub.Topic {
	c.mu.Lock()
	defer c.mu.Unlock()
	topic, ok := c.topics[name]
	if !ok {
		topic = c.client.Topic(name)
		c.topics[name] = topic
	}
	return topic
}

// SendMessage publishes data on the topic, msgpack-encoded, and waits for the
// server ack so callers know the event is durable.
func (c *client) SendMessage(topic string, data any) error {
	payload, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err, "topic", topic)
		return err
	}

	ctx := context.Background()
	result := c.topic(topic).Publish(ctx, &pubsub.Message{Data: payload})
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	log.Debug("Published message", "topic", topic, "serverID", serverID)
	return nil
}

// Close releases the underlying GCP client. Pending publishes should be
// awaited before calling it.
func (c *client) Close() {
	c.teardown()
}

// ProcessMessage decodes a msgpack payload received from a push subscription
// into the provided pointer struct.
func (c *client) ProcessMessage(data []byte, returnValue any) error {
	if err := msgpack.Unmarshal(data, returnValue); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}
