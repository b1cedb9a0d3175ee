package notify

import (
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/gofetch/gofetch/pkg/redis_client"
)

const queueName = "notify-queue"

// QueuePublisher hands notifications to the delivery queue. It satisfies the
// countdown engine's Notifier so the one second tick never waits on push
// infrastructure.
type QueuePublisher struct {
	queue rmq.Queue
}

func NewQueuePublisher() (*QueuePublisher, error) {
	queue, err := redis_client.QueueConnection.OpenQueue(queueName)
	if err != nil {
		return nil, err
	}

	return &QueuePublisher{queue: queue}, nil
}

func (p *QueuePublisher) Notify(notification gfdf.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	return p.queue.PublishBytes(payload)
}
