package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/tmnguyen/portfolio-api/internal/application/service"
	"github.com/tmnguyen/portfolio-api/internal/config"
)

const TopicContentEvents = "content.events"

type KafkaProducerClient struct {
	ContentEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	contentWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicContentEvents,
		Balancer: &kafka.LeastBytes{},
	}

	fmt.Println("Initialize Kafka Producer successfully.")

	return &KafkaProducerClient{
		ContentEventsWriter: contentWriter,
	}, nil
}

var _ service.EventPublisher = (*KafkaProducerClient)(nil)

func (c *KafkaProducerClient) PublishContentChanged(ctx context.Context, ev service.ContentEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("cannot marshal content event: %w", err)
	}

	err = c.ContentEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Resource),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("cannot publish content event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.ContentEventsWriter != nil {
		c.ContentEventsWriter.Close()
	}
	fmt.Println("Closed Kafka Producer")
}
