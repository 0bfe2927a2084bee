package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	kafkaGo "github.com/segmentio/kafka-go"
)

// 注文イベントをKafkaに流す。通知チャネルと同じくベストエフォート。
type KafkaPublisher struct {
	brokers []string
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{brokers: brokers}
}

func (k *KafkaPublisher) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	w := &kafkaGo.Writer{
		Addr:     kafkaGo.TCP(k.brokers...),
		Topic:    topic,
		Balancer: &kafkaGo.LeastBytes{},
	}
	defer w.Close()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	return w.WriteMessages(ctx, kafkaGo.Message{
		Key:   []byte(key),
		Value: payload,
	})
}
