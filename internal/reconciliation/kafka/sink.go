// Package kafka publishes reconciliation records to a Kafka topic, one JSON
// message per record keyed by account id.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"givebridge/internal/reconciliation"
)

const DefaultTopic = "givebridge.reconciliation"

type Sink struct {
	client *kgo.Client
	topic  string
}

// New connects a producer to brokers. Extra kgo options are appended to the defaults.
func New(brokers []string, topic string, opts ...kgo.Opt) (*Sink, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	if topic == "" {
		topic = DefaultTopic
	}
	base := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	}
	client, err := kgo.NewClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("kafka: create client: %w", err)
	}
	return &Sink{client: client, topic: topic}, nil
}

func (s *Sink) Topic() string {
	return s.topic
}

// EnsureTopic creates the topic if it does not exist yet.
func (s *Sink) EnsureTopic(ctx context.Context, partitions int32, replicationFactor int16) error {
	admin := kadm.NewClient(s.client)
	resp, err := admin.CreateTopic(ctx, partitions, replicationFactor, nil, s.topic)
	if err != nil {
		return fmt.Errorf("kafka: create topic %s: %w", s.topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("kafka: create topic %s: %w", s.topic, resp.Err)
	}
	return nil
}

// Emit blocks until the broker acknowledges the record.
func (s *Sink) Emit(ctx context.Context, record reconciliation.Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("kafka: encode record: %w", err)
	}
	msg := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(record.AccountID.String()),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "kind", Value: []byte(record.Kind)},
		},
	}
	if err := s.client.ProduceSync(ctx, msg).FirstErr(); err != nil {
		return fmt.Errorf("kafka: produce record: %w", err)
	}
	return nil
}

func (s *Sink) Close() {
	s.client.Close()
}
