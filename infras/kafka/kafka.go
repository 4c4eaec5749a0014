package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"

	"hotelops/config"
)

type Message struct {
	Key   string
	Value any
}

// ToKafkaMessage encodes Value as JSON and keeps Key for partitioning.
func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	payload, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to encode message %q: %w", m.Key, err)
	}

	return kafkaGo.Message{Key: []byte(m.Key), Value: payload}, nil
}

type Client interface {
	// Topic prefixes name with the configured topic namespace.
	Topic(name string) string
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Close() error
}

type kafkaClientImpl struct {
	config *config.Config
	writer *kafkaGo.Writer
}

// New returns a publisher backed by one shared writer. When kafka is disabled every send is
// dropped after a debug log, so bookkeeping events never block a request.
func New(config *config.Config) Client {
	if !config.Kafka.Enable || len(config.Kafka.Brokers) == 0 {
		log.Warn().Msg("Kafka disabled, domain events will not be published")

		return &disabledClient{prefix: config.Kafka.TopicPrefix}
	}

	transport := &kafkaGo.Transport{}
	if config.Kafka.SASL.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: config.Kafka.SASL.Username,
			Password: config.Kafka.SASL.Password,
		}
	}

	writer := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(config.Kafka.Brokers...),
		Transport:              transport,
		Balancer:               &kafkaGo.Hash{},
		AllowAutoTopicCreation: true,
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Msg("kafka publisher ready")

	return &kafkaClientImpl{
		config: config,
		writer: writer,
	}
}

func (k *kafkaClientImpl) Topic(name string) string {
	return topic(k.config.Kafka.TopicPrefix, name)
}

func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) (err error) {
	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("kafka: encode failed")

			return err
		}

		msg.Topic = topic
		msgs = append(msgs, msg)
	}

	err = k.writer.WriteMessages(ctx, msgs...)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("kafka: publish failed")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Debug().Str("topic", topic).Int("count", len(msgs)).Msg("kafka: published")

	return nil
}

func (k *kafkaClientImpl) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}

	return nil
}

type disabledClient struct {
	prefix string
}

func (d *disabledClient) Topic(name string) string {
	return topic(d.prefix, name)
}

func (d *disabledClient) SendMessages(_ context.Context, topic string, messages ...Message) error {
	log.Debug().Str("topic", topic).Int("count", len(messages)).Msg("kafka disabled: dropping messages")

	return nil
}

func (d *disabledClient) Close() error {
	return nil
}

func topic(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return strings.Join([]string{prefix, name}, ".")
}
