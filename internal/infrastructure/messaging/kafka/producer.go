package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"go.uber.org/zap"
)

// Producer는 Kafka 프로듀서입니다
type Producer struct {
	producer sarama.SyncProducer
	config   *ProducerConfig
}

// ProducerConfig는 프로듀서 설정입니다
type ProducerConfig struct {
	Brokers          []string
	ClientID         string
	MaxMessageBytes  int
	RequiredAcks     sarama.RequiredAcks
	Compression      sarama.CompressionCodec
	MaxRetries       int
	RetryBackoff     time.Duration
	EnableIdempotent bool
}

// NewProducer는 새로운 Kafka 프로듀서를 생성합니다
func NewProducer(cfg *ProducerConfig) (*Producer, error) {
	config := sarama.NewConfig()
	config.ClientID = cfg.ClientID
	config.Producer.RequiredAcks = cfg.RequiredAcks
	config.Producer.Compression = cfg.Compression
	config.Producer.MaxMessageBytes = cfg.MaxMessageBytes
	config.Producer.Retry.Max = cfg.MaxRetries
	config.Producer.Retry.Backoff = cfg.RetryBackoff
	config.Producer.Idempotent = cfg.EnableIdempotent
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true

	// 버전 설정
	config.Version = sarama.V3_6_0_0

	producer, err := sarama.NewSyncProducer(cfg.Brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync producer: %w", err)
	}

	logger.Info(context.Background(), "kafka producer initialized",
		logger.Field("brokers", cfg.Brokers),
		logger.Field("client_id", cfg.ClientID),
	)

	return &Producer{
		producer: producer,
		config:   cfg,
	}, nil
}

// PublishEvent는 이벤트를 발행합니다
func (p *Producer) PublishEvent(ctx context.Context, topic string, key string, event interface{}) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		logger.Error(ctx, "failed to marshal event",
			logger.Field("topic", topic),
			zap.Error(err),
		)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(key),
		Value:     sarama.ByteEncoder(eventJSON),
		Timestamp: time.Now(),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("event_time"),
				Value: []byte(time.Now().Format(time.RFC3339)),
			},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		logger.Error(ctx, "failed to send event",
			logger.Field("topic", topic),
			logger.Field("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send event: %w", err)
	}

	logger.Debug(ctx, "event published",
		logger.Field("topic", topic),
		logger.Field("key", key),
		logger.Field("partition", partition),
		logger.Field("offset", offset),
	)

	return nil
}

// Close는 프로듀서를 종료합니다
func (p *Producer) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
