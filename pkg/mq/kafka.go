// Package mq 提供 Kafka producer 通用实现，承载各限界上下文的领域事件
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkglogger "github.com/prostore/storefront/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Config Kafka 配置
type Config struct {
	Brokers      []string
	MaxRetries   int
	RetryBackoff int
}

// KafkaProducer Kafka 生产者
type KafkaProducer struct {
	writer *kafka.Writer
	config Config
}

// NewProducer 创建 Kafka 生产者
func NewProducer(cfg Config) (*KafkaProducer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		AllowAutoTopicCreation: true,
		Compression:            kafka.Gzip,
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            cfg.MaxRetries,
		WriteBackoffMin:        time.Duration(cfg.RetryBackoff) * time.Millisecond,
		WriteBackoffMax:        time.Duration(cfg.RetryBackoff*10) * time.Millisecond,
	}

	pkglogger.Info(context.Background(), "Kafka producer created successfully", "brokers", cfg.Brokers)
	return &KafkaProducer{
		writer: writer,
		config: cfg,
	}, nil
}

// Publish 发布领域事件，value 以 JSON 序列化
func (kp *KafkaProducer) Publish(ctx context.Context, topic string, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	}

	if err := kp.writer.WriteMessages(ctx, msg); err != nil {
		pkglogger.Error(ctx, "Failed to publish Kafka message",
			"topic", topic,
			"key", key,
			"error", err,
		)
		return err
	}

	pkglogger.Debug(ctx, "Kafka message published",
		"topic", topic,
		"key", key,
	)
	return nil
}

// Close 关闭生产者
func (kp *KafkaProducer) Close() error {
	return kp.writer.Close()
}
