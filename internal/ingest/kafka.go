package ingest

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafka.Reader the consumer needs. Offsets are
// committed explicitly once a message has been handled.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConfig captures the tunables for the detection stream.
type KafkaConfig struct {
	Brokers    []string
	Topic      string
	GroupID    string
	RetryDelay time.Duration
}

func NewKafkaReader(cfg KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	})
}

// KafkaConsumer feeds every message value of the detection topic to an Ingestor.
type KafkaConsumer struct {
	reader     MessageReader
	ingestor   *Ingestor
	log        *zap.Logger
	retryDelay time.Duration
}

func NewKafkaConsumer(reader MessageReader, ingestor *Ingestor, retryDelay time.Duration, log *zap.Logger) *KafkaConsumer {
	if retryDelay <= 0 {
		retryDelay = time.Second
	}
	return &KafkaConsumer{reader: reader, ingestor: ingestor, log: log, retryDelay: retryDelay}
}

// Run consumes until ctx is cancelled or the reader is exhausted. A message
// is committed once it is recorded or rejected as an invalid payload. Any
// other ingest failure is retried after a delay without committing, as are
// fetch errors.
func (c *KafkaConsumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			c.log.Warn("kafka fetch failed", zap.Error(err), zap.Duration("retry_in", c.retryDelay))
			if !c.wait(ctx) {
				return nil
			}
			continue
		}

		if !c.handle(ctx, msg) {
			return nil
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.log.Error("kafka commit failed",
				zap.Error(err),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
			)
		}
	}
}

// handle ingests msg until it is recorded or rejected. It reports false when
// ctx ends first.
func (c *KafkaConsumer) handle(ctx context.Context, msg kafka.Message) bool {
	for {
		_, err := c.ingestor.Ingest(ctx, "kafka", msg.Value)
		switch {
		case err == nil:
			return true
		case errors.Is(err, ErrInvalidPayload):
			c.log.Warn("kafka detection rejected",
				zap.Error(err),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
			)
			return true
		}

		c.log.Warn("kafka detection not recorded",
			zap.Error(err),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Duration("retry_in", c.retryDelay),
		)
		if !c.wait(ctx) {
			return false
		}
	}
}

func (c *KafkaConsumer) wait(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(c.retryDelay):
		return true
	}
}
