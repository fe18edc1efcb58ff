package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dashboard-seeder/internal/data"

	gokafka "github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *gokafka.Writer used by Publish.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...gokafka.Message) error
}

func NewWriter(brokers []string, topic string) *gokafka.Writer {
	return &gokafka.Writer{
		Addr:         gokafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: gokafka.RequireOne,
		Balancer:     &gokafka.Hash{}, // same test_id always lands on the same partition
		BatchTimeout: 150 * time.Millisecond,
		BatchSize:    1000,
		BatchBytes:   4 * 1024 * 1024,
		Compression:  gokafka.Snappy,
	}
}

// speedTestMessage is the JSON value of one published record. The
// timestamp uses the same layout as the SQL artifact.
type speedTestMessage struct {
	data.Record
	Timestamp string `json:"timestamp"`
}

// Encode turns a record into a message keyed by its test id.
func Encode(r data.Record) (gokafka.Message, error) {
	value, err := json.Marshal(speedTestMessage{Record: r, Timestamp: r.FormattedTimestamp()})
	if err != nil {
		return gokafka.Message{}, fmt.Errorf("encode record %s: %w", r.TestID, err)
	}
	return gokafka.Message{
		Key:   []byte(r.TestID),
		Value: value,
		Time:  r.Timestamp,
	}, nil
}

// Publish writes records in batches of batchSize and returns how many were
// acknowledged by the writer.
func Publish(ctx context.Context, w MessageWriter, records []data.Record, batchSize int) (int, error) {
	if batchSize < 1 {
		batchSize = 1
	}
	sent := 0
	batch := make([]gokafka.Message, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := w.WriteMessages(ctx, batch...); err != nil {
			return err
		}
		sent += len(batch)
		batch = batch[:0]
		return nil
	}

	for _, r := range records {
		msg, err := Encode(r)
		if err != nil {
			return sent, err
		}
		batch = append(batch, msg)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return sent, err
			}
		}
	}
	return sent, flush()
}
