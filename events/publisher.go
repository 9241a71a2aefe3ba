// Package events publishes depreciation schedules to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/etnz/depreciation"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// DefaultTopic is the topic schedules are published to.
const DefaultTopic = "depreciation_schedule_generated"

// ScheduleGenerated is the event published for each asset schedule.
type ScheduleGenerated struct {
	RunID    uuid.UUID               `json:"run_id"`
	AssetID  string                  `json:"asset_id"`
	Currency string                  `json:"currency"`
	Months   int                     `json:"months"`
	Total    depreciation.Money      `json:"total"`
	Items    []depreciation.LineItem `json:"items"`
}

// NewScheduleGenerated returns the event of a successful result.
func NewScheduleGenerated(runID uuid.UUID, res depreciation.Result) ScheduleGenerated {
	total := depreciation.Sum(res.Items)
	return ScheduleGenerated{
		RunID:    runID,
		AssetID:  res.AssetID,
		Currency: total.Currency().Code(),
		Months:   len(res.Items),
		Total:    total,
		Items:    res.Items,
	}
}

// messageWriter is the part of kafka.Writer used by the Publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer messageWriter
}

// NewPublisher returns a Publisher writing to 'topic' on the given brokers.
func NewPublisher(brokers []string, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{}, // keeps the events of an asset in one partition.
		},
	}
}

// Publish sends one event per successful result, keyed by asset id. Failed
// results are skipped.
func (p *Publisher) Publish(ctx context.Context, runID uuid.UUID, results []depreciation.Result) error {
	var msgs []kafka.Message
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		data, err := json.Marshal(NewScheduleGenerated(runID, res))
		if err != nil {
			return fmt.Errorf("cannot marshal schedule of asset %q: %w", res.AssetID, err)
		}
		msgs = append(msgs, kafka.Message{Key: []byte(res.AssetID), Value: data})
	}
	if len(msgs) == 0 {
		return nil
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("cannot publish %d schedules: %w", len(msgs), err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *Publisher) Close() error { return p.writer.Close() }
