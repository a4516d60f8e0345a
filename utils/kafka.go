package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/jkz07/transcare/config"
)

// DomainEvent is the message published on every successful mutation. The
// notification consumer turns these into in-app notifications.
type DomainEvent struct {
	ID     string    `json:"id"`
	UserID uint      `json:"user_id"`
	Source string    `json:"source"` // agenda, community, auth
	Action string    `json:"action"` // created, updated, deleted, ...
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	At     time.Time `json:"at"`
}

var (
	kafkaWriter  *kafka.Writer
	kafkaBrokers string
	kafkaTopic   string
)

// InitializeKafka sets up the shared writer. Kafka is optional: with no
// KAFKA_BROKERS set the publish helpers become no-ops.
func InitializeKafka(cfg *config.Config) {
	if cfg.KafkaBrokers == "" {
		log.Println("ℹ️ KAFKA_BROKERS not set, event publishing disabled")
		return
	}

	kafkaBrokers = cfg.KafkaBrokers
	kafkaTopic = cfg.KafkaTopic
	if kafkaTopic == "" {
		kafkaTopic = "transcare.events"
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(kafkaBrokers, ",")...),
		Topic:        kafkaTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 100 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	log.Printf("✅ Kafka writer initialized (topic=%s)", kafkaTopic)
}

// IsKafkaEnabled reports whether the writer is configured.
func IsKafkaEnabled() bool {
	return kafkaWriter != nil
}

// PublishDomainEvent sends a domain event, fire and forget. Errors are logged,
// never returned: an unreachable broker must not fail the user's request.
func PublishDomainEvent(ev DomainEvent) {
	if kafkaWriter == nil {
		return
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("⚠️ Failed to marshal domain event: %v", err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := kafkaWriter.WriteMessages(ctx, kafka.Message{
			Key:   []byte(fmt.Sprintf("%d", ev.UserID)),
			Value: payload,
		})
		if err != nil {
			log.Printf("⚠️ Failed to publish domain event %s/%s: %v", ev.Source, ev.Action, err)
		}
	}()
}

// NewEventReader builds a consumer for the domain event topic. Returns nil
// when InitializeKafka did not configure any brokers.
func NewEventReader(groupID string) *kafka.Reader {
	if kafkaBrokers == "" {
		return nil
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(kafkaBrokers, ","),
		GroupID:  groupID,
		Topic:    kafkaTopic,
		MinBytes: 1,
		MaxBytes: 1 << 20,
	})
}
