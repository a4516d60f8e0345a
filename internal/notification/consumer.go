package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jkz07/transcare/utils"
)

// StartKafkaConsumer tails the domain event stream and turns each event into
// an in-app notification. It runs until the process exits; when Kafka is not
// configured it simply does nothing.
func StartKafkaConsumer(svc Service) {
	reader := utils.NewEventReader("transcare-notifications")
	if reader == nil {
		log.Println("ℹ️ Kafka not configured, in-app notifications from events disabled")
		return
	}

	go func() {
		defer reader.Close()
		log.Println("✅ Notification consumer started")

		for {
			msg, err := reader.ReadMessage(context.Background())
			if err != nil {
				log.Printf("❌ Notification consumer stopped: %v", err)
				return
			}

			var ev utils.DomainEvent
			if err := json.Unmarshal(msg.Value, &ev); err != nil {
				log.Printf("⚠️ Skipping malformed domain event: %v", err)
				continue
			}

			if err := svc.CreateFromDomainEvent(ev); err != nil {
				log.Printf("⚠️ Failed to store notification for user %d: %v", ev.UserID, err)
			}
		}
	}()
}
