package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dafibh/fortuna/caja-backend/internal/domain"
)

// EventType represents what happened to the entity
type EventType string

const (
	EventTypeUpdated EventType = "updated"
	EventTypeChanged EventType = "changed"
	EventTypeMessage EventType = "message"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeExchangeRate EntityType = "exchange_rate"
	EntityTypeNotification EntityType = "notification"
	EntityTypeAccount      EntityType = "account"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "exchange_rate.updated"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "exchange_rate"
	Payload   interface{} `json:"payload"`   // Entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExchangeRatePayload is the payload of exchange_rate.updated
type ExchangeRatePayload struct {
	ExchangeRate string `json:"exchangeRate"`
}

// MessagePayload is the payload of notification.message, shaped for the toast widget
type MessagePayload struct {
	Severity domain.Severity `json:"severity"`
	Summary  string          `json:"summary"`
	Detail   string          `json:"detail"`
	Life     int64           `json:"life"`
}

// ExchangeRateUpdated creates an exchange_rate.updated event
func ExchangeRateUpdated(rate string) Event {
	return NewEvent(EventTypeUpdated, EntityTypeExchangeRate, ExchangeRatePayload{ExchangeRate: rate})
}

// NotificationMessage creates a notification.message event
func NotificationMessage(msg domain.Message) Event {
	return NewEvent(EventTypeMessage, EntityTypeNotification, MessagePayload{
		Severity: msg.Severity,
		Summary:  msg.Summary,
		Detail:   msg.Detail,
		Life:     msg.LifeMillis(),
	})
}

// AccountChanged creates an account.changed event. A nil account means logged out.
func AccountChanged(account *domain.Account) Event {
	return NewEvent(EventTypeChanged, EntityTypeAccount, account)
}
