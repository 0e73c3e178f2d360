package websocket

import "github.com/dafibh/fortuna/caja-backend/internal/domain"

// EventPublisher defines the interface for publishing events to WebSocket clients
type EventPublisher interface {
	// Publish sends an event to all clients connected for the subject
	Publish(subject string, event Event)
}

var (
	_ EventPublisher  = (*Hub)(nil)
	_ domain.Notifier = (*Hub)(nil)
)

// Publish implements EventPublisher by broadcasting the event to the subject
func (h *Hub) Publish(subject string, event Event) {
	h.Broadcast(subject, event)
}

// Notify implements domain.Notifier by pushing the message as a toast
func (h *Hub) Notify(subject string, msg domain.Message) {
	h.Broadcast(subject, NotificationMessage(msg))
}

// NoOpPublisher is a publisher that does nothing (for testing or when WebSocket is disabled)
type NoOpPublisher struct{}

// Publish does nothing
func (n *NoOpPublisher) Publish(subject string, event Event) {}

// Notify does nothing
func (n *NoOpPublisher) Notify(subject string, msg domain.Message) {}
