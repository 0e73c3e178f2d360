package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// ClientInterface defines the interface that clients must implement
type ClientInterface interface {
	ID() string
	Subject() string
	Send(data []byte) error
	Close() error
}

// Hub manages the display-layer connections of each authenticated subject.
// It is safe for concurrent use.
type Hub struct {
	// subjects maps subject to a map of client ID to client
	subjects map[string]map[string]ClientInterface
	mu       sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		subjects: make(map[string]map[string]ClientInterface),
	}
}

// Register adds a client to the hub under its subject
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subject := client.Subject()
	if h.subjects[subject] == nil {
		h.subjects[subject] = make(map[string]ClientInterface)
	}
	h.subjects[subject][client.ID()] = client

	log.Debug().
		Str("subject", subject).
		Str("client_id", client.ID()).
		Msg("WebSocket client registered")
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subject := client.Subject()
	clients, ok := h.subjects[subject]
	if !ok {
		return
	}
	if _, exists := clients[client.ID()]; !exists {
		return
	}

	delete(clients, client.ID())
	if len(clients) == 0 {
		delete(h.subjects, subject)
	}

	log.Debug().
		Str("subject", subject).
		Str("client_id", client.ID()).
		Msg("WebSocket client unregistered")
}

// Broadcast sends an event to every client of a subject.
// Each client receives events in the order they were broadcast.
func (h *Hub) Broadcast(subject string, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Str("subject", subject).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}

	h.mu.RLock()
	clients, ok := h.subjects[subject]
	if !ok || len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	// Copy clients to avoid holding lock during send
	clientsCopy := make([]ClientInterface, 0, len(clients))
	for _, client := range clients {
		clientsCopy = append(clientsCopy, client)
	}
	h.mu.RUnlock()

	// Send never blocks: a slow client with a full buffer just misses the event
	for _, client := range clientsCopy {
		if err := client.Send(data); err != nil {
			log.Warn().
				Err(err).
				Str("subject", subject).
				Str("client_id", client.ID()).
				Msg("Failed to send to client")
		}
	}

	log.Debug().
		Str("subject", subject).
		Str("event_type", event.Type).
		Int("client_count", len(clientsCopy)).
		Msg("Broadcast event")
}

// ClientCount returns the number of clients connected for a subject
func (h *Hub) ClientCount(subject string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subjects[subject])
}

// TotalClientCount returns the total number of connected clients across all subjects
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.subjects {
		total += len(clients)
	}
	return total
}

// CloseAll disconnects every client
func (h *Hub) CloseAll() {
	h.mu.Lock()
	var clients []ClientInterface
	for subject, byID := range h.subjects {
		for _, client := range byID {
			clients = append(clients, client)
		}
		delete(h.subjects, subject)
	}
	h.mu.Unlock()

	for _, client := range clients {
		_ = client.Close()
	}
	log.Info().Int("client_count", len(clients)).Msg("WebSocket clients closed")
}
