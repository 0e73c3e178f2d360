package service

import (
	"sync"

	"github.com/dafibh/fortuna/caja-backend/internal/domain"
	"github.com/dafibh/fortuna/caja-backend/internal/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AccountListener receives each account value pushed on a subject's stream.
// A nil account means the subject logged out.
type AccountListener func(account *domain.Account)

// AccountService is the authentication-state provider.
// It keeps one push stream per subject and is safe for concurrent use.
type AccountService struct {
	streams map[string]*accountStream
	mu      sync.Mutex
	metrics *metrics.Metrics
}

type accountStream struct {
	// pushMu orders pushes and replays so every subscriber sees values in push order
	pushMu   sync.Mutex
	current  *domain.Account
	hasValue bool
	subs     map[uuid.UUID]*Subscription
}

// NewAccountService creates a new AccountService
func NewAccountService(m *metrics.Metrics) *AccountService {
	return &AccountService{
		streams: make(map[string]*accountStream),
		metrics: m,
	}
}

// Subscription is the handle returned by Subscribe.
// Close releases it exactly once; listeners must not close their own subscription.
type Subscription struct {
	id        uuid.UUID
	subject   string
	listener  AccountListener
	service   *AccountService
	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
}

// ID returns the subscription's unique identifier
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Close cancels the subscription. It waits for an in-flight delivery to finish,
// and no value is delivered after it returns. Safe to call multiple times.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.service.remove(s)

		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		log.Debug().
			Str("subject", s.subject).
			Str("subscription_id", s.id.String()).
			Msg("Authentication state subscription closed")
	})
}

// IsClosed returns whether the subscription has been cancelled
func (s *Subscription) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Subscription) deliver(account *domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.listener(account.Clone())
}

// Subscribe registers a listener on the subject's stream. If a value was already
// pushed, the latest one is replayed to the listener before Subscribe returns.
func (s *AccountService) Subscribe(subject string, listener AccountListener) (*Subscription, error) {
	if subject == "" {
		return nil, domain.ErrSubjectRequired
	}

	sub := &Subscription{
		id:       uuid.New(),
		subject:  subject,
		listener: listener,
		service:  s,
	}

	stream := s.stream(subject)
	stream.pushMu.Lock()
	defer stream.pushMu.Unlock()

	s.mu.Lock()
	stream.subs[sub.id] = sub
	current, hasValue := stream.current, stream.hasValue
	s.mu.Unlock()

	if hasValue {
		sub.deliver(current)
	}

	return sub, nil
}

// Authenticate pushes a logged-in account on the subject's stream
func (s *AccountService) Authenticate(subject string, account *domain.Account) error {
	if subject == "" {
		return domain.ErrSubjectRequired
	}
	if account == nil {
		return domain.ErrInvalidInput
	}
	s.push(subject, account)
	log.Info().Str("subject", subject).Msg("Account authenticated")
	return nil
}

// Logout pushes the empty identity on the subject's stream
func (s *AccountService) Logout(subject string) {
	if subject == "" {
		return
	}
	s.push(subject, nil)
	log.Info().Str("subject", subject).Msg("Account logged out")
}

// UpdateImage replaces the avatar URL of the current account and pushes the result.
// The read and the push happen under the stream's push lock, so a concurrent Logout
// is never overwritten by the stale account.
func (s *AccountService) UpdateImage(subject, imageURL string) (*domain.Account, error) {
	if subject == "" {
		return nil, domain.ErrSubjectRequired
	}

	stream := s.stream(subject)
	stream.pushMu.Lock()
	defer stream.pushMu.Unlock()

	s.mu.Lock()
	current := stream.current.Clone()
	s.mu.Unlock()

	if current == nil {
		return nil, domain.ErrUnauthorized
	}
	current.ImageURL = imageURL
	s.pushLocked(subject, stream, current)
	return current.Clone(), nil
}

// Current returns a copy of the latest account pushed for the subject, or nil
func (s *AccountService) Current(subject string) *domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stream, ok := s.streams[subject]; ok {
		return stream.current.Clone()
	}
	return nil
}

// SubscriberCount returns the number of open subscriptions for a subject
func (s *AccountService) SubscriberCount(subject string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stream, ok := s.streams[subject]; ok {
		return len(stream.subs)
	}
	return 0
}

func (s *AccountService) push(subject string, account *domain.Account) {
	stream := s.stream(subject)
	stream.pushMu.Lock()
	defer stream.pushMu.Unlock()

	s.pushLocked(subject, stream, account)
}

// pushLocked stores and delivers account; the caller holds stream.pushMu
func (s *AccountService) pushLocked(subject string, stream *accountStream, account *domain.Account) {
	s.mu.Lock()
	stream.current = account.Clone()
	stream.hasValue = true
	subs := make([]*Subscription, 0, len(stream.subs))
	for _, sub := range stream.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub.deliver(account)
	}

	s.metrics.AuthStatePushed(account != nil)
	log.Debug().
		Str("subject", subject).
		Bool("logged_in", account != nil).
		Int("subscriber_count", len(subs)).
		Msg("Pushed authentication state")
}

func (s *AccountService) stream(subject string) *accountStream {
	s.mu.Lock()
	defer s.mu.Unlock()

	stream, ok := s.streams[subject]
	if !ok {
		stream = &accountStream{subs: make(map[uuid.UUID]*Subscription)}
		s.streams[subject] = stream
	}
	return stream
}

func (s *AccountService) remove(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stream, ok := s.streams[sub.subject]; ok {
		delete(stream.subs, sub.id)
	}
}
