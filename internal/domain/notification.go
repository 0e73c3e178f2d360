package domain

import "time"

// DefaultMessageLife is how long a toast stays visible unless overridden
const DefaultMessageLife = 3 * time.Second

// Message is a user-facing notification rendered as a toast
type Message struct {
	Severity Severity      `json:"severity"`
	Summary  string        `json:"summary"`
	Detail   string        `json:"detail"`
	Life     time.Duration `json:"-"`
}

// LifeMillis returns the toast lifetime in milliseconds, as the widget expects
func (m Message) LifeMillis() int64 {
	if m.Life <= 0 {
		return DefaultMessageLife.Milliseconds()
	}
	return m.Life.Milliseconds()
}

// Notifier dispatches messages to the display layer of one subject
type Notifier interface {
	Notify(subject string, msg Message)
}
