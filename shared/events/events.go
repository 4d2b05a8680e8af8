package events

import "time"

// Event types
const (
	AccountRegistered      = "account.registered"
	AccountSettingsUpdated = "account.settings.updated"
)

// Stream names
const (
	AccountEventsStream = "user.account.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type AccountRegisteredEvent struct {
	AccountID       int64  `json:"accountId"`
	Email           string `json:"email"`
	DefaultCurrency string `json:"defaultCurrency"`
}

type AccountSettingsUpdatedEvent struct {
	AccountID       int64  `json:"accountId"`
	DefaultCurrency string `json:"defaultCurrency"`
	// PreviousCurrency is the currency before the update.
	PreviousCurrency string `json:"previousCurrency"`
}
