package countdown

import (
	"time"

	"countdown/internal/core/model"
)

// EventType defines the type of Refresher event.
type EventType string

const (
	EventRefresh     EventType = "refresh"
	EventReload      EventType = "reload"
	EventReloadError EventType = "reload_error"
	EventSaved       EventType = "saved"
)

// Event carries the current labels to observers.
type Event struct {
	Type   EventType
	Labels []model.Label
	Err    error
	At     time.Time
}
