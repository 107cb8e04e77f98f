package services

import (
	"context"
	"time"

	"github.com/yeremiapane/table-reservation/utils"
)

// Event types
const (
	EventTableCreated             = "table.created"
	EventTableUpdated             = "table.updated"
	EventTableDeleted             = "table.deleted"
	EventReservationCreated       = "reservation.created"
	EventReservationUpdated       = "reservation.updated"
	EventReservationDeleted       = "reservation.deleted"
	EventReservationStatusCreated = "reservation_status.created"
	EventReservationStatusUpdated = "reservation_status.updated"
	EventReservationStatusDeleted = "reservation_status.deleted"
	EventRestaurantInfoUpdated    = "restaurant_info.updated"
	EventRestaurantInfoDeleted    = "restaurant_info.deleted"
	EventUserCreated              = "user.created"
	EventUserUpdated              = "user.updated"
	EventUserDeleted              = "user.deleted"
)

type Event struct {
	Type       string      `json:"event"`
	Data       interface{} `json:"data"`
	OccurredAt time.Time   `json:"occurredAt"`
}

func NewEvent(eventType string, data interface{}) Event {
	return Event{Type: eventType, Data: data, OccurredAt: time.Now().UTC()}
}

// Notifier receives domain events after a successful write.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}

// Fanout mengirim event ke semua notifier; error hanya dicatat
type Fanout []Notifier

func (f Fanout) Publish(ctx context.Context, event Event) error {
	for _, n := range f {
		if n == nil {
			continue
		}
		if err := n.Publish(ctx, event); err != nil {
			utils.ErrorLogger.Warnf("publish %s failed: %v", event.Type, err)
		}
	}
	return nil
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
