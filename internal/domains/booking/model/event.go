package model

import "time"

type EventType string

const (
	EventCreated        EventType = "booking.created"
	EventCheckedIn      EventType = "booking.checked_in"
	EventCheckedOut     EventType = "booking.checked_out"
	EventExtended       EventType = "booking.extended"
	EventPaymentUpdated EventType = "booking.payment_updated"
	EventDeleted        EventType = "booking.deleted"
)

// Event announces a completed lifecycle command.
type Event struct {
	Type       EventType `json:"type"`
	BookingID  string    `json:"booking_id"`
	RoomID     string    `json:"room_id"`
	GuestID    string    `json:"guest_id"`
	Status     Status    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(eventType EventType, booking Booking, at time.Time) Event {
	return Event{
		Type:       eventType,
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		GuestID:    booking.GuestID,
		Status:     booking.Status(),
		OccurredAt: at,
	}
}
