package domain

import "time"

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// appointmentTransitions lists the legal successors per status. A pending
// appointment can complete directly (walk-up jobs are never confirmed in
// the app). completed and cancelled have no successors: they are terminal.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentPending:   {AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled},
	AppointmentConfirmed: {AppointmentCompleted, AppointmentCancelled},
	AppointmentCompleted: {},
	AppointmentCancelled: {},
}

func (s AppointmentStatus) Valid() bool {
	_, ok := appointmentTransitions[s]
	return ok
}

func (s AppointmentStatus) Terminal() bool {
	next, ok := appointmentTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether s -> to is a legal edge.
func (s AppointmentStatus) CanTransitionTo(to AppointmentStatus) bool {
	for _, next := range appointmentTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type Appointment struct {
	ID          int64             `json:"id"`
	CustomerID  int64             `json:"customer_id" validate:"required"`
	ProviderID  int64             `json:"provider_id" validate:"required"`
	ServiceName string            `json:"service_name" validate:"required"`
	ScheduledAt time.Time         `json:"scheduled_at" validate:"required"`
	Price       float64           `json:"price" validate:"required,gt=0"`
	Address     string            `json:"address" validate:"required"`
	Latitude    *float64          `json:"latitude,omitempty"`
	Longitude   *float64          `json:"longitude,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Status      AppointmentStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
