package domain

import "time"

// ServiceStatus tracks the wash itself. PaymentStatus tracks the money.
// The two axes are independent: a wash can be completed while payment is
// still pending, and the other way around. Neither axis is ever inferred
// from the other.

type ServiceStatus string

const (
	ServicePending    ServiceStatus = "pending"
	ServiceInProgress ServiceStatus = "in_progress"
	ServiceCompleted  ServiceStatus = "completed"
	ServiceCancelled  ServiceStatus = "cancelled"
)

var serviceTransitions = map[ServiceStatus][]ServiceStatus{
	ServicePending:    {ServiceInProgress, ServiceCancelled},
	ServiceInProgress: {ServiceCompleted, ServiceCancelled},
	ServiceCompleted:  {},
	ServiceCancelled:  {},
}

func (s ServiceStatus) Valid() bool {
	_, ok := serviceTransitions[s]
	return ok
}

func (s ServiceStatus) CanTransitionTo(to ServiceStatus) bool {
	for _, next := range serviceTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentRefunded  PaymentStatus = "refunded"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentConfirmed, PaymentRefunded},
	PaymentConfirmed: {},
	PaymentRefunded:  {},
}

func (s PaymentStatus) Valid() bool {
	_, ok := paymentTransitions[s]
	return ok
}

func (s PaymentStatus) CanTransitionTo(to PaymentStatus) bool {
	for _, next := range paymentTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Transaction is the billing/completion record for exactly one appointment.
type Transaction struct {
	ID            int64         `json:"id"`
	AppointmentID int64         `json:"appointment_id" validate:"required"`
	CustomerID    int64         `json:"customer_id" validate:"required"`
	WasherID      int64         `json:"washer_id" validate:"required"`
	Amount        float64       `json:"amount" validate:"required,gt=0"`
	ServiceName   string        `json:"service_name"`
	ServiceStatus ServiceStatus `json:"service_status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
