package appointment

import (
	"context"

	"mavina/internal/domain"
)

// AppointmentRepository defines the persistence operations for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Appointment, error)
	GetByProviderID(ctx context.Context, providerID int64) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) (int64, error)
}

// UserReader resolves referenced users when creating appointments.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
