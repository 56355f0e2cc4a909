package transaction

import (
	"context"

	"mavina/internal/domain"
)

// TransactionRepository defines the persistence operations for transactions.
// Status updates are conditional on the current value of their own axis and
// report rows affected, so a lost race shows up as zero rows.
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) error
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Transaction, error)
	ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Transaction, error)
	ListByWasherID(ctx context.Context, washerID int64) ([]domain.Transaction, error)
	UpdateServiceStatus(ctx context.Context, id int64, from, to domain.ServiceStatus) (int64, error)
	UpdatePaymentStatus(ctx context.Context, id int64, from, to domain.PaymentStatus) (int64, error)
}

// AppointmentReader resolves the appointment a transaction bills.
type AppointmentReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}
