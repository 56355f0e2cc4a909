package transaction

import (
	"context"
	"errors"
	"strings"

	"mavina/internal/domain"
	"mavina/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	transactions TransactionRepository
	appointments AppointmentReader
}

func NewService(transactions TransactionRepository, appointments AppointmentReader) *Service {
	return &Service{
		transactions: transactions,
		appointments: appointments,
	}
}

// Create opens the billing record for an appointment. Both axes start
// pending; there is exactly one transaction per appointment, enforced by
// the unique key on appointment_id.
func (s *Service) Create(ctx context.Context, req CreateTransactionRequest, actorID int64, actorRole string) (*domain.Transaction, error) {
	if req.Amount <= 0 {
		return nil, ErrValidation
	}

	a, err := s.appointments.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}

	if actorRole != string(domain.RoleAdmin) && a.CustomerID != actorID && a.ProviderID != actorID {
		return nil, ErrForbidden
	}

	// the unique key on appointment_id still catches a concurrent create
	if _, err := s.transactions.GetByAppointmentID(ctx, a.ID); err == nil {
		return nil, ErrTransactionExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	serviceName := strings.TrimSpace(req.ServiceName)
	if serviceName == "" {
		serviceName = a.ServiceName
	}

	t := &domain.Transaction{
		AppointmentID: a.ID,
		CustomerID:    a.CustomerID,
		WasherID:      a.ProviderID,
		Amount:        req.Amount,
		ServiceName:   serviceName,
		ServiceStatus: domain.ServicePending,
		PaymentStatus: domain.PaymentPending,
	}

	if err := s.transactions.Create(ctx, t); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrTransactionExists
		}
		return nil, err
	}

	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id, actorID int64, actorRole string) (*domain.Transaction, error) {
	t, err := s.getOwned(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateServiceStatus moves the service axis. The payment axis is left
// untouched whatever happens here.
func (s *Service) UpdateServiceStatus(ctx context.Context, id, actorID int64, actorRole string, newStatus domain.ServiceStatus) (*domain.Transaction, error) {
	if !newStatus.Valid() {
		return nil, ErrValidation
	}

	t, err := s.getOwned(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	// service progress is reported by the washer
	if actorRole != string(domain.RoleAdmin) && t.WasherID != actorID {
		return nil, ErrForbidden
	}

	if !t.ServiceStatus.CanTransitionTo(newStatus) {
		return nil, ErrInvalidStatusTransition
	}

	rows, err := s.transactions.UpdateServiceStatus(ctx, id, t.ServiceStatus, newStatus)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidStatusTransition
	}

	return s.transactions.GetByID(ctx, id)
}

// UpdatePaymentStatus moves the payment axis: confirmation comes from the
// customer, refunds from the washer. Independent of the service axis.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id, actorID int64, actorRole string, newStatus domain.PaymentStatus) (*domain.Transaction, error) {
	if !newStatus.Valid() {
		return nil, ErrValidation
	}

	t, err := s.getOwned(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	if !t.PaymentStatus.CanTransitionTo(newStatus) {
		return nil, ErrInvalidStatusTransition
	}

	rows, err := s.transactions.UpdatePaymentStatus(ctx, id, t.PaymentStatus, newStatus)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidStatusTransition
	}

	return s.transactions.GetByID(ctx, id)
}

// ListForUser returns transactions where the user is the customer (role
// user) or the washer (role provider), newest first.
func (s *Service) ListForUser(ctx context.Context, userID int64, role string) ([]domain.Transaction, error) {
	switch role {
	case string(domain.RoleProvider):
		return s.transactions.ListByWasherID(ctx, userID)
	case string(domain.RoleCustomer), string(domain.RoleAdmin):
		return s.transactions.ListByCustomerID(ctx, userID)
	default:
		return nil, ErrValidation
	}
}

func (s *Service) getOwned(ctx context.Context, id, actorID int64, actorRole string) (*domain.Transaction, error) {
	t, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actorRole != string(domain.RoleAdmin) && t.CustomerID != actorID && t.WasherID != actorID {
		return nil, ErrForbidden
	}
	return t, nil
}
