package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"mavina/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	appointments AppointmentRepository
	users        UserReader
	cancelLead   time.Duration
}

func NewService(appointments AppointmentRepository, users UserReader, cancelLead time.Duration) *Service {
	return &Service{
		appointments: appointments,
		users:        users,
		cancelLead:   cancelLead,
	}
}

// CreateAppointment books a wash with a provider. New appointments always
// start out pending.
func (s *Service) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*domain.Appointment, error) {
	if strings.TrimSpace(req.ServiceName) == "" || strings.TrimSpace(req.Address) == "" {
		return nil, ErrValidation
	}
	if req.Price <= 0 {
		return nil, ErrValidation
	}
	if req.ScheduledAt.IsZero() || req.ScheduledAt.Before(time.Now()) {
		return nil, ErrValidation
	}

	provider, err := s.users.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}
	if provider.Role != domain.RoleProvider {
		return nil, ErrValidation
	}

	a := &domain.Appointment{
		CustomerID:  req.CustomerID,
		ProviderID:  req.ProviderID,
		ServiceName: req.ServiceName,
		ScheduledAt: req.ScheduledAt,
		Price:       req.Price,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Notes:       req.Notes,
		Status:      domain.AppointmentPending,
	}

	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// SetStatus applies a lifecycle transition. Confirm and complete belong to
// the provider; cancellation goes through the lead-time policy for either
// party. Terminal statuses reject every further transition.
func (s *Service) SetStatus(ctx context.Context, appointmentID, actorID int64, actorRole string, newStatus domain.AppointmentStatus) (*domain.Appointment, error) {
	if !newStatus.Valid() || newStatus == domain.AppointmentPending {
		return nil, ErrValidation
	}
	if newStatus == domain.AppointmentCancelled {
		return s.Cancel(ctx, appointmentID, actorID, actorRole)
	}

	a, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if actorRole != string(domain.RoleAdmin) {
		if actorRole != string(domain.RoleProvider) || a.ProviderID != actorID {
			return nil, ErrForbidden
		}
	}

	if !a.Status.CanTransitionTo(newStatus) {
		return nil, ErrInvalidStatusTransition
	}

	return s.applyTransition(ctx, a, newStatus)
}

// Cancel cancels an appointment, enforcing the minimum lead time before
// the scheduled slot. The customer and the provider may each cancel their
// own appointment.
func (s *Service) Cancel(ctx context.Context, appointmentID, actorID int64, actorRole string) (*domain.Appointment, error) {
	a, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if actorRole != string(domain.RoleAdmin) && a.CustomerID != actorID && a.ProviderID != actorID {
		return nil, ErrForbidden
	}

	if !a.Status.CanTransitionTo(domain.AppointmentCancelled) {
		return nil, ErrInvalidStatusTransition
	}

	if time.Until(a.ScheduledAt) <= s.cancelLead {
		return nil, ErrCancellationTooLate
	}

	return s.applyTransition(ctx, a, domain.AppointmentCancelled)
}

// applyTransition writes the new status conditioned on the one we just
// validated against. Zero rows affected means a concurrent caller moved
// the appointment first, which surfaces as a transition conflict.
func (s *Service) applyTransition(ctx context.Context, a *domain.Appointment, to domain.AppointmentStatus) (*domain.Appointment, error) {
	rows, err := s.appointments.UpdateStatus(ctx, a.ID, a.Status, to)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidStatusTransition
	}
	return s.appointments.GetByID(ctx, a.ID)
}

func (s *Service) GetByID(ctx context.Context, appointmentID, actorID int64, actorRole string) (*domain.Appointment, error) {
	a, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actorRole != string(domain.RoleAdmin) && a.CustomerID != actorID && a.ProviderID != actorID {
		return nil, ErrForbidden
	}
	return a, nil
}

// ListForUser returns the caller's appointments: bookings they made as a
// customer, or jobs assigned to them as a provider.
func (s *Service) ListForUser(ctx context.Context, userID int64, role string) ([]domain.Appointment, error) {
	switch role {
	case string(domain.RoleProvider):
		return s.appointments.GetByProviderID(ctx, userID)
	default:
		return s.appointments.GetByCustomerID(ctx, userID)
	}
}
