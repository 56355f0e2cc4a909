package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"mavina/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentReader resolves the appointment a conversation belongs to.
type AppointmentReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

// Service holds ephemeral conversation state. Messages and templates are
// deliberately kept in process memory: conversations are throwaway
// coordination between a customer and a washer and are wiped on restart.
type Service struct {
	appointments AppointmentReader
	hub          *Hub

	mu        sync.RWMutex
	messages  map[int64][]Message  // appointmentID -> ordered messages
	templates map[int64][]Template // providerID -> quick replies
}

func NewService(appointments AppointmentReader, hub *Hub) *Service {
	return &Service{
		appointments: appointments,
		hub:          hub,
		messages:     make(map[int64][]Message),
		templates:    make(map[int64][]Template),
	}
}

// SendMessage appends a message to the appointment's conversation and
// pushes it to connected subscribers.
func (s *Service) SendMessage(ctx context.Context, appointmentID, senderID int64, senderRole, text string) (*Message, error) {
	if text == "" {
		return nil, ErrValidation
	}

	if err := s.authorize(ctx, appointmentID, senderID, senderRole); err != nil {
		return nil, err
	}

	msg := Message{
		ID:            uuid.NewString(),
		AppointmentID: appointmentID,
		SenderID:      senderID,
		Text:          text,
		SentAt:        time.Now(),
	}

	s.mu.Lock()
	s.messages[appointmentID] = append(s.messages[appointmentID], msg)
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.BroadcastToAppointment(appointmentID, &WSEvent{
			Type:          EventNewMessage,
			AppointmentID: appointmentID,
			Payload:       msg,
		})
	}

	return &msg, nil
}

// ListMessages returns the conversation in send order.
func (s *Service) ListMessages(ctx context.Context, appointmentID, userID int64, role string) ([]Message, error) {
	if err := s.authorize(ctx, appointmentID, userID, role); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[appointmentID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// CreateTemplate stores a quick reply for the provider.
func (s *Service) CreateTemplate(providerID int64, text string) (*Template, error) {
	if text == "" {
		return nil, ErrValidation
	}

	tpl := Template{
		ID:         uuid.NewString(),
		ProviderID: providerID,
		Text:       text,
		CreatedAt:  time.Now(),
	}

	s.mu.Lock()
	s.templates[providerID] = append(s.templates[providerID], tpl)
	s.mu.Unlock()

	return &tpl, nil
}

func (s *Service) ListTemplates(providerID int64) []Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tpls := s.templates[providerID]
	out := make([]Template, len(tpls))
	copy(out, tpls)
	return out
}

func (s *Service) authorize(ctx context.Context, appointmentID, userID int64, role string) error {
	a, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if role != string(domain.RoleAdmin) && a.CustomerID != userID && a.ProviderID != userID {
		return ErrForbidden
	}
	return nil
}
