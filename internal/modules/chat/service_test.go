package chat

import (
	"context"
	"testing"

	"mavina/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockAppointmentReader struct {
	mock.Mock
}

func (m *MockAppointmentReader) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func appointmentReader() *MockAppointmentReader {
	m := new(MockAppointmentReader)
	m.On("GetByID", mock.Anything, int64(10)).Return(&domain.Appointment{
		ID: 10, CustomerID: 1, ProviderID: 2,
	}, nil)
	return m
}

func TestService_SendAndListMessages(t *testing.T) {
	service := NewService(appointmentReader(), nil)

	first, err := service.SendMessage(context.Background(), 10, 1, "user", "On my way, be there in 20")
	assert.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = service.SendMessage(context.Background(), 10, 2, "provider", "Great, gate code is 4412")
	assert.NoError(t, err)

	msgs, err := service.ListMessages(context.Background(), 10, 1, "user")
	assert.NoError(t, err)
	assert.Len(t, msgs, 2)
	assert.Equal(t, "On my way, be there in 20", msgs[0].Text)
	assert.Equal(t, int64(2), msgs[1].SenderID)
}

func TestService_SendMessage_Stranger(t *testing.T) {
	service := NewService(appointmentReader(), nil)

	_, err := service.SendMessage(context.Background(), 10, 99, "user", "hello?")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_SendMessage_UnknownAppointment(t *testing.T) {
	m := new(MockAppointmentReader)
	m.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(m, nil)

	_, err := service.SendMessage(context.Background(), 404, 1, "user", "hello?")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_SendMessage_EmptyText(t *testing.T) {
	service := NewService(appointmentReader(), nil)

	_, err := service.SendMessage(context.Background(), 10, 1, "user", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Templates_PerProvider(t *testing.T) {
	service := NewService(appointmentReader(), nil)

	_, err := service.CreateTemplate(2, "I'm running 10 minutes late")
	assert.NoError(t, err)
	_, err = service.CreateTemplate(2, "All done, car is ready!")
	assert.NoError(t, err)
	_, err = service.CreateTemplate(3, "On my way")
	assert.NoError(t, err)

	assert.Len(t, service.ListTemplates(2), 2)
	assert.Len(t, service.ListTemplates(3), 1)
	assert.Empty(t, service.ListTemplates(4))
}
