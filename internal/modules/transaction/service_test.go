package transaction

import (
	"context"
	"testing"

	"mavina/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	args := m.Called(ctx, t)
	if t != nil {
		t.ID = 555 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Transaction, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByWasherID(ctx context.Context, washerID int64) ([]domain.Transaction, error) {
	args := m.Called(ctx, washerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateServiceStatus(ctx context.Context, id int64, from, to domain.ServiceStatus) (int64, error) {
	args := m.Called(ctx, id, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) UpdatePaymentStatus(ctx context.Context, id int64, from, to domain.PaymentStatus) (int64, error) {
	args := m.Called(ctx, id, from, to)
	return args.Get(0).(int64), args.Error(1)
}

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

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:          10,
		CustomerID:  1,
		ProviderID:  2,
		ServiceName: "Quick wash",
		Price:       150,
		Status:      domain.AppointmentCompleted,
	}
}

func TestService_Create_Success(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	mockAppointments := new(MockAppointmentReader)

	mockAppointments.On("GetByID", mock.Anything, int64(10)).Return(testAppointment(), nil)
	mockRepo.On("GetByAppointmentID", mock.Anything, int64(10)).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockRepo, mockAppointments)

	tx, err := service.Create(context.Background(), CreateTransactionRequest{
		AppointmentID: 10,
		Amount:        150,
	}, 2, "provider")

	assert.NoError(t, err)
	assert.Equal(t, domain.ServicePending, tx.ServiceStatus)
	assert.Equal(t, domain.PaymentPending, tx.PaymentStatus)
	assert.Equal(t, int64(1), tx.CustomerID)
	assert.Equal(t, int64(2), tx.WasherID)
	assert.Equal(t, "Quick wash", tx.ServiceName) // inherited from the appointment
}

func TestService_Create_NonPositiveAmount(t *testing.T) {
	service := NewService(new(MockTransactionRepository), new(MockAppointmentReader))

	for _, amount := range []float64{0, -150} {
		_, err := service.Create(context.Background(), CreateTransactionRequest{
			AppointmentID: 10,
			Amount:        amount,
		}, 2, "provider")
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestService_Create_UnknownAppointment(t *testing.T) {
	mockAppointments := new(MockAppointmentReader)
	mockAppointments.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(new(MockTransactionRepository), mockAppointments)

	_, err := service.Create(context.Background(), CreateTransactionRequest{
		AppointmentID: 404,
		Amount:        150,
	}, 2, "provider")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Create_DuplicateAppointment(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	mockAppointments := new(MockAppointmentReader)

	mockAppointments.On("GetByID", mock.Anything, int64(10)).Return(testAppointment(), nil)
	mockRepo.On("GetByAppointmentID", mock.Anything, int64(10)).Return(pendingTransaction(), nil)

	service := NewService(mockRepo, mockAppointments)

	_, err := service.Create(context.Background(), CreateTransactionRequest{
		AppointmentID: 10,
		Amount:        150,
	}, 2, "provider")
	assert.ErrorIs(t, err, ErrTransactionExists)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_DuplicateRace(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	mockAppointments := new(MockAppointmentReader)

	// the pre-check sees nothing, but a concurrent create wins the insert
	mockAppointments.On("GetByID", mock.Anything, int64(10)).Return(testAppointment(), nil)
	mockRepo.On("GetByAppointmentID", mock.Anything, int64(10)).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505", ConstraintName: "idx_transactions_appointment_id"})

	service := NewService(mockRepo, mockAppointments)

	_, err := service.Create(context.Background(), CreateTransactionRequest{
		AppointmentID: 10,
		Amount:        150,
	}, 2, "provider")
	assert.ErrorIs(t, err, ErrTransactionExists)
}

func TestService_Create_Stranger(t *testing.T) {
	mockAppointments := new(MockAppointmentReader)
	mockAppointments.On("GetByID", mock.Anything, int64(10)).Return(testAppointment(), nil)

	service := NewService(new(MockTransactionRepository), mockAppointments)

	_, err := service.Create(context.Background(), CreateTransactionRequest{
		AppointmentID: 10,
		Amount:        150,
	}, 99, "provider")
	assert.ErrorIs(t, err, ErrForbidden)
}

func pendingTransaction() *domain.Transaction {
	return &domain.Transaction{
		ID:            555,
		AppointmentID: 10,
		CustomerID:    1,
		WasherID:      2,
		Amount:        150,
		ServiceStatus: domain.ServicePending,
		PaymentStatus: domain.PaymentPending,
	}
}

func TestService_UpdateServiceStatus_Progression(t *testing.T) {
	mockRepo := new(MockTransactionRepository)

	inProgress := pendingTransaction()
	inProgress.ServiceStatus = domain.ServiceInProgress

	mockRepo.On("GetByID", mock.Anything, int64(555)).Return(pendingTransaction(), nil).Once()
	mockRepo.On("UpdateServiceStatus", mock.Anything, int64(555), domain.ServicePending, domain.ServiceInProgress).Return(int64(1), nil)
	mockRepo.On("GetByID", mock.Anything, int64(555)).Return(inProgress, nil).Once()

	service := NewService(mockRepo, new(MockAppointmentReader))

	tx, err := service.UpdateServiceStatus(context.Background(), 555, 2, "provider", domain.ServiceInProgress)

	assert.NoError(t, err)
	assert.Equal(t, domain.ServiceInProgress, tx.ServiceStatus)
	// payment axis untouched
	assert.Equal(t, domain.PaymentPending, tx.PaymentStatus)
}

func TestService_UpdateServiceStatus_IllegalEdge(t *testing.T) {
	completed := pendingTransaction()
	completed.ServiceStatus = domain.ServiceCompleted

	mockRepo := new(MockTransactionRepository)
	mockRepo.On("GetByID", mock.Anything, int64(555)).Return(completed, nil)

	service := NewService(mockRepo, new(MockAppointmentReader))

	// completed is terminal; going back to pending is rejected
	_, err := service.UpdateServiceStatus(context.Background(), 555, 2, "provider", domain.ServicePending)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestService_UpdateServiceStatus_SkippingInProgress(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	mockRepo.On("GetByID", mock.Anything, int64(555)).Return(pendingTransaction(), nil)

	service := NewService(mockRepo, new(MockAppointmentReader))

	_, err := service.UpdateServiceStatus(context.Background(), 555, 2, "provider", domain.ServiceCompleted)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestService_UpdateServiceStatus_CustomerForbidden(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	mockRepo.On("GetByID", mock.Anything, int64(555)).Return(pendingTransaction(), nil)

	service := NewService(mockRepo, new(MockAppointmentReader))

	_, err := service.UpdateServiceStatus(context.Background(), 555, 1, "user", domain.ServiceInProgress)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_UpdatePaymentStatus_ConfirmLeavesServiceAlone(t *testing.T) {
	mockRepo := new(MockTransactionRepository)

	confirmed := pendingTransaction()
	confirmed.PaymentStatus = domain.PaymentConfirmed

	mockRepo.On("GetByID", mock.Anything, int64(555)).Return(pendingTransaction(), nil).Once()
	mockRepo.On("UpdatePaymentStatus", mock.Anything, int64(555), domain.PaymentPending, domain.PaymentConfirmed).Return(int64(1), nil)
	mockRepo.On("GetByID", mock.Anything, int64(555)).Return(confirmed, nil).Once()

	service := NewService(mockRepo, new(MockAppointmentReader))

	tx, err := service.UpdatePaymentStatus(context.Background(), 555, 1, "user", domain.PaymentConfirmed)

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentConfirmed, tx.PaymentStatus)
	assert.Equal(t, domain.ServicePending, tx.ServiceStatus)
	mockRepo.AssertNotCalled(t, "UpdateServiceStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdatePaymentStatus_TerminalRejects(t *testing.T) {
	for _, terminal := range []domain.PaymentStatus{domain.PaymentConfirmed, domain.PaymentRefunded} {
		current := pendingTransaction()
		current.PaymentStatus = terminal

		mockRepo := new(MockTransactionRepository)
		mockRepo.On("GetByID", mock.Anything, int64(555)).Return(current, nil)

		service := NewService(mockRepo, new(MockAppointmentReader))

		_, err := service.UpdatePaymentStatus(context.Background(), 555, 1, "user", domain.PaymentPending)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition, "from %s", terminal)
	}
}

func TestService_UpdatePaymentStatus_UnknownTransaction(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	mockRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockRepo, new(MockAppointmentReader))

	_, err := service.UpdatePaymentStatus(context.Background(), 404, 1, "user", domain.PaymentConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdatePaymentStatus_LostRace(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	mockRepo.On("GetByID", mock.Anything, int64(555)).Return(pendingTransaction(), nil)
	mockRepo.On("UpdatePaymentStatus", mock.Anything, int64(555), domain.PaymentPending, domain.PaymentConfirmed).Return(int64(0), nil)

	service := NewService(mockRepo, new(MockAppointmentReader))

	_, err := service.UpdatePaymentStatus(context.Background(), 555, 1, "user", domain.PaymentConfirmed)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestService_ListForUser_RoleRouting(t *testing.T) {
	mockRepo := new(MockTransactionRepository)
	mockRepo.On("ListByCustomerID", mock.Anything, int64(1)).Return([]domain.Transaction{{ID: 1, CustomerID: 1}}, nil)
	mockRepo.On("ListByWasherID", mock.Anything, int64(2)).Return([]domain.Transaction{{ID: 2, WasherID: 2}, {ID: 3, WasherID: 2}}, nil)

	service := NewService(mockRepo, new(MockAppointmentReader))

	asCustomer, err := service.ListForUser(context.Background(), 1, "user")
	assert.NoError(t, err)
	assert.Len(t, asCustomer, 1)

	asWasher, err := service.ListForUser(context.Background(), 2, "provider")
	assert.NoError(t, err)
	assert.Len(t, asWasher, 2)

	_, err = service.ListForUser(context.Background(), 1, "something-else")
	assert.ErrorIs(t, err, ErrValidation)
}
