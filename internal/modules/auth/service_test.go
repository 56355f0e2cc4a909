package auth

import (
	"context"
	"testing"

	"mavina/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type stubJWT struct{}

func (stubJWT) GenerateToken(userID int64, role string) (string, error) {
	return "stub-token", nil
}

func TestService_Register_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("ExistsByEmail", mock.Anything, "aizhan@example.com").Return(false, nil)
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockUsers, stubJWT{})

	user, token, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Aizhan",
		Email:    "aizhan@example.com",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "stub-token", token)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.Empty(t, user.PasswordHash)
}

func TestService_Register_EmailExists(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("ExistsByEmail", mock.Anything, "Taken@Example.com").Return(true, nil)

	service := NewService(mockUsers, stubJWT{})

	_, _, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Someone",
		Email:    "Taken@Example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_ProviderRole(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockUsers, stubJWT{})

	user, _, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Arman's Mobile Wash",
		Email:    "arman@mavina.app",
		Role:     "provider",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleProvider, user.Role)
}

func TestService_Login_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)

	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "aizhan@example.com").Return(&domain.User{
		ID:           7,
		Email:        "aizhan@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	}, nil)

	service := NewService(mockUsers, stubJWT{})

	result, err := service.Login(context.Background(), LoginRequest{
		Email:    "Aizhan@Example.com", // lookup is case-insensitive
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "stub-token", result.AccessToken)
	assert.Empty(t, result.User.PasswordHash)
}

func TestService_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)

	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "aizhan@example.com").Return(&domain.User{
		ID:           7,
		Email:        "aizhan@example.com",
		PasswordHash: string(hash),
	}, nil)

	service := NewService(mockUsers, stubJWT{})

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "aizhan@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockUsers, stubJWT{})

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_UpdateProfile_PartialFields(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{
		ID:    7,
		Name:  "Aizhan",
		Phone: "+77020000001",
	}, nil)
	mockUsers.On("Update", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockUsers, stubJWT{})

	user, err := service.UpdateProfile(context.Background(), 7, UpdateProfileRequest{
		Address: "48 Dostyk St",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Aizhan", user.Name)
	assert.Equal(t, "48 Dostyk St", user.Address)
}
