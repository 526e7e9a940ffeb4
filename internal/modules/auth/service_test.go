package auth

import (
	"context"
	"errors"
	"testing"

	"servicehub/internal/domain"

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
	if args.Error(0) == nil && u != nil {
		u.ID = 1
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

type stubJWT struct{}

func (stubJWT) GenerateToken(email, name string) (string, error) { return "token-" + email, nil }

func TestRegister_NormalizesEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	u, err := NewService(users, stubJWT{}).Register(context.Background(), RegisterRequest{
		Name:     "Daniyar",
		Email:    "  Daniyar@Example.COM ",
		Password: "secret-pass",
	})

	assert.NoError(t, err)
	assert.Equal(t, "daniyar@example.com", u.Email)
	assert.NotEqual(t, "secret-pass", u.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Create", mock.Anything, mock.Anything).
		Return(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`))

	_, err := NewService(users, stubJWT{}).Register(context.Background(), RegisterRequest{
		Name:     "Daniyar",
		Email:    "daniyar@example.com",
		Password: "secret-pass",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_RoundTrip(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.DefaultCost)
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "daniyar@example.com").Return(&domain.User{
		ID:           1,
		Name:         "Daniyar",
		Email:        "daniyar@example.com",
		PasswordHash: string(hash),
	}, nil)

	svc := NewService(users, stubJWT{})

	result, err := svc.Login(context.Background(), LoginRequest{Email: "Daniyar@Example.com", Password: "secret-pass"})
	assert.NoError(t, err)
	assert.Equal(t, "token-daniyar@example.com", result.AccessToken)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "daniyar@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := NewService(users, stubJWT{}).Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "x"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
