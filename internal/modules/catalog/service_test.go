package catalog

import (
	"context"
	"errors"
	"testing"

	"servicehub/internal/domain"
	"servicehub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

var errDuplicateSlug = errors.New(`ERROR: duplicate key value violates unique constraint "idx_services_slug" (SQLSTATE 23505)`)

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	args := m.Called(ctx, s)
	if args.Error(0) == nil && s != nil {
		s.ID = 101 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockServiceRepository) GetBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockServiceRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockServiceRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockServiceRepository) IncrementViews(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockServiceRepository) List(ctx context.Context, f repository.ServiceFilter) ([]domain.Service, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Service), args.Get(1).(int64), args.Error(2)
}

func TestCreateService_AllocatesBaseSlug(t *testing.T) {
	repo := new(MockServiceRepository)
	repo.On("SlugExists", mock.Anything, "deep-cleaning", int64(0)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc, err := NewService(repo).CreateService(context.Background(), "Aliya@CleanCo.kz", "Aliya", CreateServiceRequest{
		Name:     "Deep Cleaning",
		Category: "cleaning",
		Price:    3000,
	})

	assert.NoError(t, err)
	assert.Equal(t, "deep-cleaning", svc.Slug)
	assert.Equal(t, "aliya@cleanco.kz", svc.ProviderEmail)
	repo.AssertExpectations(t)
}

func TestCreateService_ProbesNextSuffixOnCollision(t *testing.T) {
	repo := new(MockServiceRepository)
	repo.On("SlugExists", mock.Anything, "deep-cleaning", int64(0)).Return(true, nil)
	repo.On("SlugExists", mock.Anything, "deep-cleaning-2", int64(0)).Return(true, nil)
	repo.On("SlugExists", mock.Anything, "deep-cleaning-3", int64(0)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc, err := NewService(repo).CreateService(context.Background(), "a@b.c", "A", CreateServiceRequest{
		Name:     "Deep Cleaning",
		Category: "cleaning",
		Price:    100,
	})

	assert.NoError(t, err)
	assert.Equal(t, "deep-cleaning-3", svc.Slug)
}

func TestCreateService_RetriesWhenInsertLosesRace(t *testing.T) {
	// The probe says the slug is free, but a concurrent creator commits it
	// first: the unique index rejects our insert and allocation must move
	// to the next suffix instead of surfacing the raw violation.
	repo := new(MockServiceRepository)
	repo.On("SlugExists", mock.Anything, "deep-cleaning", int64(0)).Return(false, nil)
	repo.On("SlugExists", mock.Anything, "deep-cleaning-2", int64(0)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Service) bool {
		return s.Slug == "deep-cleaning"
	})).Return(errDuplicateSlug).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Service) bool {
		return s.Slug == "deep-cleaning-2"
	})).Return(nil).Once()

	svc, err := NewService(repo).CreateService(context.Background(), "a@b.c", "A", CreateServiceRequest{
		Name:     "Deep Cleaning",
		Category: "cleaning",
		Price:    100,
	})

	assert.NoError(t, err)
	assert.Equal(t, "deep-cleaning-2", svc.Slug)
	repo.AssertExpectations(t)
}

func TestCreateService_GivesUpAfterMaxAttempts(t *testing.T) {
	repo := new(MockServiceRepository)
	repo.On("SlugExists", mock.Anything, mock.Anything, int64(0)).Return(true, nil)

	_, err := NewService(repo).CreateService(context.Background(), "a@b.c", "A", CreateServiceRequest{
		Name:     "Deep Cleaning",
		Category: "cleaning",
		Price:    100,
	})

	assert.ErrorIs(t, err, ErrSlugExhausted)
}

func TestCreateService_EmptySlugBaseFallsBack(t *testing.T) {
	repo := new(MockServiceRepository)
	var allocated string
	repo.On("SlugExists", mock.Anything, mock.Anything, int64(0)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		allocated = args.Get(1).(*domain.Service).Slug
	}).Return(nil)

	_, err := NewService(repo).CreateService(context.Background(), "a@b.c", "A", CreateServiceRequest{
		Name:     "///",
		Category: "misc",
		Price:    10,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, allocated)
	assert.Contains(t, allocated, "service-")
}

func TestUpdateService_RenameExcludesOwnSlug(t *testing.T) {
	existing := &domain.Service{
		ID:            7,
		Name:          "Deep Cleaning",
		Slug:          "deep-cleaning",
		Category:      "cleaning",
		ProviderEmail: "a@b.c",
	}

	repo := new(MockServiceRepository)
	repo.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
	// probe for the new name must pass excludeID=7
	repo.On("SlugExists", mock.Anything, "deep-cleaning-plus", int64(7)).Return(false, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc, err := NewService(repo).UpdateService(context.Background(), "A@B.C", 7, UpdateServiceRequest{
		Name: "Deep Cleaning Plus",
	})

	assert.NoError(t, err)
	assert.Equal(t, "deep-cleaning-plus", svc.Slug)
	repo.AssertExpectations(t)
}

func TestUpdateService_ForbiddenForNonProvider(t *testing.T) {
	existing := &domain.Service{ID: 7, ProviderEmail: "owner@b.c"}

	repo := new(MockServiceRepository)
	repo.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)

	_, err := NewService(repo).UpdateService(context.Background(), "intruder@b.c", 7, UpdateServiceRequest{
		Description: "hijacked",
	})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetByID_CountsView(t *testing.T) {
	existing := &domain.Service{ID: 3, Views: 9}

	repo := new(MockServiceRepository)
	repo.On("GetByID", mock.Anything, int64(3)).Return(existing, nil)
	repo.On("IncrementViews", mock.Anything, int64(3)).Return(int64(10), nil)

	svc, err := NewService(repo).GetByID(context.Background(), 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(10), svc.Views)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := new(MockServiceRepository)
	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewService(repo).GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrNotFound)
}
