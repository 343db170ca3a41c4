package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"geotrack/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id, name, email, passwordHash string) error {
	args := m.Called(ctx, id, name, email, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id string, role model.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockTrackRepository is a mock implementation of repository.TrackRepository.
type MockTrackRepository struct {
	mock.Mock
}

func (m *MockTrackRepository) Create(ctx context.Context, track *model.GpsTrack) error {
	args := m.Called(ctx, track)
	return args.Error(0)
}

func (m *MockTrackRepository) ListByUser(ctx context.Context, userID string) ([]model.GpsTrack, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GpsTrack), args.Error(1)
}

func (m *MockTrackRepository) ListInRange(ctx context.Context, start, end time.Time) ([]model.GpsTrack, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GpsTrack), args.Error(1)
}

func (m *MockTrackRepository) ListInRangeForUser(ctx context.Context, start, end time.Time, userID string) ([]model.GpsTrack, error) {
	args := m.Called(ctx, start, end, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GpsTrack), args.Error(1)
}

func (m *MockTrackRepository) ListAll(ctx context.Context) ([]model.GpsTrack, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GpsTrack), args.Error(1)
}
