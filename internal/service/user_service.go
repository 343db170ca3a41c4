package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"geotrack/internal/auth"
	"geotrack/internal/cache"
	"geotrack/internal/errors"
	"geotrack/internal/model"
	"geotrack/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserInfo bundles a user's profile with their track history.
type UserInfo struct {
	User   *model.User
	Tracks []model.GpsTrack
}

// UserService handles profile and user management operations.
type UserService interface {
	UpdateInfo(ctx context.Context, userID, name, email, password string) (*model.User, error)
	ChangeRole(ctx context.Context, userID string, role model.Role) (*model.User, error)
	Delete(ctx context.Context, userID string) (string, error)
	List(ctx context.Context) ([]model.User, error)
	MyInfo(ctx context.Context, userID string) (*UserInfo, error)
}

type userService struct {
	userRepo  repository.UserRepository
	trackRepo repository.TrackRepository
	cache     *cache.Client
}

// NewUserService builds a UserService with repositories and cache.
func NewUserService(userRepo repository.UserRepository, trackRepo repository.TrackRepository, cache *cache.Client) UserService {
	return &userService{
		userRepo:  userRepo,
		trackRepo: trackRepo,
		cache:     cache,
	}
}

func (s *userService) cacheKey(id string) string {
	return "user:" + id
}

// UpdateInfo replaces name, email and password of an existing user. Role and
// registration date are preserved from the stored row.
func (s *userService) UpdateInfo(ctx context.Context, userID, name, email, password string) (*model.User, error) {
	stored, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if other, err := s.userRepo.FindByEmail(ctx, email); err == nil && other.ID != userID {
		return nil, errors.ErrEmailTaken
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepo.Update(ctx, userID, name, email, hash); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))

	return &model.User{
		ID:           stored.ID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         stored.Role,
		RegisterDate: stored.RegisterDate,
	}, nil
}

// ChangeRole sets the user's role and returns the refreshed record.
func (s *userService) ChangeRole(ctx context.Context, userID string, role model.Role) (*model.User, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))

	return s.userRepo.FindByID(ctx, userID)
}

// Delete verifies the user exists, then removes it. The gps_track rows are
// removed by the database cascade.
func (s *userService) Delete(ctx context.Context, userID string) (string, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return "", fmt.Errorf("delete user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))

	return userID, nil
}

// List returns every registered user.
func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// MyInfo returns the user's profile together with their full track history.
// The profile part is served read-through from the cache.
func (s *userService) MyInfo(ctx context.Context, userID string) (*UserInfo, error) {
	user, err := s.getUserCached(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	tracks, err := s.trackRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}

	return &UserInfo{User: user, Tracks: tracks}, nil
}

func (s *userService) getUserCached(ctx context.Context, userID string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID), payload, userCacheTTL)
	}
	return user, nil
}
