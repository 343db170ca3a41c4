package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"geotrack/internal/auth"
	"geotrack/internal/errors"
	"geotrack/internal/model"
	"geotrack/internal/repository"
)

// TrackService handles GPS track ingestion and queries.
type TrackService interface {
	AddGPS(ctx context.Context, userID, latitude, longitude string, timestamp time.Time) (*model.GpsTrack, error)
	TracksByDate(ctx context.Context, start, end time.Time, claims *auth.Claims) ([]model.GpsTrack, error)
	MyTracks(ctx context.Context, userID string) ([]model.GpsTrack, error)
	AllTracks(ctx context.Context) ([]model.GpsTrack, error)
	UserExists(ctx context.Context, userID string) (bool, error)
}

type trackService struct {
	trackRepo repository.TrackRepository
	userRepo  repository.UserRepository
}

// NewTrackService creates a new track service.
func NewTrackService(trackRepo repository.TrackRepository, userRepo repository.UserRepository) TrackService {
	return &trackService{
		trackRepo: trackRepo,
		userRepo:  userRepo,
	}
}

// AddGPS persists a new track for an existing user. Coordinates arrive
// already validated by the request boundary.
func (s *trackService) AddGPS(ctx context.Context, userID, latitude, longitude string, timestamp time.Time) (*model.GpsTrack, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	track := &model.GpsTrack{
		UserID:    userID,
		Latitude:  latitude,
		Longitude: longitude,
		Timestamp: timestamp,
	}
	if err := s.trackRepo.Create(ctx, track); err != nil {
		return nil, fmt.Errorf("create track: %w", err)
	}
	return track, nil
}

// TracksByDate returns tracks in [start, end] ordered by timestamp. Admins
// see every user's tracks, everyone else only their own. An empty result is
// a valid outcome at this layer.
func (s *trackService) TracksByDate(ctx context.Context, start, end time.Time, claims *auth.Claims) ([]model.GpsTrack, error) {
	if claims.IsAdmin() {
		return s.trackRepo.ListInRange(ctx, start, end)
	}
	return s.trackRepo.ListInRangeForUser(ctx, start, end, claims.UserID)
}

// MyTracks returns every track owned by the user, oldest first.
func (s *trackService) MyTracks(ctx context.Context, userID string) ([]model.GpsTrack, error) {
	return s.trackRepo.ListByUser(ctx, userID)
}

// AllTracks returns every stored track, oldest first.
func (s *trackService) AllTracks(ctx context.Context) ([]model.GpsTrack, error) {
	return s.trackRepo.ListAll(ctx)
}

// UserExists reports whether the user id resolves to a stored account.
func (s *trackService) UserExists(ctx context.Context, userID string) (bool, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, fmt.Errorf("find user: %w", err)
	}
	return true, nil
}
