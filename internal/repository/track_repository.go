package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"geotrack/internal/model"
)

// TrackRepository defines persistence operations for GPS tracks.
// All list queries order by timestamp ascending.
type TrackRepository interface {
	Create(ctx context.Context, track *model.GpsTrack) error
	ListByUser(ctx context.Context, userID string) ([]model.GpsTrack, error)
	ListInRange(ctx context.Context, start, end time.Time) ([]model.GpsTrack, error)
	ListInRangeForUser(ctx context.Context, start, end time.Time, userID string) ([]model.GpsTrack, error)
	ListAll(ctx context.Context) ([]model.GpsTrack, error)
}

type trackRepository struct {
	db *gorm.DB
}

// NewTrackRepository builds a GORM-backed repository.
func NewTrackRepository(db *gorm.DB) TrackRepository {
	return &trackRepository{db: db}
}

func (r *trackRepository) Create(ctx context.Context, track *model.GpsTrack) error {
	return r.db.WithContext(ctx).Create(track).Error
}

func (r *trackRepository) ListByUser(ctx context.Context, userID string) ([]model.GpsTrack, error) {
	var tracks []model.GpsTrack
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&tracks).Error
	if err != nil {
		return nil, err
	}
	return tracks, nil
}

func (r *trackRepository) ListInRange(ctx context.Context, start, end time.Time) ([]model.GpsTrack, error) {
	var tracks []model.GpsTrack
	err := r.db.WithContext(ctx).
		Where("timestamp >= ? AND timestamp <= ?", start, end).
		Order("timestamp ASC").
		Find(&tracks).Error
	if err != nil {
		return nil, err
	}
	return tracks, nil
}

func (r *trackRepository) ListInRangeForUser(ctx context.Context, start, end time.Time, userID string) ([]model.GpsTrack, error) {
	var tracks []model.GpsTrack
	err := r.db.WithContext(ctx).
		Where("timestamp >= ? AND timestamp <= ? AND user_id = ?", start, end, userID).
		Order("timestamp ASC").
		Find(&tracks).Error
	if err != nil {
		return nil, err
	}
	return tracks, nil
}

func (r *trackRepository) ListAll(ctx context.Context) ([]model.GpsTrack, error) {
	var tracks []model.GpsTrack
	if err := r.db.WithContext(ctx).Order("timestamp ASC").Find(&tracks).Error; err != nil {
		return nil, err
	}
	return tracks, nil
}
