// Package repo implements the data persistence layer for the movie collection,
// backed by GORM. This file provides helpers for the Idempotency model used to
// make movie creation safe to retry.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-movie-collection/internal/domain"
)

// ErrDuplicate indicates that an idempotency record already exists for the
// given (scope, key) pair.
var ErrDuplicate = errors.New("duplicate")

// GetIdempotency returns a non-expired record or ErrNotFound.
func GetIdempotency(ctx context.Context, db *gorm.DB, scope, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("scope = ? AND key = ? AND expires_at > ?", scope, key, now).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// HasLiveIdempotency reports whether (scope, key) maps to a non-expired record
// whose movie still exists.
func HasLiveIdempotency(ctx context.Context, db *gorm.DB, scope, key string, now time.Time) (bool, error) {
	if strings.TrimSpace(key) == "" {
		return false, nil
	}
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Idempotency{}).
		Joins("JOIN movies ON movies.id = idempotency.movie_id").
		Where("idempotency.scope = ? AND idempotency.key = ? AND idempotency.expires_at > ?", scope, key, now).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateIdempotency stores the outcome of a processed request. It returns
// ErrDuplicate when (scope, key) is already taken.
func CreateIdempotency(ctx context.Context, db *gorm.DB, scope, key string, movieID uint, status int, ttl time.Duration) (*domain.Idempotency, error) {
	now := time.Now().UTC()
	rec := &domain.Idempotency{
		ID:        uuid.NewString(),
		Scope:     scope,
		Key:       key,
		MovieID:   movieID,
		Status:    status,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}

// PurgeExpiredIdempotency deletes records whose ExpiresAt is at or before now
// and reports how many were removed.
func PurgeExpiredIdempotency(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&domain.Idempotency{})
	return res.RowsAffected, res.Error
}

// DeleteIdempotencyByMovie drops every record that points at movieID.
func DeleteIdempotencyByMovie(ctx context.Context, db *gorm.DB, movieID uint) (int64, error) {
	res := db.WithContext(ctx).Where("movie_id = ?", movieID).Delete(&domain.Idempotency{})
	return res.RowsAffected, res.Error
}
