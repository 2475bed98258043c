// Package repo implements the data persistence layer for the movie collection,
// backed by GORM. This file provides CRUD helpers for the Movie model.
package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-movie-collection/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicateTitle is returned when inserting a movie whose title is already
// in the collection.
var ErrDuplicateTitle = errors.New("duplicate title")

// ListMovies returns every stored movie ordered by id. Ranking is left unset;
// callers compute it.
func ListMovies(ctx context.Context, db *gorm.DB) ([]domain.Movie, error) {
	var out []domain.Movie
	err := db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

// GetMovie fetches a single movie by id or returns ErrNotFound.
func GetMovie(ctx context.Context, db *gorm.DB, id uint) (*domain.Movie, error) {
	var m domain.Movie
	if err := db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMovie inserts m and fills in its generated id and timestamps.
// A title collision yields ErrDuplicateTitle and leaves the table untouched.
func CreateMovie(ctx context.Context, db *gorm.DB, m *domain.Movie) error {
	m.ID = 0
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateTitle
		}
		return err
	}
	return nil
}

// UpdateMovieReview overwrites both the rating and the review of a movie.
// A nil rating or review clears the stored value.
func UpdateMovieReview(ctx context.Context, db *gorm.DB, id uint, rating *float64, review *string) error {
	res := db.WithContext(ctx).
		Model(&domain.Movie{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"rating": rating,
			"review": review,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMovie removes a movie by id together with the idempotency records that
// point at it. Returns ErrNotFound if nothing was deleted.
func DeleteMovie(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&domain.Movie{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		_, err := DeleteIdempotencyByMovie(ctx, tx, id)
		return err
	})
}

// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key value")
}
