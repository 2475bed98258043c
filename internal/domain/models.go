// Package domain defines the persistence models for the movie collection.
// These types are mapped with GORM and shared across the repository, service,
// and HTTP layers.
package domain

import "time"

// Movie is a single title in the personal collection.
//
// Fields:
//   - ID: autoincrement primary key assigned by the store; immutable.
//   - Title: unique across the collection (ux_movies_title).
//   - Year: release year taken from the catalog release date.
//   - Description: catalog overview text.
//   - Rating: optional 0–10 score with one decimal; nil until rated.
//   - Ranking: position in the ranked view. Computed on every list and never
//     persisted; do not use it as an identifier.
//   - Review: optional free-text review.
//   - ImgURL: poster URL (image host prefix + catalog poster path).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Movie struct {
	ID          uint      `json:"id"          gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title"       gorm:"type:varchar(250);not null;uniqueIndex:ux_movies_title"`
	Year        int       `json:"year"        gorm:"not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Rating      *float64  `json:"rating"`
	Ranking     int       `json:"ranking"     gorm:"-"`
	Review      *string   `json:"review"      gorm:"type:varchar(500)"`
	ImgURL      string    `json:"img_url"     gorm:"type:varchar(500);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Movie.
func (Movie) TableName() string { return "movies" }

// HasRating reports whether the movie has been rated.
func (m Movie) HasRating() bool { return m.Rating != nil }
