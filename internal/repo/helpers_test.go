package repo

import (
	"fmt"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-movie-collection/internal/domain"
)

// newTestDB opens a unique in-memory database per test to avoid schema
// leakage across tests. Models passed in are auto-migrated.
func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func seedMovie(t *testing.T, db *gorm.DB, title string, rating *float64) *domain.Movie {
	t.Helper()
	m := &domain.Movie{
		Title:       title,
		Year:        2001,
		Description: "about " + title,
		Rating:      rating,
		ImgURL:      "https://img.example/" + title + ".jpg",
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed movie %q: %v", title, err)
	}
	return m
}

func ptrF(v float64) *float64 { return &v }
func ptrS(v string) *string   { return &v }
