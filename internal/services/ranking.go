package services

import (
	"math"
	"sort"

	"github.com/tbourn/go-movie-collection/internal/domain"
)

// Rank orders movies by rating descending and fills Ranking with the 1-based
// position. A movie without a rating sorts as negative infinity, so unrated
// movies always follow every rated one. Ties keep their input order.
//
// The input slice is sorted in place and returned.
func Rank(movies []domain.Movie) []domain.Movie {
	sort.SliceStable(movies, func(i, j int) bool {
		return ratingKey(movies[i]) > ratingKey(movies[j])
	})
	for i := range movies {
		movies[i].Ranking = i + 1
	}
	return movies
}

func ratingKey(m domain.Movie) float64 {
	if m.Rating == nil || math.IsNaN(*m.Rating) {
		return math.Inf(-1)
	}
	return *m.Rating
}
