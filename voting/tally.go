// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"sort"

	"github.com/danielhkuo/movie-night/models"
)

// Score is voteCount * (totalMovies + 1 - avgRank).
// With rank 1 as the top pick, a lower average rank and more voters both raise it.
func Score(voteCount int, avgRank float64, totalMovies int) float64 {
	return float64(voteCount) * (float64(totalMovies+1) - avgRank)
}

// Tally scores every movie and orders them by descending score.
// Movies nobody ranked get a nil AvgRank and a zero score. Equal scores keep
// the order of movies, so callers should pass movies in a deterministic order.
// Votes for movies outside the list still count toward TotalVoters.
func Tally(movies []models.Movie, votes []models.Vote) models.Results {
	type aggregate struct {
		count   int
		rankSum int
	}

	voters := make(map[string]struct{})
	byMovie := make(map[string]*aggregate, len(movies))
	for _, v := range votes {
		voters[v.UserID] = struct{}{}
		agg, ok := byMovie[v.MovieID]
		if !ok {
			agg = &aggregate{}
			byMovie[v.MovieID] = agg
		}
		agg.count++
		agg.rankSum += v.Rank
	}

	totalMovies := len(movies)
	results := make([]models.MovieResult, 0, totalMovies)
	for _, m := range movies {
		result := models.MovieResult{ID: m.ID, Title: m.Title}
		if agg, ok := byMovie[m.ID]; ok && agg.count > 0 {
			avg := float64(agg.rankSum) / float64(agg.count)
			result.Votes = agg.count
			result.AvgRank = &avg
			result.Score = Score(agg.count, avg, totalMovies)
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return models.Results{
		Results:     results,
		TotalVoters: len(voters),
	}
}

// HasVoted reports whether userID owns any of votes
func HasVoted(votes []models.Vote, userID string) bool {
	if userID == "" {
		return false
	}
	for _, v := range votes {
		if v.UserID == userID {
			return true
		}
	}
	return false
}
