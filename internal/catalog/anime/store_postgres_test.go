// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package anime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPredicateDefault(t *testing.T) {
	predicate, args := buildPredicate(Filter{})

	assert.Equal(t, "statut = 1", predicate)
	assert.Empty(t, args)
}

func TestBuildPredicateAllFilters(t *testing.T) {
	predicate, args := buildPredicate(Filter{
		Search: "cowboy",
		Year:   1998,
		Studio: "Sunrise",
		TagID:  7,
	})

	assert.Contains(t, predicate, "titre ILIKE $1")
	assert.Contains(t, predicate, "titre_orig ILIKE $1")
	assert.Contains(t, predicate, "annee = $2")
	assert.Contains(t, predicate, "studio ILIKE $3")
	assert.Contains(t, predicate, "tag_id = $4")
	assert.Equal(t, []any{"%cowboy%", 1998, "%Sunrise%", int64(7)}, args)
}

// The COUNT query and the data query share one predicate, so placeholders must
// be numbered without gaps regardless of which filters are set.
func TestBuildPredicateSkipsEmptyFilters(t *testing.T) {
	predicate, args := buildPredicate(Filter{Studio: "Bones"})

	assert.Contains(t, predicate, "studio ILIKE $1")
	assert.NotContains(t, predicate, "$2")
	assert.Len(t, args, 1)
}

func TestOrderByAllowList(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		expected string
	}{
		{"default", Filter{}, "titre ASC"},
		{"known field", Filter{Sort: "annee", Direction: "desc"}, "annee DESC"},
		{"unknown field falls back", Filter{Sort: "synopsis; DROP TABLE animes"}, "titre ASC"},
		{"unknown direction falls back", Filter{Sort: "nb_reviews", Direction: "sideways"}, "nb_reviews ASC"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, orderBy(tc.filter))
		})
	}
}

func TestAnimeColumnsMatchScanOrder(t *testing.T) {
	// scanAnime reads 12 destinations; the column list must agree.
	assert.Len(t, strings.Split(animeColumns(), ", "), 12)
}
