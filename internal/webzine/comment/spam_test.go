// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package comment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpamReason(t *testing.T) {
	tests := []struct {
		name    string
		content string
		reason  string
	}{
		{
			"clean comment",
			"Très bon article, merci pour la chronique détaillée sur cette saison.",
			"",
		},
		{
			"promo keyword near call to action",
			"FREE episodes available, just click here now",
			ReasonPromo,
		},
		{
			"promo keyword without call to action is fine",
			"Cette série est gratuite sur la plateforme officielle.",
			"",
		},
		{
			"known spam topic",
			"best online casino bonus for French players",
			ReasonTopic,
		},
		{
			"three urls",
			"Voir http://a.example http://b.example http://c.example",
			ReasonURLs,
		},
		{
			"two urls are tolerated",
			"Sources: http://a.example et http://b.example",
			"",
		},
		{
			"repeated character run",
			"trop biennnnnnnnnnnn ce film",
			ReasonCharRun,
		},
		{
			"ten-character run is tolerated",
			"Noooooooooon je ne m'y attendais pas",
			"",
		},
		{
			"mostly uppercase",
			"CECI EST LE MEILLEUR ANIME DE TOUS LES TEMPS REGARDEZ LE",
			ReasonUppercase,
		},
		{
			"short shout is tolerated",
			"WOW quel épisode",
			"",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.reason, SpamReason(tc.content))
		})
	}
}

// Same input, same verdict: the heuristic has no hidden state.
func TestSpamReasonDeterministic(t *testing.T) {
	content := "FREE episodes available, just click here now"
	first := SpamReason(content)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, SpamReason(content))
	}
}

func TestLongestRunIgnoresWhitespace(t *testing.T) {
	assert.Equal(t, 1, longestRun("a a a a a a a a a a a a"))
	assert.Equal(t, 12, longestRun("aaaaaaaaaaaa"))
	assert.Equal(t, 3, longestRun("abc aaa bbb"))
}

func TestIsSpam(t *testing.T) {
	assert.True(t, IsSpam(strings.Repeat("z", 30)))
	assert.False(t, IsSpam("Un commentaire parfaitement normal."))
}
