// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFicheKey(t *testing.T) {
	tests := []struct {
		key   string
		valid bool
	}{
		{"anime123", true},
		{"manga1", true},
		{"anime0", false},
		{"anime", false},
		{"film123", false},
		{"anime12a", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			key, err := ParseFicheKey(tc.key)
			if tc.valid {
				require.NoError(t, err)
				assert.Equal(t, tc.key, key)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestFicheKey(t *testing.T) {
	assert.Equal(t, "anime42", FicheKey(TypeAnime, 42))
	assert.Equal(t, "manga7", FicheKey(TypeManga, 7))
}
