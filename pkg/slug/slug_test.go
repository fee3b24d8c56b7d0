// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mlebrun/otaclub/pkg/slug"
)

/*
TestFrom covers accent removal, casing, and hyphen collapsing for nice URLs.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Cowboy Bebop", "cowboy-bebop"},
		{"accents", "Éternité & Métamorphose", "eternite-metamorphose"},
		{"punctuation", "Neon Genesis: Evangelion!", "neon-genesis-evangelion"},
		{"multi_space", "Fullmetal   Alchemist", "fullmetal-alchemist"},
		{"leading_trailing", "  .hack//SIGN  ", "hack-sign"},
		{"digits", "Ghost in the Shell 2.0", "ghost-in-the-shell-2-0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
