// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package upload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	name := Filename("anime-screenshot", "jpg")

	assert.True(t, strings.HasPrefix(name, "anime-screenshot-"))
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	// prefix-timestamp-random.ext
	parts := strings.Split(strings.TrimSuffix(name, ".jpg"), "-")
	require.Len(t, parts, 4)
	assert.NotEmpty(t, parts[3])
}

func TestFilenameUnique(t *testing.T) {
	first := Filename("manga-cover", "png")
	second := Filename("manga-cover", "png")

	assert.NotEqual(t, first, second)
}

func TestExtMatches(t *testing.T) {
	assert.True(t, extMatches("jpg", "jpg"))
	assert.True(t, extMatches("jpeg", "jpg"))
	assert.True(t, extMatches("jpg", "jpeg"))
	assert.False(t, extMatches("png", "jpg"))
}

func TestNormalizeExt(t *testing.T) {
	assert.Equal(t, "jpg", normalizeExt("Poster.JPG"))
	assert.Equal(t, "png", normalizeExt("cover.png"))
	assert.Equal(t, "", normalizeExt("no-extension"))
}
