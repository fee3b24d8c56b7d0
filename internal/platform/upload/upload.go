// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

/*
Package upload handles multipart image uploads for fiche media (anime
screenshots, manga covers, business logos).

Policy enforced server-side:

  - MIME type must be on the image allow-list (by declared type AND extension).
  - File size is capped at [MaxUploadSize].
  - Stored filenames are always rewritten to <prefix>-<timestamp>-<random>.<ext>
    so client-controlled names never reach the filesystem.
*/
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mlebrun/otaclub/internal/platform/apperr"
)

// MaxUploadSize is the per-file upload cap (5 MiB).
const MaxUploadSize = 5 << 20

// allowedTypes maps accepted MIME types to their canonical file extension.
var allowedTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// Saver writes validated uploads into a base directory.
type Saver struct {
	baseDir string
}

// NewSaver creates a Saver rooted at baseDir, creating it if needed.
func NewSaver(baseDir string) (*Saver, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: failed to create directory %s: %w", baseDir, err)
	}
	return &Saver{baseDir: baseDir}, nil
}

// Save validates and persists one multipart file, returning the stored filename.
//
// # Parameters
//   - file: The opened multipart file.
//   - header: Its part header (size, declared MIME type, original name).
//   - prefix: Filename prefix identifying the media kind (e.g. "anime-screenshot").
func (saver *Saver) Save(file multipart.File, header *multipart.FileHeader, prefix string) (string, error) {
	if header.Size > MaxUploadSize {
		return "", apperr.ValidationError(fmt.Sprintf("File exceeds the %d MB limit", MaxUploadSize>>20))
	}

	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", apperr.ValidationError("Unsupported file type: " + contentType)
	}

	// The declared extension must agree with the declared MIME type; a mismatch
	// is a sign of a crafted request.
	if originalExt := normalizeExt(header.Filename); originalExt != "" && !extMatches(originalExt, ext) {
		return "", apperr.ValidationError("File extension does not match its content type")
	}

	filename := Filename(prefix, ext)

	destination, err := os.Create(filepath.Join(saver.baseDir, filename))
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("upload: failed to create file: %w", err))
	}
	defer destination.Close()

	if _, err := io.Copy(destination, io.LimitReader(file, MaxUploadSize)); err != nil {
		return "", apperr.Internal(fmt.Errorf("upload: failed to write file: %w", err))
	}

	return filename, nil
}

// Filename builds a collision-free stored name: <prefix>-<timestamp>-<random>.<ext>.
func Filename(prefix, ext string) string {
	random := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("%s-%d-%s.%s", prefix, time.Now().UnixMilli(), random, ext)
}

// normalizeExt extracts a lowercase extension without the leading dot.
func normalizeExt(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// extMatches treats jpg/jpeg as equivalent; all other pairs compare exactly.
func extMatches(got, want string) bool {
	if got == want {
		return true
	}
	return (got == "jpeg" && want == "jpg") || (got == "jpg" && want == "jpeg")
}
