// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mlebrun/otaclub/internal/platform/ctxutil"
	"github.com/mlebrun/otaclub/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies logger injection with a safe default fallback.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()

	// Without injection the default logger is returned, never nil.
	assert.NotNil(t, ctxutil.GetLogger(ctx))

	custom := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx = ctxutil.WithLogger(ctx, custom)
	assert.Same(t, custom, ctxutil.GetLogger(ctx))
}

/*
TestContext_AuthUser verifies auth claims injection and anonymous fallback.
*/
func TestContext_AuthUser(t *testing.T) {
	ctx := context.Background()

	// Anonymous context yields nil claims.
	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	claims := &sec.AuthClaims{UserID: 7, Username: "alice123", IsAdmin: true}
	ctx = ctxutil.WithAuthUser(ctx, claims)

	got := ctxutil.GetAuthUser(ctx)
	assert.Equal(t, int64(7), got.UserID)
	assert.True(t, got.IsAdmin)
}
