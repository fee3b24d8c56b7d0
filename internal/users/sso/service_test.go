// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package sso

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlebrun/otaclub/internal/platform/apperr"
	"github.com/mlebrun/otaclub/internal/platform/sec"
	"github.com/mlebrun/otaclub/internal/users/auth"
)

const testSecret = "sso-shared-secret"

type fakeAuthenticator struct {
	member *auth.Member
}

func (f *fakeAuthenticator) Login(_ context.Context, input auth.LoginInput) (*auth.Session, error) {
	if f.member == nil || input.Username != f.member.MemberName || input.Password != "sekret" {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	return &auth.Session{Token: "tok", User: f.member}, nil
}

func signedRequest(t *testing.T, nonce, returnURL string) (string, string) {
	t.Helper()
	signer := sec.NewSSOSigner(testSecret)
	fields := url.Values{}
	fields.Set("nonce", nonce)
	fields.Set("return_sso_url", returnURL)
	return signer.EncodePayload(fields)
}

func newTestService(member *auth.Member) *Service {
	return NewService(
		sec.NewSSOSigner(testSecret),
		&fakeAuthenticator{member: member},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestDecodeRequest(t *testing.T) {
	payload, sig := signedRequest(t, "abc123", "https://forum.example.org/session/sso_login")

	request, err := newTestService(nil).DecodeRequest(payload, sig)
	require.NoError(t, err)
	assert.Equal(t, "abc123", request.Nonce)
	assert.Equal(t, "https://forum.example.org/session/sso_login", request.ReturnURL)
}

func TestDecodeRequest_BitFlip(t *testing.T) {
	payload, sig := signedRequest(t, "abc123", "https://forum.example.org/session/sso_login")
	service := newTestService(nil)

	// Flip one hex digit of the signature.
	flipped := []byte(sig)
	if flipped[0] == 'a' {
		flipped[0] = 'b'
	} else {
		flipped[0] = 'a'
	}
	_, err := service.DecodeRequest(payload, string(flipped))
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// Tampered payload with the original signature fails too.
	_, err = service.DecodeRequest(payload+"AA", sig)
	require.Error(t, err)
}

func TestDecodeRequest_MissingNonce(t *testing.T) {
	signer := sec.NewSSOSigner(testSecret)
	fields := url.Values{}
	fields.Set("return_sso_url", "https://forum.example.org/session/sso_login")
	payload, sig := signer.EncodePayload(fields)

	_, err := newTestService(nil).DecodeRequest(payload, sig)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestAuthenticate(t *testing.T) {
	member := &auth.Member{
		IDMember:     42,
		MemberName:   "kaori",
		EmailAddress: "kaori@example.org",
		IDGroup:      auth.AdminGroupID,
	}
	member.ComputeIsAdmin()
	service := newTestService(member)

	payload, sig := signedRequest(t, "nonce-1", "https://forum.example.org/session/sso_login")
	result, err := service.Authenticate(context.Background(), AuthenticateInput{
		SSO:      payload,
		Sig:      sig,
		Username: "kaori",
		Password: "sekret",
	})
	require.NoError(t, err)

	redirect, err := url.Parse(result.RedirectURL)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.RedirectURL, "https://forum.example.org/session/sso_login?"))

	// The response payload must verify under the shared secret and carry the
	// member's identity back to Discourse.
	signer := sec.NewSSOSigner(testSecret)
	fields, err := signer.DecodePayload(redirect.Query().Get("sso"), redirect.Query().Get("sig"))
	require.NoError(t, err)
	assert.Equal(t, "nonce-1", fields.Get("nonce"))
	assert.Equal(t, "42", fields.Get("external_id"))
	assert.Equal(t, "kaori@example.org", fields.Get("email"))
	assert.Equal(t, "kaori", fields.Get("username"))
	assert.Equal(t, "true", fields.Get("admin"))
	assert.Equal(t, "true", fields.Get("moderator"))
}

func TestAuthenticate_BadCredentials(t *testing.T) {
	member := &auth.Member{IDMember: 42, MemberName: "kaori", EmailAddress: "kaori@example.org"}
	service := newTestService(member)

	payload, sig := signedRequest(t, "nonce-1", "https://forum.example.org/session/sso_login")
	_, err := service.Authenticate(context.Background(), AuthenticateInput{
		SSO:      payload,
		Sig:      sig,
		Username: "kaori",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}
