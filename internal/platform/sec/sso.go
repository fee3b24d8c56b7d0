// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
)

// Discourse single sign-on signing.
//
// The wire format is fixed by the Discourse protocol: the payload is a set of
// application/x-www-form-urlencoded fields, base64-encoded, and the signature
// is the hex HMAC-SHA256 of that base64 string under a shared secret.

// SSOSigner signs and verifies Discourse SSO payloads.
type SSOSigner struct {
	secret []byte
}

// NewSSOSigner creates a signer for the given shared secret.
func NewSSOSigner(secret string) *SSOSigner {
	return &SSOSigner{secret: []byte(secret)}
}

// Sign returns the hex HMAC-SHA256 signature of a base64 payload string.
func (signer *SSOSigner) Sign(payload string) string {
	mac := hmac.New(sha256.New, signer.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether sig is the valid signature for payload.
//
// The comparison is constant-time ([hmac.Equal]) to avoid leaking signature
// prefixes through response timing.
func (signer *SSOSigner) Verify(payload, sig string) bool {
	expected := signer.Sign(payload)

	expectedBytes, err := hex.DecodeString(expected)
	if err != nil {
		return false
	}
	sigBytes, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}

	return hmac.Equal(expectedBytes, sigBytes)
}

// DecodePayload verifies and decodes an incoming SSO payload into its fields.
func (signer *SSOSigner) DecodePayload(payload, sig string) (url.Values, error) {
	if !signer.Verify(payload, sig) {
		return nil, fmt.Errorf("sec: invalid sso signature")
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("sec: malformed sso payload: %w", err)
	}

	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, fmt.Errorf("sec: malformed sso query: %w", err)
	}

	return values, nil
}

// EncodePayload url-encodes, base64-encodes, and signs a set of SSO fields.
//
// It returns the base64 payload and its signature, ready to be sent back to
// Discourse as `sso` and `sig` parameters.
func (signer *SSOSigner) EncodePayload(fields url.Values) (payload, sig string) {
	payload = base64.StdEncoding.EncodeToString([]byte(fields.Encode()))
	return payload, signer.Sign(payload)
}
