// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package sec_test

import (
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlebrun/otaclub/internal/platform/sec"
)

/*
TestSSOSigner_RoundTrip signs a payload and verifies it decodes back to the
same fields.
*/
func TestSSOSigner_RoundTrip(t *testing.T) {
	signer := sec.NewSSOSigner("d836444a9e4084d5b224a60c208dce14")

	fields := url.Values{}
	fields.Set("nonce", "cb68251eefb5211e58c00ff1395f0c0b")
	fields.Set("external_id", "42")
	fields.Set("email", "a@b.com")
	fields.Set("username", "alice123")

	payload, sig := signer.EncodePayload(fields)

	decoded, err := signer.DecodePayload(payload, sig)
	require.NoError(t, err)
	assert.Equal(t, "cb68251eefb5211e58c00ff1395f0c0b", decoded.Get("nonce"))
	assert.Equal(t, "42", decoded.Get("external_id"))
	assert.Equal(t, "alice123", decoded.Get("username"))
}

/*
TestSSOSigner_Verify checks that any single-byte mutation of the payload or the
signature flips the verdict to false.
*/
func TestSSOSigner_Verify(t *testing.T) {
	signer := sec.NewSSOSigner("shared-secret")

	payload := base64.StdEncoding.EncodeToString([]byte("nonce=abc&return_sso_url=https%3A%2F%2Fforum.example"))
	sig := signer.Sign(payload)

	assert.True(t, signer.Verify(payload, sig))

	// Mutate one byte of the payload.
	mutated := "A" + payload[1:]
	if mutated == payload {
		mutated = "B" + payload[1:]
	}
	assert.False(t, signer.Verify(mutated, sig))

	// Mutate one hex digit of the signature.
	flipped := []byte(sig)
	if flipped[0] == 'a' {
		flipped[0] = 'b'
	} else {
		flipped[0] = 'a'
	}
	assert.False(t, signer.Verify(payload, string(flipped)))

	// A different secret never validates.
	other := sec.NewSSOSigner("another-secret")
	assert.False(t, other.Verify(payload, sig))
}

/*
TestSSOSigner_DecodePayload_Garbage rejects non-base64 payloads even when the
signature over the raw string is correct.
*/
func TestSSOSigner_DecodePayload_Garbage(t *testing.T) {
	signer := sec.NewSSOSigner("shared-secret")

	payload := "%%%not-base64%%%"
	sig := signer.Sign(payload)

	_, err := signer.DecodePayload(payload, sig)
	assert.Error(t, err)
}
