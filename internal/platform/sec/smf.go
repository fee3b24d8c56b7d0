// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package sec

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// Legacy SMF (Simple Machines Forum) password verification.
//
// The member table was inherited from an SMF installation, so stored hashes
// exist in two historical formats:
//
//   - SMF 2.x: SHA1(lowercase(username) + password + salt)
//   - SMF 1.x: SHA1(lowercase(username) + password)
//
// Verification must try the 2.x scheme first and fall back to 1.x, returning
// true on the first match. The constructions are fixed by the legacy data —
// they must stay bit-compatible with rows hashed a decade ago.

// VerifySMFPassword checks a plain-text password against a legacy SMF hash.
//
// # Ordered Fallback
//
//  1. SMF 2.x salted scheme (only when a salt is stored).
//  2. SMF 1.x unsalted scheme.
//
// Digest comparison is constant-time.
func VerifySMFPassword(username, password, salt, storedHash string) bool {
	if storedHash == "" {
		return false
	}

	// 1. SMF 2.x: SHA1(lower(username) + password + salt)
	if salt != "" && smfDigestMatches(strings.ToLower(username)+password+salt, storedHash) {
		return true
	}

	// 2. SMF 1.x: SHA1(lower(username) + password)
	return smfDigestMatches(strings.ToLower(username)+password, storedHash)
}

// smfDigestMatches compares SHA1(input) to the stored hex digest in constant time.
func smfDigestMatches(input, storedHash string) bool {
	digest := sha1.Sum([]byte(input))
	computed := hex.EncodeToString(digest[:])
	stored := strings.ToLower(storedHash)

	return subtle.ConstantTimeCompare([]byte(computed), []byte(stored)) == 1
}

// SMF1Hash produces an SMF 1.x compatible hash. Exposed for test fixtures and
// the data-migration tooling; new accounts never use it.
func SMF1Hash(username, password string) string {
	digest := sha1.Sum([]byte(strings.ToLower(username) + password))
	return hex.EncodeToString(digest[:])
}

// SMF2Hash produces an SMF 2.x compatible salted hash.
func SMF2Hash(username, password, salt string) string {
	digest := sha1.Sum([]byte(strings.ToLower(username) + password + salt))
	return hex.EncodeToString(digest[:])
}
