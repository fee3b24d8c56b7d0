// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mlebrun/otaclub/internal/platform/sec"
)

/*
TestVerifySMFPassword_Unsalted checks that a hash produced by the SMF 1.x
scheme verifies even when no salt is stored.
*/
func TestVerifySMFPassword_Unsalted(t *testing.T) {
	hash := sec.SMF1Hash("Alice123", "secret1")

	assert.True(t, sec.VerifySMFPassword("Alice123", "secret1", "", hash))
	// Username casing must not matter: the scheme lowercases before hashing.
	assert.True(t, sec.VerifySMFPassword("ALICE123", "secret1", "", hash))
	assert.False(t, sec.VerifySMFPassword("Alice123", "wrong", "", hash))
}

/*
TestVerifySMFPassword_Salted checks the SMF 2.x scheme and the ordered
fallback: a salted hash must fail the unsalted path and succeed the salted one.
*/
func TestVerifySMFPassword_Salted(t *testing.T) {
	hash := sec.SMF2Hash("bob", "hunter2", "xYz1")

	assert.True(t, sec.VerifySMFPassword("bob", "hunter2", "xYz1", hash))
	// Without the salt, neither scheme can reproduce the digest.
	assert.False(t, sec.VerifySMFPassword("bob", "hunter2", "", hash))
	assert.False(t, sec.VerifySMFPassword("bob", "hunter2", "other", hash))
}

/*
TestVerifySMFPassword_FallbackOrder checks that a 1.x hash still verifies for a
member that later had a salt populated (the salted attempt fails first, then
the legacy fallback matches).
*/
func TestVerifySMFPassword_FallbackOrder(t *testing.T) {
	legacyHash := sec.SMF1Hash("carol", "passw0rd")

	assert.True(t, sec.VerifySMFPassword("carol", "passw0rd", "someSalt", legacyHash))
}

/*
TestVerifySMFPassword_EmptyHash ensures blank credentials never verify.
*/
func TestVerifySMFPassword_EmptyHash(t *testing.T) {
	assert.False(t, sec.VerifySMFPassword("dave", "anything", "", ""))
}

/*
TestIsBcryptHash distinguishes bcrypt strings from legacy hex digests.
*/
func TestIsBcryptHash(t *testing.T) {
	hash, err := sec.HashPassword("secret1")
	assert.NoError(t, err)

	assert.True(t, sec.IsBcryptHash(hash))
	assert.False(t, sec.IsBcryptHash(sec.SMF1Hash("alice", "secret1")))
}
