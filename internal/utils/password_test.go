package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Cost 4 is bcrypt's minimum; production uses >= 10 but tests only need
// the algorithm, not the work factor.
const testCost = 4

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-passw0rd", testCost)
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-passw0rd", hash)
	assert.True(t, VerifyPassword(hash, "s3cret-passw0rd"))
}

func TestVerifyPasswordRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", testCost)
	assert.NoError(t, err)
	assert.False(t, VerifyPassword(hash, "battery staple"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	h1, err := HashPassword("same input", testCost)
	assert.NoError(t, err)
	h2, err := HashPassword("same input", testCost)
	assert.NoError(t, err)
	// Different salts mean different digests; both still verify.
	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword(h1, "same input"))
	assert.True(t, VerifyPassword(h2, "same input"))
}

func TestVerifyPasswordRejectsGarbageHash(t *testing.T) {
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "anything"))
}
