package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// sha256("password")
const passwordDigest = "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"

func TestAuthenticatorSHA256(t *testing.T) {
	a := NewAuthenticator("admin", passwordDigest)

	who, ok := a.Authenticate("admin", "password")
	require.True(t, ok)
	assert.Equal(t, "admin", who)

	_, ok = a.Authenticate("admin", "Password")
	assert.False(t, ok)
	_, ok = a.Authenticate("root", "password")
	assert.False(t, ok)
	_, ok = a.Authenticate("", "")
	assert.False(t, ok)
}

func TestAuthenticatorAcceptsUppercaseDigest(t *testing.T) {
	a := NewAuthenticator("admin", "5E884898DA28047151D0E56F8DC6292773603D0D6AABBDD62A11EF721D1542D8")
	_, ok := a.Authenticate("admin", "password")
	assert.True(t, ok)
}

func TestAuthenticatorBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	a := NewAuthenticator("ops", string(hash))

	_, ok := a.Authenticate("ops", "s3cret")
	assert.True(t, ok)
	_, ok = a.Authenticate("ops", "password")
	assert.False(t, ok)
}
