package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	hash, err := svc.Hash("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "Secret123", hash, "hash must never equal the plaintext")
	assert.True(t, svc.Verify(hash, "Secret123"))
	assert.False(t, svc.Verify(hash, "secret123"))
	assert.False(t, svc.Verify("not-a-hash", "Secret123"))
}

func TestPasswordService_SaltedHashes(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	first, err := svc.Hash("Secret123")
	require.NoError(t, err)
	second, err := svc.Hash("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewPasswordServiceWithCost_OutOfRange(t *testing.T) {
	svc := NewPasswordServiceWithCost(1).(*PasswordServiceImpl)
	assert.Equal(t, bcrypt.DefaultCost, svc.cost)
}
