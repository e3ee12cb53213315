package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Admin@123456")
	require.NoError(t, err)
	require.NotEqual(t, "Admin@123456", hash)

	assert.True(t, CheckPassword("Admin@123456", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("Admin@123456", "not-a-hash"))
}
