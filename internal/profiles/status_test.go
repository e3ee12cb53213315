package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"details_pending", "under_review", "verified", "rejected", "banned", "suspended"} {
		st, err := ParseStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, string(st))
	}

	for _, s := range []string{"", "Verified", "active", "pending", "deleted"} {
		_, err := ParseStatus(s)
		assert.ErrorIs(t, err, ErrUnknownStatus, s)
	}
}

func TestDirectlySettable(t *testing.T) {
	assert.True(t, StatusDetailsPending.DirectlySettable())
	assert.True(t, StatusUnderReview.DirectlySettable())
	assert.True(t, StatusVerified.DirectlySettable())
	assert.True(t, StatusRejected.DirectlySettable())
	assert.False(t, StatusBanned.DirectlySettable())
	assert.False(t, StatusSuspended.DirectlySettable())
}

func TestRestricted(t *testing.T) {
	assert.True(t, StatusBanned.Restricted())
	assert.True(t, StatusSuspended.Restricted())
	assert.False(t, StatusVerified.Restricted())
	assert.False(t, StatusRejected.Restricted())
}

func TestParseAction(t *testing.T) {
	ban, err := ParseAction("ban")
	require.NoError(t, err)
	assert.Equal(t, StatusBanned, ban.Status())

	suspend, err := ParseAction("suspend")
	require.NoError(t, err)
	assert.Equal(t, StatusSuspended, suspend.Status())

	for _, s := range []string{"", "delete", "Ban", "unban"} {
		_, err := ParseAction(s)
		assert.ErrorIs(t, err, ErrUnknownAction, s)
	}
}
