package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vornexz/pay/internal/auth"
)

func TestCooldownExpired(t *testing.T) {
	expired, err := auth.CooldownExpired(time.Now().Add(-2*time.Hour), "1h")
	require.NoError(t, err)
	assert.True(t, expired)

	expired, err = auth.CooldownExpired(time.Now().Add(-10*time.Minute), "1h")
	require.NoError(t, err)
	assert.False(t, expired)

	_, err = auth.CooldownExpired(time.Now(), "not-a-duration")
	assert.Error(t, err)
}
