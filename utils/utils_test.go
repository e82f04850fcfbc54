package utils

import (
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigitSuffix_Length(t *testing.T) {
	for _, length := range []int{1, 4, 8, 16} {
		suffix, err := DigitSuffix(length)
		require.NoError(t, err)
		assert.Len(t, suffix, length)
	}
}

func TestDigitSuffix_OnlyDigits(t *testing.T) {
	suffix, err := DigitSuffix(32)
	require.NoError(t, err)

	for _, r := range suffix {
		assert.True(t, r >= '0' && r <= '9', "unexpected rune %q", r)
	}
}

func TestDigitSuffix_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		suffix, err := DigitSuffix(8)
		require.NoError(t, err)
		seen[suffix] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestNewRedisClient_UnreachableServerIsNotFatal(t *testing.T) {
	// nothing listens here; startup still yields a usable client so the
	// rate limiter can fail open until Redis recovers
	client := NewRedisClient("127.0.0.1:1", "", 0, 10)
	require.NotNil(t, client)
	client.Close()
}

func TestNewRedisClient_ParsesRedisURL(t *testing.T) {
	client := NewRedisClient("redis://127.0.0.1:1/2", "", 0, 10)
	require.NotNil(t, client)
	assert.Equal(t, "127.0.0.1:1", client.Options().Addr)
	assert.Equal(t, 2, client.Options().DB)
	assert.Equal(t, 10, client.Options().PoolSize)
	client.Close()
}

func TestRedisHealthCheck_OK(t *testing.T) {
	client, mockRedis := redismock.NewClientMock()
	mockRedis.ExpectPing().SetVal("PONG")

	assert.NoError(t, RedisHealthCheck(client))
}

func TestRedisHealthCheck_Failure(t *testing.T) {
	client, mockRedis := redismock.NewClientMock()
	mockRedis.ExpectPing().SetErr(errors.New("connection refused"))

	assert.Error(t, RedisHealthCheck(client))
}
