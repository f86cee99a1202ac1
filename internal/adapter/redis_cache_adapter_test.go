package adapter

import (
	"context"
	"testing"
	"time"

	"interview-agent/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheAdapterGet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectGet("interviewagent:interview:record:id1").SetVal(`{"id": "id1"}`)

	val, err := cache.Get(context.Background(), "interviewagent:interview:record:id1")
	require.NoError(t, err)
	assert.Equal(t, `{"id": "id1"}`, val)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapterGetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectGet("missing").RedisNil()

	val, err := cache.Get(context.Background(), "missing")
	assert.Empty(t, val)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCacheAdapterSet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectSet("key", "value", 60*time.Second).SetVal("OK")

	err := cache.Set(context.Background(), "key", "value", 60*time.Second)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapterDelete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectDel("key").SetVal(1)

	assert.NoError(t, cache.Delete(context.Background(), "key"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapterPing(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectPing().SetVal("PONG")

	assert.NoError(t, cache.Ping(context.Background()))
}
