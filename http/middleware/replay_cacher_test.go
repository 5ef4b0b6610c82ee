package middleware_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/http/middleware"
)

func TestReplayMap(t *testing.T) {
	// Arrange
	ctx := context.Background()
	cache := middleware.NewReplayMap()

	// Act
	_, ok := cache.Get(ctx, "")

	// Assert
	require.False(t, ok)

	// Arrange
	rec := middleware.NewReplayRecord("/test", []byte("sum"))
	rec.Status = http.StatusOK

	// Act
	cache.Set(ctx, "test-key", rec)
	actual, ok := cache.Get(ctx, "test-key")

	// Assert
	require.True(t, ok)
	require.Equal(t, rec, actual)

	// Arrange
	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	// Act
	cache.Set(cancelled, "cancelled-key", rec)
	_, setOK := cache.Get(ctx, "cancelled-key")
	_, getOK := cache.Get(cancelled, "test-key")

	// Assert
	require.False(t, setOK)
	require.False(t, getOK)
}

func TestReplayRecordGob(t *testing.T) {
	// Arrange
	rec := middleware.NewReplayRecord("/test?data=true", []byte("sum"))
	rec.Status = http.StatusAccepted
	rec.Body = bytes.NewBufferString("stored response")

	// Act
	b, err := rec.GobEncode()
	require.Nil(t, err)

	decoded := new(middleware.ReplayRecord)
	err = decoded.GobDecode(b)

	// Assert
	require.Nil(t, err)
	require.Equal(t, rec, *decoded)
}
