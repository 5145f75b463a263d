package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/contacts-api/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	logger := zerolog.Nop()
	return &Server{
		Config: config.Default(),
		Logger: &logger,
	}
}

func TestStart_WithoutSetup(t *testing.T) {
	s := newTestServer()

	err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

func TestSetupHTTPServer(t *testing.T) {
	s := newTestServer()
	s.Config.Server.Port = "8088"
	s.Config.Server.ReadTimeout = 5
	s.Config.Server.WriteTimeout = 7
	s.Config.Server.IdleTimeout = 11

	s.SetupHTTPServer(http.NotFoundHandler())

	require.NotNil(t, s.httpServer)
	assert.Equal(t, ":8088", s.httpServer.Addr)
	assert.Equal(t, 5*time.Second, s.httpServer.ReadTimeout)
	assert.Equal(t, 7*time.Second, s.httpServer.WriteTimeout)
	assert.Equal(t, 11*time.Second, s.httpServer.IdleTimeout)
}

func TestShutdown_NothingStarted(t *testing.T) {
	s := newTestServer()

	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestShutdown_StopsHTTPServer(t *testing.T) {
	s := newTestServer()
	s.Config.Server.Port = "0"
	s.SetupHTTPServer(http.NotFoundHandler())

	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	// Give ListenAndServe a moment to bind.
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(time.Second):
		t.Fatal("server did not stop")
	}
}
