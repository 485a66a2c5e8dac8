package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	ginhandler "user-service/internal/adapter/gin/handler"
	"user-service/internal/config"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func TestServer_StartAndShutdown(t *testing.T) {
	log := zaptest.NewLogger(t)
	cfg := &config.Config{
		App:    config.AppConfig{Env: "test", HTTPPort: "0"},
		Logger: config.LoggerConfig{ServiceName: "user-service"},
	}

	srv := New(cfg, log, ginhandler.NewUserHandler(nil, log), okPinger{})
	assert.Equal(t, ":0", srv.HTTP.Addr)
	assert.Equal(t, 10*time.Second, srv.HTTP.WriteTimeout)

	done := make(chan error, 1)
	go func() { done <- srv.Start(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestSetupGinServer_Routes(t *testing.T) {
	log := zaptest.NewLogger(t)
	cfg := &config.Config{App: config.AppConfig{HTTPPort: "3000", Env: "production"}}

	hs := SetupGinServer(cfg, ginhandler.NewUserHandler(nil, log), okPinger{}, log)
	require.NotNil(t, hs.Handler)

	req, err := http.NewRequest(http.MethodGet, "/health", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	hs.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
