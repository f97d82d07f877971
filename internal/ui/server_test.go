package ui

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/cookbook/internal/testutil"
)

func TestServer_Handler(t *testing.T) {
	s, err := NewServer(Config{Title: "CookBook", Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)
	h, err := s.Handler()
	require.NoError(t, err)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/", http.StatusOK, "<title>Home - CookBook</title>"},
		{"/explore", http.StatusOK, "<title>Explore - CookBook</title>"},
		{"/profile", http.StatusOK, "<title>Profile - CookBook</title>"},
		{"/cookbooks", http.StatusOK, "<title>Cookbooks - CookBook</title>"},
		{"/notifications", http.StatusNotFound, "<title>Not Found - CookBook</title>"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestServer_Head(t *testing.T) {
	s, err := NewServer(Config{Title: "CookBook", Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)
	h, err := s.Handler()
	require.NoError(t, err)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/", http.StatusOK},
		{"/explore", http.StatusOK},
		{"/cookbooks", http.StatusOK},
		{"/notifications", http.StatusNotFound},
		{"/explore/", http.StatusMovedPermanently},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusMovedPermanently {
				assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestServer_ProdHasNoReload(t *testing.T) {
	s, err := NewServer(Config{})
	require.NoError(t, err)
	h, err := s.Handler()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/hotreload", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestLogger(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()
	s, err := NewServer(Config{Logger: logger})
	require.NoError(t, err)
	h, err := s.Handler()
	require.NoError(t, err)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	var found bool
	for _, line := range logs.Lines() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		if rec["msg"] != "request" {
			continue
		}
		found = true
		assert.Equal(t, "GET", rec["method"])
		assert.Equal(t, "/nonexistent", rec["path"])
		assert.EqualValues(t, http.StatusNotFound, rec["status"])
		assert.NotEmpty(t, rec["request_id"])
	}
	assert.True(t, found, "request line logged: %s", logs.String())
}

func TestServer_ServeAndShutdown(t *testing.T) {
	listening := make(chan string, 1)
	s, err := NewServer(Config{
		Host:            "127.0.0.1",
		Port:            0,
		ShutdownTimeout: time.Second,
		Logger:          testutil.NewTestLogger(t),
		OnListen:        func(url string) { listening <- url },
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	var base string
	select {
	case base = <-listening:
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get(base + "/explore")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	port := ln.Addr().(*net.TCPAddr).Port
	s, err := NewServer(Config{Host: "127.0.0.1", Port: port})
	require.NoError(t, err)

	err = s.Serve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestServer_WatchReloadsClients(t *testing.T) {
	dir := t.TempDir()
	css := filepath.Join(dir, "app.css")
	require.NoError(t, os.WriteFile(css, []byte("body{}"), 0o600))

	s, err := NewServer(Config{
		Dev:       true,
		Watch:     true,
		StaticDir: dir,
		Logger:    testutil.NewTestLogger(t),
	})
	require.NoError(t, err)

	updates := s.Notifier().Subscribe()
	defer s.Notifier().Unsubscribe(updates)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.watchFiles(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	// fsnotify has no readiness signal; keep touching the file until the
	// debounced ping arrives.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(css, []byte("body{color:red}"), 0o600)
		select {
		case <-updates:
			return true
		case <-time.After(2 * watchDebounce):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestServer_BadStaticDir(t *testing.T) {
	_, err := NewServer(Config{StaticDir: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load assets")
}

func TestDisplayAddr(t *testing.T) {
	assert.Equal(t, "localhost:8765", displayAddr(&net.TCPAddr{IP: net.IPv4zero, Port: 8765}))
	assert.Equal(t, "127.0.0.1:80", displayAddr(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 80}))
}
