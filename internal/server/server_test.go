package server

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/matchpredict/matchpredict/internal/config"
)

func TestServerListenServeShutdown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	srv := New(config.ServerConfig{
		Port:            "0",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}, logger, handler)

	if err := srv.Listen(); err != nil {
		t.Fatalf("Listen returned error: %v", err)
	}
	if strings.HasSuffix(srv.Addr(), ":0") {
		t.Fatalf("expected an ephemeral port to be assigned, got %q", srv.Addr())
	}

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()

	resp, err := http.Get("http://" + srv.Addr() + "/")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTeapot {
		t.Errorf("expected status %d, got %d", http.StatusTeapot, resp.StatusCode)
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown returned error: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned error after shutdown: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after shutdown")
	}
}

func TestServeWithoutListen(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(config.ServerConfig{Port: "0"}, logger, http.NotFoundHandler())

	if err := srv.Serve(); err == nil {
		t.Fatal("expected error when serving before Listen")
	}
}

func TestAnnounce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	Announce(logger, "https://abc123.tunnel.example", []Endpoint{
		{Method: http.MethodGet, Path: "/api/health", Description: "Check API health"},
		{Method: http.MethodPost, Path: "/api/predict", Description: "Predict a single match"},
	})

	out := buf.String()
	for _, want := range []string{
		"url=https://abc123.tunnel.example",
		"url=https://abc123.tunnel.example/api/health",
		"url=https://abc123.tunnel.example/api/predict",
		"method=POST",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("announcement missing %q:\n%s", want, out)
		}
	}
}
