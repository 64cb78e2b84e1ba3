package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"
)

// TestServer_Lifecycle starts a real server on a loopback port, talks
// to it over HTTP, and shuts it down.
func TestServer_Lifecycle(t *testing.T) {
	srv := New("127.0.0.1:0", NewMetrics(), newNopLogger())

	if err := srv.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
	}()

	base := "http://" + srv.Addr()

	t.Run("Metrics endpoint round-trip", func(t *testing.T) {
		resp, err := http.Get(base + "/metrics")
		if err != nil {
			t.Fatalf("GET /metrics: %v", err)
		}
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			t.Fatalf("read body: %v", err)
		}

		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		// The scrape passes through the counting middleware, so the
		// response already reports itself.
		if !strings.Contains(string(body), "sharedvars_requests_total 1") {
			t.Error("scrape should show the request counted")
		}
		if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
			t.Errorf("X-Content-Type-Options = %q, want %q", got, "nosniff")
		}
	})

	t.Run("Health endpoint", func(t *testing.T) {
		resp, err := http.Get(base + "/healthz")
		if err != nil {
			t.Fatalf("GET /healthz: %v", err)
		}
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			t.Fatalf("read body: %v", err)
		}

		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		if string(body) != "ok\n" {
			t.Errorf("body = %q, want %q", string(body), "ok\n")
		}
	})

	t.Run("Method not allowed end to end", func(t *testing.T) {
		resp, err := http.Post(base+"/metrics", "text/plain", http.NoBody)
		if err != nil {
			t.Fatalf("POST /metrics: %v", err)
		}
		_ = resp.Body.Close()

		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusMethodNotAllowed)
		}
	})

	t.Run("Err is nil while serving", func(t *testing.T) {
		if err := srv.Err(); err != nil {
			t.Errorf("Err() = %v, want nil", err)
		}
	})
}

// TestServer_StartPortBusy verifies binding failures surface from Start
// instead of a background log line.
func TestServer_StartPortBusy(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	defer func() { _ = ln.Close() }()

	srv := New(ln.Addr().String(), NewMetrics(), newNopLogger())
	if err := srv.Start(); err == nil {
		t.Error("Start() should fail when the port is taken")
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// TestServer_AddrBeforeStart returns the configured address until a
// listener exists.
func TestServer_AddrBeforeStart(t *testing.T) {
	srv := New(":9090", NewMetrics(), newNopLogger())

	if got := srv.Addr(); got != ":9090" {
		t.Errorf("Addr() = %q, want %q", got, ":9090")
	}
}
