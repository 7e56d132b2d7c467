package logclient

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// captureServer records every body posted to /api/logs.
type captureServer struct {
	mu     sync.Mutex
	bodies []logEntry
	fail   bool
}

func (s *captureServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.fail {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		var entry logEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.bodies = append(s.bodies, entry)
		w.WriteHeader(http.StatusCreated)
	}
}

func (s *captureServer) received() []logEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]logEntry, len(s.bodies))
	copy(out, s.bodies)
	return out
}

func (s *captureServer) setFail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

func TestClient_SendLog_Delivers(t *testing.T) {
	capture := &captureServer{}
	server := httptest.NewServer(capture.handler())
	defer server.Close()

	client := New(server.URL, 3, slog.New(slog.DiscardHandler))
	client.SendLog(context.Background(), slog.LevelWarn, "NBP responded with status 503")

	got := capture.received()
	if len(got) != 1 {
		t.Fatalf("expected 1 delivered entry, got %d", len(got))
	}
	if got[0].Message != "NBP responded with status 503" {
		t.Errorf("unexpected message: %q", got[0].Message)
	}
	if got[0].Level != levelWarn {
		t.Errorf("expected numeric level %d, got %d", levelWarn, got[0].Level)
	}
	if got[0].LogSource != 3 {
		t.Errorf("expected logSource 3, got %d", got[0].LogSource)
	}
	if client.QueueLen() != 0 {
		t.Errorf("expected empty queue after delivery, got %d", client.QueueLen())
	}
}

func TestClient_SendLog_QueuesOnFailure(t *testing.T) {
	capture := &captureServer{}
	capture.setFail(true)
	server := httptest.NewServer(capture.handler())
	defer server.Close()

	client := New(server.URL, 1, slog.New(slog.DiscardHandler))
	client.SendLog(context.Background(), slog.LevelInfo, "first")
	client.SendLog(context.Background(), slog.LevelInfo, "second")

	if client.QueueLen() != 2 {
		t.Fatalf("expected 2 queued entries, got %d", client.QueueLen())
	}
	if len(capture.received()) != 0 {
		t.Fatal("expected nothing delivered while the service is down")
	}
}

func TestClient_SendLog_FlushesQueueBeforeNewEntry(t *testing.T) {
	capture := &captureServer{}
	capture.setFail(true)
	server := httptest.NewServer(capture.handler())
	defer server.Close()

	client := New(server.URL, 1, slog.New(slog.DiscardHandler))
	client.SendLog(context.Background(), slog.LevelInfo, "queued while down")

	capture.setFail(false)
	client.SendLog(context.Background(), slog.LevelInfo, "sent while up")

	got := capture.received()
	if len(got) != 2 {
		t.Fatalf("expected 2 delivered entries after recovery, got %d", len(got))
	}
	// Queued entries go out in order, ahead of the fresh one.
	if got[0].Message != "queued while down" || got[1].Message != "sent while up" {
		t.Errorf("unexpected delivery order: %q, %q", got[0].Message, got[1].Message)
	}
	if client.QueueLen() != 0 {
		t.Errorf("expected empty queue after flush, got %d", client.QueueLen())
	}
}

func TestNumericLevel(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  int
	}{
		{slog.LevelDebug, levelDebug},
		{slog.LevelInfo, levelInfo},
		{slog.LevelWarn, levelWarn},
		{slog.LevelError, levelError},
	}
	for _, tt := range tests {
		if got := numericLevel(tt.level); got != tt.want {
			t.Errorf("numericLevel(%v) = %d, want %d", tt.level, got, tt.want)
		}
	}
}
