package onesignal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/totl-app/totl-api/internal/domain/notification"
	"github.com/totl-app/totl-api/internal/platform/resilience"
	"github.com/totl-app/totl-api/internal/usecase"
)

func TestClient_Send_BuildsProviderRequest(t *testing.T) {
	t.Parallel()

	var seen createNotificationRequest
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&seen); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"n-1","recipients":2}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		AppID:   "app-1",
		APIKey:  "key-1",
	})

	receipt, err := client.Send(context.Background(), notification.Dispatch{
		NotificationKey: "goal",
		EventID:         "goal:555:j_smith:23:ontrack",
		UserIDs:         []string{"u1", "u2"},
		Title:           "Goal!",
		Body:            "J. Smith 23'",
		Data:            map[string]string{"gameweek": "1"},
		GroupingKey:     "555",
	})
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if receipt.Accepted != 2 || receipt.Failed != 0 {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}

	if auth != "Basic key-1" {
		t.Fatalf("unexpected auth header %q", auth)
	}
	if seen.AppID != "app-1" || seen.ExternalID != "goal:555:j_smith:23:ontrack" {
		t.Fatalf("unexpected request identity: %+v", seen)
	}
	if len(seen.IncludeExternalUserIDs) != 2 || seen.Headings["en"] != "Goal!" {
		t.Fatalf("unexpected request payload: %+v", seen)
	}
	if seen.ThreadID != "555" || seen.AndroidGroup != "555" {
		t.Fatalf("unexpected grouping: %+v", seen)
	}
}

func TestClient_Send_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"id":"n-1","recipients":1}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		AppID:      "app-1",
		APIKey:     "key-1",
		MaxRetries: 1,
	})

	receipt, err := client.Send(context.Background(), notification.Dispatch{
		EventID: "ft:555:correct",
		UserIDs: []string{"u1"},
		Title:   "Full-time",
	})
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if calls.Load() != 2 || receipt.Accepted != 1 {
		t.Fatalf("expected one retry, calls=%d receipt=%+v", calls.Load(), receipt)
	}
}

func TestClient_Send_DoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":["invalid app_id"]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		AppID:      "app-1",
		APIKey:     "key-1",
		MaxRetries: 3,
	})

	_, err := client.Send(context.Background(), notification.Dispatch{
		EventID: "halftime:1",
		UserIDs: []string{"u1"},
	})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if calls.Load() != 1 {
		t.Fatalf("client errors must not retry, calls=%d", calls.Load())
	}
}

func TestClient_Send_RequiresRecipients(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{AppID: "app-1", APIKey: "key-1"})

	_, err := client.Send(context.Background(), notification.Dispatch{EventID: "ft:1"})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClient_Send_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		AppID:   "app-1",
		APIKey:  "key-1",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
		},
	})

	dispatch := notification.Dispatch{EventID: "ft:1", UserIDs: []string{"u1"}}
	if _, err := client.Send(context.Background(), dispatch); err == nil {
		t.Fatal("expected transport failure")
	}
	if _, err := client.Send(context.Background(), dispatch); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected open circuit, got %v", err)
	}
}
