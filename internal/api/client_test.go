package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agisilaos/skydesk/internal/model"
	"github.com/agisilaos/skydesk/internal/session"
)

func testSession(t *testing.T, token string) *session.Session {
	t.Helper()
	s, err := session.Open(session.Store{Path: filepath.Join(t.TempDir(), "session.json")})
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if token != "" {
		if err := s.Login(token); err != nil {
			t.Fatalf("seed token: %v", err)
		}
	}
	return s
}

func TestBearerTokenAttachedToEveryRequest(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]model.Location{})
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(t, "tok-123"))
	if _, err := c.Locations(); err != nil {
		t.Fatalf("locations: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestUnauthorizedExpiresSessionGlobally(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sess := testSession(t, "stale-token")
	c := New(srv.URL, sess)

	_, err := c.Bookings()
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if sess.LoggedIn() {
		t.Fatalf("session should be expired after a 401")
	}
}

func TestFailuresNormalizeToRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"duplicate code"}`, http.StatusConflict)
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(t, "tok"))
	_, err := c.CreateLocation(model.Location{Code: "HAN"})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %T", err)
	}
	if reqErr.Message != "Failed to add location." {
		t.Fatalf("expected static message, got %q", reqErr.Message)
	}
	if reqErr.Status != http.StatusConflict {
		t.Fatalf("expected status captured, got %d", reqErr.Status)
	}
}

func TestGetRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode([]model.Flight{{FlightID: 9, FlightNumber: "VN123"}})
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(t, "tok"))
	c.Retries = 2
	c.Backoff = time.Millisecond

	flights, err := c.Flights()
	if err != nil {
		t.Fatalf("flights after retry: %v", err)
	}
	if len(flights) != 1 || flights[0].FlightNumber != "VN123" {
		t.Fatalf("unexpected flights: %+v", flights)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestMutationsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(t, "tok"))
	c.Retries = 3
	c.Backoff = time.Millisecond

	if err := c.ConfirmBooking(1); err == nil {
		t.Fatalf("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("mutation retried %d times", calls.Load())
	}
}

func TestLoginReturnsOpaqueTokenBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var creds model.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Username != "ops" {
			t.Errorf("unexpected credentials: %+v", creds)
		}
		_, _ = w.Write([]byte("token-abc\n"))
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(t, ""))
	token, err := c.Login(model.Credentials{Username: "ops", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "token-abc" {
		t.Fatalf("unexpected token: %q", token)
	}
}

func TestDeleteCancelledBookingsIsIdempotent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(t, "tok"))
	if err := c.DeleteCancelledBookings(); err != nil {
		t.Fatalf("first purge: %v", err)
	}
	if err := c.DeleteCancelledBookings(); err != nil {
		t.Fatalf("repeat purge should succeed: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestEmptySuccessBodyIsAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(t, "tok"))
	if err := c.DeleteFlight(4); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
