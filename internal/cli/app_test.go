package cli

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/agisilaos/skydesk/internal/model"
	"github.com/agisilaos/skydesk/internal/session"
)

func signedToken(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "ops",
		"role": role,
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func seedSession(t *testing.T, stateDir, role string) {
	t.Helper()
	store := session.Store{Path: filepath.Join(stateDir, "session.json")}
	if err := store.Save(session.State{Token: signedToken(t, role)}); err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	runErr := fn()
	w.Close()
	os.Stdout = old
	out, _ := io.ReadAll(r)
	return string(out), runErr
}

func TestParseGlobalRejectsUnknownFlag(t *testing.T) {
	app := NewApp("test")
	err := app.Run([]string{"--bogus", "locations"})
	if ExitCode(err) != ExitInvalidUsage {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestUnknownCommandSuggestsClosest(t *testing.T) {
	app := NewApp("test")
	err := app.Run([]string{"fligths"})
	if err == nil || !strings.Contains(err.Error(), `did you mean "flights"`) {
		t.Fatalf("expected suggestion, got %v", err)
	}
}

func TestListCommandsRequireLogin(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	app := NewApp("test")
	err := app.Run([]string{"--state-dir", t.TempDir(), "flights", "list"})
	if ExitCode(err) != ExitAuthRequired {
		t.Fatalf("expected auth required, got %v", err)
	}
}

func TestLocationsListFiltersAndPaginates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/locations/all" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]model.Location{
			{ID: 1, Code: "HAN", LocationName: "Hanoi", AirportName: "Noi Bai"},
			{ID: 2, Code: "SGN", LocationName: "Ho Chi Minh City", AirportName: "Tan Son Nhat"},
			{ID: 3, Code: "DAD", LocationName: "Da Nang", AirportName: "Da Nang International"},
		})
	}))
	defer srv.Close()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SKYDESK_API_BASE_URL", srv.URL)
	stateDir := t.TempDir()
	seedSession(t, stateDir, session.AdminRole)

	app := NewApp("test")
	out, err := captureStdout(t, func() error {
		return app.Run([]string{"--state-dir", stateDir, "--json", "locations", "list", "--search", "da nang"})
	})
	if err != nil {
		t.Fatalf("locations list: %v", err)
	}
	var page struct {
		Items []model.Location `json:"items"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal([]byte(out), &page); err != nil {
		t.Fatalf("parse output %q: %v", out, err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].Code != "DAD" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestFlightsAddRejectsInvalidFormBeforeAnyRequest(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SKYDESK_API_BASE_URL", srv.URL)
	stateDir := t.TempDir()
	seedSession(t, stateDir, session.AdminRole)

	app := NewApp("test")
	err := app.Run([]string{"--state-dir", stateDir, "flights", "add", "--number", "VN123"})
	if ExitCode(err) != ExitValidation {
		t.Fatalf("expected validation exit, got %v", err)
	}
	if requests != 0 {
		t.Fatalf("invalid form should not reach the backend, saw %d requests", requests)
	}
}

func TestPurgeCancelledRefusesWithoutForceInNoInputMode(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	stateDir := t.TempDir()
	seedSession(t, stateDir, session.AdminRole)

	app := NewApp("test")
	err := app.Run([]string{"--state-dir", stateDir, "--no-input", "bookings", "purge-cancelled"})
	if ExitCode(err) != ExitInvalidUsage || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected force refusal, got %v", err)
	}
}

func TestLoginRejectsNonAdminRole(t *testing.T) {
	token := signedToken(t, "USER")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(token))
	}))
	defer srv.Close()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SKYDESK_API_BASE_URL", srv.URL)
	stateDir := t.TempDir()

	app := NewApp("test")
	err := app.Run([]string{"--state-dir", stateDir, "login", "--username", "ops", "--password", "pw"})
	if ExitCode(err) != ExitAuthRequired {
		t.Fatalf("expected auth refusal for non-admin role, got %v", err)
	}

	store := session.Store{Path: filepath.Join(stateDir, "session.json")}
	st, loadErr := store.Load()
	if loadErr != nil {
		t.Fatalf("load session: %v", loadErr)
	}
	if st.Token != "" {
		t.Fatalf("non-admin token must not be persisted")
	}
}

func TestLoginStoresAdminToken(t *testing.T) {
	token := signedToken(t, session.AdminRole)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(token))
	}))
	defer srv.Close()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SKYDESK_API_BASE_URL", srv.URL)
	stateDir := t.TempDir()

	app := NewApp("test")
	if _, err := captureStdout(t, func() error {
		return app.Run([]string{"--state-dir", stateDir, "login", "--username", "ops", "--password", "pw"})
	}); err != nil {
		t.Fatalf("login: %v", err)
	}

	sess, err := session.Open(session.Store{Path: filepath.Join(stateDir, "session.json")})
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	if !sess.IsAdmin() {
		t.Fatalf("stored session should decode to admin role")
	}
}

func TestConfigSetGetRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	app := NewApp("test")

	if _, err := captureStdout(t, func() error {
		return app.Run([]string{"config", "set", "page_size", "25"})
	}); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := captureStdout(t, func() error {
		return app.Run([]string{"config", "get", "page_size"})
	})
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "25" {
		t.Fatalf("expected 25, got %q", out)
	}

	err = app.Run([]string{"config", "set", "page_sizee", "25"})
	if err == nil || !strings.Contains(err.Error(), `did you mean "page_size"`) {
		t.Fatalf("expected key suggestion, got %v", err)
	}
}

func TestExitCodeMapping(t *testing.T) {
	if ExitCode(nil) != ExitSuccess {
		t.Fatalf("nil should map to success")
	}
	if ExitCode(errors.New("boom")) != ExitGenericFailure {
		t.Fatalf("plain error should map to generic failure")
	}
	if ExitCode(newExitError(ExitValidation, "bad")) != ExitValidation {
		t.Fatalf("exit error should carry its code")
	}
}

func TestValidationErrorSortsFields(t *testing.T) {
	err := validationError(map[string]string{
		"locationName": "Location Name is required",
		"airportName":  "Airport Name is required",
		"code":         "Code is required",
	})
	if ExitCode(err) != ExitValidation {
		t.Fatalf("expected validation exit code, got %d", ExitCode(err))
	}
	want := "invalid input: airportName: Airport Name is required; code: Code is required; locationName: Location Name is required"
	if err.Error() != want {
		t.Fatalf("message should list fields alphabetically:\n got %q\nwant %q", err.Error(), want)
	}
}
