package ui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/agisilaos/skydesk/internal/api"
	"github.com/agisilaos/skydesk/internal/config"
	"github.com/agisilaos/skydesk/internal/model"
	"github.com/agisilaos/skydesk/internal/session"
	"github.com/agisilaos/skydesk/internal/state"
)

func testApp(t *testing.T) (App, *session.Session) {
	t.Helper()
	sess, err := session.Open(session.Store{Path: filepath.Join(t.TempDir(), "session.json")})
	require.NoError(t, err)
	cfg := config.Config{Theme: "blue", PageSize: 10, FeedbackTTLSec: 4}
	return NewApp(api.New("http://localhost:0", sess), sess, cfg), sess
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "ops",
		"role": session.AdminRole,
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func userToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "pax",
		"role": "USER",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func step(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	next, ok := m.(App)
	require.True(t, ok, "Update must return an App")
	return next
}

func key(name rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{name}}
}

func TestAppStartsAtLoginGate(t *testing.T) {
	a, _ := testApp(t)
	require.False(t, a.authed)
	require.Contains(t, a.View(), "Sign In")
	require.Nil(t, a.Init())
}

func TestAdminLoginUnlocksTabs(t *testing.T) {
	a, sess := testApp(t)
	a = step(t, a, loginOKMsg{token: adminToken(t)})
	require.True(t, a.authed)
	require.Equal(t, tabOverview, a.active)
	require.True(t, sess.LoggedIn())
	require.Contains(t, a.View(), "Locations")
}

func TestNonAdminLoginStaysGated(t *testing.T) {
	a, sess := testApp(t)
	a = step(t, a, loginOKMsg{token: userToken(t)})
	require.False(t, a.authed)
	require.False(t, sess.LoggedIn())
	require.Equal(t, "Admin access required.", a.login.errText)
}

func TestTabShortcutsSwitchScreens(t *testing.T) {
	a, _ := testApp(t)
	a = step(t, a, loginOKMsg{token: adminToken(t)})

	a = step(t, a, key('2'))
	require.Equal(t, tabLocations, a.active)

	a = step(t, a, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, tabAircraft, a.active)

	a = step(t, a, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, tabLocations, a.active)

	a = step(t, a, key('6'))
	require.Equal(t, tabNews, a.active)
	a = step(t, a, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, tabOverview, a.active)
}

func TestUnauthorizedErrorDropsToLogin(t *testing.T) {
	a, _ := testApp(t)
	a = step(t, a, loginOKMsg{token: adminToken(t)})
	require.True(t, a.authed)

	a = step(t, a, errMsg{scope: "locations", err: api.ErrUnauthorized})
	require.False(t, a.authed)
	require.Contains(t, a.View(), "Sign In")
}

func TestLogoutClearsSession(t *testing.T) {
	a, sess := testApp(t)
	a = step(t, a, loginOKMsg{token: adminToken(t)})
	require.True(t, sess.LoggedIn())

	a = step(t, a, tea.KeyMsg{Type: tea.KeyCtrlL})
	require.False(t, a.authed)
	require.False(t, sess.LoggedIn())
}

func TestFeedbackBannerShowsUntilExpired(t *testing.T) {
	a, _ := testApp(t)
	a = step(t, a, loginOKMsg{token: adminToken(t)})

	a = step(t, a, notifyMsg{severity: state.SeveritySuccess, message: "Location added."})
	require.Contains(t, a.View(), "Location added.")

	msg, _, ok := a.feedback.Current()
	require.True(t, ok)
	require.Equal(t, "Location added.", msg)
}

func TestThemeKeyCyclesAndPersists(t *testing.T) {
	a, sess := testApp(t)
	a = step(t, a, loginOKMsg{token: adminToken(t)})
	require.Equal(t, "blue", a.styles.Theme)

	a = step(t, a, key('t'))
	require.NotEqual(t, "blue", a.styles.Theme)
	require.Equal(t, a.styles.Theme, sess.Theme())
	require.Equal(t, a.styles.Theme, a.locations.styles.Theme)
}

func TestSessionExpiryReleasesInFlightDialog(t *testing.T) {
	a, _ := testApp(t)
	a = step(t, a, loginOKMsg{token: adminToken(t)})
	a = step(t, a, key('2'))
	a = step(t, a, key('a'))
	require.True(t, a.locations.dialog.Open())

	a.locations.dialog.Form.Code = "HAN"
	a.locations.dialog.Form.LocationName = "Hanoi"
	a.locations.dialog.Form.AirportName = "Noi Bai"
	a = step(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, a.locations.dialog.Submitting())

	a = step(t, a, errMsg{scope: "locations", err: api.ErrUnauthorized})
	require.False(t, a.authed)
	require.False(t, a.locations.dialog.Submitting(), "the submit died with the session")
	require.True(t, a.locations.dialog.Open())
	require.Equal(t, "HAN", a.locations.dialog.Form.Code, "inputs survive the failure")

	a = step(t, a, loginOKMsg{token: adminToken(t)})
	require.Equal(t, tabOverview, a.active)
	a = step(t, a, key('2'))
	require.Equal(t, tabLocations, a.active)

	a = step(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, a.locations.dialog.Open())
	a = step(t, a, key('1'))
	require.Equal(t, tabOverview, a.active)
}

func TestSessionExpiryReleasesRowActionsAndConfirms(t *testing.T) {
	a, _ := testApp(t)
	a = step(t, a, loginOKMsg{token: adminToken(t)})
	a.bookings.list.Replace([]model.Booking{
		{BookingID: 7, BookingNumber: "BK7", Status: model.BookingPending},
	})
	a.bookings.syncRows()
	a.active = tabBookings

	a = step(t, a, key('c'))
	require.True(t, a.bookings.actions.Busy("7"))

	a.locations.confirm.Ask("3", "Delete location?")
	require.True(t, a.locations.confirm.Accept())

	a = step(t, a, errMsg{scope: "bookings", err: api.ErrUnauthorized})
	require.False(t, a.authed)
	require.False(t, a.bookings.actions.Busy("7"))
	require.False(t, a.locations.confirm.Pending())
}

func TestStaleSaveEchoDoesNotDisturbReopenedDialog(t *testing.T) {
	sess, err := session.Open(session.Store{Path: filepath.Join(t.TempDir(), "session.json")})
	require.NoError(t, err)
	m := NewLocationsModel(api.New("http://localhost:0", sess), NewStyles("blue"), 10)

	m.dialog.OpenForCreate(state.NewLocationForm())
	m.dialog.Form.Code = "HAN"
	m.dialog.Form.LocationName = "Hanoi"
	m.dialog.Form.AirportName = "Noi Bai"
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.dialog.Submitting())
	stale := m.dialog.Form.DraftKey

	m, _ = m.Update(sessionExpiredMsg{})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.dialog.Open())

	m.dialog.OpenForCreate(state.NewLocationForm())
	m.dialog.Form.Code = "SGN"
	m.dialog.Form.LocationName = "Ho Chi Minh City"
	m.dialog.Form.AirportName = "Tan Son Nhat"
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.dialog.Submitting())
	current := m.dialog.Form.DraftKey
	require.NotEqual(t, stale, current)

	echoed := model.Location{ID: 41, Code: "HAN", LocationName: "Hanoi", AirportName: "Noi Bai"}
	m, _ = m.Update(locationSavedMsg{draft: stale, created: true, item: echoed})
	require.True(t, m.dialog.Submitting(), "a stale echo must not complete the new submit")
	saved, ok := m.list.Get("41")
	require.True(t, ok, "the echoed record still lands in the list")
	require.Equal(t, "HAN", saved.Code)

	m, _ = m.Update(locationSavedMsg{draft: current, created: true, item: model.Location{ID: 42, Code: "SGN"}})
	require.False(t, m.dialog.Open())
}

func TestCycleStringWrapsBothWays(t *testing.T) {
	options := []string{"SCHEDULED", "CANCELLED", "COMPLETED"}
	require.Equal(t, "CANCELLED", cycleString(options, "SCHEDULED", 1))
	require.Equal(t, "COMPLETED", cycleString(options, "SCHEDULED", -1))
	require.Equal(t, "SCHEDULED", cycleString(options, "COMPLETED", 1))
	require.Equal(t, "SCHEDULED", cycleString(options, "unknown", 1))
	require.Equal(t, "x", cycleString(nil, "x", 1))
}

func TestCycleLocationUsesRealIDs(t *testing.T) {
	options := []model.Location{{ID: 7}, {ID: 9}, {ID: 12}}
	require.Equal(t, int64(9), cycleLocation(options, 7, 1))
	require.Equal(t, int64(12), cycleLocation(options, 7, -1))
	require.Equal(t, int64(7), cycleLocation(options, 12, 1))
	require.Equal(t, int64(9), cycleLocation(options, 99, -1))
	require.Equal(t, int64(5), cycleLocation(nil, 5, 1))
}
