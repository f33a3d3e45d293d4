package ui

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agisilaos/skydesk/internal/api"
	"github.com/agisilaos/skydesk/internal/config"
	"github.com/agisilaos/skydesk/internal/session"
	"github.com/agisilaos/skydesk/internal/state"
)

type tab int

const (
	tabOverview tab = iota
	tabLocations
	tabAircraft
	tabFlights
	tabBookings
	tabNews
	tabCount
)

var tabNames = [tabCount]string{"Overview", "Locations", "Aircraft", "Flights", "Bookings", "News"}

// App is the root model: the login gate, the tab bar and the shared
// transient feedback banner. A 401 from any screen drops the whole console
// back to the login gate.
type App struct {
	client   *api.Client
	sess     *session.Session
	cfg      config.Config
	styles   Styles
	feedback *state.Feedback

	authed bool
	active tab
	width  int
	height int

	login     LoginModel
	overview  OverviewModel
	locations LocationsModel
	aircraft  AircraftModel
	flights   FlightsModel
	bookings  BookingsModel
	news      NewsModel
}

func NewApp(client *api.Client, sess *session.Session, cfg config.Config) App {
	theme := sess.Theme()
	if theme == "" {
		theme = cfg.Theme
	}
	styles := NewStyles(theme)
	return App{
		client:    client,
		sess:      sess,
		cfg:       cfg,
		styles:    styles,
		feedback:  state.NewFeedback(time.Duration(cfg.FeedbackTTLSec) * time.Second),
		authed:    sess.LoggedIn() && sess.IsAdmin(),
		login:     NewLoginModel(client, styles),
		overview:  NewOverviewModel(client, styles),
		locations: NewLocationsModel(client, styles, cfg.PageSize),
		aircraft:  NewAircraftModel(client, styles, cfg.PageSize),
		flights:   NewFlightsModel(client, styles, cfg.PageSize),
		bookings:  NewBookingsModel(client, styles, cfg.PageSize),
		news:      NewNewsModel(client, styles, cfg.PageSize),
	}
}

func (a App) Init() tea.Cmd {
	if !a.authed {
		return nil
	}
	return a.initScreens()
}

func (a App) initScreens() tea.Cmd {
	return tea.Batch(
		a.overview.Init(),
		a.locations.Init(),
		a.aircraft.Init(),
		a.flights.Init(),
		a.bookings.Init(),
		a.news.Init(),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.forwardAll(msg)

	case notifyMsg:
		seq := a.feedback.Show(msg.severity, msg.message, time.Now())
		return a, tea.Tick(a.feedback.TTL(), func(time.Time) tea.Msg {
			return feedbackExpiredMsg{seq: seq}
		})

	case feedbackExpiredMsg:
		a.feedback.Expire(msg.seq)
		return a, nil

	case loginOKMsg:
		if session.RoleFromToken(msg.token) != session.AdminRole {
			var cmd tea.Cmd
			a.login, cmd = a.login.Update(msg)
			return a, cmd
		}
		if err := a.sess.Login(msg.token); err != nil {
			a.login.Reset(err.Error())
			return a, nil
		}
		a.authed = true
		a.active = tabOverview
		return a, a.initScreens()

	case errMsg:
		if errors.Is(msg.err, api.ErrUnauthorized) {
			a.authed = false
			a.login.Reset(msg.err.Error())
			a.feedback.Dismiss()
			// Release whatever the dead session left in flight, or a dialog
			// stuck in submitting would swallow every key after re-login.
			return a.forwardAll(sessionExpiredMsg{})
		}
		return a.forwardAll(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if !a.authed {
			var cmd tea.Cmd
			a.login, cmd = a.login.Update(msg)
			return a, cmd
		}
		if !a.capturing() {
			switch {
			case isKey(msg, "q"):
				return a, tea.Quit
			case isKey(msg, "1", "2", "3", "4", "5", "6"):
				a.active = tab(int(msg.Runes[0] - '1'))
				return a, nil
			case isKey(msg, "tab"):
				a.active = (a.active + 1) % tabCount
				return a, nil
			case isKey(msg, "shift+tab"):
				a.active = (a.active + tabCount - 1) % tabCount
				return a, nil
			case isKey(msg, "t"):
				return a.cycleTheme(), nil
			case isKey(msg, "ctrl+l"):
				if err := a.sess.Logout(); err == nil {
					a.authed = false
					a.login.Reset("")
				}
				return a, nil
			}
		}
		return a.forwardActive(msg)
	}

	return a.forwardAll(msg)
}

func (a App) capturing() bool {
	switch a.active {
	case tabLocations:
		return a.locations.Capturing()
	case tabAircraft:
		return a.aircraft.Capturing()
	case tabFlights:
		return a.flights.Capturing()
	case tabBookings:
		return a.bookings.Capturing()
	case tabNews:
		return a.news.Capturing()
	}
	return false
}

// forwardAll hands non-key messages to every screen; each reacts only to its
// own message types and scope.
func (a App) forwardAll(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.login, cmd = a.login.Update(msg)
	cmds = append(cmds, cmd)
	a.overview, cmd = a.overview.Update(msg)
	cmds = append(cmds, cmd)
	a.locations, cmd = a.locations.Update(msg)
	cmds = append(cmds, cmd)
	a.aircraft, cmd = a.aircraft.Update(msg)
	cmds = append(cmds, cmd)
	a.flights, cmd = a.flights.Update(msg)
	cmds = append(cmds, cmd)
	a.bookings, cmd = a.bookings.Update(msg)
	cmds = append(cmds, cmd)
	a.news, cmd = a.news.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a App) forwardActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case tabOverview:
		a.overview, cmd = a.overview.Update(msg)
	case tabLocations:
		a.locations, cmd = a.locations.Update(msg)
	case tabAircraft:
		a.aircraft, cmd = a.aircraft.Update(msg)
	case tabFlights:
		a.flights, cmd = a.flights.Update(msg)
	case tabBookings:
		a.bookings, cmd = a.bookings.Update(msg)
	case tabNews:
		a.news, cmd = a.news.Update(msg)
	}
	return a, cmd
}

// cycleTheme steps through the accent palette and persists the choice in the
// session state file.
func (a App) cycleTheme() App {
	next := cycleString(ThemeNames, a.styles.Theme, 1)
	_ = a.sess.SetTheme(next)
	a.styles = NewStyles(next)
	a.login.styles = a.styles
	a.overview.styles = a.styles
	a.locations.styles = a.styles
	a.aircraft.styles = a.styles
	a.flights.styles = a.styles
	a.bookings.styles = a.styles
	a.news.styles = a.styles
	return a
}

func (a App) View() string {
	if !a.authed {
		return "\n" + a.login.View() + "\n"
	}
	var b strings.Builder
	b.WriteString("\n ")
	for i := tab(0); i < tabCount; i++ {
		style := a.styles.Tab
		if i == a.active {
			style = a.styles.TabOn
		}
		b.WriteString(style.Render(tabNames[i]))
	}
	b.WriteString("\n\n")
	switch a.active {
	case tabOverview:
		b.WriteString(a.overview.View())
	case tabLocations:
		b.WriteString(a.locations.View())
	case tabAircraft:
		b.WriteString(a.aircraft.View())
	case tabFlights:
		b.WriteString(a.flights.View())
	case tabBookings:
		b.WriteString(a.bookings.View())
	case tabNews:
		b.WriteString(a.news.View())
	}
	if msg, severity, ok := a.feedback.Current(); ok {
		style := a.styles.Success
		if severity == state.SeverityError {
			style = a.styles.Error
		}
		b.WriteString("\n\n " + style.Render(msg))
	}
	b.WriteString("\n\n " + a.styles.Muted.Render("1-6 tabs  t theme  ctrl+l logout  q quit"))
	b.WriteString("\n")
	return b.String()
}
