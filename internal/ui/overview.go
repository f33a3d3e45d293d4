package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agisilaos/skydesk/internal/api"
	"github.com/agisilaos/skydesk/internal/model"
	"github.com/agisilaos/skydesk/internal/ui/components"
)

type overviewLoadedMsg struct {
	seq      int
	overview model.Overview
}

// OverviewModel renders the dashboard. The backend has no stats endpoint;
// the numbers are computed from the five collections fetched together.
type OverviewModel struct {
	client   *api.Client
	styles   Styles
	overview model.Overview
	loading  bool
	err      error
	loadSeq  int
	width    int
}

func NewOverviewModel(client *api.Client, styles Styles) OverviewModel {
	return OverviewModel{client: client, styles: styles}
}

func (m OverviewModel) Init() tea.Cmd {
	m.loading = true
	return m.load()
}

func (m *OverviewModel) load() tea.Cmd {
	m.loadSeq++
	seq := m.loadSeq
	client := m.client
	return func() tea.Msg {
		locations, err := client.Locations()
		if err != nil {
			return errMsg{scope: "overview", err: err}
		}
		fleet, err := client.Aircraft()
		if err != nil {
			return errMsg{scope: "overview", err: err}
		}
		flights, err := client.Flights()
		if err != nil {
			return errMsg{scope: "overview", err: err}
		}
		bookings, err := client.Bookings()
		if err != nil {
			return errMsg{scope: "overview", err: err}
		}
		news, err := client.News()
		if err != nil {
			return errMsg{scope: "overview", err: err}
		}
		return overviewLoadedMsg{
			seq:      seq,
			overview: model.BuildOverview(locations, fleet, flights, bookings, news),
		}
	}
}

func (m OverviewModel) Update(msg tea.Msg) (OverviewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewLoadedMsg:
		if msg.seq < m.loadSeq {
			return m, nil
		}
		m.loadSeq = msg.seq
		m.loading = false
		m.err = nil
		m.overview = msg.overview
		return m, nil

	case errMsg:
		if msg.scope != "overview" {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if isKey(msg, "r") {
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m OverviewModel) View() string {
	if m.loading {
		return components.Indent(components.Box(m.styles.Muted.Render("Loading overview…"), m.width), 1)
	}
	if m.err != nil {
		return components.Indent(components.ErrorBox("Overview", m.err.Error(), m.width), 1)
	}
	o := m.overview
	rows := []components.TableRow{
		{Label: "Locations", Value: fmt.Sprintf("%d", o.Locations)},
		{Label: "Aircraft", Value: fmt.Sprintf("%d", o.Aircraft)},
		{Label: "Flights", Value: fmt.Sprintf("%d (%d scheduled)", o.Flights, o.ScheduledFlights)},
		{Label: "Bookings", Value: fmt.Sprintf("%d (%d pending, %d confirmed, %d cancelled)",
			o.Bookings, o.PendingBookings, o.ConfirmedBookings, o.CancelledBookings)},
		{Label: "Revenue", Value: fmt.Sprintf("%.2f confirmed", o.ConfirmedRevenue)},
		{Label: "News", Value: fmt.Sprintf("%d (%d published)", o.News, o.PublishedNews)},
	}
	body := components.Table("Overview", rows, m.width)
	help := m.styles.Muted.Render("r reload")
	return components.Indent(body+"\n"+help, 1)
}
