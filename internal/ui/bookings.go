package ui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agisilaos/skydesk/internal/api"
	"github.com/agisilaos/skydesk/internal/model"
	"github.com/agisilaos/skydesk/internal/state"
	"github.com/agisilaos/skydesk/internal/ui/components"
)

type bookingsLoadedMsg struct {
	seq   int
	items []model.Booking
}
type bookingActionDoneMsg struct {
	id     int64
	action string
}
type cancelledPurgedMsg struct{}

const purgeKey = "purge-cancelled"

// BookingsModel drives the bookings screen. Bookings are created by
// passengers elsewhere; here they are confirmed, cancelled or purged.
// Status transitions reload the whole list so server-computed fields stay
// truthful.
type BookingsModel struct {
	client  *api.Client
	styles  Styles
	list    *state.Collection[model.Booking]
	rows    *components.List
	actions *state.RowActions
	confirm state.Confirm

	loadSeq   int
	searching bool
	searchBuf string
	width     int
	detail    bool
}

func NewBookingsModel(client *api.Client, styles Styles, pageSize int) BookingsModel {
	return BookingsModel{
		client:  client,
		styles:  styles,
		list:    state.NewBookings(pageSize),
		rows:    components.NewList(pageSize),
		actions: state.NewRowActions(),
	}
}

func (m BookingsModel) Init() tea.Cmd {
	m.list.Loading = true
	return m.load()
}

func (m *BookingsModel) load() tea.Cmd {
	m.loadSeq++
	seq := m.loadSeq
	client := m.client
	return func() tea.Msg {
		items, err := client.Bookings()
		if err != nil {
			return errMsg{scope: "bookings", err: err}
		}
		return bookingsLoadedMsg{seq: seq, items: items}
	}
}

func (m BookingsModel) Update(msg tea.Msg) (BookingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case bookingsLoadedMsg:
		if msg.seq < m.loadSeq {
			return m, nil
		}
		m.loadSeq = msg.seq
		m.list.Loading = false
		m.list.Replace(msg.items)
		m.syncRows()
		return m, nil

	case bookingActionDoneMsg:
		m.actions.Finish(strconv.FormatInt(msg.id, 10))
		m.list.Loading = true
		verb := "confirmed"
		if msg.action == "cancel" {
			verb = "cancelled"
		}
		return m, tea.Batch(
			notify(state.SeveritySuccess, fmt.Sprintf("Booking %s", verb)),
			m.load(),
		)

	case cancelledPurgedMsg:
		m.confirm.Done()
		m.list.Loading = true
		return m, tea.Batch(
			notify(state.SeveritySuccess, "Cancelled bookings deleted"),
			m.load(),
		)

	case errMsg:
		if msg.scope != "bookings" {
			return m, nil
		}
		if m.confirm.Busy() {
			m.confirm.Done()
			return m, notify(state.SeverityError, msg.err.Error())
		}
		if m.actions.Any() {
			if id, ok := msg.rowID(); ok {
				m.actions.Finish(id)
			}
			return m, notify(state.SeverityError, msg.err.Error())
		}
		if m.list.Loading {
			m.list.Loading = false
			m.list.Err = msg.err
			return m, nil
		}
		return m, notify(state.SeverityError, msg.err.Error())

	case sessionExpiredMsg:
		m.confirm.Done()
		m.actions.Clear()
		m.syncRows()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.confirm.Pending():
			return m.handleConfirmKeys(msg)
		case m.detail:
			if isBack(msg) || isEnter(msg) {
				m.detail = false
			}
			return m, nil
		case m.searching:
			return m.handleSearchKeys(msg)
		default:
			return m.handleListKeys(msg)
		}
	}
	return m, nil
}

func (m *BookingsModel) syncRows() {
	items := m.list.PageItems()
	labels := make([]string, len(items))
	for i, b := range items {
		status := b.Status
		if m.actions.Busy(strconv.FormatInt(b.BookingID, 10)) {
			status = "…" + m.actions.Action(strconv.FormatInt(b.BookingID, 10))
		}
		labels[i] = fmt.Sprintf("%-10s %-20s %-8s %s → %s  %-10s",
			b.BookingNumber, b.PassengerName, b.FlightNumber, b.OriginCode, b.DestinationCode, status)
	}
	m.rows.SetItems(labels)
}

func (m BookingsModel) handleListKeys(msg tea.KeyMsg) (BookingsModel, tea.Cmd) {
	switch {
	case isDown(msg):
		m.rows.Down()
	case isUp(msg):
		m.rows.Up()
	case isKey(msg, "/"):
		m.searching = true
		m.searchBuf = m.list.Term()
	case isKey(msg, "left", "h"):
		m.list.SetPage(m.list.Page() - 1)
		m.syncRows()
	case isKey(msg, "right", "l"):
		m.list.SetPage(m.list.Page() + 1)
		m.syncRows()
	case isEnter(msg):
		if _, ok := m.selected(); ok {
			m.detail = true
		}
	case isKey(msg, "c"):
		return m.startRowAction("confirm")
	case isKey(msg, "x"):
		return m.startRowAction("cancel")
	case isKey(msg, "p"):
		m.confirm.Ask(purgeKey, "Delete all cancelled bookings?")
	case isKey(msg, "r"):
		m.list.Loading = true
		return m, m.load()
	}
	return m, nil
}

// startRowAction fires a confirm/cancel for the selected PENDING booking.
// Busy state is scoped to that row; other rows stay actionable.
func (m BookingsModel) startRowAction(action string) (BookingsModel, tea.Cmd) {
	b, ok := m.selected()
	if !ok || b.Status != model.BookingPending {
		return m, nil
	}
	id := strconv.FormatInt(b.BookingID, 10)
	if !m.actions.Start(id, action) {
		return m, nil
	}
	m.syncRows()
	client := m.client
	bookingID := b.BookingID
	return m, func() tea.Msg {
		var err error
		if action == "confirm" {
			err = client.ConfirmBooking(bookingID)
		} else {
			err = client.CancelBooking(bookingID)
		}
		if err != nil {
			return errMsg{scope: "bookings", row: id, err: err}
		}
		return bookingActionDoneMsg{id: bookingID, action: action}
	}
}

func (m BookingsModel) selected() (model.Booking, bool) {
	items := m.list.PageItems()
	idx := m.rows.Cursor()
	if idx < 0 || idx >= len(items) {
		return model.Booking{}, false
	}
	return items[idx], true
}

func (m BookingsModel) handleSearchKeys(msg tea.KeyMsg) (BookingsModel, tea.Cmd) {
	switch {
	case isEnter(msg), isBack(msg):
		m.searching = false
		if isBack(msg) {
			m.searchBuf = m.list.Term()
			return m, nil
		}
		m.list.Search(m.searchBuf)
		m.syncRows()
	default:
		if buf, ok := editBuffer(m.searchBuf, msg); ok {
			m.searchBuf = buf
		}
	}
	return m, nil
}

func (m BookingsModel) handleConfirmKeys(msg tea.KeyMsg) (BookingsModel, tea.Cmd) {
	switch {
	case isEnter(msg), isKey(msg, "y"):
		if !m.confirm.Accept() {
			return m, nil
		}
		client := m.client
		return m, func() tea.Msg {
			if err := client.DeleteCancelledBookings(); err != nil {
				return errMsg{scope: "bookings", err: err}
			}
			return cancelledPurgedMsg{}
		}
	case isBack(msg), isKey(msg, "n"):
		if !m.confirm.Busy() {
			m.confirm.Done()
		}
	}
	return m, nil
}

func (m BookingsModel) View() string {
	switch {
	case m.confirm.Pending():
		return components.Indent(components.ConfirmDialog("Confirm", m.confirm.Prompt()), 1)
	case m.detail:
		return components.Indent(m.viewDetail(), 1)
	case m.searching:
		return components.Indent(components.InputDialog("Search Bookings", m.searchBuf), 1)
	}
	return components.Indent(m.viewList(), 1)
}

func (m BookingsModel) viewList() string {
	if m.list.Loading {
		return components.Box(m.styles.Muted.Render("Loading bookings…"), m.width)
	}
	if m.list.Err != nil {
		return components.ErrorBox("Bookings", m.list.Err.Error(), m.width)
	}
	title := fmt.Sprintf("Bookings — page %d/%d", m.list.Page(), m.list.TotalPages())
	if term := m.list.Term(); term != "" {
		title += fmt.Sprintf("  (filter: %q)", term)
	}
	body := m.rows.Render(components.BoxContentWidth(m.width))
	help := m.styles.Muted.Render("enter detail  c confirm  x cancel  p purge cancelled  / search  ←/→ page  r reload")
	return components.TitledBox(title, body+"\n\n"+help, m.width)
}

func (m BookingsModel) viewDetail() string {
	b, ok := m.selected()
	if !ok {
		return components.Box("No booking selected.", m.width)
	}
	rows := []components.TableRow{
		{Label: "Booking", Value: b.BookingNumber},
		{Label: "Passenger", Value: b.PassengerName},
		{Label: "Email", Value: b.Email},
		{Label: "Phone", Value: b.PhoneNumber},
		{Label: "Flight", Value: b.FlightNumber},
		{Label: "Route", Value: fmt.Sprintf("%s (%s) → %s (%s)", b.OriginName, b.OriginCode, b.DestinationName, b.DestinationCode)},
		{Label: "Departure", Value: b.DepartureTime},
		{Label: "Arrival", Value: b.ArrivalTime},
		{Label: "Class", Value: b.TicketClass},
		{Label: "Passengers", Value: strconv.Itoa(b.TotalPeople)},
		{Label: "Price", Value: fmt.Sprintf("%.2f", b.Price)},
		{Label: "Status", Value: b.Status},
	}
	return components.Table("Booking "+b.BookingNumber, rows, m.width)
}

func (m BookingsModel) Capturing() bool {
	return m.confirm.Pending() || m.searching || m.detail
}
