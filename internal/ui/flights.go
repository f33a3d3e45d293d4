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

type flightsLoadedMsg struct {
	seq   int
	items []model.Flight
}
type flightSavedMsg struct {
	draft   string
	created bool
	item    model.Flight
}
type flightDeletedMsg struct{ id int64 }
type flightRefsLoadedMsg struct {
	locations []model.Location
	fleet     []model.Aircraft
}

const (
	flFieldNumber = iota
	flFieldOrigin
	flFieldDestination
	flFieldAircraft
	flFieldDeparture
	flFieldArrival
	flFieldPrice
	flFieldEconomy
	flFieldBusiness
	flFieldStatus
	flFieldCount
)

var flFieldKeys = [flFieldCount]string{
	"flightNumber", "origin", "destination", "aircraft",
	"departureTime", "arrivalTime", "price", "economySeats", "businessSeats", "status",
}
var flFieldLabels = [flFieldCount]string{
	"Flight Number", "Origin", "Destination", "Aircraft",
	"Departure Time", "Arrival Time", "Price", "Economy Seats", "Business Seats", "Status",
}

const (
	fqFieldOrigin = iota
	fqFieldDestination
	fqFieldDate
	fqFieldCount
)

// FlightsModel drives the flights screen. Origin, destination and aircraft
// are chosen from loaded reference lists and travel as real IDs; their
// labels are display-only.
type FlightsModel struct {
	client  *api.Client
	styles  Styles
	list    *state.Collection[model.Flight]
	rows    *components.List
	dialog  state.Dialog[state.FlightForm]
	confirm state.Confirm

	locations []model.Location
	fleet     []model.Aircraft

	loadSeq   int
	searching bool
	searchBuf string
	focus     int
	width     int

	// server-side route query
	querying   bool
	queryFocus int
	query      [fqFieldCount]string
	queried    bool
}

func NewFlightsModel(client *api.Client, styles Styles, pageSize int) FlightsModel {
	return FlightsModel{
		client: client,
		styles: styles,
		list:   state.NewFlights(pageSize),
		rows:   components.NewList(pageSize),
	}
}

func (m FlightsModel) Init() tea.Cmd {
	m.list.Loading = true
	return tea.Batch(m.load(), m.loadRefs())
}

func (m *FlightsModel) load() tea.Cmd {
	m.loadSeq++
	seq := m.loadSeq
	client := m.client
	return func() tea.Msg {
		items, err := client.Flights()
		if err != nil {
			return errMsg{scope: "flights", err: err}
		}
		return flightsLoadedMsg{seq: seq, items: items}
	}
}

func (m *FlightsModel) search(q model.FlightQuery) tea.Cmd {
	m.loadSeq++
	seq := m.loadSeq
	client := m.client
	return func() tea.Msg {
		items, err := client.SearchFlights(q)
		if err != nil {
			return errMsg{scope: "flights", err: err}
		}
		return flightsLoadedMsg{seq: seq, items: items}
	}
}

func (m FlightsModel) loadRefs() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		locations, err := client.Locations()
		if err != nil {
			return errMsg{scope: "flights", err: err}
		}
		fleet, err := client.Aircraft()
		if err != nil {
			return errMsg{scope: "flights", err: err}
		}
		return flightRefsLoadedMsg{locations: locations, fleet: fleet}
	}
}

func (m FlightsModel) Update(msg tea.Msg) (FlightsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case flightsLoadedMsg:
		if msg.seq < m.loadSeq {
			return m, nil
		}
		m.loadSeq = msg.seq
		m.list.Loading = false
		m.list.Replace(msg.items)
		m.syncRows()
		return m, nil

	case flightRefsLoadedMsg:
		m.locations = msg.locations
		m.fleet = msg.fleet
		return m, nil

	case flightSavedMsg:
		m.list.Upsert(msg.item)
		m.syncRows()
		if msg.draft != m.dialog.Form.DraftKey {
			return m, nil
		}
		m.dialog.CompleteSubmit()
		verb := "updated"
		if msg.created {
			verb = "added"
		}
		return m, notify(state.SeveritySuccess, fmt.Sprintf("Flight %s %s", msg.item.FlightNumber, verb))

	case flightDeletedMsg:
		m.confirm.Done()
		m.list.Remove(strconv.FormatInt(msg.id, 10))
		m.syncRows()
		return m, notify(state.SeveritySuccess, "Flight deleted")

	case errMsg:
		if msg.scope != "flights" {
			return m, nil
		}
		if m.dialog.Submitting() {
			m.dialog.FailSubmit(msg.err.Error(), nil)
			return m, nil
		}
		if m.confirm.Busy() {
			m.confirm.Done()
			return m, notify(state.SeverityError, msg.err.Error())
		}
		if m.list.Loading {
			m.list.Loading = false
			m.list.Err = msg.err
			return m, nil
		}
		return m, notify(state.SeverityError, msg.err.Error())

	case sessionExpiredMsg:
		m.dialog.FailSubmit(sessionExpiredText, nil)
		m.confirm.Done()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.dialog.Open():
			return m.handleDialogKeys(msg)
		case m.confirm.Pending():
			return m.handleConfirmKeys(msg)
		case m.querying:
			return m.handleQueryKeys(msg)
		case m.searching:
			return m.handleSearchKeys(msg)
		default:
			return m.handleListKeys(msg)
		}
	}
	return m, nil
}

func (m *FlightsModel) syncRows() {
	items := m.list.PageItems()
	labels := make([]string, len(items))
	for i, f := range items {
		labels[i] = fmt.Sprintf("%-8s %s → %s  %-16s %-10s %8.2f",
			f.FlightNumber, f.Origin.Code, f.Destination.Code, f.DepartureTime, f.Status, f.Price)
	}
	m.rows.SetItems(labels)
}

func (m FlightsModel) handleListKeys(msg tea.KeyMsg) (FlightsModel, tea.Cmd) {
	switch {
	case isDown(msg):
		m.rows.Down()
	case isUp(msg):
		m.rows.Up()
	case isKey(msg, "/"):
		m.searching = true
		m.searchBuf = m.list.Term()
	case isKey(msg, "f"):
		m.querying = true
		m.queryFocus = 0
	case isKey(msg, "left", "h"):
		m.list.SetPage(m.list.Page() - 1)
		m.syncRows()
	case isKey(msg, "right", "l"):
		m.list.SetPage(m.list.Page() + 1)
		m.syncRows()
	case isKey(msg, "a"):
		m.dialog.OpenForCreate(state.NewFlightForm())
		m.focus = 0
	case isKey(msg, "e"), isEnter(msg):
		if item, ok := m.selected(); ok {
			m.dialog.OpenForEdit(state.EditFlightForm(item))
			m.focus = 0
		}
	case isKey(msg, "d", "backspace", "delete"):
		if item, ok := m.selected(); ok {
			m.confirm.Ask(strconv.FormatInt(item.FlightID, 10),
				fmt.Sprintf("Delete flight %s?", item.FlightNumber))
		}
	case isKey(msg, "r"):
		m.queried = false
		m.list.Loading = true
		return m, tea.Batch(m.load(), m.loadRefs())
	}
	return m, nil
}

func (m FlightsModel) selected() (model.Flight, bool) {
	items := m.list.PageItems()
	idx := m.rows.Cursor()
	if idx < 0 || idx >= len(items) {
		return model.Flight{}, false
	}
	return items[idx], true
}

func (m FlightsModel) handleSearchKeys(msg tea.KeyMsg) (FlightsModel, tea.Cmd) {
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

func (m FlightsModel) handleQueryKeys(msg tea.KeyMsg) (FlightsModel, tea.Cmd) {
	switch {
	case isBack(msg):
		m.querying = false
	case isKey(msg, "tab", "down"):
		m.queryFocus = (m.queryFocus + 1) % fqFieldCount
	case isKey(msg, "shift+tab", "up"):
		m.queryFocus = (m.queryFocus + fqFieldCount - 1) % fqFieldCount
	case isEnter(msg):
		m.querying = false
		m.queried = true
		m.list.Loading = true
		return m, m.search(model.FlightQuery{
			OriginCode:      m.query[fqFieldOrigin],
			DestinationCode: m.query[fqFieldDestination],
			DepartureTime:   m.query[fqFieldDate],
		})
	default:
		if buf, ok := editBuffer(m.query[m.queryFocus], msg); ok {
			m.query[m.queryFocus] = buf
		}
	}
	return m, nil
}

func (m FlightsModel) handleConfirmKeys(msg tea.KeyMsg) (FlightsModel, tea.Cmd) {
	switch {
	case isEnter(msg), isKey(msg, "y"):
		if !m.confirm.Accept() {
			return m, nil
		}
		id, _ := strconv.ParseInt(m.confirm.Key(), 10, 64)
		client := m.client
		return m, func() tea.Msg {
			if err := client.DeleteFlight(id); err != nil {
				return errMsg{scope: "flights", err: err}
			}
			return flightDeletedMsg{id: id}
		}
	case isBack(msg), isKey(msg, "n"):
		if !m.confirm.Busy() {
			m.confirm.Done()
		}
	}
	return m, nil
}

func (m FlightsModel) handleDialogKeys(msg tea.KeyMsg) (FlightsModel, tea.Cmd) {
	if m.dialog.Submitting() {
		return m, nil
	}
	switch {
	case isBack(msg):
		m.dialog.Close()
	case isKey(msg, "tab", "down"):
		m.focus = (m.focus + 1) % flFieldCount
	case isKey(msg, "shift+tab", "up"):
		m.focus = (m.focus + flFieldCount - 1) % flFieldCount
	case isEnter(msg):
		return m.submit()
	case m.isSelectorField():
		if isKey(msg, "left") {
			m.cycleSelector(-1)
		} else if isKey(msg, "right") {
			m.cycleSelector(1)
		}
	default:
		field := m.fieldPtr()
		if buf, ok := editBuffer(*field, msg); ok {
			*field = buf
			m.dialog.ClearFieldError(flFieldKeys[m.focus])
		}
	}
	return m, nil
}

func (m FlightsModel) isSelectorField() bool {
	switch m.focus {
	case flFieldOrigin, flFieldDestination, flFieldAircraft, flFieldStatus:
		return true
	}
	return false
}

// cycleSelector steps the focused reference selector through its loaded
// options, storing the chosen record's real ID.
func (m *FlightsModel) cycleSelector(dir int) {
	m.dialog.ClearFieldError(flFieldKeys[m.focus])
	switch m.focus {
	case flFieldOrigin:
		m.dialog.Form.OriginID = cycleLocation(m.locations, m.dialog.Form.OriginID, dir)
	case flFieldDestination:
		m.dialog.Form.DestinationID = cycleLocation(m.locations, m.dialog.Form.DestinationID, dir)
	case flFieldAircraft:
		m.dialog.Form.AircraftID = cycleAircraft(m.fleet, m.dialog.Form.AircraftID, dir)
	case flFieldStatus:
		m.dialog.Form.Status = cycleString(model.FlightStatuses, m.dialog.Form.Status, dir)
	}
}

func cycleLocation(options []model.Location, current int64, dir int) int64 {
	if len(options) == 0 {
		return current
	}
	idx := -1
	for i, l := range options {
		if l.ID == current {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(options)) % len(options)
	return options[idx].ID
}

func cycleAircraft(options []model.Aircraft, current int64, dir int) int64 {
	if len(options) == 0 {
		return current
	}
	idx := -1
	for i, a := range options {
		if a.ID == current {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(options)) % len(options)
	return options[idx].ID
}

func cycleString(options []string, current string, dir int) string {
	if len(options) == 0 {
		return current
	}
	idx := -1
	for i, s := range options {
		if s == current {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(options)) % len(options)
	return options[idx]
}

func (m *FlightsModel) fieldPtr() *string {
	switch m.focus {
	case flFieldNumber:
		return &m.dialog.Form.FlightNumber
	case flFieldDeparture:
		return &m.dialog.Form.DepartureTime
	case flFieldArrival:
		return &m.dialog.Form.ArrivalTime
	case flFieldPrice:
		return &m.dialog.Form.Price
	case flFieldEconomy:
		return &m.dialog.Form.EconomySeats
	default:
		return &m.dialog.Form.BusinessSeats
	}
}

func (m FlightsModel) submit() (FlightsModel, tea.Cmd) {
	if errs := m.dialog.Form.Validate(); len(errs) > 0 {
		m.dialog.Reject(errs)
		return m, nil
	}
	record, errs := m.dialog.Form.Resolve(m.locations, m.fleet)
	if len(errs) > 0 {
		m.dialog.Reject(errs)
		return m, nil
	}
	if !m.dialog.BeginSubmit() {
		return m, nil
	}
	editing := m.dialog.Form.Editing
	draft := m.dialog.Form.DraftKey
	client := m.client
	if !editing {
		return m, func() tea.Msg {
			created, err := client.CreateFlight(record)
			if err != nil {
				return errMsg{scope: "flights", err: err}
			}
			return flightSavedMsg{draft: draft, created: true, item: created}
		}
	}
	return m, func() tea.Msg {
		updated, err := client.UpdateFlight(record.FlightID, record)
		if err != nil {
			return errMsg{scope: "flights", err: err}
		}
		return flightSavedMsg{draft: draft, item: updated}
	}
}

func (m FlightsModel) locationLabel(id int64) string {
	for _, l := range m.locations {
		if l.ID == id {
			return l.Label()
		}
	}
	return ""
}

func (m FlightsModel) aircraftLabel(id int64) string {
	for _, a := range m.fleet {
		if a.ID == id {
			return a.Label()
		}
	}
	return ""
}

func (m FlightsModel) View() string {
	switch {
	case m.dialog.Open():
		return components.Indent(m.viewDialog(), 1)
	case m.confirm.Pending():
		return components.Indent(components.ConfirmDialog("Confirm", m.confirm.Prompt()), 1)
	case m.querying:
		return components.Indent(m.viewQuery(), 1)
	case m.searching:
		return components.Indent(components.InputDialog("Search Flights", m.searchBuf), 1)
	}
	return components.Indent(m.viewList(), 1)
}

func (m FlightsModel) viewList() string {
	if m.list.Loading {
		return components.Box(m.styles.Muted.Render("Loading flights…"), m.width)
	}
	if m.list.Err != nil {
		return components.ErrorBox("Flights", m.list.Err.Error(), m.width)
	}
	title := fmt.Sprintf("Flights — page %d/%d", m.list.Page(), m.list.TotalPages())
	if m.queried {
		title += "  (route query)"
	}
	if term := m.list.Term(); term != "" {
		title += fmt.Sprintf("  (filter: %q)", term)
	}
	body := m.rows.Render(components.BoxContentWidth(m.width))
	help := m.styles.Muted.Render("a add  e edit  d delete  / filter  f route search  ←/→ page  r reload")
	return components.TitledBox(title, body+"\n\n"+help, m.width)
}

func (m FlightsModel) viewQuery() string {
	labels := []string{"Origin Code", "Destination Code", "Departure Date"}
	keys := []string{"originCode", "destinationCode", "departureTime"}
	return renderForm(m.styles, "Search Flights by Route", m.width, false, "", formLines(
		m.styles, m.queryFocus, labels, m.query[:], keys, nil,
	))
}

func (m FlightsModel) viewDialog() string {
	title := "Add Flight"
	if m.dialog.Form.Editing {
		title = "Edit Flight"
	}
	f := m.dialog.Form
	values := [flFieldCount]string{
		f.FlightNumber,
		selectorValue(m.locationLabel(f.OriginID), m.focus == flFieldOrigin),
		selectorValue(m.locationLabel(f.DestinationID), m.focus == flFieldDestination),
		selectorValue(m.aircraftLabel(f.AircraftID), m.focus == flFieldAircraft),
		f.DepartureTime,
		f.ArrivalTime,
		f.Price,
		f.EconomySeats,
		f.BusinessSeats,
		selectorValue(f.Status, m.focus == flFieldStatus),
	}
	return renderForm(m.styles, title, m.width, m.dialog.Submitting(), m.dialog.ErrMsg, formLines(
		m.styles, m.focus, flFieldLabels[:], values[:], flFieldKeys[:], m.dialog.Errors,
	))
}

func (m FlightsModel) Capturing() bool {
	return m.dialog.Open() || m.confirm.Pending() || m.searching || m.querying
}
