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

type locationsLoadedMsg struct {
	seq   int
	items []model.Location
}
type locationSavedMsg struct {
	draft   string
	created bool
	item    model.Location
}
type locationDeletedMsg struct{ id int64 }

const (
	locFieldCode = iota
	locFieldName
	locFieldAirport
	locFieldCount
)

var locFieldKeys = [locFieldCount]string{"code", "locationName", "airportName"}
var locFieldLabels = [locFieldCount]string{"Code", "Location Name", "Airport Name"}

// LocationsModel drives the locations screen: a searchable paginated table
// with a create/edit dialog and delete confirmation.
type LocationsModel struct {
	client  *api.Client
	styles  Styles
	list    *state.Collection[model.Location]
	rows    *components.List
	dialog  state.Dialog[state.LocationForm]
	confirm state.Confirm

	loadSeq   int
	searching bool
	searchBuf string
	focus     int
	width     int
}

func NewLocationsModel(client *api.Client, styles Styles, pageSize int) LocationsModel {
	return LocationsModel{
		client: client,
		styles: styles,
		list:   state.NewLocations(pageSize),
		rows:   components.NewList(pageSize),
	}
}

func (m LocationsModel) Init() tea.Cmd {
	m.list.Loading = true
	return m.load()
}

// load captures the next sequence number; a response stamped with an older
// one is dropped so a late reply cannot overwrite fresher data.
func (m *LocationsModel) load() tea.Cmd {
	m.loadSeq++
	seq := m.loadSeq
	client := m.client
	return func() tea.Msg {
		items, err := client.Locations()
		if err != nil {
			return errMsg{scope: "locations", err: err}
		}
		return locationsLoadedMsg{seq: seq, items: items}
	}
}

func (m LocationsModel) Update(msg tea.Msg) (LocationsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case locationsLoadedMsg:
		if msg.seq < m.loadSeq {
			return m, nil
		}
		m.loadSeq = msg.seq
		m.list.Loading = false
		m.list.Replace(msg.items)
		m.syncRows()
		return m, nil

	case locationSavedMsg:
		m.list.Upsert(msg.item)
		m.syncRows()
		// The echo carries the draft key it was submitted under; a late echo
		// from an abandoned dialog must not complete the one open now.
		if msg.draft != m.dialog.Form.DraftKey {
			return m, nil
		}
		m.dialog.CompleteSubmit()
		verb := "updated"
		if msg.created {
			verb = "added"
		}
		return m, notify(state.SeveritySuccess, fmt.Sprintf("Location %s %s", msg.item.Code, verb))

	case locationDeletedMsg:
		m.confirm.Done()
		m.list.Remove(strconv.FormatInt(msg.id, 10))
		m.syncRows()
		return m, notify(state.SeveritySuccess, "Location deleted")

	case errMsg:
		if msg.scope != "locations" {
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
		case m.searching:
			return m.handleSearchKeys(msg)
		default:
			return m.handleListKeys(msg)
		}
	}
	return m, nil
}

func (m *LocationsModel) syncRows() {
	items := m.list.PageItems()
	labels := make([]string, len(items))
	for i, l := range items {
		labels[i] = fmt.Sprintf("%-5s %-24s %s", l.Code, l.LocationName, l.AirportName)
	}
	m.rows.SetItems(labels)
}

func (m LocationsModel) handleListKeys(msg tea.KeyMsg) (LocationsModel, tea.Cmd) {
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
	case isKey(msg, "a"):
		m.dialog.OpenForCreate(state.NewLocationForm())
		m.focus = 0
	case isKey(msg, "e"), isEnter(msg):
		if item, ok := m.selected(); ok {
			m.dialog.OpenForEdit(state.EditLocationForm(item))
			m.focus = 0
		}
	case isKey(msg, "d", "backspace", "delete"):
		if item, ok := m.selected(); ok {
			m.confirm.Ask(strconv.FormatInt(item.ID, 10),
				fmt.Sprintf("Delete location %s (%s)?", item.LocationName, item.Code))
		}
	case isKey(msg, "r"):
		m.list.Loading = true
		return m, m.load()
	}
	return m, nil
}

func (m LocationsModel) selected() (model.Location, bool) {
	items := m.list.PageItems()
	idx := m.rows.Cursor()
	if idx < 0 || idx >= len(items) {
		return model.Location{}, false
	}
	return items[idx], true
}

func (m LocationsModel) handleSearchKeys(msg tea.KeyMsg) (LocationsModel, tea.Cmd) {
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

func (m LocationsModel) handleConfirmKeys(msg tea.KeyMsg) (LocationsModel, tea.Cmd) {
	switch {
	case isEnter(msg), isKey(msg, "y"):
		if !m.confirm.Accept() {
			return m, nil
		}
		id, _ := strconv.ParseInt(m.confirm.Key(), 10, 64)
		client := m.client
		return m, func() tea.Msg {
			if err := client.DeleteLocation(id); err != nil {
				return errMsg{scope: "locations", err: err}
			}
			return locationDeletedMsg{id: id}
		}
	case isBack(msg), isKey(msg, "n"):
		if !m.confirm.Busy() {
			m.confirm.Done()
		}
	}
	return m, nil
}

func (m LocationsModel) handleDialogKeys(msg tea.KeyMsg) (LocationsModel, tea.Cmd) {
	if m.dialog.Submitting() {
		return m, nil
	}
	switch {
	case isBack(msg):
		m.dialog.Close()
	case isKey(msg, "tab", "down"):
		m.focus = (m.focus + 1) % locFieldCount
	case isKey(msg, "shift+tab", "up"):
		m.focus = (m.focus + locFieldCount - 1) % locFieldCount
	case isEnter(msg):
		return m.submit()
	default:
		field := m.fieldPtr()
		if buf, ok := editBuffer(*field, msg); ok {
			*field = buf
			m.dialog.ClearFieldError(locFieldKeys[m.focus])
		}
	}
	return m, nil
}

func (m *LocationsModel) fieldPtr() *string {
	switch m.focus {
	case locFieldCode:
		return &m.dialog.Form.Code
	case locFieldName:
		return &m.dialog.Form.LocationName
	default:
		return &m.dialog.Form.AirportName
	}
}

func (m LocationsModel) submit() (LocationsModel, tea.Cmd) {
	if errs := m.dialog.Form.Validate(); len(errs) > 0 {
		m.dialog.Reject(errs)
		return m, nil
	}
	if !m.dialog.BeginSubmit() {
		return m, nil
	}
	form := m.dialog.Form
	client := m.client
	if form.ID == 0 {
		return m, func() tea.Msg {
			created, err := client.CreateLocation(form.Record())
			if err != nil {
				return errMsg{scope: "locations", err: err}
			}
			return locationSavedMsg{draft: form.DraftKey, created: true, item: created}
		}
	}
	return m, func() tea.Msg {
		updated, err := client.UpdateLocation(form.ID, form.Record())
		if err != nil {
			return errMsg{scope: "locations", err: err}
		}
		return locationSavedMsg{draft: form.DraftKey, item: updated}
	}
}

func (m LocationsModel) View() string {
	switch {
	case m.dialog.Open():
		return components.Indent(m.viewDialog(), 1)
	case m.confirm.Pending():
		return components.Indent(components.ConfirmDialog("Confirm", m.confirm.Prompt()), 1)
	case m.searching:
		return components.Indent(components.InputDialog("Search Locations", m.searchBuf), 1)
	}
	return components.Indent(m.viewList(), 1)
}

func (m LocationsModel) viewList() string {
	if m.list.Loading {
		return components.Box(m.styles.Muted.Render("Loading locations…"), m.width)
	}
	if m.list.Err != nil {
		return components.ErrorBox("Locations", m.list.Err.Error(), m.width)
	}
	title := fmt.Sprintf("Locations — page %d/%d", m.list.Page(), m.list.TotalPages())
	if term := m.list.Term(); term != "" {
		title += fmt.Sprintf("  (filter: %q)", term)
	}
	body := m.rows.Render(components.BoxContentWidth(m.width))
	help := m.styles.Muted.Render("a add  e edit  d delete  / search  ←/→ page  r reload")
	return components.TitledBox(title, body+"\n\n"+help, m.width)
}

func (m LocationsModel) viewDialog() string {
	title := "Add Location"
	if m.dialog.Form.ID != 0 {
		title = "Edit Location"
	}
	values := [locFieldCount]string{m.dialog.Form.Code, m.dialog.Form.LocationName, m.dialog.Form.AirportName}
	return renderForm(m.styles, title, m.width, m.dialog.Submitting(), m.dialog.ErrMsg, formLines(
		m.styles, m.focus, locFieldLabels[:], values[:], locFieldKeys[:], m.dialog.Errors,
	))
}

// Capturing reports whether keystrokes are feeding a text input or dialog,
// so global shortcuts must stay out of the way.
func (m LocationsModel) Capturing() bool {
	return m.dialog.Open() || m.confirm.Pending() || m.searching
}
