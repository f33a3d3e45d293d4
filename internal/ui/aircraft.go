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

type aircraftLoadedMsg struct {
	seq   int
	items []model.Aircraft
}
type aircraftSavedMsg struct {
	draft   string
	created bool
	item    model.Aircraft
}
type aircraftDeletedMsg struct{ id int64 }

const (
	acFieldCode = iota
	acFieldManufacturer
	acFieldModel
	acFieldEconomy
	acFieldBusiness
	acFieldCount
)

var acFieldKeys = [acFieldCount]string{"aircraftCode", "manufacturer", "model", "economyCapacity", "businessCapacity"}
var acFieldLabels = [acFieldCount]string{"Aircraft Code", "Manufacturer", "Model", "Economy Capacity", "Business Capacity"}

type AircraftModel struct {
	client  *api.Client
	styles  Styles
	list    *state.Collection[model.Aircraft]
	rows    *components.List
	dialog  state.Dialog[state.AircraftForm]
	confirm state.Confirm

	loadSeq   int
	searching bool
	searchBuf string
	focus     int
	width     int
}

func NewAircraftModel(client *api.Client, styles Styles, pageSize int) AircraftModel {
	return AircraftModel{
		client: client,
		styles: styles,
		list:   state.NewAircraft(pageSize),
		rows:   components.NewList(pageSize),
	}
}

func (m AircraftModel) Init() tea.Cmd {
	m.list.Loading = true
	return m.load()
}

func (m *AircraftModel) load() tea.Cmd {
	m.loadSeq++
	seq := m.loadSeq
	client := m.client
	return func() tea.Msg {
		items, err := client.Aircraft()
		if err != nil {
			return errMsg{scope: "aircraft", err: err}
		}
		return aircraftLoadedMsg{seq: seq, items: items}
	}
}

func (m AircraftModel) Update(msg tea.Msg) (AircraftModel, tea.Cmd) {
	switch msg := msg.(type) {
	case aircraftLoadedMsg:
		if msg.seq < m.loadSeq {
			return m, nil
		}
		m.loadSeq = msg.seq
		m.list.Loading = false
		m.list.Replace(msg.items)
		m.syncRows()
		return m, nil

	case aircraftSavedMsg:
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
		return m, notify(state.SeveritySuccess, fmt.Sprintf("Aircraft %s %s", msg.item.AircraftCode, verb))

	case aircraftDeletedMsg:
		m.confirm.Done()
		m.list.Remove(strconv.FormatInt(msg.id, 10))
		m.syncRows()
		return m, notify(state.SeveritySuccess, "Aircraft deleted")

	case errMsg:
		if msg.scope != "aircraft" {
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

func (m *AircraftModel) syncRows() {
	items := m.list.PageItems()
	labels := make([]string, len(items))
	for i, a := range items {
		labels[i] = fmt.Sprintf("%-8s %-14s %-14s eco %-4d bus %d",
			a.AircraftCode, a.Manufacturer, a.Model, a.EconomyCapacity, a.BusinessCapacity)
	}
	m.rows.SetItems(labels)
}

func (m AircraftModel) handleListKeys(msg tea.KeyMsg) (AircraftModel, tea.Cmd) {
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
		m.dialog.OpenForCreate(state.NewAircraftForm())
		m.focus = 0
	case isKey(msg, "e"), isEnter(msg):
		if item, ok := m.selected(); ok {
			m.dialog.OpenForEdit(state.EditAircraftForm(item))
			m.focus = 0
		}
	case isKey(msg, "d", "backspace", "delete"):
		if item, ok := m.selected(); ok {
			m.confirm.Ask(strconv.FormatInt(item.ID, 10),
				fmt.Sprintf("Delete aircraft %s?", item.AircraftCode))
		}
	case isKey(msg, "r"):
		m.list.Loading = true
		return m, m.load()
	}
	return m, nil
}

func (m AircraftModel) selected() (model.Aircraft, bool) {
	items := m.list.PageItems()
	idx := m.rows.Cursor()
	if idx < 0 || idx >= len(items) {
		return model.Aircraft{}, false
	}
	return items[idx], true
}

func (m AircraftModel) handleSearchKeys(msg tea.KeyMsg) (AircraftModel, tea.Cmd) {
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

func (m AircraftModel) handleConfirmKeys(msg tea.KeyMsg) (AircraftModel, tea.Cmd) {
	switch {
	case isEnter(msg), isKey(msg, "y"):
		if !m.confirm.Accept() {
			return m, nil
		}
		id, _ := strconv.ParseInt(m.confirm.Key(), 10, 64)
		client := m.client
		return m, func() tea.Msg {
			if err := client.DeleteAircraft(id); err != nil {
				return errMsg{scope: "aircraft", err: err}
			}
			return aircraftDeletedMsg{id: id}
		}
	case isBack(msg), isKey(msg, "n"):
		if !m.confirm.Busy() {
			m.confirm.Done()
		}
	}
	return m, nil
}

func (m AircraftModel) handleDialogKeys(msg tea.KeyMsg) (AircraftModel, tea.Cmd) {
	if m.dialog.Submitting() {
		return m, nil
	}
	switch {
	case isBack(msg):
		m.dialog.Close()
	case isKey(msg, "tab", "down"):
		m.focus = (m.focus + 1) % acFieldCount
	case isKey(msg, "shift+tab", "up"):
		m.focus = (m.focus + acFieldCount - 1) % acFieldCount
	case isEnter(msg):
		return m.submit()
	default:
		field := m.fieldPtr()
		if buf, ok := editBuffer(*field, msg); ok {
			*field = buf
			m.dialog.ClearFieldError(acFieldKeys[m.focus])
		}
	}
	return m, nil
}

func (m *AircraftModel) fieldPtr() *string {
	switch m.focus {
	case acFieldCode:
		return &m.dialog.Form.AircraftCode
	case acFieldManufacturer:
		return &m.dialog.Form.Manufacturer
	case acFieldModel:
		return &m.dialog.Form.Model
	case acFieldEconomy:
		return &m.dialog.Form.EconomyCapacity
	default:
		return &m.dialog.Form.BusinessCapacity
	}
}

func (m AircraftModel) submit() (AircraftModel, tea.Cmd) {
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
			created, err := client.CreateAircraft(form.Record())
			if err != nil {
				return errMsg{scope: "aircraft", err: err}
			}
			return aircraftSavedMsg{draft: form.DraftKey, created: true, item: created}
		}
	}
	return m, func() tea.Msg {
		updated, err := client.UpdateAircraft(form.ID, form.Record())
		if err != nil {
			return errMsg{scope: "aircraft", err: err}
		}
		return aircraftSavedMsg{draft: form.DraftKey, item: updated}
	}
}

func (m AircraftModel) View() string {
	switch {
	case m.dialog.Open():
		return components.Indent(m.viewDialog(), 1)
	case m.confirm.Pending():
		return components.Indent(components.ConfirmDialog("Confirm", m.confirm.Prompt()), 1)
	case m.searching:
		return components.Indent(components.InputDialog("Search Aircraft", m.searchBuf), 1)
	}
	return components.Indent(m.viewList(), 1)
}

func (m AircraftModel) viewList() string {
	if m.list.Loading {
		return components.Box(m.styles.Muted.Render("Loading aircraft…"), m.width)
	}
	if m.list.Err != nil {
		return components.ErrorBox("Aircraft", m.list.Err.Error(), m.width)
	}
	title := fmt.Sprintf("Aircraft — page %d/%d", m.list.Page(), m.list.TotalPages())
	if term := m.list.Term(); term != "" {
		title += fmt.Sprintf("  (filter: %q)", term)
	}
	body := m.rows.Render(components.BoxContentWidth(m.width))
	help := m.styles.Muted.Render("a add  e edit  d delete  / search  ←/→ page  r reload")
	return components.TitledBox(title, body+"\n\n"+help, m.width)
}

func (m AircraftModel) viewDialog() string {
	title := "Add Aircraft"
	if m.dialog.Form.ID != 0 {
		title = "Edit Aircraft"
	}
	values := [acFieldCount]string{
		m.dialog.Form.AircraftCode,
		m.dialog.Form.Manufacturer,
		m.dialog.Form.Model,
		m.dialog.Form.EconomyCapacity,
		m.dialog.Form.BusinessCapacity,
	}
	return renderForm(m.styles, title, m.width, m.dialog.Submitting(), m.dialog.ErrMsg, formLines(
		m.styles, m.focus, acFieldLabels[:], values[:], acFieldKeys[:], m.dialog.Errors,
	))
}

func (m AircraftModel) Capturing() bool {
	return m.dialog.Open() || m.confirm.Pending() || m.searching
}
