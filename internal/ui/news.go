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

type newsLoadedMsg struct {
	seq   int
	items []model.News
}
type newsSavedMsg struct {
	draft   string
	created bool
	item    model.News
}
type newsDeletedMsg struct{ id int64 }
type newsPublishedMsg struct{ id int64 }

const (
	newsFieldTitle = iota
	newsFieldContent
	newsFieldCount
)

var newsFieldKeys = [newsFieldCount]string{"title", "content"}
var newsFieldLabels = [newsFieldCount]string{"Title", "Content"}

// NewsModel drives the news screen. Publish is offered for DRAFT items only
// and the transition is one way; the list reloads afterwards so the server
// stays the source of truth for status.
type NewsModel struct {
	client  *api.Client
	styles  Styles
	list    *state.Collection[model.News]
	rows    *components.List
	dialog  state.Dialog[state.NewsForm]
	confirm state.Confirm
	actions *state.RowActions

	loadSeq   int
	searching bool
	searchBuf string
	focus     int
	width     int
}

func NewNewsModel(client *api.Client, styles Styles, pageSize int) NewsModel {
	return NewsModel{
		client:  client,
		styles:  styles,
		list:    state.NewNews(pageSize),
		rows:    components.NewList(pageSize),
		actions: state.NewRowActions(),
	}
}

func (m NewsModel) Init() tea.Cmd {
	m.list.Loading = true
	return m.load()
}

func (m *NewsModel) load() tea.Cmd {
	m.loadSeq++
	seq := m.loadSeq
	client := m.client
	return func() tea.Msg {
		items, err := client.News()
		if err != nil {
			return errMsg{scope: "news", err: err}
		}
		return newsLoadedMsg{seq: seq, items: items}
	}
}

func (m NewsModel) Update(msg tea.Msg) (NewsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case newsLoadedMsg:
		if msg.seq < m.loadSeq {
			return m, nil
		}
		m.loadSeq = msg.seq
		m.list.Loading = false
		m.list.Replace(msg.items)
		m.syncRows()
		return m, nil

	case newsSavedMsg:
		m.list.Upsert(msg.item)
		m.syncRows()
		if msg.draft != m.dialog.Form.DraftKey {
			return m, nil
		}
		m.dialog.CompleteSubmit()
		verb := "updated"
		if msg.created {
			verb = "created"
		}
		return m, notify(state.SeveritySuccess, fmt.Sprintf("News %s", verb))

	case newsDeletedMsg:
		m.confirm.Done()
		m.list.Remove(strconv.FormatInt(msg.id, 10))
		m.syncRows()
		return m, notify(state.SeveritySuccess, "News deleted")

	case newsPublishedMsg:
		m.actions.Finish(strconv.FormatInt(msg.id, 10))
		m.list.Loading = true
		return m, tea.Batch(
			notify(state.SeveritySuccess, "News published"),
			m.load(),
		)

	case errMsg:
		if msg.scope != "news" {
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
		if id, ok := msg.rowID(); ok {
			m.actions.Finish(id)
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
		m.actions.Clear()
		m.syncRows()
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

func (m *NewsModel) syncRows() {
	items := m.list.PageItems()
	labels := make([]string, len(items))
	for i, n := range items {
		badge := n.Status
		if m.actions.Busy(strconv.FormatInt(n.ID, 10)) {
			badge = "…publishing"
		}
		labels[i] = fmt.Sprintf("%-10s %s", badge, n.Title)
	}
	m.rows.SetItems(labels)
}

func (m NewsModel) handleListKeys(msg tea.KeyMsg) (NewsModel, tea.Cmd) {
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
		m.dialog.OpenForCreate(state.NewNewsForm())
		m.focus = 0
	case isKey(msg, "e"), isEnter(msg):
		if item, ok := m.selected(); ok {
			m.dialog.OpenForEdit(state.EditNewsForm(item))
			m.focus = 0
		}
	case isKey(msg, "p"):
		return m.publishSelected()
	case isKey(msg, "d", "backspace", "delete"):
		if item, ok := m.selected(); ok {
			m.confirm.Ask(strconv.FormatInt(item.ID, 10),
				fmt.Sprintf("Delete news %q?", item.Title))
		}
	case isKey(msg, "r"):
		m.list.Loading = true
		return m, m.load()
	}
	return m, nil
}

// publishSelected fires only for DRAFT items; PUBLISHED rows expose no
// publish control.
func (m NewsModel) publishSelected() (NewsModel, tea.Cmd) {
	item, ok := m.selected()
	if !ok || item.Status != model.NewsDraft {
		return m, nil
	}
	id := strconv.FormatInt(item.ID, 10)
	if !m.actions.Start(id, "publish") {
		return m, nil
	}
	m.syncRows()
	client := m.client
	newsID := item.ID
	return m, func() tea.Msg {
		if err := client.PublishNews(newsID); err != nil {
			return errMsg{scope: "news", row: id, err: err}
		}
		return newsPublishedMsg{id: newsID}
	}
}

func (m NewsModel) selected() (model.News, bool) {
	items := m.list.PageItems()
	idx := m.rows.Cursor()
	if idx < 0 || idx >= len(items) {
		return model.News{}, false
	}
	return items[idx], true
}

func (m NewsModel) handleSearchKeys(msg tea.KeyMsg) (NewsModel, tea.Cmd) {
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

func (m NewsModel) handleConfirmKeys(msg tea.KeyMsg) (NewsModel, tea.Cmd) {
	switch {
	case isEnter(msg), isKey(msg, "y"):
		if !m.confirm.Accept() {
			return m, nil
		}
		id, _ := strconv.ParseInt(m.confirm.Key(), 10, 64)
		client := m.client
		return m, func() tea.Msg {
			if err := client.DeleteNews(id); err != nil {
				return errMsg{scope: "news", err: err}
			}
			return newsDeletedMsg{id: id}
		}
	case isBack(msg), isKey(msg, "n"):
		if !m.confirm.Busy() {
			m.confirm.Done()
		}
	}
	return m, nil
}

func (m NewsModel) handleDialogKeys(msg tea.KeyMsg) (NewsModel, tea.Cmd) {
	if m.dialog.Submitting() {
		return m, nil
	}
	switch {
	case isBack(msg):
		m.dialog.Close()
	case isKey(msg, "tab", "down"):
		m.focus = (m.focus + 1) % newsFieldCount
	case isKey(msg, "shift+tab", "up"):
		m.focus = (m.focus + newsFieldCount - 1) % newsFieldCount
	case isEnter(msg):
		return m.submit()
	default:
		field := m.fieldPtr()
		if buf, ok := editBuffer(*field, msg); ok {
			*field = buf
			m.dialog.ClearFieldError(newsFieldKeys[m.focus])
		}
	}
	return m, nil
}

func (m *NewsModel) fieldPtr() *string {
	if m.focus == newsFieldTitle {
		return &m.dialog.Form.Title
	}
	return &m.dialog.Form.Content
}

func (m NewsModel) submit() (NewsModel, tea.Cmd) {
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
			created, err := client.CreateNews(form.Record())
			if err != nil {
				return errMsg{scope: "news", err: err}
			}
			return newsSavedMsg{draft: form.DraftKey, created: true, item: created}
		}
	}
	return m, func() tea.Msg {
		updated, err := client.UpdateNews(form.ID, form.Record())
		if err != nil {
			return errMsg{scope: "news", err: err}
		}
		return newsSavedMsg{draft: form.DraftKey, item: updated}
	}
}

func (m NewsModel) View() string {
	switch {
	case m.dialog.Open():
		return components.Indent(m.viewDialog(), 1)
	case m.confirm.Pending():
		return components.Indent(components.ConfirmDialog("Confirm", m.confirm.Prompt()), 1)
	case m.searching:
		return components.Indent(components.InputDialog("Search News", m.searchBuf), 1)
	}
	return components.Indent(m.viewList(), 1)
}

func (m NewsModel) viewList() string {
	if m.list.Loading {
		return components.Box(m.styles.Muted.Render("Loading news…"), m.width)
	}
	if m.list.Err != nil {
		return components.ErrorBox("News", m.list.Err.Error(), m.width)
	}
	title := fmt.Sprintf("News — page %d/%d", m.list.Page(), m.list.TotalPages())
	if term := m.list.Term(); term != "" {
		title += fmt.Sprintf("  (filter: %q)", term)
	}
	body := m.rows.Render(components.BoxContentWidth(m.width))
	help := m.styles.Muted.Render("a add  e edit  p publish draft  d delete  / search  ←/→ page  r reload")
	return components.TitledBox(title, body+"\n\n"+help, m.width)
}

func (m NewsModel) viewDialog() string {
	title := "Add News"
	if m.dialog.Form.ID != 0 {
		title = "Edit News"
	}
	values := [newsFieldCount]string{m.dialog.Form.Title, m.dialog.Form.Content}
	return renderForm(m.styles, title, m.width, m.dialog.Submitting(), m.dialog.ErrMsg, formLines(
		m.styles, m.focus, newsFieldLabels[:], values[:], newsFieldKeys[:], m.dialog.Errors,
	))
}

func (m NewsModel) Capturing() bool {
	return m.dialog.Open() || m.confirm.Pending() || m.searching
}
