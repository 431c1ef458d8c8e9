package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inovacc/kollect/internal/core"
	"github.com/inovacc/kollect/internal/kinto"
)

const requestTimeout = 30 * time.Second

var (
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	formStyle   = lipgloss.NewStyle().MarginTop(1)
)

// tickMsg carries the once-a-second clock tick.
type tickMsg time.Time

// eventMsg wraps a core event produced by a completed request or an
// internal trigger.
type eventMsg struct {
	event core.Event
}

func emit(ev core.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg{event: ev}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Form focus targets, cycled with tab/up/down.
const (
	focusTitle = iota
	focusDescription
	focusSave
	focusLimit
	focusApply
	focusCount
)

// BrowserModel is the record browser. It owns a core.Model and routes
// everything through core.Transition; the Bubbletea plumbing here only
// translates key presses into events and runs emitted commands against
// the client.
type BrowserModel struct {
	state    core.Model
	client   *kinto.Client
	resource kinto.Resource

	table      table.Model
	titleInput textinput.Model
	descInput  textinput.Model
	limitInput textinput.Model

	editing    bool
	focusIndex int
	quitting   bool
}

// NewBrowser creates the browser for a collection. A nil limit starts
// the browser with unlimited listings.
func NewBrowser(client *kinto.Client, res kinto.Resource, limit *int) BrowserModel {
	state := core.NewModel(res)
	state.Limit = limit

	t := table.New(
		table.WithColumns(recordColumns(state.Sort)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	titleInput := textinput.New()
	titleInput.Placeholder = "title"
	titleInput.CharLimit = 256
	titleInput.Cursor.Style = cursorStyle

	descInput := textinput.New()
	descInput.Placeholder = "description"
	descInput.CharLimit = 256
	descInput.Cursor.Style = cursorStyle

	limitInput := textinput.New()
	limitInput.Placeholder = "∞"
	limitInput.CharLimit = 6
	limitInput.Width = 6
	limitInput.Cursor.Style = cursorStyle

	if limit != nil {
		limitInput.SetValue(strconv.Itoa(*limit))
	}

	return BrowserModel{
		state:      state,
		client:     client,
		resource:   res,
		table:      t,
		titleInput: titleInput,
		descInput:  descInput,
		limitInput: limitInput,
	}
}

func (m BrowserModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick(), emit(core.FetchRecords{}))
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, _ := docStyle.GetFrameSize()
		m.table.SetWidth(msg.Width - h)

		return m, nil

	case tickMsg:
		cmds := m.apply(core.TimeTick{Time: time.Time(msg)})

		return m, tea.Batch(append(cmds, tick())...)

	case eventMsg:
		cmds := m.apply(msg.event)

		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.editing {
			return m.handleFormKey(msg)
		}

		return m.handleBrowseKey(msg)
	}

	// Cursor blink and other component housekeeping.
	var cmds []tea.Cmd

	var cmd tea.Cmd

	m.titleInput, cmd = m.titleInput.Update(msg)
	cmds = append(cmds, cmd)
	m.descInput, cmd = m.descInput.Update(msg)
	cmds = append(cmds, cmd)
	m.limitInput, cmd = m.limitInput.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m BrowserModel) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true

		return m, tea.Quit

	case "r":
		return m, tea.Batch(m.apply(core.FetchRecords{})...)

	case "l", "right":
		return m, tea.Batch(m.apply(core.FetchNextRecords{})...)

	case "t":
		return m, tea.Batch(m.apply(core.ChangeSortColumn{Column: core.ColumnTitle})...)

	case "d":
		return m, tea.Batch(m.apply(core.ChangeSortColumn{Column: core.ColumnDescription})...)

	case "m":
		return m, tea.Batch(m.apply(core.ChangeSortColumn{Column: core.ColumnLastModified})...)

	case "n":
		m.enterForm()

		return m, textinput.Blink

	case "enter":
		if id := m.selectedID(); id != "" {
			return m, tea.Batch(m.apply(core.StartEdit{ID: id})...)
		}

		return m, nil

	case "x":
		if id := m.selectedID(); id != "" {
			return m, tea.Batch(m.apply(core.StartDelete{ID: id})...)
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BrowserModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true

		return m, tea.Quit

	case "esc":
		m.leaveForm()

		return m, nil

	case "tab", "shift+tab", "enter", "up", "down":
		s := msg.String()

		if s == "enter" {
			switch m.focusIndex {
			case focusSave:
				cmds := m.apply(core.Submit{})
				m.leaveForm()

				return m, tea.Batch(cmds...)

			case focusApply:
				return m, tea.Batch(m.apply(core.ApplyLimit{})...)
			}
		}

		// Cycle indexes
		if s == "up" || s == "shift+tab" {
			m.focusIndex--
		} else {
			m.focusIndex++
		}

		if m.focusIndex >= focusCount {
			m.focusIndex = 0
		} else if m.focusIndex < 0 {
			m.focusIndex = focusCount - 1
		}

		return m, m.applyFocus()
	}

	return m.handleFormInput(msg)
}

// handleFormInput routes character input to the focused field and turns
// text changes into core edit events so the list live-reflects unsaved
// edits.
func (m BrowserModel) handleFormInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.focusIndex {
	case focusTitle:
		before := m.titleInput.Value()
		m.titleInput, cmd = m.titleInput.Update(msg)

		if value := m.titleInput.Value(); value != before {
			cmds := m.apply(core.EditFormTitle{Title: value})

			return m, tea.Batch(append(cmds, cmd)...)
		}

	case focusDescription:
		before := m.descInput.Value()
		m.descInput, cmd = m.descInput.Update(msg)

		if value := m.descInput.Value(); value != before {
			cmds := m.apply(core.EditFormDescription{Description: value})

			return m, tea.Batch(append(cmds, cmd)...)
		}

	case focusLimit:
		before := m.limitInput.Value()
		m.limitInput, cmd = m.limitInput.Update(msg)

		if value := m.limitInput.Value(); value != before {
			cmds := m.apply(core.SetLimitText{Text: value})

			return m, tea.Batch(append(cmds, cmd)...)
		}
	}

	return m, cmd
}

// apply runs one event through the core transition, stores the next
// state, and converts the emitted commands into tea.Cmds hitting the
// record server.
func (m *BrowserModel) apply(ev core.Event) []tea.Cmd {
	next, commands := core.Transition(ev, m.state)
	m.state = next

	cmds := make([]tea.Cmd, 0, len(commands))
	for _, command := range commands {
		cmds = append(cmds, m.perform(command))
	}

	m.syncTable()

	// A fetched canonical copy opens the form; a confirmed create
	// leaves an emptied form behind that the inputs must mirror.
	switch ev := ev.(type) {
	case core.RecordFetched:
		if ev.Err == nil {
			m.enterForm()
		}
	case core.RecordCreated:
		if ev.Err == nil {
			m.syncFormInputs()
		}
	}

	return cmds
}

// perform translates a core command into a request against the client.
// Completions re-enter the update loop as events.
func (m *BrowserModel) perform(command core.Command) tea.Cmd {
	client := m.client
	resource := m.resource

	switch command := command.(type) {
	case core.FetchList:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()

			page, err := client.ListRecords(ctx, resource, command.SortKeys, command.Limit)

			return eventMsg{event: core.RecordsFetched{Page: page, Err: err}}
		}

	case core.FetchNextPage:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()

			page, err := client.FetchPage(ctx, command.URL)

			return eventMsg{event: core.RecordsFetched{Page: page, Err: err}}
		}

	case core.FetchRecord:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()

			rec, err := client.GetRecord(ctx, resource, command.ID)

			return eventMsg{event: core.RecordFetched{Record: rec, Err: err}}
		}

	case core.CreateRecord:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()

			rec, err := client.CreateRecord(ctx, resource, command.Body)

			return eventMsg{event: core.RecordCreated{Record: rec, Err: err}}
		}

	case core.UpdateRecord:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()

			rec, err := client.UpdateRecord(ctx, resource, command.ID, command.Body)

			return eventMsg{event: core.RecordEdited{Record: rec, Err: err}}
		}

	case core.DeleteRecord:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()

			rec, err := client.DeleteRecord(ctx, resource, command.ID)

			return eventMsg{event: core.RecordDeleted{Record: rec, Err: err}}
		}
	}

	return nil
}

func (m *BrowserModel) enterForm() {
	m.editing = true
	m.focusIndex = focusTitle
	m.syncFormInputs()
	m.table.Blur()
	_ = m.applyFocus()
}

func (m *BrowserModel) leaveForm() {
	m.editing = false
	m.syncFormInputs()
	m.titleInput.Blur()
	m.descInput.Blur()
	m.limitInput.Blur()
	m.table.Focus()
}

// applyFocus focuses the field selected by focusIndex and blurs the
// rest, mirroring the focus styling.
func (m *BrowserModel) applyFocus() tea.Cmd {
	inputs := []*textinput.Model{&m.titleInput, &m.descInput, nil, &m.limitInput, nil}

	var cmd tea.Cmd

	for i, input := range inputs {
		if input == nil {
			continue
		}

		if i == m.focusIndex {
			cmd = input.Focus()
			input.PromptStyle = focusedStyle
			input.TextStyle = focusedStyle

			continue
		}

		input.Blur()
		input.PromptStyle = noStyle
		input.TextStyle = noStyle
	}

	return cmd
}

// syncFormInputs mirrors the core draft into the text inputs.
func (m *BrowserModel) syncFormInputs() {
	m.titleInput.SetValue(m.state.Form.Title)
	m.descInput.SetValue(m.state.Form.Description)
}

// syncTable rebuilds the table from the loaded records, keeping the
// sort markers on the column headers current.
func (m *BrowserModel) syncTable() {
	rows := make([]table.Row, 0, len(m.state.Pager.Objects))

	for _, rec := range m.state.Pager.Objects {
		rows = append(rows, table.Row{
			stringOrEmpty(rec.Title),
			stringOrEmpty(rec.Description),
			formatModified(rec.LastModified),
			rec.ID,
		})
	}

	m.table.SetColumns(recordColumns(m.state.Sort))
	m.table.SetRows(rows)
}

func (m BrowserModel) selectedID() string {
	row := m.table.SelectedRow()
	if row == nil {
		return ""
	}

	return row[3]
}

func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.formView())

	if m.state.Err != "" {
		b.WriteString("\n" + errorStyle.Render("error: "+m.state.Err))
	}

	b.WriteString("\n" + m.helpView())

	return docStyle.Render(b.String())
}

func (m BrowserModel) headerView() string {
	clock := "--:--:--"
	if !m.state.CurrentTime.IsZero() {
		clock = m.state.CurrentTime.Format("15:04:05")
	}

	status := fmt.Sprintf("%d of %d records", len(m.state.Pager.Objects), m.state.Pager.Total)
	if m.state.Pager.HasNext() {
		status += " · more available"
	}

	return headerStyle.Render("kollect") + "  " + statusStyle.Render(status+"  "+clock)
}

func (m BrowserModel) formView() string {
	var b strings.Builder

	label := "new record"
	if m.state.Form.ID != nil {
		label = "editing " + *m.state.Form.ID
	}

	b.WriteString(statusStyle.Render(label) + "\n")
	b.WriteString(m.titleInput.View() + "\n")
	b.WriteString(m.descInput.View() + "\n")

	save := blurredButton
	if m.editing && m.focusIndex == focusSave {
		save = focusedButton
	}

	apply := fmt.Sprintf("[ %s ]", blurredStyle.Render("Apply"))
	if m.editing && m.focusIndex == focusApply {
		apply = focusedStyle.Render("[ Apply ]")
	}

	b.WriteString(save + "\n")
	b.WriteString("limit " + m.limitInput.View() + " " + apply)

	return formStyle.Render(b.String())
}

func (m BrowserModel) helpView() string {
	if m.editing {
		return helpStyleConfigure.Render("tab/↑/↓ move · enter select · esc back")
	}

	help := "enter edit · n new · x delete · r refresh · t/d/m sort · q quit"
	if m.state.Pager.HasNext() {
		help = "l load more · " + help
	}

	return helpStyleConfigure.Render(help)
}

func recordColumns(active core.Sort) []table.Column {
	marker := func(column string) string {
		if active.Column != column {
			return ""
		}

		if active.Dir == core.Ascending {
			return " ▲"
		}

		return " ▼"
	}

	return []table.Column{
		{Title: "Title" + marker(core.ColumnTitle), Width: 24},
		{Title: "Description" + marker(core.ColumnDescription), Width: 32},
		{Title: "Modified" + marker(core.ColumnLastModified), Width: 19},
		{Title: "ID", Width: 36},
	}
}

func formatModified(ms int64) string {
	if ms == 0 {
		return ""
	}

	return time.UnixMilli(ms).Format("2006-01-02 15:04:05")
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
