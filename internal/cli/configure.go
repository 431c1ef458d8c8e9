package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inovacc/kollect/internal/core"
)

const fmtV1 = " %s\n %s\n\n"

var (
	focusedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle        = focusedStyle
	noStyle            = lipgloss.NewStyle()
	helpStyleConfigure = blurredStyle

	focusedButton = focusedStyle.Render("[ Submit ]")
	blurredButton = fmt.Sprintf("[ %s ]", blurredStyle.Render("Submit"))
)

type successMsg struct{}

type errMsg struct {
	err error
}

// ConfigureModel is the configuration wizard.
type ConfigureModel struct {
	focusIndex int
	inputs     []textinput.Model
	Saved      bool
	Err        error
}

// NewConfigureModel loads the current configuration into the wizard.
func NewConfigureModel() (ConfigureModel, error) {
	cfg, err := core.LoadConfig()
	if err != nil {
		return ConfigureModel{}, err
	}

	m := ConfigureModel{
		inputs: make([]textinput.Model, 5),
	}

	var t textinput.Model
	for i := range m.inputs {
		t = textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 256

		switch i {
		case 0:
			t.Placeholder = "http://127.0.0.1:8888/v1"
			t.SetValue(cfg.Server.URL)
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		case 1:
			t.Placeholder = "default"
			t.SetValue(cfg.Collection.Bucket)
		case 2:
			t.Placeholder = "items"
			t.SetValue(cfg.Collection.Collection)
		case 3:
			t.Placeholder = "5"
			t.CharLimit = 6
			t.SetValue(strconv.Itoa(cfg.UI.Limit))
		case 4:
			t.Placeholder = "username (optional)"
			t.SetValue(cfg.Server.Username)
		}

		m.inputs[i] = t
	}

	return m, nil
}

func (m *ConfigureModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ConfigureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case successMsg:
		m.Saved = true
		return m, tea.Quit
	case errMsg:
		m.Err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			// Submit on enter when on the submit button
			if s == "enter" && m.focusIndex == len(m.inputs) {
				return m, m.saveConfig
			}

			// Cycle indexes
			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			cmds := make([]tea.Cmd, len(m.inputs))
			for i := 0; i <= len(m.inputs)-1; i++ {
				if i == m.focusIndex {
					// Set focused state
					cmds[i] = m.inputs[i].Focus()
					m.inputs[i].PromptStyle = focusedStyle
					m.inputs[i].TextStyle = focusedStyle

					continue
				}
				// Remove the focused state
				m.inputs[i].Blur()
				m.inputs[i].PromptStyle = noStyle
				m.inputs[i].TextStyle = noStyle
			}

			return m, tea.Batch(cmds...)
		}
	}

	// Handle character input and blinking
	cmd := m.updateInputs(msg)

	return m, cmd
}

func (m *ConfigureModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	// Only text inputs with Focus() set will respond, so it's safe to simply
	// update all of them here without any further logic.
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

func (m *ConfigureModel) View() string {
	var b strings.Builder

	b.WriteString("\n Configure kollect\n\n")

	labels := []string{"Server URL", "Bucket", "Collection", "Default limit", "Username"}
	for i := range m.inputs {
		b.WriteString(fmt.Sprintf(fmtV1, labels[i], m.inputs[i].View()))
	}

	button := blurredButton
	if m.focusIndex == len(m.inputs) {
		button = focusedButton
	}

	b.WriteString(fmt.Sprintf(" %s\n\n", button))
	b.WriteString(helpStyleConfigure.Render(" tab/↑/↓ move · enter submit · esc cancel"))
	b.WriteString("\n")

	return b.String()
}

func (m *ConfigureModel) saveConfig() tea.Msg {
	cfg, err := core.LoadConfig()
	if err != nil {
		return errMsg{err: err}
	}

	cfg.Server.URL = strings.TrimSpace(m.inputs[0].Value())
	cfg.Collection.Bucket = strings.TrimSpace(m.inputs[1].Value())
	cfg.Collection.Collection = strings.TrimSpace(m.inputs[2].Value())
	cfg.Server.Username = strings.TrimSpace(m.inputs[4].Value())

	// A limit that does not parse falls back to unlimited.
	if n, err := strconv.Atoi(strings.TrimSpace(m.inputs[3].Value())); err == nil && n > 0 {
		cfg.UI.Limit = n
	} else {
		cfg.UI.Limit = 0
	}

	if err := core.SaveConfig(cfg); err != nil {
		return errMsg{err: err}
	}

	return successMsg{}
}
