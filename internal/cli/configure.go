package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/upstream/internal/model"
	"github.com/inovacc/upstream/internal/settings"
)

const fmtField = " %s\n %s\n %s\n\n"

// Focus positions in the form.
const (
	focusUpdateType = iota
	focusRepoURL
	focusAccessToken
	focusSubmit
)

var (
	focusedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle        = focusedStyle
	noStyle            = lipgloss.NewStyle()
	helpStyleConfigure = blurredStyle

	focusedButton = focusedStyle.Render("[ Save Settings ]")
	blurredButton = fmt.Sprintf("[ %s ]", blurredStyle.Render("Save Settings"))
)

// SettingsForm is what the configure form reads from and submits to.
type SettingsForm interface {
	Fields() (settings.Fields, error)
	Submit(raw model.Record) error
}

type ConfigureModel struct {
	focusIndex int
	typeIndex  int
	repoURL    textinput.Model
	token      textinput.Model
	form       SettingsForm
	Saved      bool
	Err        error
}

func NewConfigureModel(form SettingsForm) (*ConfigureModel, error) {
	fields, err := form.Fields()
	if err != nil {
		return nil, err
	}

	m := &ConfigureModel{form: form}

	for i, t := range model.UpdateTypes {
		if t == fields.UpdateType {
			m.typeIndex = i
		}
	}

	m.repoURL = textinput.New()
	m.repoURL.Cursor.Style = cursorStyle
	m.repoURL.CharLimit = 2048
	m.repoURL.Placeholder = "https://github.com/username/repo-name"
	m.repoURL.SetValue(fields.RepoURL)

	m.token = textinput.New()
	m.token.Cursor.Style = cursorStyle
	m.token.CharLimit = 512
	m.token.EchoMode = textinput.EchoPassword
	m.token.EchoCharacter = '•'
	m.token.SetValue(fields.AccessToken)

	return m, nil
}

// UpdateType returns the currently selected update type.
func (m *ConfigureModel) UpdateType() model.UpdateType {
	return model.UpdateTypes[m.typeIndex]
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
		switch s := msg.String(); s {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "left", "right":
			if m.focusIndex == focusUpdateType {
				n := len(model.UpdateTypes)
				if s == "left" {
					m.typeIndex = (m.typeIndex + n - 1) % n
				} else {
					m.typeIndex = (m.typeIndex + 1) % n
				}

				return m, nil
			}

		case "tab", "shift+tab", "enter", "up", "down":
			// Submit on enter when on the button
			if s == "enter" && m.focusIndex == focusSubmit {
				return m, m.saveSettings
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > focusSubmit {
				m.focusIndex = focusUpdateType
			} else if m.focusIndex < focusUpdateType {
				m.focusIndex = focusSubmit
			}

			return m, m.syncFocus()
		}
	}

	// Handle character input and blinking
	return m, m.updateInputs(msg)
}

func (m *ConfigureModel) syncFocus() tea.Cmd {
	var cmds []tea.Cmd

	for idx, in := range map[int]*textinput.Model{focusRepoURL: &m.repoURL, focusAccessToken: &m.token} {
		if idx == m.focusIndex {
			cmds = append(cmds, in.Focus())
			in.PromptStyle = focusedStyle
			in.TextStyle = focusedStyle

			continue
		}

		in.Blur()
		in.PromptStyle = noStyle
		in.TextStyle = noStyle
	}

	return tea.Batch(cmds...)
}

func (m *ConfigureModel) updateInputs(msg tea.Msg) tea.Cmd {
	var cmdURL, cmdToken tea.Cmd

	// Only the focused input reacts to key presses.
	m.repoURL, cmdURL = m.repoURL.Update(msg)
	m.token, cmdToken = m.token.Update(msg)

	return tea.Batch(cmdURL, cmdToken)
}

func (m *ConfigureModel) renderSelect() string {
	opts := make([]string, 0, len(model.UpdateTypes))

	for i, t := range model.UpdateTypes {
		label := t.Label()

		switch {
		case i == m.typeIndex && m.focusIndex == focusUpdateType:
			opts = append(opts, focusedStyle.Render("(•) "+label))
		case i == m.typeIndex:
			opts = append(opts, "(•) "+label)
		default:
			opts = append(opts, blurredStyle.Render("( ) "+label))
		}
	}

	return strings.Join(opts, "  ")
}

func (m *ConfigureModel) View() string {
	if m.Saved {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Render("\n  ✓ Settings saved.\n\n")
	}

	if m.Err != nil {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Render(fmt.Sprintf("\n  ✗ Error: %v\n\n", m.Err))
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	s := headerStyle.Render("GitHub Update Settings") + "\n"
	s += blurredStyle.Render(settings.Banner) + "\n\n"
	s += fmt.Sprintf(fmtField, blurredStyle.Render("Update Type:"), m.renderSelect(), "")
	s += fmt.Sprintf(fmtField, blurredStyle.Render("Repository URL:"), m.repoURL.View(), helpStyleConfigure.Render(settings.RepoURLHelp))
	s += fmt.Sprintf(fmtField, blurredStyle.Render("Access Token:"), m.token.View(), helpStyleConfigure.Render(settings.AccessTokenHelp))

	button := &blurredButton
	if m.focusIndex == focusSubmit {
		button = &focusedButton
	}

	s += fmt.Sprintf("\n %s\n\n", *button)
	s += helpStyleConfigure.Render(" tab/shift+tab: navigate • ←/→: change type • enter: save • esc: quit")

	return s
}

// Record returns the form values as a raw submission. All three fields are
// always present, as with a submitted HTML form.
func (m *ConfigureModel) Record() model.Record {
	return model.Record{
		model.KeyUpdateType:  string(m.UpdateType()),
		model.KeyRepoURL:     m.repoURL.Value(),
		model.KeyAccessToken: m.token.Value(),
	}
}

func (m *ConfigureModel) saveSettings() tea.Msg {
	if err := m.form.Submit(m.Record()); err != nil {
		return errMsg{err}
	}

	return successMsg{}
}

type successMsg struct{}
type errMsg struct{ err error }
