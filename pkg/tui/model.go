// Package tui provides the interactive wizard for collecting bindings.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/innogames/vmseed/pkg/config"
)

// field indexes into Model.inputs.
const (
	fieldHostname = iota
	fieldFQDN
	fieldPuppetMaster
	fieldPuppetCA
	fieldCount
)

type fieldSpec struct {
	label       string
	placeholder string
	validate    func(string) error
}

var fields = [fieldCount]fieldSpec{
	fieldHostname:     {"Hostname", "web-01", validateHostname},
	fieldFQDN:         {"FQDN", "web-01.example.com", validateFQDN},
	fieldPuppetMaster: {"Puppet master", "puppet.example.com", validateServer("puppet master")},
	fieldPuppetCA:     {"Puppet CA", "puppet-ca.example.com", validateServer("puppet CA")},
}

// Model is the wizard view model.
type Model struct {
	inputs    [fieldCount]textinput.Model
	focused   int
	fieldErrs [fieldCount]string

	submitted bool
	cancelled bool
}

// NewModel creates the wizard model, pre-filling fields from the given
// bindings (which may be nil).
func NewModel(defaults *config.Bindings) *Model {
	m := &Model{}

	for i, spec := range fields {
		ti := textinput.New()
		ti.Placeholder = spec.placeholder
		ti.CharLimit = 253
		m.inputs[i] = ti
	}

	if defaults != nil {
		m.inputs[fieldHostname].SetValue(defaults.Hostname)
		m.inputs[fieldFQDN].SetValue(defaults.FQDN)
		m.inputs[fieldPuppetMaster].SetValue(defaults.PuppetMaster)
		m.inputs[fieldPuppetCA].SetValue(defaults.PuppetCA)
	}

	m.inputs[0].Focus()
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if err := fields[m.focused].validate(m.inputs[m.focused].Value()); err != nil {
				m.fieldErrs[m.focused] = err.Error()
				return m, nil
			}
			m.fieldErrs[m.focused] = ""

			if m.focused == fieldCount-1 {
				if m.validateAll() {
					m.submitted = true
					return m, tea.Quit
				}
				return m, nil
			}
			return m, m.focusField(m.focused + 1)

		case "tab", "down":
			return m, m.focusField((m.focused + 1) % fieldCount)

		case "shift+tab", "up":
			return m, m.focusField((m.focused + fieldCount - 1) % fieldCount)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// focusField moves input focus and returns the textinput focus command.
func (m *Model) focusField(idx int) tea.Cmd {
	m.inputs[m.focused].Blur()
	m.focused = idx
	return m.inputs[idx].Focus()
}

// validateAll re-checks every field, recording per-field errors. The first
// failing field receives focus.
func (m *Model) validateAll() bool {
	ok := true
	for i, spec := range fields {
		if err := spec.validate(m.inputs[i].Value()); err != nil {
			m.fieldErrs[i] = err.Error()
			if ok {
				m.focusField(i)
			}
			ok = false
		} else {
			m.fieldErrs[i] = ""
		}
	}
	return ok
}

// View renders the wizard.
func (m *Model) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("VM bootstrap configuration"))
	b.WriteString("\n\n")

	for i, spec := range fields {
		cursor := "  "
		label := labelStyle.Render(spec.label + ": ")
		if i == m.focused {
			cursor = "▸ "
			label = focusedLabelStyle.Render(spec.label + ": ")
		}

		b.WriteString(cursor)
		b.WriteString(label)
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")

		if m.fieldErrs[i] != "" {
			b.WriteString("    ")
			b.WriteString(errorStyle.Render(m.fieldErrs[i]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render("enter: next field • tab/shift+tab: move • esc: cancel"))
	b.WriteString("\n")

	return b.String()
}

// Bindings returns the collected values. Only meaningful after the wizard
// finished without cancellation.
func (m *Model) Bindings() *config.Bindings {
	return &config.Bindings{
		Hostname:     strings.TrimSpace(m.inputs[fieldHostname].Value()),
		FQDN:         strings.TrimSpace(m.inputs[fieldFQDN].Value()),
		PuppetMaster: strings.TrimSpace(m.inputs[fieldPuppetMaster].Value()),
		PuppetCA:     strings.TrimSpace(m.inputs[fieldPuppetCA].Value()),
	}
}

// Run executes the wizard and returns the collected bindings. APT repos
// are carried over from defaults; the wizard only edits host identity and
// the Puppet servers.
func Run(defaults *config.Bindings) (*config.Bindings, error) {
	model := NewModel(defaults)

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	m, ok := final.(*Model)
	if !ok || m.cancelled || !m.submitted {
		return nil, fmt.Errorf("wizard cancelled")
	}

	result := m.Bindings()
	if defaults != nil {
		result.AptRepos = defaults.AptRepos
	}
	return result, nil
}
