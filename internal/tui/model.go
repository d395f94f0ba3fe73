// Package tui provides the interactive Bubble Tea menu for encrypting and
// decrypting files.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/vigenplay/internal/alphabet"
	"github.com/verte-zerg/vigenplay/internal/cipher"
)

type screen int

const (
	screenMenu screen = iota
	screenDigramKey
	screenSubstitutionKey
	screenResult
)

type menuItem struct {
	label string
	op    Operation
}

var menuItems = []menuItem{
	{label: "Encrypt", op: OpEncrypt},
	{label: "Decrypt", op: OpDecrypt},
	{label: "Exit"},
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// runDoneMsg carries the result of an operation back into Update.
type runDoneMsg struct {
	outcome Outcome
	err     error
}

// Model implements the Bubble Tea menu.
type Model struct {
	session Session

	width  int
	height int

	screen   screen
	cursor   int
	op       Operation
	digram   textinput.Model
	subst    textinput.Model
	inputErr string

	outcome Outcome
	runErr  error
}

// NewModel constructs the menu for a session.
func NewModel(session Session) *Model {
	digram := textinput.New()
	digram.Prompt = "Digram key: "
	digram.Placeholder = "letters A-Z"
	digram.CharLimit = 64

	subst := textinput.New()
	subst.Prompt = "Substitution key: "
	subst.Placeholder = fmt.Sprintf("at least %d letters", cipher.MinSubstitutionKeyLength)
	subst.CharLimit = 128

	return &Model{session: session, digram: digram, subst: subst}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case runDoneMsg:
		m.outcome = msg.outcome
		m.runErr = msg.err
		m.screen = screenResult
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenDigramKey, screenSubstitutionKey:
			return m.updateKeys(msg)
		case screenResult:
			m.screen = screenMenu
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.cursor = (m.cursor + len(menuItems) - 1) % len(menuItems)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(menuItems)
	case "1", "2", "3":
		m.cursor = int(msg.String()[0] - '1')
		return m.choose()
	case "enter":
		return m.choose()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) choose() (tea.Model, tea.Cmd) {
	item := menuItems[m.cursor]
	if item.op == "" {
		return m, tea.Quit
	}
	m.op = item.op
	m.inputErr = ""
	m.digram.Reset()
	m.subst.Reset()
	m.subst.Blur()
	m.screen = screenDigramKey
	return m, m.digram.Focus()
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.screen = screenMenu
		m.inputErr = ""
		return m, nil
	case tea.KeyEnter:
		if m.screen == screenDigramKey {
			m.screen = screenSubstitutionKey
			m.digram.Blur()
			return m, m.subst.Focus()
		}
		if err := validateSubstitutionKey(m.subst.Value()); err != "" {
			m.inputErr = err
			return m, nil
		}
		m.inputErr = ""
		return m, m.runCmd(m.op, m.digram.Value(), m.subst.Value())
	}

	var cmd tea.Cmd
	if m.screen == screenDigramKey {
		m.digram, cmd = m.digram.Update(msg)
	} else {
		m.subst, cmd = m.subst.Update(msg)
		m.inputErr = ""
	}
	return m, cmd
}

func (m *Model) runCmd(op Operation, digramKey, substitutionKey string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		outcome, err := session.Run(context.Background(), op, digramKey, substitutionKey)
		return runDoneMsg{outcome: outcome, err: err}
	}
}

func validateSubstitutionKey(key string) string {
	if n := len(alphabet.Normalize(key)); n < cipher.MinSubstitutionKeyLength {
		return fmt.Sprintf("needs at least %d letters, got %d", cipher.MinSubstitutionKeyLength, n)
	}
	return ""
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.screen {
	case screenMenu:
		body = m.viewMenu()
	case screenDigramKey, screenSubstitutionKey:
		body = m.viewKeys()
	case screenResult:
		body = m.viewResult()
	}
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) viewMenu() string {
	lines := []string{titleStyle.Render("Digram + substitution cipher"), ""}
	for i, item := range menuItems {
		label := fmt.Sprintf("%d. %s", i+1, item.label)
		if i == m.cursor {
			lines = append(lines, selectedStyle.Render("> "+label))
		} else {
			lines = append(lines, itemStyle.Render("  "+label))
		}
	}
	lines = append(lines, "", footerStyle.Render("input: "+m.session.InputPath))
	return strings.Join(lines, "\n")
}

func (m *Model) viewKeys() string {
	title := "Encrypt"
	if m.op == OpDecrypt {
		title = "Decrypt"
	}
	lines := []string{titleStyle.Render(title), "", m.digram.View()}
	if m.screen == screenSubstitutionKey {
		lines = append(lines, m.subst.View())
	}
	if m.inputErr != "" {
		lines = append(lines, errorStyle.Render(m.inputErr))
	}
	lines = append(lines, "", footerStyle.Render("enter: next  esc: back"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewResult() string {
	lines := []string{}
	if m.runErr != nil && m.outcome.OutputPath == "" {
		lines = append(lines, errorStyle.Render("Error: "+m.runErr.Error()))
	} else {
		verb := "Ciphertext"
		if m.outcome.Operation == OpDecrypt {
			verb = "Decrypted text"
		}
		lines = append(lines, titleStyle.Render(fmt.Sprintf("%s saved to %s", verb, m.outcome.OutputPath)), "")
		lines = append(lines, wrapText(groupLetters(Preview(m.outcome.Output), 5), m.contentWidth()))
		if m.runErr != nil {
			lines = append(lines, "", errorStyle.Render(m.runErr.Error()))
		}
	}
	lines = append(lines, "", footerStyle.Render("press any key"))
	return strings.Join(lines, "\n")
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(1, int(float64(m.width)*0.70))
}
