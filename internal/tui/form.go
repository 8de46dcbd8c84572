// Package tui is the terminal form surface: four text inputs, a register
// action and a list-all action, with a one-line status.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aanand-mishra/student-registration/internal/report"
	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/aanand-mishra/student-registration/internal/utils/status"
)

// Registrar is the workflow the form drives.
type Registrar interface {
	Register(ctx context.Context, name, roll, course, email string) (types.Student, error)
	List(ctx context.Context) ([]types.Student, error)
}

// Field indexes, in form order.
const (
	fieldName = iota
	fieldRoll
	fieldCourse
	fieldEmail
	fieldCount
)

var fieldLabels = [fieldCount]string{"Full Name:", "Roll Number:", "Course:", "Email:"}

// FormModel is the Bubbletea model for the registration form.
type FormModel struct {
	title     string
	inputs    []textinput.Model
	focus     int
	status    status.Status
	busy      bool
	registrar Registrar
}

// Messages
type registeredMsg struct {
	student types.Student
	err     error
}

type listedMsg struct {
	students []types.Student
	err      error
}

// NewFormModel creates the form with focus on the first field.
func NewFormModel(title string, registrar Registrar) FormModel {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 100
		in.Width = 32
		inputs[i] = in
	}
	inputs[fieldName].Placeholder = "Ada Lovelace"
	inputs[fieldRoll].Placeholder = "1001"
	inputs[fieldCourse].Placeholder = "CS101"
	inputs[fieldEmail].Placeholder = "ada@example.com"
	inputs[fieldName].Focus()

	return FormModel{
		title:     title,
		inputs:    inputs,
		status:    status.Status{Kind: status.KindSuccess, Message: status.Initial},
		registrar: registrar,
	}
}

// Init starts the cursor blinking.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Commands
func registerCmd(r Registrar, name, roll, course, email string) tea.Cmd {
	return func() tea.Msg {
		student, err := r.Register(context.Background(), name, roll, course, email)
		return registeredMsg{student: student, err: err}
	}
}

func listCmd(r Registrar) tea.Cmd {
	return func() tea.Msg {
		students, err := r.List(context.Background())
		return listedMsg{students: students, err: err}
	}
}

// Update handles messages. While a register or list call is in flight,
// further actions are ignored so each one completes before the next.
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case registeredMsg:
		m.busy = false
		m.status = status.Register(msg.student, msg.err)
		if msg.err != nil {
			return m, nil
		}
		return m, m.clear()

	case listedMsg:
		m.busy = false
		m.status = status.List(msg.students, msg.err)
		if msg.err != nil {
			return m, nil
		}
		return m, tea.Println(report.Table(msg.students))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down":
			return m, m.moveFocus(1)
		case "shift+tab", "up":
			return m, m.moveFocus(-1)
		case "enter":
			if m.focus != fieldEmail {
				return m, m.moveFocus(1)
			}
			return m.submit()
		case "ctrl+s":
			return m.submit()
		case "ctrl+l":
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, listCmd(m.registrar)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m FormModel) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.busy = true
	return m, registerCmd(m.registrar,
		m.inputs[fieldName].Value(),
		m.inputs[fieldRoll].Value(),
		m.inputs[fieldCourse].Value(),
		m.inputs[fieldEmail].Value(),
	)
}

// moveFocus shifts focus by delta, wrapping around. It mutates the
// inputs slice shared with the caller's copy of the model.
func (m *FormModel) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	return m.inputs[m.focus].Focus()
}

// clear empties every input and returns focus to the first field.
func (m *FormModel) clear() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
	m.focus = fieldName
	return m.inputs[fieldName].Focus()
}

// View renders the form
func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	for i, in := range m.inputs {
		label := labelStyle.Render(fieldLabels[i])
		if i == m.focus {
			label = focusedLabelStyle.Render(fieldLabels[i])
		}
		b.WriteString(label)
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(
		formatKey("tab/↓", "next") + " • " +
			formatKey("enter/ctrl+s", "register") + " • " +
			formatKey("ctrl+l", "view all") + " • " +
			formatKey("esc", "quit")))
	b.WriteString("\n\n")

	if m.status.IsError() {
		b.WriteString(dangerStyle.Render(m.status.Message))
	} else {
		b.WriteString(successStyle.Render(m.status.Message))
	}

	return boxStyle.Render(b.String()) + "\n"
}

// Run starts the form on the terminal and blocks until the user quits.
func Run(title string, registrar Registrar) error {
	_, err := tea.NewProgram(NewFormModel(title, registrar)).Run()
	return err
}
