package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todo/internal/service"
)

// FormKind tells whether a form creates or edits a task.
type FormKind int

const (
	FormNew FormKind = iota
	FormEdit
)

const (
	fieldTitle = iota
	fieldDescription
	fieldCount
)

// emptyFieldHint is shown when enter is pressed with a blank field.
const emptyFieldHint = "Title and description are required"

// FormSubmittedMsg is sent when the user confirms a form.
// For FormEdit, Task keeps the edited task's ID and completion state.
type FormSubmittedMsg struct {
	Kind FormKind
	Task service.Task
}

// FormCancelledMsg is sent when the user leaves a form with esc.
type FormCancelledMsg struct{}

// Form edits the title and description of one task.
type Form struct {
	kind   FormKind
	task   service.Task
	inputs [fieldCount]textinput.Model
	focus  int
	hint   string
	keys   formKeyMap
	help   help.Model
}

// NewForm creates a blank "New Task" form.
func NewForm() Form {
	return newForm(FormNew, service.Task{})
}

// EditForm creates an "Edit Task" form prefilled from task.
func EditForm(task service.Task) Form {
	return newForm(FormEdit, task)
}

func newForm(kind FormKind, task service.Task) Form {
	f := Form{
		kind: kind,
		task: task,
		keys: defaultFormKeys(),
		help: help.New(),
	}

	title := textinput.New()
	title.Placeholder = "What needs doing?"
	title.CharLimit = 256
	title.SetValue(task.Title)

	desc := textinput.New()
	desc.Placeholder = "Details"
	desc.CharLimit = 1024
	desc.SetValue(task.Description)

	f.inputs[fieldTitle] = title
	f.inputs[fieldDescription] = desc
	f.inputs[fieldTitle].Focus()
	return f
}

// Kind returns whether the form creates or edits.
func (f Form) Kind() FormKind {
	return f.kind
}

// Heading returns the form's title line.
func (f Form) Heading() string {
	if f.kind == FormEdit {
		return "Edit Task"
	}
	return "New Task"
}

// Title returns the current title input.
func (f Form) Title() string {
	return f.inputs[fieldTitle].Value()
}

// Description returns the current description input.
func (f Form) Description() string {
	return f.inputs[fieldDescription].Value()
}

// Focused returns the index of the focused field (0 title, 1 description).
func (f Form) Focused() int {
	return f.focus
}

// CanConfirm reports whether both fields hold non-blank text.
func (f Form) CanConfirm() bool {
	return strings.TrimSpace(f.Title()) != "" && strings.TrimSpace(f.Description()) != ""
}

// Init implements tea.Model.
func (f Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles form input.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return f, cmd
	}

	switch {
	case key.Matches(keyMsg, f.keys.Cancel):
		return f, func() tea.Msg { return FormCancelledMsg{} }

	case key.Matches(keyMsg, f.keys.Confirm):
		if !f.CanConfirm() {
			f.hint = emptyFieldHint
			return f, nil
		}
		task := f.task
		task.Title = f.Title()
		task.Description = f.Description()
		kind := f.kind
		return f, func() tea.Msg { return FormSubmittedMsg{Kind: kind, Task: task} }

	case key.Matches(keyMsg, f.keys.Next):
		return f, f.setFocus((f.focus + 1) % fieldCount)

	case key.Matches(keyMsg, f.keys.Prev):
		return f, f.setFocus((f.focus + fieldCount - 1) % fieldCount)
	}

	f.hint = ""
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// setFocus moves focus to field i.
func (f *Form) setFocus(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[f.focus].Focus()
}

// View renders the form.
func (f Form) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(f.Heading()))
	b.WriteString("\n")
	b.WriteString(f.fieldLabel(fieldTitle, "Title"))
	b.WriteString("\n")
	b.WriteString(f.inputs[fieldTitle].View())
	b.WriteString("\n\n")
	b.WriteString(f.fieldLabel(fieldDescription, "Description"))
	b.WriteString("\n")
	b.WriteString(f.inputs[fieldDescription].View())

	body := FormBorderStyle.Render(b.String())

	footer := f.help.View(f.keys)
	if f.hint != "" {
		footer = ErrorStyle.Render(f.hint)
	} else if !f.CanConfirm() {
		footer = MutedStyle.Render(emptyFieldHint) + "  " + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (f Form) fieldLabel(i int, label string) string {
	if f.focus == i {
		return SelectedStyle.Render(label)
	}
	return MutedStyle.Render(label)
}
