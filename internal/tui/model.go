package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todo/internal/config"
	"todo/internal/logging"
	"todo/internal/output"
	"todo/internal/service"
)

type screen int

const (
	screenList screen = iota
	screenForm
)

// Model is the root bubbletea model: a task list with an add/edit form.
// Architecture: TITLE | LIST or FORM | STATUS | HELP
type Model struct {
	svc   service.Service
	title string
	log   *slog.Logger

	tasks  []service.Task
	cursor int
	screen screen
	form   Form

	status    string
	statusErr bool

	keys     listKeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithTitle sets the list heading.
func WithTitle(title string) Option {
	return func(m *Model) {
		if strings.TrimSpace(title) != "" {
			m.title = title
		}
	}
}

// WithLogger sets the logger for UI actions.
func WithLogger(log *slog.Logger) Option {
	return func(m *Model) {
		m.log = log
	}
}

// New creates a Model over svc.
func New(svc service.Service, opts ...Option) *Model {
	m := &Model{
		svc:   svc,
		title: config.DefaultTitle,
		log:   logging.Discard(),
		keys:  defaultListKeys(),
		help:  help.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.refresh()
	return m
}

// Tasks returns the rows currently displayed.
func (m *Model) Tasks() []service.Task { return m.tasks }

// Cursor returns the selected row index.
func (m *Model) Cursor() int { return m.cursor }

// Status returns the status line text.
func (m *Model) Status() string { return m.status }

// InForm reports whether the add/edit form is open.
func (m *Model) InForm() bool { return m.screen == screenForm }

// Form returns the open form. Only meaningful when InForm is true.
func (m *Model) Form() Form { return m.form }

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
		m.help.Width = msg.Width
		return m, nil

	case FormSubmittedMsg:
		m.submit(msg)
		return m, nil

	case FormCancelledMsg:
		m.screen = screenList
		m.setStatus("Cancelled")
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.screen == screenForm {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		}
		return m.updateList(msg)
	}

	if m.screen == screenForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()

	case key.Matches(msg, m.keys.New):
		return m.openForm(NewForm())

	case key.Matches(msg, m.keys.Edit):
		if task, ok := m.selected(); ok {
			return m.openForm(EditForm(task))
		}

	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	}
	return m, nil
}

func (m *Model) openForm(f Form) (tea.Model, tea.Cmd) {
	m.form = f
	m.screen = screenForm
	return m, m.form.Init()
}

func (m *Model) selected() (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return service.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *Model) toggleSelected() {
	task, ok := m.selected()
	if !ok {
		return
	}
	if err := m.svc.ToggleComplete(task.ID); err != nil {
		m.setError(err)
		return
	}
	m.refresh()
	if task.IsComplete {
		m.setStatus(fmt.Sprintf("Reopened %q", task.Title))
	} else {
		m.setStatus(fmt.Sprintf("Completed %q", task.Title))
	}
	m.log.Debug("tui toggle", "id", task.ID)
}

func (m *Model) deleteSelected() {
	task, ok := m.selected()
	if !ok {
		return
	}
	if err := m.svc.Delete(task.ID); err != nil {
		m.setError(err)
		return
	}
	m.refresh()
	m.setStatus(fmt.Sprintf("Deleted %q", task.Title))
	m.log.Debug("tui delete", "id", task.ID)
}

func (m *Model) submit(msg FormSubmittedMsg) {
	m.screen = screenList

	switch msg.Kind {
	case FormEdit:
		if err := m.svc.Edit(msg.Task); err != nil {
			m.setError(err)
			return
		}
		m.refresh()
		m.setStatus(fmt.Sprintf("Saved %q", msg.Task.Title))
		m.log.Debug("tui edit", "id", msg.Task.ID)

	default:
		task, err := m.svc.Add(msg.Task.Title, msg.Task.Description)
		if err != nil {
			m.setError(err)
			return
		}
		m.refresh()
		m.cursor = len(m.tasks) - 1
		m.setStatus(fmt.Sprintf("Added %q", task.Title))
		m.log.Debug("tui add", "id", task.ID)
	}
}

// refresh reloads the list and keeps the cursor in range.
func (m *Model) refresh() {
	m.tasks = m.svc.List()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = "Error: " + err.Error()
	m.statusErr = true
	m.log.Warn("tui action failed", "error", err)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.screen == screenForm {
		return m.form.View()
	}

	sections := []string{m.header(), m.listView()}
	if m.status != "" {
		style := StatusBarStyle
		if m.statusErr {
			style = style.Inherit(ErrorStyle)
		}
		sections = append(sections, "", style.Render(m.status))
	}
	sections = append(sections, "", m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) header() string {
	open, done := m.svc.Counts()
	counts := MutedStyle.Render(fmt.Sprintf("%d open · %d done", open, done))
	return TitleStyle.Render(m.title) + "  " + counts
}

func (m *Model) listView() string {
	if len(m.tasks) == 0 {
		return MutedStyle.Render(output.EmptyMessage)
	}

	var b strings.Builder
	for i, task := range m.tasks {
		cursor := " "
		if i == m.cursor {
			cursor = GlyphCursor
		}

		glyph := GlyphOpen
		title := task.Title
		switch {
		case task.IsComplete && i == m.cursor:
			glyph = GlyphDone
			title = SelectedStyle.Inherit(DoneStyle).Render(title)
		case task.IsComplete:
			glyph = GlyphDone
			title = DoneStyle.Render(title)
		case i == m.cursor:
			title = SelectedStyle.Render(title)
		}

		fmt.Fprintf(&b, "%s %s %s\n", cursor, glyph, title)
		b.WriteString(DescriptionStyle.Render(task.Description))
		if i < len(m.tasks)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
