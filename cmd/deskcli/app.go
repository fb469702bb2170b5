package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"projectdesk/board"
	"projectdesk/client"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appState represents which screen is showing.
type appState int

const (
	stateLogin appState = iota
	stateRegister
	stateDashboard
	stateBoard
)

const sweepInterval = time.Minute

var taskColumns = []string{"to-do", "in-progress", "done", "overdue"}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	columnStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(26)
	cardStyle     = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Padding(0, 1).Reverse(true)
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	doneBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	restBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// App holds all TUI state.
type App struct {
	state appState
	api   *client.API
	board *board.Board

	inputs     []textinput.Model
	focusIndex int

	projectCursor int
	columnIndex   int
	taskCursor    int
	selected      *board.Project

	statusMsg string
	errMsg    string
	loading   bool

	width  int
	height int
}

type loginDoneMsg struct {
	sess *client.Session
	err  error
}

type registerDoneMsg struct {
	msg string
	err error
}

type boardLoadedMsg struct{ err error }

type taskMovedMsg struct{ err error }

type sweepMsg struct{}

func NewApp(api *client.API) *App {
	a := &App{api: api}
	a.setupAuthInputs()

	if sess := api.Session(); sess != nil {
		a.state = stateDashboard
		a.board = board.New(api, sess.UserID)
		a.loading = true
	}
	return a
}

func (a *App) setupAuthInputs() {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()
	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	a.inputs = []textinput.Model{email, password}
	a.focusIndex = 0
}

func (a *App) Init() tea.Cmd {
	if a.state == stateDashboard && a.board != nil {
		return tea.Batch(a.loadBoard(), sweepTick())
	}
	return textinput.Blink
}

func sweepTick() tea.Cmd {
	return tea.Tick(sweepInterval, func(time.Time) tea.Msg { return sweepMsg{} })
}

func (a *App) loadBoard() tea.Cmd {
	b := a.board
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return boardLoadedMsg{err: b.Load(ctx)}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case sweepMsg:
		if a.board != nil && a.api.Session() != nil {
			a.board.SweepOverdue()
			return a, sweepTick()
		}
		return a, nil

	case loginDoneMsg:
		a.loading = false
		if msg.err != nil {
			a.errMsg = errText(msg.err)
			return a, nil
		}
		a.board = board.New(a.api, msg.sess.UserID)
		a.state = stateDashboard
		a.statusMsg = "Logged in as " + msg.sess.Email
		a.errMsg = ""
		a.loading = true
		return a, tea.Batch(a.loadBoard(), sweepTick())

	case registerDoneMsg:
		a.loading = false
		if msg.err != nil {
			a.errMsg = errText(msg.err)
			return a, nil
		}
		a.state = stateLogin
		a.statusMsg = msg.msg
		a.errMsg = ""
		a.setupAuthInputs()
		return a, textinput.Blink

	case boardLoadedMsg:
		a.loading = false
		if msg.err != nil {
			if a.api.Session() == nil {
				// A 401 already tore the session down.
				a.toLogin("Session expired, please log in again")
				return a, textinput.Blink
			}
			a.errMsg = errText(msg.err)
		} else {
			a.errMsg = ""
		}
		return a, nil

	case taskMovedMsg:
		if msg.err != nil {
			if a.api.Session() == nil {
				a.toLogin("Session expired, please log in again")
				return a, textinput.Blink
			}
			a.errMsg = errText(msg.err)
			a.loading = false
			return a, nil
		}
		return a, a.loadBoard()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, a.updateInputs(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	switch a.state {
	case stateLogin, stateRegister:
		return a.handleAuthKey(msg)
	case stateDashboard:
		return a.handleDashboardKey(msg)
	case stateBoard:
		return a.handleBoardKey(msg)
	}
	return a, nil
}

func (a *App) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		a.focusIndex = (a.focusIndex + 1) % len(a.inputs)
		cmds := make([]tea.Cmd, 0, len(a.inputs))
		for i := range a.inputs {
			if i == a.focusIndex {
				cmds = append(cmds, a.inputs[i].Focus())
			} else {
				a.inputs[i].Blur()
			}
		}
		return a, tea.Batch(cmds...)

	case "enter":
		email := strings.TrimSpace(a.inputs[0].Value())
		password := a.inputs[1].Value()
		if email == "" || password == "" {
			a.errMsg = "Email and password are required"
			return a, nil
		}
		a.loading = true
		a.errMsg = ""
		if a.state == stateLogin {
			return a, a.doLogin(email, password)
		}
		return a, a.doRegister(email, password)

	case "ctrl+r":
		if a.state == stateLogin {
			a.state = stateRegister
			a.statusMsg = ""
		} else {
			a.state = stateLogin
		}
		a.errMsg = ""
		return a, nil

	case "esc":
		return a, tea.Quit
	}

	return a, a.updateInputs(msg)
}

func (a *App) doLogin(email, password string) tea.Cmd {
	api := a.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		sess, err := api.Login(ctx, email, password)
		return loginDoneMsg{sess: sess, err: err}
	}
}

func (a *App) doRegister(email, password string) tea.Cmd {
	api := a.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		result, err := api.Register(ctx, email, password)
		if err != nil {
			return registerDoneMsg{err: err}
		}
		return registerDoneMsg{msg: result.Msg}
	}
}

func (a *App) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	projects := a.board.Projects()
	switch msg.String() {
	case "q", "esc":
		return a, tea.Quit
	case "up", "k":
		if a.projectCursor > 0 {
			a.projectCursor--
		}
	case "down", "j":
		if a.projectCursor < len(projects)-1 {
			a.projectCursor++
		}
	case "enter":
		if a.projectCursor < len(projects) {
			p := projects[a.projectCursor]
			a.selected = &p
			a.state = stateBoard
			a.columnIndex = 0
			a.taskCursor = 0
		}
	case "r":
		a.loading = true
		return a, a.loadBoard()
	case "ctrl+l":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.api.Logout(ctx)
		a.board.StopSweep()
		a.toLogin("Logged out")
		return a, textinput.Blink
	}
	return a, nil
}

func (a *App) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		a.state = stateDashboard
		a.selected = nil
		return a, nil
	case "left", "h":
		if a.columnIndex > 0 {
			a.columnIndex--
			a.taskCursor = 0
		}
	case "right", "l":
		if a.columnIndex < len(taskColumns)-1 {
			a.columnIndex++
			a.taskCursor = 0
		}
	case "up", "k":
		if a.taskCursor > 0 {
			a.taskCursor--
		}
	case "down", "j":
		if a.taskCursor < len(a.columnTasks(a.columnIndex))-1 {
			a.taskCursor++
		}
	case "H", "L":
		return a, a.moveSelectedTask(msg.String() == "L")
	case "r":
		a.loading = true
		return a, a.loadBoard()
	}
	return a, nil
}

// moveSelectedTask shifts the highlighted task one column left or right and
// pushes the new status to the backend.
func (a *App) moveSelectedTask(right bool) tea.Cmd {
	tasks := a.columnTasks(a.columnIndex)
	if a.taskCursor >= len(tasks) || a.selected == nil {
		return nil
	}
	target := a.columnIndex - 1
	if right {
		target = a.columnIndex + 1
	}
	if target < 0 || target >= len(taskColumns) {
		return nil
	}

	task := tasks[a.taskCursor]
	status := taskColumns[target]
	api := a.api
	userID := a.api.Session().UserID
	projectID := a.selected.ID
	a.loading = true

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_, err := api.UpdateTaskStatus(ctx, userID, projectID, task.ID, status)
		return taskMovedMsg{err: err}
	}
}

func (a *App) columnTasks(col int) []board.Task {
	if a.selected == nil {
		return nil
	}
	var out []board.Task
	for _, t := range a.board.Tasks(a.selected.ID) {
		if t.Status == taskColumns[col] {
			out = append(out, t)
		}
	}
	return out
}

func (a *App) toLogin(status string) {
	a.state = stateLogin
	a.board = nil
	a.selected = nil
	a.projectCursor = 0
	a.statusMsg = status
	a.errMsg = ""
	a.loading = false
	a.setupAuthInputs()
}

func (a *App) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(a.inputs))
	for i := range a.inputs {
		a.inputs[i], cmds[i] = a.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func errText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Msg
	}
	return err.Error()
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("2006-01-02")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
