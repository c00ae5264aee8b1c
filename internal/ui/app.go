package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rwejlgaard/timesheet/internal/config"
	"github.com/rwejlgaard/timesheet/internal/model"
)

type viewMode int

const (
	modeForm viewMode = iota
	modeSummary
	modeWizard
	modeSetDate
)

type uiModel struct {
	ctx    context.Context
	form   *model.Form
	sink   model.Submitter
	config *config.Config
	logger *slog.Logger
	now    func() time.Time

	mode   viewMode
	cursor int
	help   help.Model
	keys   keyMap
	styles styleMap
	width  int
	height int

	statusMsg    string
	statusError  bool
	statusExpiry time.Time

	// wizardCursor indexes the category or task list shown by the wizard
	wizardCursor int
	notesFocused bool
	hoursInput   textinput.Model
	notesInput   textarea.Model
	dateInput    textinput.Model

	submitting bool
}

// Options configures RunUI
type Options struct {
	Form   *model.Form
	Sink   model.Submitter
	Config *config.Config
	Logger *slog.Logger
	Now    func() time.Time
}

func initialModel(ctx context.Context, opts Options) uiModel {
	hi := textinput.New()
	hi.Placeholder = "3.5"
	hi.CharLimit = 8

	ta := textarea.New()
	ta.Placeholder = "Any details about this task..."
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	// enter commits the entry; newlines need alt+enter
	ta.KeyMap.InsertNewline.SetKeys("alt+enter")

	di := textinput.New()
	di.Placeholder = "YYYY-MM-DD or +N/-N (days from today)"
	di.CharLimit = 20

	h := help.New()
	h.ShowAll = false

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return uiModel{
		ctx:        ctx,
		form:       opts.Form,
		sink:       opts.Sink,
		config:     opts.Config,
		logger:     logger,
		now:        now,
		mode:       modeForm,
		help:       h,
		keys:       newKeyMapFromConfig(opts.Config),
		styles:     newStyleMapFromConfig(opts.Config),
		hoursInput: hi,
		notesInput: ta,
		dateInput:  di,
	}
}

func (m uiModel) Init() tea.Cmd {
	return nil
}

func (m *uiModel) setStatus(msg string) {
	m.statusMsg = msg
	m.statusError = false
	m.statusExpiry = m.now().Add(time.Duration(m.config.UI.StatusSeconds) * time.Second)
}

func (m *uiModel) setError(msg string) {
	m.setStatus(msg)
	m.statusError = true
}

// RunUI starts the terminal UI
func RunUI(ctx context.Context, opts Options) error {
	p := tea.NewProgram(initialModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
