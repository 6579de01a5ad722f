// ABOUTME: Root AppModel for the drawing TUI: toolbar, canvas, footer and help overlay
// ABOUTME: Routes mouse and keyboard input through the input adapter into the board engine

package interactive

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/circles-go/internal/board"
	"github.com/mauromedda/circles-go/internal/config"
	"github.com/mauromedda/circles-go/internal/input"
	"github.com/mauromedda/circles-go/internal/keybindings"
	"github.com/mauromedda/circles-go/internal/log"
	"github.com/mauromedda/circles-go/internal/render"
)

// Rows taken by the toolbar, two separators and the footer.
const (
	toolbarRow   = 0
	canvasTop    = 2
	chromeHeight = 4
)

// AppDeps bundles the dependencies of the interactive app.
type AppDeps struct {
	Engine    *board.Engine
	Settings  *config.Settings
	Keys      *keybindings.Manager
	StoreName string
	Version   string

	// Reload re-reads settings for hot-reload; nil disables it.
	Reload func() (*config.Settings, error)
	// SettingsPaths and KeybindingPaths are polled for changes.
	SettingsPaths   []string
	KeybindingPaths []string
}

// shared holds mutable state that must survive AppModel value copies.
// Bubble Tea copies the model on each Update; pointer fields are shared
// across copies. Background goroutines only reach the model via Program.Send.
type shared struct {
	program *tea.Program
	ctx     context.Context
	cancel  context.CancelFunc
	tracker *input.Tracker
	cursor  *input.Cursor
	md      *MarkdownRenderer
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	sh   *shared
	deps AppDeps

	settings      *config.Settings
	styles        Styles
	width, height int
	showHelp      bool
	status        string
}

var _ tea.Model = AppModel{}

// NewAppModel creates an AppModel wired with deps. Settings default when nil.
func NewAppModel(deps AppDeps) AppModel {
	ctx, cancel := context.WithCancel(context.Background())

	settings := deps.Settings
	if settings == nil {
		settings = (&config.Settings{}).WithDefaults()
	}
	if deps.Keys == nil {
		deps.Keys = keybindings.NewFromBindings(config.NewKeybindings())
	}

	return AppModel{
		sh: &shared{
			ctx:     ctx,
			cancel:  cancel,
			tracker: input.NewTracker(input.Rect{Y: canvasTop, Width: 1, Height: 1}, settings.DragEnabled()),
			cursor:  input.NewCursor(1, 1),
			md:      NewMarkdownRenderer(),
		},
		deps:     deps,
		settings: settings,
		styles:   NewStyles(settings.MarkerColor),
	}
}

// Init has no startup commands; the watcher is started by Run.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update routes messages to the appropriate handler.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case SettingsChangedMsg:
		if msg.Err != nil {
			log.Warn("reloading settings: %v", msg.Err)
			m.status = "settings not reloaded: " + msg.Err.Error()
			return m, nil
		}
		m = m.applySettings(msg.Settings)
		m.status = "settings reloaded"
		return m, nil

	case KeybindingsChangedMsg:
		if len(m.deps.KeybindingPaths) == 2 {
			m.deps.Keys.Reload(m.deps.KeybindingPaths[0], m.deps.KeybindingPaths[1])
			m.status = "keybindings reloaded"
		}
		return m, nil
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.deps.Keys.ActionForKey(msg)

	if m.showHelp {
		switch {
		case action == config.ActionQuit && msg.Type == tea.KeyCtrlC:
			return m.quit()
		case action == config.ActionHelp, action == config.ActionQuit, msg.Type == tea.KeyEsc:
			m.showHelp = false
		}
		return m, nil
	}

	switch action {
	case config.ActionQuit:
		return m.quit()
	case config.ActionHelp:
		m.showHelp = true
	case config.ActionUndo, config.ActionRedo, config.ActionReset:
		m = m.run(action)
	case config.ActionCursorUp:
		m.sh.cursor.Move(0, -1)
	case config.ActionCursorDown:
		m.sh.cursor.Move(0, 1)
	case config.ActionCursorLeft:
		m.sh.cursor.Move(-1, 0)
	case config.ActionCursorRight:
		m.sh.cursor.Move(1, 0)
	case config.ActionPlace:
		m = m.dispatch(m.sh.cursor.Place())
	}
	return m, nil
}

func (m AppModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if msg.Action == tea.MouseActionPress {
			m.showHelp = false
		}
		return m, nil
	}

	if msg.Y == toolbarRow && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if action, ok := m.toolbar().HitTest(msg.X); ok {
			m = m.run(action)
		}
		return m, nil
	}

	return m.dispatch(m.sh.tracker.Handle(msg)), nil
}

// dispatch applies normalized input events: every PointAt becomes one point.
func (m AppModel) dispatch(events []input.Event) AppModel {
	for _, ev := range events {
		if ev.Kind != input.PointAt {
			continue
		}
		m.deps.Engine.AddPoint(ev.Point())
		m.status = ""
	}
	return m
}

// run invokes a toolbar or key action on the engine.
func (m AppModel) run(action config.KeyAction) AppModel {
	e := m.deps.Engine
	switch action {
	case config.ActionUndo:
		if e.Undo() {
			m.status = ""
		} else {
			m.status = "nothing to undo"
		}
	case config.ActionRedo:
		if e.Redo() {
			m.status = ""
		} else {
			m.status = "nothing to redo"
		}
	case config.ActionReset:
		if !e.CanReset() {
			m.status = "nothing to clear"
			break
		}
		e.Reset()
		m.status = "cleared"
	}
	return m
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	m.sh.cancel()
	return m, tea.Quit
}

func (m AppModel) applySettings(s *config.Settings) AppModel {
	if s == nil {
		return m
	}
	m.settings = s
	m.styles = NewStyles(s.MarkerColor)
	m.sh.tracker.SetDrag(s.DragEnabled())
	return m
}

// canvasRect is the drawable area below the toolbar and above the footer.
func (m AppModel) canvasRect() input.Rect {
	return input.Rect{
		X:      0,
		Y:      canvasTop,
		Width:  max(m.width, 1),
		Height: max(m.height-chromeHeight, 1),
	}
}

func (m AppModel) layout() {
	r := m.canvasRect()
	m.sh.tracker.SetCanvas(r)
	m.sh.cursor.Resize(r.Width, r.Height)
}

func (m AppModel) toolbar() ToolbarModel {
	e := m.deps.Engine
	return ToolbarModel{
		canUndo:  e.CanUndo(),
		canRedo:  e.CanRedo(),
		canReset: e.CanReset(),
		title:    "circles " + m.deps.Version,
		width:    m.width,
	}
}

func (m AppModel) footer() FooterModel {
	e := m.deps.Engine
	active, redo := e.Active(), e.RedoBuffer()
	return FooterModel{
		active:  len(active),
		redo:    len(redo),
		store:   m.deps.StoreName,
		drag:    m.settings.DragEnabled(),
		status:  m.status,
		saveErr: e.LastSaveError(),
		width:   m.width,
	}
}

// View renders the full TUI layout.
func (m AppModel) View() string {
	if m.width == 0 {
		return ""
	}
	s := m.styles
	r := m.canvasRect()
	sep := s.Border.Render(strings.Repeat("─", m.width))

	canvas := render.Canvas{
		Width:       r.Width,
		Height:      r.Height,
		Marker:      m.settings.Marker,
		MarkerStyle: s.Marker,
		CursorStyle: s.Cursor,
	}
	cur := m.sh.cursor
	body := canvas.Render(m.deps.Engine.Active(), render.Cursor{X: cur.X, Y: cur.Y, Visible: cur.Visible})

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.toolbar().View(s),
		sep,
		body,
		sep,
		m.footer().View(s),
	)

	if m.showHelp {
		return overlayRender(main, m.helpView(), m.width, m.height)
	}
	return main
}

func (m AppModel) helpView() string {
	w := min(64, max(m.width-6, 20))
	md := helpIntro + "\n" + m.deps.Keys.FormatAll()
	return m.styles.HelpBox.Render(m.sh.md.Render(md, w))
}

const helpIntro = `# circles

Click to place a marker. Hold the button and move to draw a trail.
The toolbar buttons and keys below undo, redo and clear the drawing.
Everything is saved after each change.
`
