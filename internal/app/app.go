// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/wovenlab/loom/internal/buffer"
	"github.com/wovenlab/loom/internal/config"
	"github.com/wovenlab/loom/internal/core"
	"github.com/wovenlab/loom/internal/core/history"
	"github.com/wovenlab/loom/internal/event"
	"github.com/wovenlab/loom/internal/input"
	"github.com/wovenlab/loom/internal/logger"
	"github.com/wovenlab/loom/internal/modehandler"
	"github.com/wovenlab/loom/internal/plugin"
	"github.com/wovenlab/loom/internal/statusbar"
	"github.com/wovenlab/loom/internal/syntax"
	"github.com/wovenlab/loom/internal/task"
	"github.com/wovenlab/loom/internal/theme"
	"github.com/wovenlab/loom/internal/tui"
	"github.com/wovenlab/loom/internal/utils"
)

// App wires the editor components together and owns the main loop. All
// editor, history and syntax state is mutated from that loop; the only
// other goroutines are the terminal event pump, the worker pool and the
// debounce timer, and they communicate through channels.
type App struct {
	tuiManager    *tui.TUI
	editor        *core.Editor
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	themeManager  *theme.Manager
	historyView   *tui.HistoryView
	syntax        *syntax.Manager
	pool          *task.Pool
	editorAPI     plugin.EditorAPI

	// parseErrorShown keeps the "no syntax highlighting" notice from
	// repeating on every failed request for the same file type.
	parseErrorShown bool

	// parseDebounce defers re-parsing until typing pauses; the timer
	// callback only pokes parseSignal so the parse itself runs on the
	// main loop.
	parseDebounce utils.Debouncer
	parseSignal   chan struct{}

	quitSignal    chan struct{}
	redrawRequest chan struct{}
}

// New assembles the editor for the given file. The file may not exist
// yet; an empty buffer bound to that path is used in that case.
func New(filePath string) (*App, error) {
	cfg := config.Get()

	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}

	buf := buffer.NewSliceBuffer()
	if filePath != "" {
		if err := buf.Load(filePath); err != nil {
			tuiManager.Close()
			return nil, fmt.Errorf("loading %q: %w", filePath, err)
		}
	}

	editor := core.NewEditor(buf)
	eventManager := event.NewManager()
	editor.SetEventManager(eventManager)
	editor.SetHistory(history.New(buf.Bytes()))
	editor.SetTabWidth(cfg.Editor.TabWidth)
	editor.SetSystemClipboard(cfg.Editor.SystemClipboard)
	editor.ScrollOff = cfg.Editor.ScrollOff

	pool := task.NewPool(task.WithWorkers(cfg.Editor.TaskWorkers))
	syntax.RegisterLanguages()
	syntaxManager := syntax.NewManager(buf, pool)
	if filePath != "" && syntaxManager.DetectLanguage(filePath) {
		logger.Infof("app: detected language %q for %s", syntaxManager.Language(), filePath)
	}
	editor.SetSyntax(syntaxManager)

	statusBar := statusbar.New()
	themeManager := theme.NewManager()
	tuiManager.SetStyle(themeManager.Current().GetStyle("Default"))
	historyView := tui.NewHistoryView()

	a := &App{
		tuiManager:    tuiManager,
		editor:        editor,
		statusBar:     statusBar,
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		themeManager:  themeManager,
		historyView:   historyView,
		syntax:        syntaxManager,
		pool:          pool,
		parseSignal:   make(chan struct{}, 1),
		quitSignal:    make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}

	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      statusBar,
		HistoryView:    historyView,
		QuitSignal:     a.quitSignal,
	})

	editor.SetParseScheduler(a.scheduleParse)

	a.editorAPI = newEditorAPI(a)
	a.registerPlugins()
	if err := a.registerBuiltinCommands(); err != nil {
		tuiManager.Close()
		return nil, fmt.Errorf("registering commands: %w", err)
	}
	a.subscribeHandlers()
	a.pluginManager.InitializePlugins(a.editorAPI)

	width, height := tuiManager.Size()
	editor.SetViewSize(width, height)

	return a, nil
}

// Run starts the worker pool and drives the main loop until a quit is
// signaled. It blocks the calling goroutine.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	if err := a.pool.Start(); err != nil {
		return fmt.Errorf("starting worker pool: %w", err)
	}

	if a.syntax.Active() {
		if err := a.syntax.RequestParse(a.editor.GetBuffer().Bytes(), false); err != nil {
			a.reportParseError(err)
		}
	}

	events := make(chan tcell.Event, 16)
	go a.pollEvents(events)

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("Loom | Ctrl+S save  Ctrl+E command  Ctrl+F find  Ctrl+T history")
	a.draw()

	results := a.pool.Results()
	for {
		select {
		case <-a.quitSignal:
			return a.shutdown()
		case ev := <-events:
			if a.handleTerminalEvent(ev) {
				a.requestRedraw()
			}
		case res := <-results:
			a.handleParseResult(res)
		case <-a.parseSignal:
			a.flushParse()
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// pollEvents pumps terminal events into the main loop. It exits when the
// screen is finalized (PollEvent returns nil) or a quit is signaled.
func (a *App) pollEvents(events chan<- tcell.Event) {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-a.quitSignal:
			return
		}
	}
}

func (a *App) handleTerminalEvent(ev tcell.Event) bool {
	switch tev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		width, height := tev.Size()
		a.editor.SetViewSize(width, height)
		return true
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(tev)
	}
	return false
}

// handleParseResult hands a finished background parse to the syntax
// manager. Stale results are dropped there; adopted ones refresh the
// highlight spans on screen.
func (a *App) handleParseResult(res task.Result) {
	if a.syntax.HandleResult(res) {
		a.eventManager.Dispatch(event.TypeSyntaxUpdated, event.SyntaxUpdatedData{
			Version: a.syntax.Version(),
		})
		a.requestRedraw()
	}
}

// scheduleParse is installed on the editor as its parse scheduler and
// runs after every committed edit. The debounce timer fires on its own
// goroutine, so it only signals the main loop instead of parsing.
func (a *App) scheduleParse() {
	delay := time.Duration(config.Get().Editor.ParseDebounceMs) * time.Millisecond
	a.parseDebounce.Debounce(delay, func() {
		select {
		case a.parseSignal <- struct{}{}:
		default:
		}
	})
}

func (a *App) flushParse() {
	if !a.syntax.Active() {
		return
	}
	if err := a.syntax.RequestParse(a.editor.GetBuffer().Bytes(), true); err != nil {
		a.reportParseError(err)
	}
}

// reportParseError logs an engine construction failure and tells the user
// once that this file type gets no highlighting.
func (a *App) reportParseError(err error) {
	logger.Errorf("app: parse request: %v", err)
	if a.parseErrorShown {
		return
	}
	a.parseErrorShown = true
	a.statusBar.SetTemporaryMessage("No syntax highlighting for this file type")
	a.requestRedraw()
}

// shutdown tears the app down in dependency order: plugins first, then
// the worker pool, then the syntax manager once every in-flight parse
// has been drained back so its engines come home.
func (a *App) shutdown() error {
	logger.Infof("app: shutting down")
	a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
	a.pluginManager.ShutdownPlugins()
	a.parseDebounce.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := a.pool.Stop(ctx); err != nil {
		logger.Warnf("app: stopping worker pool: %v", err)
	} else {
		for res := range a.pool.Results() {
			a.syntax.HandleResult(res)
		}
	}
	a.syntax.Shutdown()
	return nil
}
