package main

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
	"github.com/wailsapp/wails/v2/pkg/options"
	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/aperezdc/groover/pkg/bridge"
	"github.com/aperezdc/groover/pkg/config"
	"github.com/aperezdc/groover/pkg/probe"
	"github.com/aperezdc/groover/pkg/shell"
)

// App adapts the Wails runtime to the shell's Toolkit interface and routes
// Wails lifecycle callbacks into the controller.
type App struct {
	ctx        context.Context
	controller *shell.Controller
	log        zerolog.Logger
	prober     *probe.Prober
	loader     *loaderGate
	icon       []byte

	mu            sync.RWMutex
	appMenu       *menu.Menu
	headerMenu    *menu.Menu
	accels        map[string]*keys.Accelerator
	pendingAction string
	startErr      error
}

// NewApp creates the adapter. pendingAction, if set, is activated once the
// window is first presented. icon is the PNG handed to Wails as the window
// icon, or nil when the theme has none.
func NewApp(controller *shell.Controller, log zerolog.Logger, pendingAction string, icon []byte) *App {
	a := &App{
		controller:    controller,
		log:           log,
		prober:        probe.New(probe.DefaultTimeout),
		icon:          icon,
		pendingAction: pendingAction,
	}
	a.loader = newLoaderGate(func(script string) {
		wailsruntime.WindowExecJS(a.ctx, script)
	})
	return a
}

// startup is called when the app starts.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	if err := a.controller.Startup(a); err != nil {
		a.log.Error().Err(err).Msg("startup failed")
		a.mu.Lock()
		a.startErr = err
		a.mu.Unlock()
		wailsruntime.Quit(ctx)
	}
}

// domReady runs after every page load. Only the bundled loader page's load
// counts as the first activation; later loads are navigation and reloads.
func (a *App) domReady(ctx context.Context) {
	if !a.loader.ready() {
		a.log.Debug().Msg("page loaded")
		return
	}
	a.activate()

	a.mu.Lock()
	action := a.pendingAction
	a.pendingAction = ""
	a.mu.Unlock()
	if action != "" {
		a.controller.Dispatcher()(action)
	}
}

// secondInstance runs when the program is launched again with the same
// application id; the new process exits and this one is activated instead.
func (a *App) secondInstance(data options.SecondInstanceData) {
	a.log.Debug().Strs("args", data.Args).Msg("activated by another instance")
	flags, err := config.ParseFlags(data.Args)
	if err != nil {
		a.log.Warn().Err(err).Msg("ignoring arguments from other instance")
	}
	a.activate()
	if flags.Action != "" {
		a.controller.Dispatcher()(flags.Action)
	}
}

// shutdown is called when the app closes.
func (a *App) shutdown(ctx context.Context) {
	a.log.Info().Msg("shutting down")
}

// StartupError returns the error that aborted startup, if any.
func (a *App) StartupError() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.startErr
}

func (a *App) activate() {
	if err := a.controller.Activate(); err != nil {
		a.log.Error().Err(err).Msg("activation failed")
	}
}

func (a *App) ConfigureEngine(e shell.Engine) {
	// WebKitGTK 2.40 and later always share one web process between views,
	// which is the model requested here; there is nothing to switch.
	ev := a.log.Info().Str("process_model", e.ProcessModel).Str("extensions_dir", e.WebExtensionsDir)
	if _, err := os.Stat(e.WebExtensionsDir); err != nil {
		a.log.Warn().Err(err).Str("extensions_dir", e.WebExtensionsDir).Msg("web extensions directory not available")
	}
	ev.Msg("web engine configured")
}

func (a *App) PreferDarkTheme() {
	// Windows only; Linux and macOS get the preference through options.App.
	wailsruntime.WindowSetDarkTheme(a.ctx)
}

// SetDefaultIcon reports the icon main resolved before wails.Run; Wails only
// reads the window icon when it creates the window.
func (a *App) SetDefaultIcon(name string) {
	if len(a.icon) == 0 {
		a.log.Warn().Str("icon", name).Msg("default icon not found in icon theme")
		return
	}
	a.log.Debug().Str("icon", name).Int("bytes", len(a.icon)).Msg("default icon set")
}

func (a *App) SetApplicationMenu(m *menu.Menu) {
	a.mu.Lock()
	a.appMenu = m
	a.mu.Unlock()
	a.applyMenu()
}

func (a *App) InstallAccelerators(accels map[string]*keys.Accelerator) {
	a.mu.Lock()
	a.accels = accels
	a.mu.Unlock()
}

func (a *App) NewWindow() shell.Window {
	return &webviewWindow{app: a}
}

func (a *App) ShowAbout(about shell.About) {
	_, err := wailsruntime.MessageDialog(a.ctx, wailsruntime.MessageDialogOptions{
		Type:    wailsruntime.InfoDialog,
		Title:   "About " + about.ProgramName,
		Message: about.Text(),
	})
	if err != nil {
		a.log.Warn().Err(err).Msg("about dialog failed")
	}
}

func (a *App) Quit() {
	wailsruntime.Quit(a.ctx)
}

func (a *App) setHeader(h shell.Header) {
	a.mu.RLock()
	accels := a.accels
	a.mu.RUnlock()

	m, err := shell.HeaderMenu(h, a.controller.Dispatcher(), accels)
	if err != nil {
		a.log.Error().Err(err).Msg("build header controls")
		return
	}
	a.mu.Lock()
	a.headerMenu = m
	a.mu.Unlock()
	a.applyMenu()
}

func (a *App) applyMenu() {
	a.mu.RLock()
	bar := shell.MenuBar(a.appMenu, a.headerMenu)
	a.mu.RUnlock()
	wailsruntime.MenuSetApplicationMenu(a.ctx, bar)
	wailsruntime.MenuUpdateApplicationMenu(a.ctx)
}

func (a *App) probeServer(url string) {
	a.prober.Probe(a.ctx, url).Log(a.log)
}

// webviewWindow is the single Wails window and its webview.
type webviewWindow struct {
	app *App
}

func (w *webviewWindow) SetTitle(title string) {
	wailsruntime.WindowSetTitle(w.app.ctx, title)
}

func (w *webviewWindow) SetMinSize(width, height int) {
	wailsruntime.WindowSetMinSize(w.app.ctx, width, height)
}

func (w *webviewWindow) SetHeader(h shell.Header) {
	w.app.setHeader(h)
}

// Load navigates away from the bundled loader page, once that page can take
// scripts. Load failures are the page's business; the probe only reports on
// them.
func (w *webviewWindow) Load(url string) {
	w.app.loader.navigate(url)
	go w.app.probeServer(url)
}

func (w *webviewWindow) Show() {
	wailsruntime.WindowShow(w.app.ctx)
}

func (w *webviewWindow) Raise() {
	wailsruntime.WindowUnminimise(w.app.ctx)
}

// EvalJS hands script to the webview. Wails does not report evaluation
// results: done always receives an empty Result once the script is queued,
// and exceptions thrown by the page only show up on its console.
func (w *webviewWindow) EvalJS(script string, done func(bridge.Result)) {
	wailsruntime.WindowExecJS(w.app.ctx, bridge.CatchScript(script))
	done(bridge.Result{})
}

// loaderGate holds navigation until the bundled loader page has finished
// loading. Scripts sent to a document that is still loading can be dropped.
type loaderGate struct {
	exec func(script string)

	mu      sync.Mutex
	loaded  bool
	pending string
}

func newLoaderGate(exec func(script string)) *loaderGate {
	return &loaderGate{exec: exec}
}

// navigate replaces the current document with url, or queues it until the
// loader is ready. Only the latest queued url is kept.
func (g *loaderGate) navigate(url string) {
	g.mu.Lock()
	if !g.loaded {
		g.pending = url
		g.mu.Unlock()
		return
	}
	g.mu.Unlock()
	g.exec(bridge.NavigateScript(url))
}

// ready marks the loader page as loaded and flushes a queued navigation. It
// reports true on the first call only.
func (g *loaderGate) ready() bool {
	g.mu.Lock()
	if g.loaded {
		g.mu.Unlock()
		return false
	}
	g.loaded = true
	url := g.pending
	g.pending = ""
	g.mu.Unlock()

	if url != "" {
		g.exec(bridge.NavigateScript(url))
	}
	return true
}
