package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"

	"github.com/aperezdc/groover/pkg/accel"
	"github.com/aperezdc/groover/pkg/actions"
	"github.com/aperezdc/groover/pkg/bridge"
	"github.com/aperezdc/groover/pkg/config"
	"github.com/aperezdc/groover/pkg/menus"
	"github.com/aperezdc/groover/resources"
)

// AppMenuID is the id of the application menu in menus.xml.
const AppMenuID = "app-menu"

// State is the controller's lifecycle state.
type State string

const (
	StateNotStarted State = "not-started"
	StateStarted    State = "started"
	StateActivated  State = "activated"
)

var (
	ErrNotStarted     = errors.New("application not started")
	ErrAlreadyStarted = errors.New("application already started")
)

// Controller owns the application lifecycle: startup configuration, the
// action table and the single main window.
type Controller struct {
	cfg       config.Config
	log       zerolog.Logger
	bridge    *bridge.Bridge
	registry  *actions.Registry
	resources fs.FS
	bindings  []accel.Binding
	about     About

	mu     sync.Mutex
	state  State
	tk     Toolkit
	window Window
	accels map[string]*keys.Accelerator
}

// Option customizes a Controller.
type Option func(*Controller)

// WithResources replaces the bundled resource filesystem.
func WithResources(fsys fs.FS) Option {
	return func(c *Controller) { c.resources = fsys }
}

// WithBindings replaces the default accelerator set.
func WithBindings(bindings []accel.Binding) Option {
	return func(c *Controller) { c.bindings = bindings }
}

// NewController creates a controller in the not-started state.
func NewController(cfg config.Config, log zerolog.Logger, opts ...Option) *Controller {
	c := &Controller{
		cfg:       cfg,
		log:       log,
		bridge:    bridge.New(log),
		registry:  actions.NewRegistry(),
		resources: resources.FS,
		bindings:  accel.DefaultBindings,
		about:     DefaultAbout(),
		state:     StateNotStarted,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ApplicationID returns the identity the application runs under.
func (c *Controller) ApplicationID() string {
	return c.cfg.ApplicationID
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Registry exposes the action table.
func (c *Controller) Registry() *actions.Registry {
	return c.registry
}

// Accelerators returns the accelerators installed at startup, keyed by
// action name.
func (c *Controller) Accelerators() map[string]*keys.Accelerator {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]*keys.Accelerator, len(c.accels))
	for k, v := range c.accels {
		out[k] = v
	}
	return out
}

// Startup validates the accelerator table and the menu resource, then
// registers the actions and configures the toolkit: engine, dark theme,
// default icon, application menu and accelerators. It succeeds once; any
// error is fatal to the caller.
func (c *Controller) Startup(tk Toolkit) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateNotStarted {
		return ErrAlreadyStarted
	}

	handlers := c.handlers()
	known := make(map[string]bool, len(handlers))
	for _, h := range handlers {
		known[h.Name] = true
	}

	accels, err := accel.Resolve(c.bindings)
	if err != nil {
		return fmt.Errorf("resolve accelerators: %w", err)
	}
	for name := range accels {
		if !known[name] {
			return fmt.Errorf("accelerator for %w: %s", actions.ErrUnknownAction, name)
		}
	}

	ifc, err := menus.Load(c.resources, resources.Path("menus.xml"))
	if err != nil {
		return err
	}
	model, err := ifc.Menu(AppMenuID)
	if err != nil {
		return err
	}
	appMenu, err := menus.Build(model, c.dispatchLogged, nil)
	if err != nil {
		return fmt.Errorf("build application menu: %w", err)
	}

	// Nothing below fails once the tables above are valid, so a failed
	// startup leaves the registry and the toolkit untouched.
	if err := c.registry.Register(handlers...); err != nil {
		return fmt.Errorf("register actions: %w", err)
	}

	tk.ConfigureEngine(Engine{
		ProcessModel:     c.cfg.ProcessModel,
		WebExtensionsDir: c.cfg.WebExtensionsDir,
	})
	tk.PreferDarkTheme()
	tk.SetDefaultIcon(c.about.LogoIconName)
	tk.SetApplicationMenu(appMenu)
	tk.InstallAccelerators(accels)

	for name, a := range accels {
		c.log.Debug().Str("action", name).Str("accel", accel.String(a)).Msg("accelerator installed")
	}

	c.tk = tk
	c.accels = accels
	c.state = StateStarted
	c.log.Info().Str("app_id", c.cfg.ApplicationID).Msg("application started")
	return nil
}

// Activate presents the main window, building it on the first call.
func (c *Controller) Activate() error {
	c.mu.Lock()
	if c.state == StateNotStarted {
		c.mu.Unlock()
		return ErrNotStarted
	}
	if c.window == nil {
		c.window = BuildWindow(c.tk, c.cfg.ServerURL)
		c.state = StateActivated
		c.log.Info().Str("url", c.cfg.ServerURL).Msg("main window created")
	}
	w := c.window
	c.mu.Unlock()

	w.Show()
	w.Raise()
	return nil
}

// ActiveWindow returns the main window, or nil before the first activation.
func (c *Controller) ActiveWindow() Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.window
}

// Dispatch activates the named application action.
func (c *Controller) Dispatch(name string) error {
	return c.registry.Activate(name)
}

func (c *Controller) dispatchLogged(name string) {
	if err := c.Dispatch(name); err != nil {
		c.log.Error().Err(err).Str("action", name).Msg("dispatch failed")
	}
}

// Dispatcher returns a dispatch function that logs failures instead of
// returning them, for use as a UI callback.
func (c *Controller) Dispatcher() func(name string) {
	return c.dispatchLogged
}

func (c *Controller) handlers() []actions.Action {
	return []actions.Action{
		{Name: actions.PreviousSong, Handler: c.transport(actions.PreviousSong, bridge.ScriptPrevious)},
		{Name: actions.NextSong, Handler: c.transport(actions.NextSong, bridge.ScriptNext)},
		{Name: actions.TogglePlay, Handler: c.transport(actions.TogglePlay, bridge.ScriptTogglePlay)},
		{Name: actions.About, Handler: c.showAbout},
		{Name: actions.Quit, Handler: c.quit},
	}
}

// transport returns a handler that runs script in the active page view.
// Without a window the action is dropped with a warning.
func (c *Controller) transport(name, script string) actions.Handler {
	return func() {
		w := c.ActiveWindow()
		if w == nil {
			c.log.Warn().Str("action", name).Msg("no active window, transport action dropped")
			return
		}
		c.bridge.Run(w, script)
	}
}

func (c *Controller) toolkit() Toolkit {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tk
}

func (c *Controller) showAbout() {
	if tk := c.toolkit(); tk != nil {
		tk.ShowAbout(c.about)
	}
}

func (c *Controller) quit() {
	c.log.Info().Msg("quit requested")
	if tk := c.toolkit(); tk != nil {
		tk.Quit()
	}
}
