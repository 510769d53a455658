package shell

import (
	"bytes"
	"errors"
	"io/fs"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"

	"github.com/aperezdc/groover/pkg/accel"
	"github.com/aperezdc/groover/pkg/actions"
	"github.com/aperezdc/groover/pkg/bridge"
	"github.com/aperezdc/groover/pkg/config"
	"github.com/aperezdc/groover/resources"
)

func testConfig() config.Config {
	return config.Load(func(string) string { return "" })
}

// startedController returns a controller that went through Startup.
func startedController(t *testing.T, opts ...Option) (*Controller, *fakeToolkit, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	c := NewController(testConfig(), zerolog.New(&buf).Level(zerolog.DebugLevel), opts...)
	tk := &fakeToolkit{}
	if err := c.Startup(tk); err != nil {
		t.Fatalf("Startup() error = %v", err)
	}
	return c, tk, &buf
}

func TestTransportActionsRunScript(t *testing.T) {
	tests := []struct {
		action string
		script string
	}{
		{actions.PreviousSong, "_debug_player.prev()"},
		{actions.NextSong, "_debug_player.next()"},
		{actions.TogglePlay, "_debug_player.isPlaying ? _debug_player.pause() : _debug_player.play()"},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			c, tk, _ := startedController(t)
			if err := c.Activate(); err != nil {
				t.Fatalf("Activate() error = %v", err)
			}

			if err := c.Dispatch(tt.action); err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}

			w := tk.windows[0]
			if !reflect.DeepEqual(w.scripts, []string{tt.script}) {
				t.Errorf("scripts = %q, want exactly [%q]", w.scripts, tt.script)
			}
			if w.completed != 1 {
				t.Errorf("completed = %d, want 1", w.completed)
			}
		})
	}
}

func TestTransportFailureIsOnlyLogged(t *testing.T) {
	var buf bytes.Buffer
	c := NewController(testConfig(), zerolog.New(&buf))
	tk := &fakeToolkit{evalResult: bridge.Result{Err: errors.New("page not loaded")}}
	if err := c.Startup(tk); err != nil {
		t.Fatalf("Startup() error = %v", err)
	}
	if err := c.Activate(); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}

	if err := c.Dispatch(actions.NextSong); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if tk.quits != 0 || len(tk.abouts) != 0 || len(tk.windows) != 1 {
		t.Errorf("failed script had side effects: quits=%d abouts=%d windows=%d",
			tk.quits, len(tk.abouts), len(tk.windows))
	}
	if !strings.Contains(buf.String(), "page not loaded") {
		t.Errorf("failure not logged: %q", buf.String())
	}
}

func TestTransportWithoutWindow(t *testing.T) {
	c, tk, buf := startedController(t)

	if err := c.Dispatch(actions.TogglePlay); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if len(tk.windows) != 0 {
		t.Errorf("transport action created a window")
	}
	if !strings.Contains(buf.String(), "transport action dropped") {
		t.Errorf("missing diagnostic: %q", buf.String())
	}
}

func TestActivateReusesWindow(t *testing.T) {
	c, tk, _ := startedController(t)

	for i := 0; i < 3; i++ {
		if err := c.Activate(); err != nil {
			t.Fatalf("Activate() #%d error = %v", i+1, err)
		}
	}

	if len(tk.windows) != 1 {
		t.Fatalf("created %d windows, want 1", len(tk.windows))
	}
	w := tk.windows[0]
	if w.shows != 3 || w.raises != 3 {
		t.Errorf("shows=%d raises=%d, want 3 each", w.shows, w.raises)
	}
	if c.ActiveWindow() != Window(w) {
		t.Error("ActiveWindow() is not the constructed window")
	}
	if c.State() != StateActivated {
		t.Errorf("State() = %s, want %s", c.State(), StateActivated)
	}
}

func TestActivateBeforeStartup(t *testing.T) {
	c := NewController(testConfig(), zerolog.Nop())
	if err := c.Activate(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Activate() error = %v, want ErrNotStarted", err)
	}
	if c.ActiveWindow() != nil {
		t.Error("window exists before startup")
	}
}

func TestStartupOnce(t *testing.T) {
	c, tk, _ := startedController(t)
	if err := c.Startup(tk); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Startup() error = %v, want ErrAlreadyStarted", err)
	}
	if c.State() != StateStarted {
		t.Errorf("State() = %s, want %s", c.State(), StateStarted)
	}
}

func TestStartupConfiguresEngine(t *testing.T) {
	_, tk, _ := startedController(t)

	want := Engine{
		ProcessModel:     config.ProcessModelSharedSecondary,
		WebExtensionsDir: config.ExtensionsDir(),
	}
	if tk.engine == nil || *tk.engine != want {
		t.Errorf("engine = %+v, want %+v", tk.engine, want)
	}
	if tk.darkTheme != 1 {
		t.Errorf("PreferDarkTheme called %d times, want 1", tk.darkTheme)
	}
	if !reflect.DeepEqual(tk.icons, []string{"gnome-music"}) {
		t.Errorf("default icons = %q, want [gnome-music]", tk.icons)
	}
}

func TestStartupRegistersActions(t *testing.T) {
	c, _, _ := startedController(t)

	want := []string{actions.About, actions.NextSong, actions.PreviousSong, actions.Quit, actions.TogglePlay}
	if got := c.Registry().Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestStartupInstallsAccelerators(t *testing.T) {
	c, tk, _ := startedController(t)

	want := map[string]*keys.Accelerator{
		actions.TogglePlay:   keys.CmdOrCtrl("m"),
		actions.PreviousSong: keys.CmdOrCtrl(","),
		actions.NextSong:     keys.CmdOrCtrl("."),
	}
	if !reflect.DeepEqual(tk.accels, want) {
		t.Errorf("installed accelerators = %+v, want %+v", tk.accels, want)
	}
	if !reflect.DeepEqual(c.Accelerators(), want) {
		t.Errorf("Accelerators() = %+v, want %+v", c.Accelerators(), want)
	}
}

func TestStartupInstallsApplicationMenu(t *testing.T) {
	_, tk, _ := startedController(t)
	if tk.appMenu == nil {
		t.Fatal("no application menu installed")
	}

	var labels []string
	for _, item := range tk.appMenu.Items {
		if item.Type == menu.TextType {
			labels = append(labels, item.Label)
		}
	}
	if got := strings.Join(labels, ","); got != "About Groover,Quit" {
		t.Errorf("menu labels = %s, want About Groover,Quit", got)
	}

	quit := tk.appMenu.Items[len(tk.appMenu.Items)-1]
	quit.Click(&menu.CallbackData{MenuItem: quit})
	if tk.quits != 1 {
		t.Errorf("quits = %d after clicking Quit, want 1", tk.quits)
	}
}

func TestStartupFailures(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{
			name: "missing menu resource",
			opts: []Option{WithResources(fstest.MapFS{})},
		},
		{
			name: "menu resource without app-menu",
			opts: []Option{WithResources(fstest.MapFS{
				resources.Path("menus.xml"): {Data: []byte(`<interface><menu id="other"/></interface>`)},
			})},
		},
		{
			name: "invalid accelerator",
			opts: []Option{WithBindings([]accel.Binding{{Accel: "<Ctrl>", Action: "app.quit"}})},
		},
		{
			name: "accelerator for unknown action",
			opts: []Option{WithBindings([]accel.Binding{{Accel: "<Ctrl>s", Action: "app.shuffle"}})},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(testConfig(), zerolog.Nop(), tt.opts...)
			tk := &fakeToolkit{}
			if err := c.Startup(tk); err == nil {
				t.Fatal("Startup() succeeded, want error")
			}
			if c.State() != StateNotStarted {
				t.Errorf("State() = %s after failed startup", c.State())
			}
			if names := c.Registry().Names(); len(names) != 0 {
				t.Errorf("actions registered after failed startup: %v", names)
			}
			if tk.engine != nil || tk.darkTheme != 0 || tk.icons != nil || tk.appMenu != nil || tk.accels != nil {
				t.Errorf("toolkit configured after failed startup: %+v", tk)
			}
		})
	}
}

func TestStartupRetryAfterFailure(t *testing.T) {
	menusXML, err := fs.ReadFile(resources.FS, resources.Path("menus.xml"))
	if err != nil {
		t.Fatalf("read bundled menus.xml: %v", err)
	}
	fsys := fstest.MapFS{}
	c := NewController(testConfig(), zerolog.Nop(), WithResources(fsys))

	if err := c.Startup(&fakeToolkit{}); err == nil {
		t.Fatal("Startup() succeeded without menus.xml")
	}

	fsys[resources.Path("menus.xml")] = &fstest.MapFile{Data: menusXML}
	tk := &fakeToolkit{}
	if err := c.Startup(tk); err != nil {
		t.Fatalf("Startup() retry error = %v", err)
	}
	if got := len(c.Registry().Names()); got != 5 {
		t.Errorf("registered %d actions, want 5", got)
	}
	if tk.appMenu == nil || c.State() != StateStarted {
		t.Errorf("retry did not finish startup: state=%s menu=%v", c.State(), tk.appMenu)
	}
}

func TestQuit(t *testing.T) {
	t.Run("without window", func(t *testing.T) {
		c, tk, _ := startedController(t)
		if err := c.Dispatch(actions.Quit); err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
		if tk.quits != 1 {
			t.Errorf("quits = %d, want 1", tk.quits)
		}
	})

	t.Run("with window and failing page", func(t *testing.T) {
		var buf bytes.Buffer
		c := NewController(testConfig(), zerolog.New(&buf))
		tk := &fakeToolkit{evalResult: bridge.Result{Err: errors.New("boom")}}
		if err := c.Startup(tk); err != nil {
			t.Fatalf("Startup() error = %v", err)
		}
		if err := c.Activate(); err != nil {
			t.Fatalf("Activate() error = %v", err)
		}
		if err := c.Dispatch(actions.Quit); err != nil {
			t.Fatalf("Dispatch() error = %v", err)
		}
		if tk.quits != 1 {
			t.Errorf("quits = %d, want 1", tk.quits)
		}
	})
}

func TestAbout(t *testing.T) {
	c, tk, _ := startedController(t)
	if err := c.Dispatch(actions.About); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(tk.abouts) != 1 {
		t.Fatalf("about shown %d times, want 1", len(tk.abouts))
	}
	if !reflect.DeepEqual(tk.abouts[0], DefaultAbout()) {
		t.Errorf("about = %+v, want %+v", tk.abouts[0], DefaultAbout())
	}
}

func TestDispatchUnknown(t *testing.T) {
	c, _, _ := startedController(t)
	if err := c.Dispatch("shuffle"); !errors.Is(err, actions.ErrUnknownAction) {
		t.Errorf("Dispatch() error = %v, want ErrUnknownAction", err)
	}
}

func TestDispatcherLogsFailures(t *testing.T) {
	c, _, buf := startedController(t)
	c.Dispatcher()("shuffle")
	if !strings.Contains(buf.String(), "dispatch failed") {
		t.Errorf("missing dispatch failure log: %q", buf.String())
	}
}

func TestApplicationID(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want string
	}{
		{name: "default", env: "", want: config.DefaultApplicationID},
		{name: "override", env: "org.example.GrooverTest", want: "org.example.GrooverTest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Load(func(key string) string {
				if key == config.EnvApplicationID {
					return tt.env
				}
				return ""
			})
			c := NewController(cfg, zerolog.Nop())
			if got := c.ApplicationID(); got != tt.want {
				t.Errorf("ApplicationID() = %q, want %q", got, tt.want)
			}
		})
	}
}
