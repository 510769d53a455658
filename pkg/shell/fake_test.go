package shell

import (
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"

	"github.com/aperezdc/groover/pkg/bridge"
)

// fakeToolkit records every call made by the controller.
type fakeToolkit struct {
	engine     *Engine
	darkTheme  int
	icons      []string
	appMenu    *menu.Menu
	accels     map[string]*keys.Accelerator
	windows    []*fakeWindow
	abouts     []About
	quits      int
	evalResult bridge.Result
}

func (tk *fakeToolkit) ConfigureEngine(e Engine) { tk.engine = &e }
func (tk *fakeToolkit) PreferDarkTheme() { tk.darkTheme++ }
func (tk *fakeToolkit) SetDefaultIcon(name string) {
	tk.icons = append(tk.icons, name)
}
func (tk *fakeToolkit) SetApplicationMenu(m *menu.Menu) {
	tk.appMenu = m
}
func (tk *fakeToolkit) InstallAccelerators(a map[string]*keys.Accelerator) {
	tk.accels = a
}
func (tk *fakeToolkit) ShowAbout(a About) { tk.abouts = append(tk.abouts, a) }
func (tk *fakeToolkit) Quit() { tk.quits++ }

func (tk *fakeToolkit) NewWindow() Window {
	w := &fakeWindow{result: tk.evalResult}
	tk.windows = append(tk.windows, w)
	return w
}

// fakeWindow completes script requests synchronously with result.
type fakeWindow struct {
	title     string
	minWidth  int
	minHeight int
	header    Header
	loads     []string
	shows     int
	raises    int
	scripts   []string
	completed int
	result    bridge.Result
}

func (w *fakeWindow) SetTitle(title string) { w.title = title }
func (w *fakeWindow) SetMinSize(wd, ht int) { w.minWidth, w.minHeight = wd, ht }
func (w *fakeWindow) SetHeader(h Header) { w.header = h }
func (w *fakeWindow) Load(url string) { w.loads = append(w.loads, url) }
func (w *fakeWindow) Show() { w.shows++ }
func (w *fakeWindow) Raise() { w.raises++ }

func (w *fakeWindow) EvalJS(script string, done func(bridge.Result)) {
	w.scripts = append(w.scripts, script)
	done(w.result)
	w.completed++
}
